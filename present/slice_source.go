package present

import (
	"sync"

	"github.com/gitflix/gitflix/rawframe"
)

// SliceFrameSource replays a fixed slice of frames, used by encoder and
// playback tests that need exact control over frame content.
type SliceFrameSource struct {
	frames []*rawframe.Frame
	next   int
}

func NewSliceFrameSource(frames []*rawframe.Frame) *SliceFrameSource {
	return &SliceFrameSource{frames: frames}
}

func (s *SliceFrameSource) Next() (*rawframe.Frame, bool, error) {
	if s.next >= len(s.frames) {
		return nil, false, nil
	}
	f := s.frames[s.next]
	s.next++
	return f, true, nil
}

// RecordingPresenter records every presented frame in order, for tests
// asserting queue/chain ordering guarantees.
type RecordingPresenter struct {
	mu       sync.Mutex
	Frames   []*rawframe.Frame
	closeReq bool
}

func (p *RecordingPresenter) Init(width, height int) error { return nil }

func (p *RecordingPresenter) Present(frame *rawframe.Frame) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Frames = append(p.Frames, frame)
	return nil
}

func (p *RecordingPresenter) ShouldClose() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closeReq
}

func (p *RecordingPresenter) RequestClose() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeReq = true
}

func (p *RecordingPresenter) Cleanup() {}

// Snapshot returns a copy of the frames recorded so far, safe to read
// concurrently with Present.
func (p *RecordingPresenter) Snapshot() []*rawframe.Frame {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*rawframe.Frame, len(p.Frames))
	copy(out, p.Frames)
	return out
}
