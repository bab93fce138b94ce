package playback

import (
	"context"

	"github.com/gitflix/gitflix/rawframe"
)

// FrameQueue is the bounded FIFO handoff between the decode worker and
// the presenter, with a fixed capacity (reference 16). Put blocks while
// full, Get blocks while empty; both return promptly once ctx is
// cancelled or the queue is closed, without a separate polling loop — a
// cancelled context closes its Done channel exactly once and every
// blocked select observes it immediately.
type FrameQueue struct {
	items chan *rawframe.Frame
	done  chan struct{}
}

// NewFrameQueue builds a FrameQueue holding up to capacity frames.
func NewFrameQueue(capacity int) *FrameQueue {
	return &FrameQueue{
		items: make(chan *rawframe.Frame, capacity),
		done:  make(chan struct{}),
	}
}

// Put hands frame ownership to the queue, blocking while full. Returns
// false without enqueueing if the queue is closed or ctx is cancelled
// first.
func (q *FrameQueue) Put(ctx context.Context, frame *rawframe.Frame) bool {
	select {
	case q.items <- frame:
		return true
	case <-q.done:
		return false
	case <-ctx.Done():
		return false
	}
}

// Get removes and returns the oldest frame, blocking while empty. Once
// Close has been called, Get first drains whatever is already buffered
// (preserving FIFO order) before reporting ok=false.
func (q *FrameQueue) Get(ctx context.Context) (frame *rawframe.Frame, ok bool) {
	select {
	case frame = <-q.items:
		return frame, true
	case <-q.done:
		select {
		case frame = <-q.items:
			return frame, true
		default:
			return nil, false
		}
	case <-ctx.Done():
		return nil, false
	}
}

// Len reports the number of frames currently buffered. It is a
// snapshot for telemetry only — the true occupancy may change before
// the caller observes the value.
func (q *FrameQueue) Len() int { return len(q.items) }

// Close signals blocked producers and consumers to stop waiting.
// Idempotent. Frames already buffered remain available through Get
// until drained.
func (q *FrameQueue) Close() {
	select {
	case <-q.done:
	default:
		close(q.done)
	}
}
