package present

import (
	"sync/atomic"

	"github.com/gitflix/gitflix/rawframe"
)

// NullPresenter discards every frame. It exists for benchmarking the
// decode/display pipeline's throughput independent of any real sink,
// and for tests that only care about ordering and pacing.
type NullPresenter struct {
	closeReq atomic.Bool
	count    atomic.Uint64
}

func (p *NullPresenter) Init(width, height int) error { return nil }

func (p *NullPresenter) Present(frame *rawframe.Frame) error {
	p.count.Add(1)
	return nil
}

func (p *NullPresenter) ShouldClose() bool { return p.closeReq.Load() }

func (p *NullPresenter) RequestClose() { p.closeReq.Store(true) }

func (p *NullPresenter) Cleanup() {}

func (p *NullPresenter) Count() uint64 { return p.count.Load() }
