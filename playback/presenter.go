package playback

import (
	"context"
	"log/slog"

	"github.com/gitflix/gitflix/internal/telemetry"
	"github.com/gitflix/gitflix/playback/internal/pacer"
	"github.com/gitflix/gitflix/present"
)

// presenterLoop drives dequeue → present → pace → release.
// It checks the sink's close request before each dequeue, so a
// presenter-driven shutdown (e.g. a window close event) never blocks on
// an empty queue first.
type presenterLoop struct {
	sink    present.Presenter
	queue   *FrameQueue
	paced   bool
	fps     int
	logger  *slog.Logger
	metrics *telemetry.Metrics
}

// run returns the number of frames presented and the first fatal error,
// or a nil error on a clean stop (chain exhausted, sink requested
// close, or ctx cancelled).
func (p *presenterLoop) run(ctx context.Context) (int, error) {
	var pc *pacer.Pacer
	if p.paced {
		pc = pacer.New(p.fps)
	}

	presented := 0
	for {
		if p.sink.ShouldClose() {
			return presented, nil
		}

		frame, ok := p.queue.Get(ctx)
		if !ok {
			return presented, ctx.Err()
		}
		p.metrics.SetQueueDepth(p.queue.Len())

		if err := p.sink.Present(frame); err != nil {
			p.metrics.RecordPipelineError("present")
			return presented, &PresenterError{Reason: "present", Err: err}
		}
		presented++

		if pc != nil {
			pc.Wait()
		}
	}
}
