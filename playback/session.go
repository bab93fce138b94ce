package playback

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gitflix/gitflix/container"
	"github.com/gitflix/gitflix/internal/telemetry"
	"github.com/gitflix/gitflix/objectstore"
	"github.com/gitflix/gitflix/present"
)

// exitPollInterval is the bounded-timeout polling period for observing
// the should_exit signal (reference 16 ms).
const exitPollInterval = 16 * time.Millisecond

// Config bundles the tunables that
// apply to playback.
type Config struct {
	Target       container.TargetDimensions
	TargetFPS    int
	QueueSize    int
	PresentPaced bool
}

// Result summarizes a completed (or cleanly stopped) playback run.
type Result struct {
	FramesPresented int
}

// Pipeline wires the prefetcher, the decode worker, and the presenter
// around a single Session's three concurrent
// activities. Decoding runs on its own goroutine; the presenter runs on
// the caller's goroutine so Run blocks until playback stops.
type Pipeline struct {
	session *objectstore.Session
	cfg     Config
	logger  *slog.Logger
	metrics *telemetry.Metrics

	shouldExit atomic.Bool
}

// New builds a Pipeline reading from session under cfg.
func New(session *objectstore.Session, cfg Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("session_id", session.ID.String())
	return &Pipeline{session: session, cfg: cfg, logger: logger}
}

// WithMetrics attaches m so Run reports per-mode decode counts, queue
// depth, and fatal-error counts. m may be nil, which disables reporting.
func (p *Pipeline) WithMetrics(m *telemetry.Metrics) *Pipeline {
	p.metrics = m
	return p
}

// RequestExit flips the shared should_exit flag. Every queue wait in the
// pipeline observes it within one exitPollInterval and returns. A pacing
// sleep already in progress is not interrupted: it runs to its deadline
// (up to one frame period) before the presenter sees the stop.
func (p *Pipeline) RequestExit() { p.shouldExit.Store(true) }

// Run walks the chain, decodes it on a background worker, and presents
// it on the calling goroutine. It returns when the chain is exhausted
// and the queue drains, when sink reports a close request, when
// RequestExit is called, or on the first fatal error — whichever comes
// first.
func (p *Pipeline) Run(ctx context.Context, sink present.Presenter) (Result, error) {
	ids, err := p.session.WalkChain()
	if err != nil {
		return Result{}, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go p.watchExit(ctx, cancel)

	prefetcher := objectstore.NewPrefetcher(p.session, ids)
	prefetcher.Start(ctx)
	defer prefetcher.Stop()

	if err := sink.Init(p.cfg.Target.Width, p.cfg.Target.Height); err != nil {
		return Result{}, &PresenterError{Reason: "init", Err: err}
	}
	defer sink.Cleanup()

	queue := NewFrameQueue(p.cfg.QueueSize)
	defer queue.Close()

	worker := &decodeWorker{session: p.session, target: p.cfg.Target, queue: queue, logger: p.logger, metrics: p.metrics}
	decodeErrCh := make(chan error, 1)
	go func() {
		err := worker.run(ctx, ids)
		queue.Close()
		decodeErrCh <- err
	}()

	presenter := &presenterLoop{sink: sink, queue: queue, paced: p.cfg.PresentPaced, fps: p.cfg.TargetFPS, logger: p.logger, metrics: p.metrics}
	presented, presentErr := presenter.run(ctx)

	// A presenter-driven or should_exit-driven stop cancels ctx, which
	// the decode worker observes on its next iteration or Put call; wait
	// for it to actually return before reporting the run as finished.
	cancel()
	decodeErr := <-decodeErrCh

	if err := cleanShutdown(presentErr); err != nil {
		return Result{FramesPresented: presented}, err
	}
	if err := cleanShutdown(decodeErr); err != nil {
		return Result{FramesPresented: presented}, err
	}
	return Result{FramesPresented: presented}, nil
}

// cleanShutdown treats context cancellation as a normal stop rather
// than a pipeline failure — it is how RequestExit and a presenter close
// request propagate to the decode worker and the queue.
func cleanShutdown(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (p *Pipeline) watchExit(ctx context.Context, cancel context.CancelFunc) {
	ticker := time.NewTicker(exitPollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if p.shouldExit.Load() {
				cancel()
				return
			}
		}
	}
}
