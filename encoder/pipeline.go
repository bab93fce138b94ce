package encoder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/gitflix/gitflix/container"
	"github.com/gitflix/gitflix/internal/telemetry"
	"github.com/gitflix/gitflix/objectstore"
	"github.com/gitflix/gitflix/rawframe"

	"github.com/gitflix/gitflix/compress"
)

// FrameSource is the ingestion front-end's contract with the encoder:
// an iterator yielding RawFrames with matching dimensions. The MP4
// demuxer that implements this in a full deployment is out of this
// spec's scope; the present package ships a couple of concrete
// FrameSources (synthetic pattern, raw RGB directory) for demos and tests.
type FrameSource interface {
	// Next returns the next frame, or ok=false when the source is
	// exhausted. A non-nil error is always fatal to the session.
	Next() (frame *rawframe.Frame, ok bool, err error)
}

// Result summarizes a completed (or aborted) encoding run.
type Result struct {
	FramesWritten uint32
	TipCommit     plumbing.Hash
}

// Pipeline is single-threaded: encoding never overlaps frames.
type Pipeline struct {
	session *objectstore.Session
	target  container.TargetDimensions
	logger  *slog.Logger
	metrics *telemetry.Metrics
}

// New builds a Pipeline writing into session, validating every incoming
// frame against target.
func New(session *objectstore.Session, target container.TargetDimensions, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("session_id", session.ID.String())
	return &Pipeline{session: session, target: target, logger: logger}
}

// WithMetrics attaches m so Run reports per-mode encode counts and
// fatal-error counts. m may be nil, which disables reporting.
func (p *Pipeline) WithMetrics(m *telemetry.Metrics) *Pipeline {
	p.metrics = m
	return p
}

// Run drives the encoder state machine: for each
// frame, pick RAW or DELTA, serialize, write a commit, and advance
// previousRaw/parentCommitID/frameIndex. On any error, the pipeline
// aborts and returns the error; commits already written stay on disk
// but the caller should not advertise the session as complete.
func (p *Pipeline) Run(ctx context.Context, source FrameSource) (Result, error) {
	var (
		previousRaw    *rawframe.Frame
		parentCommitID = plumbing.ZeroHash
		frameIndex     uint32
	)

	for {
		if err := ctx.Err(); err != nil {
			return Result{FramesWritten: frameIndex, TipCommit: parentCommitID}, err
		}

		raw, ok, err := source.Next()
		if err != nil {
			p.metrics.RecordPipelineError("encode")
			return Result{FramesWritten: frameIndex, TipCommit: parentCommitID},
				&SessionError{FrameIndex: frameIndex, Reason: "read source frame", Err: err}
		}
		if !ok {
			break
		}

		if err := raw.Validate(); err != nil {
			p.metrics.RecordPipelineError("encode")
			return Result{FramesWritten: frameIndex, TipCommit: parentCommitID},
				&SessionError{FrameIndex: frameIndex, Reason: "invalid source frame", Err: err}
		}
		if raw.Width != p.target.Width || raw.Height != p.target.Height || raw.Channels != p.target.Channels {
			p.metrics.RecordPipelineError("encode")
			return Result{FramesWritten: frameIndex, TipCommit: parentCommitID},
				&SessionError{FrameIndex: frameIndex, Reason: "dimension mismatch against target", Err: fmt.Errorf(
					"got %dx%dx%d, want %dx%dx%d", raw.Width, raw.Height, raw.Channels,
					p.target.Width, p.target.Height, p.target.Channels)}
		}

		enc, err := compress.EncodeFrame(previousRaw, raw)
		if err != nil {
			p.metrics.RecordPipelineError("encode")
			return Result{FramesWritten: frameIndex, TipCommit: parentCommitID},
				&SessionError{FrameIndex: frameIndex, Reason: "compress", Err: err}
		}

		record := &container.Record{
			FrameNumber:     frameIndex,
			Width:           uint32(p.target.Width),
			Height:          uint32(p.target.Height),
			Channels:        uint32(p.target.Channels),
			CompressionType: enc.Type,
			Payload:         enc.Payload,
		}
		buf := container.Serialize(record)

		commitID, err := p.session.WriteFrame(buf, parentCommitID, frameIndex, enc.Type.String())
		if err != nil {
			p.metrics.RecordPipelineError("encode")
			return Result{FramesWritten: frameIndex, TipCommit: parentCommitID},
				&SessionError{FrameIndex: frameIndex, Reason: "write commit", Err: err}
		}

		p.metrics.RecordFrameEncoded(enc.Type.String())
		p.logger.Debug("encoded frame", "frame", frameIndex, "mode", enc.Type.String(), "bytes", len(enc.Payload))

		previousRaw = raw
		parentCommitID = commitID
		frameIndex++
	}

	return Result{FramesWritten: frameIndex, TipCommit: parentCommitID}, nil
}
