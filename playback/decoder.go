package playback

import (
	"context"
	"log/slog"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/gitflix/gitflix/compress"
	"github.com/gitflix/gitflix/container"
	"github.com/gitflix/gitflix/internal/telemetry"
	"github.com/gitflix/gitflix/objectstore"
	"github.com/gitflix/gitflix/rawframe"
)

// decodeWorker drives get_blob → deserialize → decompress → enqueue for
// an ordered id list. It owns previousRaw exclusively; the
// presenter never reads it.
type decodeWorker struct {
	session *objectstore.Session
	target  container.TargetDimensions
	queue   *FrameQueue
	logger  *slog.Logger
	metrics *telemetry.Metrics
}

// run walks ids in order, stopping early (returning ctx.Err()) if ctx is
// cancelled, and returning the first fatal *FrameError otherwise.
func (w *decodeWorker) run(ctx context.Context, ids []plumbing.Hash) error {
	var previousRaw *rawframe.Frame

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}

		blob, err := w.session.GetBlob(id)
		if err != nil {
			w.metrics.RecordPipelineError("decode")
			return &FrameError{CommitID: id.String(), FrameNumber: -1, Reason: "get blob", Err: err}
		}

		record, err := container.Deserialize(blob, w.target)
		if err != nil {
			w.metrics.RecordPipelineError("decode")
			return &FrameError{CommitID: id.String(), FrameNumber: -1, Reason: "deserialize", Err: err}
		}

		frame, err := decodeRecord(record, previousRaw, w.target)
		if err != nil {
			w.metrics.RecordPipelineError("decode")
			return &FrameError{CommitID: id.String(), FrameNumber: int64(record.FrameNumber), Reason: "decompress", Err: err}
		}

		previousRaw = frame.Clone()
		w.metrics.RecordFrameDecoded(record.CompressionType.String())

		if !w.queue.Put(ctx, frame) {
			return ctx.Err()
		}
		w.metrics.SetQueueDepth(w.queue.Len())

		w.logger.Debug("decoded frame", "frame", record.FrameNumber, "mode", record.CompressionType.String())
	}

	return nil
}

// decodeRecord dispatches to the codec named by record.CompressionType.
// A DELTA record with no predecessor decodes as RAW — the non-strict,
// defensive branch of compress.DecodeDelta — rather than failing the
// pipeline, matching the reference player's behavior for a well-formed
// but reference-less frame.
func decodeRecord(record *container.Record, previousRaw *rawframe.Frame, target container.TargetDimensions) (*rawframe.Frame, error) {
	switch record.CompressionType {
	case container.Raw:
		return compress.DecodeRaw(record.Payload, target.Width, target.Height, target.Channels)
	case container.Delta:
		return compress.DecodeDelta(record.Payload, previousRaw, target.Width, target.Height, target.Channels, false)
	default:
		return nil, &container.MalformedError{FrameNumber: int64(record.FrameNumber), Reason: "unknown compression type"}
	}
}
