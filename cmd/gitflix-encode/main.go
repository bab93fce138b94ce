// Command gitflix-encode writes a synthetic demo pattern into a GitFlix
// repository, one commit per frame. It stands in for the MP4 ingestion
// front-end, an external collaborator this project doesn't implement.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gitflix/gitflix/encoder"
	"github.com/gitflix/gitflix/internal/config"
	"github.com/gitflix/gitflix/internal/telemetry"
	"github.com/gitflix/gitflix/objectstore"
	"github.com/gitflix/gitflix/present"
)

func main() {
	var (
		repoPath  = flag.String("repo", "./gitflix-repo", "path to the GitFlix repository (created if missing)")
		input     = flag.String("input", "", "directory of frame_NNNNNN.rgb files to encode; if empty, a synthetic demo pattern is generated")
		frames    = flag.Int("frames", 600, "number of synthetic frames to encode (ignored when -input is set)")
		logLevel  = flag.String("log-level", "info", "debug, info, warn, error")
		logFormat = flag.String("log-format", "json", "json or text")
	)
	flag.Parse()

	_ = config.Load() // missing .env is fine; fall back to system env/defaults
	opts := config.FromEnv()
	logger := telemetry.NewLogger(*logLevel, *logFormat)
	metrics := telemetry.New()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutdown signal received, aborting encode")
		cancel()
	}()

	if err := run(ctx, *repoPath, *input, *frames, opts, logger, metrics); err != nil {
		logger.Error("encode failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, repoPath, inputDir string, frameCount int, opts config.Options, logger *slog.Logger, metrics *telemetry.Metrics) error {
	target := opts.Target()

	sess, err := objectstore.Open(repoPath, opts.BlobCacheSize)
	if err != nil {
		return fmt.Errorf("open repository: %w", err)
	}
	defer sess.Close()

	var source encoder.FrameSource
	if inputDir != "" {
		source = present.NewRawDirFrameSource(inputDir, target.Width, target.Height, target.Channels)
	} else {
		source = present.NewSyntheticFrameSource(target.Width, target.Height, target.Channels, frameCount)
	}
	pipe := encoder.New(sess, target, nil).WithMetrics(metrics)

	result, err := pipe.Run(ctx, source)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	logger.Info("encode complete", "frames_written", result.FramesWritten, "tip_commit", result.TipCommit.String())
	return nil
}
