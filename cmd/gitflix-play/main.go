// Command gitflix-play walks a GitFlix repository's commit chain and
// presents it at the configured frame rate. It stands in for the
// GPU/window-system presenter, an external
// collaborator, using present.PNGDirPresenter or present.NullPresenter
// as concrete sinks.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gitflix/gitflix/internal/config"
	"github.com/gitflix/gitflix/internal/telemetry"
	"github.com/gitflix/gitflix/objectstore"
	"github.com/gitflix/gitflix/playback"
	"github.com/gitflix/gitflix/present"
)

func main() {
	var (
		repoPath    = flag.String("repo", "./gitflix-repo", "path to the GitFlix repository to play back")
		outputDir   = flag.String("output", "", "if set, write decoded frames as PNGs into this directory instead of discarding them")
		metricsAddr = flag.String("metrics-addr", "", "if set, serve Prometheus metrics on this address (e.g. :9090)")
		logLevel    = flag.String("log-level", "info", "debug, info, warn, error")
		logFormat   = flag.String("log-format", "json", "json or text")
	)
	flag.Parse()

	_ = config.Load()
	opts := config.FromEnv()
	logger := telemetry.NewLogger(*logLevel, *logFormat)
	metrics := telemetry.New()

	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler())
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
	}

	sess, err := objectstore.Open(*repoPath, opts.BlobCacheSize)
	if err != nil {
		logger.Error("open repository failed", "error", err)
		os.Exit(1)
	}
	defer sess.Close()

	sink, err := buildPresenter(*outputDir)
	if err != nil {
		logger.Error("build presenter failed", "error", err)
		os.Exit(1)
	}

	pipe := playback.New(sess, opts.Playback(), logger).WithMetrics(metrics)

	ctx := context.Background()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutdown signal received")
		pipe.RequestExit()
	}()

	result, err := pipe.Run(ctx, sink)
	if err != nil {
		logger.Error("playback failed", "error", err)
		os.Exit(1)
	}
	logger.Info("playback complete", "frames_presented", result.FramesPresented)
}

func buildPresenter(outputDir string) (present.Presenter, error) {
	if outputDir == "" {
		return &present.NullPresenter{}, nil
	}
	p, err := present.NewPNGDirPresenter(outputDir)
	if err != nil {
		return nil, fmt.Errorf("build PNG presenter: %w", err)
	}
	return p, nil
}
