// Package config loads GitFlix's runtime configuration from a .env file
// and the process environment, the way the reference deployment's other
// services do (see internal/telemetry for its sibling ambient package).
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/gitflix/gitflix/container"
	"github.com/gitflix/gitflix/playback"
)

// Load reads paths (default ".env") into the process environment. A
// missing file is not an error — callers fall back to system env or the
// defaults baked into GetEnv/GetEnvInt/GetEnvBool.
func Load(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	return godotenv.Load(paths...)
}

// GetEnv returns the value of key, or fallback if unset or empty.
func GetEnv(key, fallback string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return fallback
}

// GetEnvInt returns the integer value of key, or fallback if unset,
// empty, or not a valid integer.
func GetEnvInt(key string, fallback int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return fallback
}

// GetEnvBool returns the boolean value of key, or fallback if unset,
// empty, or not a valid boolean (accepts the same forms as strconv.ParseBool).
func GetEnvBool(key string, fallback bool) bool {
	if s := os.Getenv(key); s != "" {
		if b, err := strconv.ParseBool(s); err == nil {
			return b
		}
	}
	return fallback
}

// Options collects the runtime-tunable knobs for a GitFlix deployment.
// Reference values match the 1920x1080x3 @ 60Hz deployment; tests use a
// much smaller frame size.
type Options struct {
	TargetFPS      int
	FrameWidth     int
	FrameHeight    int
	FrameChannels  int
	BlobCacheSize  int
	FrameQueueSize int
	PresentPaced   bool
}

// FromEnv builds Options from the current environment, applying the
// reference deployment's defaults for anything unset.
func FromEnv() Options {
	return Options{
		TargetFPS:      GetEnvInt("TARGET_FPS", 60),
		FrameWidth:     GetEnvInt("FRAME_WIDTH", 1920),
		FrameHeight:    GetEnvInt("FRAME_HEIGHT", 1080),
		FrameChannels:  GetEnvInt("FRAME_CHANNELS", 3),
		BlobCacheSize:  GetEnvInt("BLOB_CACHE_SIZE", 32),
		FrameQueueSize: GetEnvInt("FRAME_QUEUE_SIZE", 16),
		PresentPaced:   GetEnvBool("PRESENT_PACED", true),
	}
}

// Target derives the container package's TargetDimensions from o.
func (o Options) Target() container.TargetDimensions {
	return container.TargetDimensions{Width: o.FrameWidth, Height: o.FrameHeight, Channels: o.FrameChannels}
}

// Playback derives a playback.Config from o.
func (o Options) Playback() playback.Config {
	return playback.Config{
		Target:       o.Target(),
		TargetFPS:    o.TargetFPS,
		QueueSize:    o.FrameQueueSize,
		PresentPaced: o.PresentPaced,
	}
}
