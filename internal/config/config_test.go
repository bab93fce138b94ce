package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitflix/gitflix/internal/config"
)

func TestGetEnvFallback(t *testing.T) {
	require.Equal(t, "fallback", config.GetEnv("GITFLIX_TEST_UNSET_KEY", "fallback"))

	t.Setenv("GITFLIX_TEST_KEY", "value")
	require.Equal(t, "value", config.GetEnv("GITFLIX_TEST_KEY", "fallback"))
}

func TestGetEnvIntFallbackOnInvalid(t *testing.T) {
	t.Setenv("GITFLIX_TEST_INT", "not-a-number")
	require.Equal(t, 42, config.GetEnvInt("GITFLIX_TEST_INT", 42))

	t.Setenv("GITFLIX_TEST_INT", "7")
	require.Equal(t, 7, config.GetEnvInt("GITFLIX_TEST_INT", 42))
}

func TestGetEnvBoolFallbackOnInvalid(t *testing.T) {
	t.Setenv("GITFLIX_TEST_BOOL", "nope")
	require.True(t, config.GetEnvBool("GITFLIX_TEST_BOOL", true))

	t.Setenv("GITFLIX_TEST_BOOL", "false")
	require.False(t, config.GetEnvBool("GITFLIX_TEST_BOOL", true))
}

func TestFromEnvDefaults(t *testing.T) {
	// None of these keys are set in the test environment, so FromEnv
	// falls back to the reference deployment's defaults throughout.
	opts := config.FromEnv()
	require.Equal(t, 60, opts.TargetFPS)
	require.Equal(t, 1920, opts.FrameWidth)
	require.Equal(t, 1080, opts.FrameHeight)
	require.Equal(t, 3, opts.FrameChannels)
	require.Equal(t, 32, opts.BlobCacheSize)
	require.Equal(t, 16, opts.FrameQueueSize)
	require.True(t, opts.PresentPaced)

	target := opts.Target()
	require.Equal(t, 1920, target.Width)

	pbCfg := opts.Playback()
	require.Equal(t, 60, pbCfg.TargetFPS)
}
