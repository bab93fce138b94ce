package present_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitflix/gitflix/present"
)

func TestRawDirFrameSourceReadsInOrder(t *testing.T) {
	dir := t.TempDir()
	const w, h, c = 2, 2, 3
	frameSize := w * h * c

	for i := 0; i < 3; i++ {
		buf := make([]byte, frameSize)
		for j := range buf {
			buf[j] = byte(i)
		}
		path := filepath.Join(dir, fmt.Sprintf("frame_%06d.rgb", i))
		require.NoError(t, os.WriteFile(path, buf, 0o644))
	}

	src := present.NewRawDirFrameSource(dir, w, h, c)
	for i := 0; i < 3; i++ {
		frame, ok, err := src.Next()
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, byte(i), frame.Pixels[0])
	}

	_, ok, err := src.Next()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRawDirFrameSourceRejectsShortFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "frame_000000.rgb"), []byte{1, 2, 3}, 0o644))

	src := present.NewRawDirFrameSource(dir, 4, 4, 3)
	_, _, err := src.Next()
	require.Error(t, err)
}

