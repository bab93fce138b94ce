package rawframe_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitflix/gitflix/rawframe"
)

func TestNewAllocatesZeroedBuffer(t *testing.T) {
	f := rawframe.New(4, 3, 3)
	require.Len(t, f.Pixels, 4*3*3)
	for _, b := range f.Pixels {
		require.Zero(t, b)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		frame   *rawframe.Frame
		wantErr bool
	}{
		{"well-formed frame", rawframe.New(4, 4, 3), false},
		{"zero width", &rawframe.Frame{Width: 0, Height: 4, Channels: 3, Pixels: make([]byte, 0)}, true},
		{"negative width", &rawframe.Frame{Width: -1, Height: 4, Channels: 3, Pixels: make([]byte, 12)}, true},
		{"zero height", &rawframe.Frame{Width: 4, Height: 0, Channels: 3, Pixels: make([]byte, 0)}, true},
		{"zero channels", &rawframe.Frame{Width: 4, Height: 4, Channels: 0, Pixels: make([]byte, 0)}, true},
		{"pixel buffer too short", &rawframe.Frame{Width: 4, Height: 4, Channels: 3, Pixels: make([]byte, 47)}, true},
		{"pixel buffer too long", &rawframe.Frame{Width: 4, Height: 4, Channels: 3, Pixels: make([]byte, 49)}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.frame.Validate()
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestSameDimensions(t *testing.T) {
	a := rawframe.New(8, 8, 3)
	b := rawframe.New(8, 8, 3)
	c := rawframe.New(4, 8, 3)
	require.True(t, a.SameDimensions(b))
	require.False(t, a.SameDimensions(c))
}

func TestCloneIsIndependent(t *testing.T) {
	f := rawframe.New(2, 2, 3)
	f.Pixels[0] = 0x42

	cp := f.Clone()
	require.Equal(t, f.Pixels, cp.Pixels)

	cp.Pixels[0] = 0x99
	require.Equal(t, byte(0x42), f.Pixels[0])
}
