package entropy_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitflix/gitflix/compress/internal/entropy"
)

func TestRoundTrip(t *testing.T) {
	cases := [][]byte{
		{},
		{0x00},
		[]byte("hello, gitflix"),
		make([]byte, 4096),
	}
	for _, src := range cases {
		packed, err := entropy.Encode(src)
		require.NoError(t, err)
		unpacked, err := entropy.Decode(packed)
		require.NoError(t, err)
		require.Equal(t, src, unpacked)
	}
}

func TestDecodeGarbageFails(t *testing.T) {
	_, err := entropy.Decode([]byte{0xde, 0xad, 0xbe, 0xef})
	require.Error(t, err)
}
