package compress

import (
	"fmt"

	"github.com/gitflix/gitflix/compress/internal/entropy"
	"github.com/gitflix/gitflix/rawframe"
)

// EncodeRaw entropy-codes a frame's pixel byte stream.
func EncodeRaw(raw *rawframe.Frame) ([]byte, error) {
	packed, err := entropy.Encode(raw.Pixels)
	if err != nil {
		return nil, fmt.Errorf("compress: encode raw: %w", err)
	}
	return packed, nil
}

// DecodeRaw entropy-decodes payload into a Frame of the given
// dimensions. It fails with a *DecompressError if the decoded length
// does not equal width*height*channels.
func DecodeRaw(payload []byte, width, height, channels int) (*rawframe.Frame, error) {
	pixels, err := entropy.Decode(payload)
	if err != nil {
		return nil, decompressErr("entropy decode", err)
	}
	want := width * height * channels
	if len(pixels) != want {
		return nil, decompressErr(fmt.Sprintf("decoded length %d, want %d", len(pixels), want), nil)
	}
	return &rawframe.Frame{Width: width, Height: height, Channels: channels, Pixels: pixels}, nil
}
