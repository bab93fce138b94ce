package compress

import (
	"errors"
	"fmt"

	"github.com/gitflix/gitflix/compress/internal/deltacode"
	"github.com/gitflix/gitflix/compress/internal/entropy"
	"github.com/gitflix/gitflix/rawframe"
)

// ErrDeltaOverflow is returned by EncodeDelta when some byte's inter-
// frame difference does not fit in a signed 8-bit delta. The caller's
// mode-selection policy (see EncodeFrame) falls back to RAW for the
// whole frame when it sees this error.
var ErrDeltaOverflow = deltacode.ErrOutOfRange

// EncodeDelta run-codes cur against prev and entropy-codes the result.
// prev and cur must have identical dimensions. Returns ErrDeltaOverflow
// if any byte's difference would require lossy clamping on decode.
func EncodeDelta(prev, cur *rawframe.Frame) ([]byte, error) {
	if !prev.SameDimensions(cur) {
		return nil, &DimensionMismatchError{
			Prev: struct{ Width, Height, Channels int }{prev.Width, prev.Height, prev.Channels},
			Cur:  struct{ Width, Height, Channels int }{cur.Width, cur.Height, cur.Channels},
		}
	}
	commands, err := deltacode.Encode(prev.Pixels, cur.Pixels)
	if err != nil {
		if errors.Is(err, deltacode.ErrOutOfRange) {
			return nil, ErrDeltaOverflow
		}
		return nil, fmt.Errorf("compress: encode delta: %w", err)
	}
	packed, err := entropy.Encode(commands)
	if err != nil {
		return nil, fmt.Errorf("compress: encode delta: %w", err)
	}
	return packed, nil
}

// DecodeDelta entropy-decodes payload and replays it against prev to
// reconstruct the current frame.
//
// If prev is nil, DecodeDelta's behavior depends on strict:
//   - strict=true: returns a *MissingReferenceError.
//   - strict=false: the payload is instead decoded as RAW, matching the
//     reference player's defensive fallback for a well-formed-but-
//     reference-less DELTA frame.
//
// width/height/channels are the dimensions of the frame being decoded
// and, in the strict/non-nil case, must match prev's.
func DecodeDelta(payload []byte, prev *rawframe.Frame, width, height, channels int, strict bool) (*rawframe.Frame, error) {
	if prev == nil {
		if strict {
			return nil, &MissingReferenceError{}
		}
		return DecodeRaw(payload, width, height, channels)
	}
	if prev.Width != width || prev.Height != height || prev.Channels != channels {
		return nil, &DimensionMismatchError{
			Prev: struct{ Width, Height, Channels int }{prev.Width, prev.Height, prev.Channels},
			Cur:  struct{ Width, Height, Channels int }{width, height, channels},
		}
	}

	commands, err := entropy.Decode(payload)
	if err != nil {
		return nil, decompressErr("entropy decode", err)
	}
	pixels, err := deltacode.Decode(prev.Pixels, commands)
	if err != nil {
		return nil, decompressErr("command stream replay", err)
	}
	return &rawframe.Frame{Width: width, Height: height, Channels: channels, Pixels: pixels}, nil
}
