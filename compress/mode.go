package compress

import (
	"errors"

	"github.com/gitflix/gitflix/container"
	"github.com/gitflix/gitflix/rawframe"
)

// Encoded is the result of choosing and running a codec for one frame.
type Encoded struct {
	Type    container.CompressionType
	Payload []byte
}

// EncodeFrame implements the mode-selection policy:
// frame 0 (prev == nil) is always RAW; later frames try DELTA against
// prev and fall back to RAW when the byte-wise difference would overflow
// the signed delta range.
func EncodeFrame(prev, cur *rawframe.Frame) (Encoded, error) {
	if prev == nil {
		payload, err := EncodeRaw(cur)
		if err != nil {
			return Encoded{}, err
		}
		return Encoded{Type: container.Raw, Payload: payload}, nil
	}

	deltaPayload, err := EncodeDelta(prev, cur)
	if err == nil {
		return Encoded{Type: container.Delta, Payload: deltaPayload}, nil
	}
	if !errors.Is(err, ErrDeltaOverflow) {
		return Encoded{}, err
	}

	payload, err := EncodeRaw(cur)
	if err != nil {
		return Encoded{}, err
	}
	return Encoded{Type: container.Raw, Payload: payload}, nil
}
