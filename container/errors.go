package container

import "fmt"

// CompressionType selects the codec that produced a FrameRecord's payload.
type CompressionType uint8

const (
	// Raw marks a payload produced by the RAW (keyframe) codec.
	Raw CompressionType = 0
	// Delta marks a payload produced by the DELTA (inter-frame) codec.
	Delta CompressionType = 1
)

func (c CompressionType) String() string {
	switch c {
	case Raw:
		return "raw"
	case Delta:
		return "delta"
	default:
		return fmt.Sprintf("reserved(%d)", uint8(c))
	}
}

// MalformedError reports why Deserialize rejected a byte buffer. It always
// names the frame_number it managed to read, or -1 if the buffer was too
// short to contain one.
type MalformedError struct {
	FrameNumber int64
	Reason      string
}

func (e *MalformedError) Error() string {
	if e.FrameNumber < 0 {
		return fmt.Sprintf("container: malformed frame: %s", e.Reason)
	}
	return fmt.Sprintf("container: malformed frame %d: %s", e.FrameNumber, e.Reason)
}

func malformed(frameNumber int64, format string, args ...any) error {
	return &MalformedError{FrameNumber: frameNumber, Reason: fmt.Sprintf(format, args...)}
}
