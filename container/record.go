// Package container implements the bit-exact on-disk frame record: a
// magic-prefixed fixed header plus an opaque, CRC-32-checked payload.
// Everything above the wire layout (compression, object-store storage)
// is deliberately unaware of these bytes.
package container

import (
	"hash/crc32"

	"github.com/gitflix/gitflix/container/internal/binlayout"
)

// TargetDimensions is the frame shape this build is configured for. The
// format carries width/height/channels explicitly (see Record), but a
// single GitFlix repository is built for one fixed shape, matching the
// reference configuration of 1920x1080x3.
type TargetDimensions struct {
	Width, Height, Channels int
}

// Record is the on-disk container for one frame: the deserialized form
// of a frame.bin blob.
type Record struct {
	FrameNumber     uint32
	Width           uint32
	Height          uint32
	Channels        uint32
	CompressionType CompressionType
	Payload         []byte
}

// Checksum returns the CRC-32/ISO-HDLC of the record's payload. Go's
// stdlib crc32.IEEE table already is this polynomial (reflected, initial
// 0), so no third-party CRC implementation is pulled in here.
func (r *Record) Checksum() uint32 {
	return crc32.ChecksumIEEE(r.Payload)
}

// Serialize writes r in the on-disk layout: the 32-byte header (magic,
// frame number, dimensions, payload size, checksum, compression type,
// reserved bytes), then the raw payload bytes.
func Serialize(r *Record) []byte {
	h := binlayout.Header{
		Magic:           binlayout.Magic,
		FrameNumber:     r.FrameNumber,
		Width:           r.Width,
		Height:          r.Height,
		Channels:        r.Channels,
		CompressedSize:  uint32(len(r.Payload)),
		Checksum:        r.Checksum(),
		CompressionType: uint8(r.CompressionType),
	}
	out := make([]byte, 0, binlayout.HeaderSize+len(r.Payload))
	out = append(out, binlayout.Encode(h)...)
	out = append(out, r.Payload...)
	return out
}

// Deserialize parses buf into a Record, validating magic, length,
// dimensions against target, reserved bytes, checksum and compression
// type. Any violation yields a *MalformedError.
func Deserialize(buf []byte, target TargetDimensions) (*Record, error) {
	if len(buf) < binlayout.HeaderSize {
		return nil, malformed(-1, "buffer too short for header: %d bytes", len(buf))
	}
	h := binlayout.Decode(buf[:binlayout.HeaderSize])

	if h.Magic != binlayout.Magic {
		return nil, malformed(int64(h.FrameNumber), "bad magic 0x%08x", h.Magic)
	}
	if len(buf) < binlayout.HeaderSize+int(h.CompressedSize) {
		return nil, malformed(int64(h.FrameNumber), "buffer too short for payload: have %d, need %d",
			len(buf), binlayout.HeaderSize+int(h.CompressedSize))
	}
	if int(h.Width) != target.Width || int(h.Height) != target.Height || int(h.Channels) != target.Channels {
		return nil, malformed(int64(h.FrameNumber), "dimension mismatch: got %dx%dx%d, want %dx%dx%d",
			h.Width, h.Height, h.Channels, target.Width, target.Height, target.Channels)
	}
	if h.Reserved != [3]byte{} {
		return nil, malformed(int64(h.FrameNumber), "reserved bytes non-zero: %v", h.Reserved)
	}
	if h.CompressionType != uint8(Raw) && h.CompressionType != uint8(Delta) {
		return nil, malformed(int64(h.FrameNumber), "unknown compression_type %d", h.CompressionType)
	}

	payload := buf[binlayout.HeaderSize : binlayout.HeaderSize+int(h.CompressedSize)]
	got := crc32.ChecksumIEEE(payload)
	if got != h.Checksum {
		return nil, malformed(int64(h.FrameNumber), "checksum mismatch: got 0x%08x, want 0x%08x", got, h.Checksum)
	}

	// Own the payload bytes; buf may be reused/released by the caller.
	owned := make([]byte, len(payload))
	copy(owned, payload)

	return &Record{
		FrameNumber:     h.FrameNumber,
		Width:           h.Width,
		Height:          h.Height,
		Channels:        h.Channels,
		CompressionType: CompressionType(h.CompressionType),
		Payload:         owned,
	}, nil
}
