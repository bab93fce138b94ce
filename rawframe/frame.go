// Package rawframe defines the uncompressed pixel buffer that flows
// through GitFlix: out of the ingestion front-end into the encoder, and
// out of the decompressor into the presenter.
package rawframe

import "fmt"

// Channels is fixed for the lifetime of a GitFlix repository: one byte
// per channel, RGB order, no alpha.
const Channels = 3

// Frame is an uncompressed image: Width*Height*Channels bytes, row-major,
// top-to-bottom, [R,G,B] per pixel.
//
// Ownership: a Frame has a single owner at any time. Ownership moves
// decoder -> queue -> presenter -> released; nothing after the decoder
// mutates Pixels in place, so a Frame handed to the queue can be
// treated as immutable by every downstream reader.
type Frame struct {
	Width    int
	Height   int
	Channels int
	Pixels   []byte
}

// New allocates a zeroed Frame of the given dimensions.
func New(width, height, channels int) *Frame {
	return &Frame{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pixels:   make([]byte, width*height*channels),
	}
}

// Validate checks the len(Pixels) == Width*Height*Channels invariant.
func (f *Frame) Validate() error {
	want := f.Width * f.Height * f.Channels
	if f.Width <= 0 || f.Height <= 0 || f.Channels <= 0 {
		return fmt.Errorf("rawframe: non-positive dimension (w=%d h=%d c=%d)", f.Width, f.Height, f.Channels)
	}
	if len(f.Pixels) != want {
		return fmt.Errorf("rawframe: pixel buffer length %d, want %d (w=%d h=%d c=%d)", len(f.Pixels), want, f.Width, f.Height, f.Channels)
	}
	return nil
}

// SameDimensions reports whether f and other share width, height and
// channel count. Used by the DELTA codec to reject a predecessor whose
// shape does not match the frame being decoded.
func (f *Frame) SameDimensions(other *Frame) bool {
	return f.Width == other.Width && f.Height == other.Height && f.Channels == other.Channels
}

// Clone returns a deep copy of f. The decode worker uses this to hand a
// frame to the queue while keeping its own previousRaw slot exclusively
// owned, per the single-owner contract.
func (f *Frame) Clone() *Frame {
	cp := &Frame{Width: f.Width, Height: f.Height, Channels: f.Channels}
	cp.Pixels = make([]byte, len(f.Pixels))
	copy(cp.Pixels, f.Pixels)
	return cp
}
