// Package binlayout implements the fixed byte layout of one GitFlix
// frame record header, independent of the container package's error
// types and CRC policy. Kept separate so container.Record stays a plain
// data holder and the offsets in the wire format live in exactly one
// place.
package binlayout

import "encoding/binary"

// Magic is the ASCII codes of "GVCF" as a big-endian number; written
// little-endian, as every header field is, its on-disk bytes are "FCVG".
const Magic uint32 = 0x47564346

// HeaderSize is the fixed portion of a frame record, before the payload.
const HeaderSize = 32

// Header mirrors the on-disk layout in offset order.
type Header struct {
	Magic           uint32
	FrameNumber     uint32
	Width           uint32
	Height          uint32
	Channels        uint32
	CompressedSize  uint32
	Checksum        uint32
	CompressionType uint8
	Reserved        [3]byte
}

// Encode writes h into a HeaderSize-byte buffer.
func Encode(h Header) []byte {
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], h.Magic)
	binary.LittleEndian.PutUint32(buf[4:8], h.FrameNumber)
	binary.LittleEndian.PutUint32(buf[8:12], h.Width)
	binary.LittleEndian.PutUint32(buf[12:16], h.Height)
	binary.LittleEndian.PutUint32(buf[16:20], h.Channels)
	binary.LittleEndian.PutUint32(buf[20:24], h.CompressedSize)
	binary.LittleEndian.PutUint32(buf[24:28], h.Checksum)
	buf[28] = h.CompressionType
	copy(buf[29:32], h.Reserved[:])
	return buf
}

// Decode reads a HeaderSize-byte buffer into a Header. The caller is
// responsible for length-checking buf before calling Decode.
func Decode(buf []byte) Header {
	var h Header
	h.Magic = binary.LittleEndian.Uint32(buf[0:4])
	h.FrameNumber = binary.LittleEndian.Uint32(buf[4:8])
	h.Width = binary.LittleEndian.Uint32(buf[8:12])
	h.Height = binary.LittleEndian.Uint32(buf[12:16])
	h.Channels = binary.LittleEndian.Uint32(buf[16:20])
	h.CompressedSize = binary.LittleEndian.Uint32(buf[20:24])
	h.Checksum = binary.LittleEndian.Uint32(buf[24:28])
	h.CompressionType = buf[28]
	copy(h.Reserved[:], buf[29:32])
	return h
}
