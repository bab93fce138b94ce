// Package entropy wraps a general-purpose lossless byte-stream
// compressor behind the narrow interface the compression engine needs:
// deterministic, round-tripping Encode/Decode over arbitrary bytes.
//
// The reference implementation uses LZFSE; this build uses zstd
// (github.com/klauspost/compress/zstd), already present in the
// dependency graph of several sibling repositories in this codebase's
// lineage. Any coder meeting the round-trip law is admissible per the
// compression engine's contract, so swapping the coder never touches
// callers outside this package.
package entropy

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// coder lazily builds shared, reusable zstd encoder/decoder instances.
// zstd.Encoder/Decoder are safe for concurrent use once constructed, so
// one pair serves the whole process.
var (
	initOnce sync.Once
	enc      *zstd.Encoder
	dec      *zstd.Decoder
	initErr  error
)

func instances() (*zstd.Encoder, *zstd.Decoder, error) {
	initOnce.Do(func() {
		enc, initErr = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if initErr != nil {
			return
		}
		dec, initErr = zstd.NewReader(nil)
	})
	return enc, dec, initErr
}

// Encode compresses src, returning a new byte slice.
func Encode(src []byte) ([]byte, error) {
	e, _, err := instances()
	if err != nil {
		return nil, fmt.Errorf("entropy: init encoder: %w", err)
	}
	return e.EncodeAll(src, make([]byte, 0, len(src))), nil
}

// Decode decompresses src, returning a new byte slice. It fails if src
// is not a valid encoded stream produced by Encode.
func Decode(src []byte) ([]byte, error) {
	_, d, err := instances()
	if err != nil {
		return nil, fmt.Errorf("entropy: init decoder: %w", err)
	}
	out, err := d.DecodeAll(src, nil)
	if err != nil {
		return nil, fmt.Errorf("entropy: decode: %w", err)
	}
	if out == nil {
		out = []byte{}
	}
	return out, nil
}
