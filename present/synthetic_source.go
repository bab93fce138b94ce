package present

import (
	"math"

	"github.com/gitflix/gitflix/rawframe"
)

// SyntheticFrameSource generates a deterministic moving rainbow gradient,
// the Go equivalent of original_source/src/create_600_frame_demo.c's
// scene 1 generator. It exists so the encoder pipeline can be exercised
// end to end without a real MP4 ingestion front end.
type SyntheticFrameSource struct {
	width, height, channels int
	total, emitted          int
}

// NewSyntheticFrameSource builds a source that yields count frames of
// the given dimensions before reporting exhaustion.
func NewSyntheticFrameSource(width, height, channels, count int) *SyntheticFrameSource {
	return &SyntheticFrameSource{width: width, height: height, channels: channels, total: count}
}

func (s *SyntheticFrameSource) Next() (*rawframe.Frame, bool, error) {
	if s.emitted >= s.total {
		return nil, false, nil
	}
	frame := rawframe.New(s.width, s.height, s.channels)
	t := float64(s.emitted) / float64(maxInt(s.total-1, 1))

	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			hue := math.Mod(float64(x)/float64(s.width)+t, 1.0) * 6.0
			hi := int(hue)
			frac := hue - float64(hi)

			var r, g, b float64
			switch hi % 6 {
			case 0:
				r, g, b = 255, 255*frac, 0
			case 1:
				r, g, b = 255*(1-frac), 255, 0
			case 2:
				r, g, b = 0, 255, 255*frac
			case 3:
				r, g, b = 0, 255*(1-frac), 255
			case 4:
				r, g, b = 255*frac, 0, 255
			default:
				r, g, b = 255, 0, 255*(1-frac)
			}

			base := (y*s.width + x) * s.channels
			frame.Pixels[base] = byte(r)
			frame.Pixels[base+1] = byte(g)
			frame.Pixels[base+2] = byte(b)
		}
	}

	s.emitted++
	return frame, true, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
