package present

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gitflix/gitflix/rawframe"
)

// RawDirFrameSource reads a directory of fixed-size, headerless RGB
// frame files named frame_NNNNNN.rgb, the ingestion format
// original_source/src/frame_format.c's generate_frame_path and
// encoder_lib.c's read_raw_frame use for non-synthetic input. It is the
// non-MP4 half of the ingestion front-end, which is otherwise out of
// scope: no demuxer, just a directory of pre-extracted frames.
type RawDirFrameSource struct {
	dir                     string
	width, height, channels int
	next                    int
}

// NewRawDirFrameSource builds a source over dir, expecting each frame to
// be exactly width*height*channels bytes.
func NewRawDirFrameSource(dir string, width, height, channels int) *RawDirFrameSource {
	return &RawDirFrameSource{dir: dir, width: width, height: height, channels: channels}
}

func (s *RawDirFrameSource) Next() (*rawframe.Frame, bool, error) {
	path := filepath.Join(s.dir, fmt.Sprintf("frame_%06d.rgb", s.next))

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("present: open %s: %w", path, err)
	}
	defer f.Close()

	want := s.width * s.height * s.channels
	frame := rawframe.New(s.width, s.height, s.channels)
	if _, err := io.ReadFull(f, frame.Pixels); err != nil {
		return nil, false, fmt.Errorf("present: read %s: expected %d bytes: %w", path, want, err)
	}

	s.next++
	return frame, true, nil
}
