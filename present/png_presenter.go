package present

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/gitflix/gitflix/rawframe"
)

// PNGDirPresenter is a concrete Presenter that writes each decoded frame
// to outputDir as a PNG, standing in for the GPU/window-system sink
// this project treats as an external collaborator. Grounded on the
// reference material's FrameSaver, adapted from an RGB-frame-to-disk
// helper into a full Presenter.
type PNGDirPresenter struct {
	outputDir string
	closeReq  atomic.Bool
	written   atomic.Uint64
}

// NewPNGDirPresenter creates a presenter that writes into outputDir,
// creating it if necessary.
func NewPNGDirPresenter(outputDir string) (*PNGDirPresenter, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("present: create output dir: %w", err)
	}
	return &PNGDirPresenter{outputDir: outputDir}, nil
}

func (p *PNGDirPresenter) Init(width, height int) error { return nil }

// Present writes frame as frame_NNNNNN.png. The sequence number is
// derived from how many frames this presenter has already written, so
// it matches presentation order rather than any field on Frame itself.
func (p *PNGDirPresenter) Present(frame *rawframe.Frame) error {
	seq := p.written.Add(1) - 1

	img := image.NewRGBA(image.Rect(0, 0, frame.Width, frame.Height))
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			base := (y*frame.Width + x) * frame.Channels
			img.SetRGBA(x, y, color.RGBA{
				R: frame.Pixels[base],
				G: frame.Pixels[base+1],
				B: frame.Pixels[base+2],
				A: 0xff,
			})
		}
	}

	path := filepath.Join(p.outputDir, fmt.Sprintf("frame_%06d.png", seq))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("present: create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("present: encode %s: %w", path, err)
	}
	return nil
}

func (p *PNGDirPresenter) ShouldClose() bool { return p.closeReq.Load() }

// RequestClose lets a caller (e.g. a signal handler) ask the playback
// pipeline to stop after the frame in flight.
func (p *PNGDirPresenter) RequestClose() { p.closeReq.Store(true) }

func (p *PNGDirPresenter) Cleanup() {}

// FramesWritten reports how many frames this presenter has written so
// far. Safe to call concurrently with Present.
func (p *PNGDirPresenter) FramesWritten() uint64 { return p.written.Load() }
