// Package present holds the external collaborators this project treats
// as out of scope: the presenter sink and a couple of FrameSource
// implementations to feed the encoder without a real MP4 front end.
//
// Nothing in playback or encoder depends on a concrete type from this
// package — both depend on the narrow interfaces (Presenter,
// encoder.FrameSource) so a GPU/window-system presenter or an MP4
// demuxer can be dropped in without touching the core pipeline.
package present

import "github.com/gitflix/gitflix/rawframe"

// Presenter is the external sink for decoded frames: init, present one
// frame, poll for a close request, and clean up.
type Presenter interface {
	Init(width, height int) error
	Present(frame *rawframe.Frame) error
	ShouldClose() bool
	Cleanup()
}
