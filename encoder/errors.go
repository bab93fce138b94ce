// Package encoder implements the encoder pipeline: it consumes an
// ordered stream of raw frames, chooses a compression mode per frame,
// serializes the resulting record, and appends it as a commit on the
// object store's linear chain.
package encoder

import "fmt"

// SessionError is fatal to the whole encoding session, matching the
// disposition for AllocationError, PresenterError-equivalent sink
// failures, and any error surfaced while encoding (encoding aborts the
// session on any component failure).
type SessionError struct {
	FrameIndex uint32
	Reason     string
	Err        error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("encoder: frame %d: %s: %v", e.FrameIndex, e.Reason, e.Err)
}

func (e *SessionError) Unwrap() error { return e.Err }
