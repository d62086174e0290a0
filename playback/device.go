// SPDX-License-Identifier: EPL-2.0

package playback

// StreamConfig describes the output stream an Engine asks for.
type StreamConfig struct {
	SampleRate int
	Channels   int
	// BlockSize is the number of frames per Write.
	BlockSize int
}

// Stream is an open output device.
//
// Write receives interleaved float32 frames and blocks until the device has
// accepted them; it is the only pacing the Engine relies on. Stop lets queued
// audio finish, Close releases the device. Both are called once, on every
// exit path, even when Start failed.
type Stream interface {
	Start() error
	Write(block []float32) error
	Stop() error
	Close() error
}

// Opener creates streams. NewOtoOpener returns the real device backend.
type Opener interface {
	Open(cfg StreamConfig) (Stream, error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(cfg StreamConfig) (Stream, error)

func (f OpenerFunc) Open(cfg StreamConfig) (Stream, error) { return f(cfg) }

// CancelFunc is polled after every block. Returning true ends playback early.
type CancelFunc func() bool
