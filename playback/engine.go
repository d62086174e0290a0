// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/ik5/audtone/audio"
)

// DefaultBlockSize is the number of frames handed to the device per write.
const DefaultBlockSize = 2048

type State int32

const (
	Idle State = iota
	Streaming
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Streaming:
		return "streaming"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Result summarizes one Play call.
type Result struct {
	Blocks    int
	Frames    int
	Cancelled bool
}

type Option func(*Engine)

// WithBlockSize sets the frames per device write. Values below 1 make Play
// fail with ErrInvalidBlockSize.
func WithBlockSize(frames int) Option {
	return func(e *Engine) {
		e.blockSize = frames
	}
}

// Engine streams a Buffer to a device block by block. One Engine plays one
// buffer at a time.
type Engine struct {
	opener    Opener
	blockSize int
	state     atomic.Int32
}

func NewEngine(opener Opener, opts ...Option) *Engine {
	e := &Engine{
		opener:    opener,
		blockSize: DefaultBlockSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) BlockSize() int { return e.blockSize }

func (e *Engine) State() State { return State(e.state.Load()) }

// Play writes buf to a new stream in consecutive blocks of BlockSize frames,
// the last one possibly short. After each write it polls cancel and ctx;
// either one ends playback with Cancelled set and a nil error. The stream is
// stopped and closed on every path.
func (e *Engine) Play(ctx context.Context, sampleRate int, buf *audio.Buffer, cancel CancelFunc) (res Result, err error) {
	if err := buf.Validate(); err != nil {
		return res, fmt.Errorf("buffer: %w", err)
	}
	if sampleRate <= 0 {
		return res, fmt.Errorf("%w: %d", ErrInvalidRate, sampleRate)
	}
	if e.blockSize < 1 {
		return res, fmt.Errorf("%w: %d", ErrInvalidBlockSize, e.blockSize)
	}

	if !e.state.CompareAndSwap(int32(Idle), int32(Streaming)) {
		return res, ErrBusy
	}
	defer e.state.Store(int32(Idle))

	channels := buf.Channels
	stream, err := e.opener.Open(StreamConfig{
		SampleRate: sampleRate,
		Channels:   channels,
		BlockSize:  e.blockSize,
	})
	if err != nil {
		return res, deviceError("open", err)
	}

	defer func() {
		if rerr := release(stream); rerr != nil {
			err = errors.Join(err, rerr)
		}
	}()

	if err := stream.Start(); err != nil {
		return res, deviceError("start", err)
	}

	frames := buf.Frames()
	block := make([]float32, min(e.blockSize, frames)*channels)

	for start := 0; start < frames; start += e.blockSize {
		end := min(start+e.blockSize, frames)
		out := block[:(end-start)*channels]
		for i, v := range buf.Samples[start*channels : end*channels] {
			out[i] = float32(v)
		}

		if err := stream.Write(out); err != nil {
			return res, deviceError("write", err)
		}
		res.Blocks++
		res.Frames += end - start

		if (cancel != nil && cancel()) || ctx.Err() != nil {
			res.Cancelled = true
			break
		}
	}

	return res, nil
}

func release(s Stream) error {
	var errs []error
	if err := s.Stop(); err != nil {
		errs = append(errs, deviceError("stop", err))
	}
	if err := s.Close(); err != nil {
		errs = append(errs, deviceError("close", err))
	}
	return errors.Join(errs...)
}

func deviceError(op string, err error) error {
	if errors.Is(err, ErrDevice) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrDevice, op, err)
}
