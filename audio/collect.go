// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// maxEmptyReads bounds how many (0, nil) reads ReadAll tolerates in a row.
const maxEmptyReads = 100

// ReadAll drains src into a Buffer. The source is not closed.
func ReadAll(src Source) (*Buffer, error) {
	channels := src.Channels()
	if channels < 1 {
		return nil, ErrInvalidChannels
	}

	size := src.BufSize()
	if size < channels {
		size = 4096
	}
	// keep reads frame aligned
	size -= size % channels

	out := &Buffer{Channels: channels}
	buf := make([]float64, size)
	empty := 0

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			out.Samples = append(out.Samples, buf[:n]...)
			empty = 0
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}

		if n == 0 {
			empty++
			if empty >= maxEmptyReads {
				return nil, io.ErrNoProgress
			}
		}
	}

	// drop a dangling partial frame from a truncated stream
	out.Samples = out.Samples[:len(out.Samples)-len(out.Samples)%channels]

	return out, nil
}

// BufferSource streams a Buffer through the Source interface so it can
// feed a Resampler or MonoMixer.
type BufferSource struct {
	buf        *Buffer
	sampleRate int
	pos        int
}

func NewBufferSource(buf *Buffer, sampleRate int) *BufferSource {
	return &BufferSource{buf: buf, sampleRate: sampleRate}
}

func (s *BufferSource) SampleRate() int { return s.sampleRate }
func (s *BufferSource) Channels() int   { return s.buf.Channels }
func (s *BufferSource) BufSize() int    { return 4096 }
func (s *BufferSource) Close() error    { return nil }

func (s *BufferSource) ReadSamples(dst []float64) (int, error) {
	if s.pos >= len(s.buf.Samples) {
		return 0, io.EOF
	}

	n := copy(dst, s.buf.Samples[s.pos:])
	s.pos += n

	if s.pos >= len(s.buf.Samples) {
		return n, io.EOF
	}
	return n, nil
}
