// SPDX-License-Identifier: EPL-2.0

package audio

// Buffer holds a whole signal as frame-interleaved float64 samples,
// nominally in [-1, 1]. A mono buffer is a flat sequence; a stereo buffer
// stores left/right pairs one frame after another.
//
// Processing stages never resize a Buffer or change its channel count.
type Buffer struct {
	Channels int
	Samples  []float64
}

// NewBuffer allocates a zeroed buffer of frames frames.
func NewBuffer(channels, frames int) *Buffer {
	return &Buffer{
		Channels: channels,
		Samples:  make([]float64, channels*frames),
	}
}

// Frames returns the number of frames, i.e. samples per channel.
func (b *Buffer) Frames() int {
	if b.Channels <= 0 {
		return 0
	}
	return len(b.Samples) / b.Channels
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{
		Channels: b.Channels,
		Samples:  make([]float64, len(b.Samples)),
	}
	copy(out.Samples, b.Samples)
	return out
}

// ZerosLike returns a silent buffer with the same shape as b.
func (b *Buffer) ZerosLike() *Buffer {
	return &Buffer{
		Channels: b.Channels,
		Samples:  make([]float64, len(b.Samples)),
	}
}

// Channel returns a de-interleaved copy of channel c.
func (b *Buffer) Channel(c int) []float64 {
	frames := b.Frames()
	out := make([]float64, frames)

	if b.Channels == 1 {
		copy(out, b.Samples)
		return out
	}

	for f := range frames {
		out[f] = b.Samples[f*b.Channels+c]
	}
	return out
}

// SetChannel interleaves data back into channel c.
// data must hold Frames() samples.
func (b *Buffer) SetChannel(c int, data []float64) {
	if b.Channels == 1 {
		copy(b.Samples, data)
		return
	}

	for f, v := range data[:b.Frames()] {
		b.Samples[f*b.Channels+c] = v
	}
}

// Validate reports ErrInvalidChannels unless the buffer is mono or stereo
// with a whole number of frames.
func (b *Buffer) Validate() error {
	if b.Channels != 1 && b.Channels != 2 {
		return ErrInvalidChannels
	}
	if len(b.Samples)%b.Channels != 0 {
		return ErrInvalidDstSize
	}
	return nil
}
