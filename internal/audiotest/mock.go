// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds test doubles shared by the audtone packages.
// It does not import them, so any package's tests can use it.
package audiotest

import (
	"io"
	"math"
)

// MockSource generates frames from a waveform function.
// It satisfies audio.Source.
type MockSource struct {
	sampleRate  int
	channels    int
	totalFrames int
	generated   int
	waveform    func(frame int, channel int) float64

	// Closed reports whether Close was called.
	Closed bool
}

// NewMockSource creates a mock source of totalFrames frames.
func NewMockSource(sampleRate, channels, totalFrames int, waveform func(frame int, channel int) float64) *MockSource {
	return &MockSource{
		sampleRate:  sampleRate,
		channels:    channels,
		totalFrames: totalFrames,
		waveform:    waveform,
	}
}

// NewSilentSource creates a mock source that generates silence.
func NewSilentSource(sampleRate, channels, totalFrames int) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(int, int) float64 {
		return 0.0
	})
}

// NewSineSource creates a mock source that generates a full-scale sine.
func NewSineSource(sampleRate, channels, totalFrames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(frame int, _ int) float64 {
		return Sine(sampleRate, frequency, frame)
	})
}

// NewConstantSource creates a mock source with a constant value.
func NewConstantSource(sampleRate, channels, totalFrames int, value float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(int, int) float64 {
		return value
	})
}

// Sine returns sample frame of a unit sine at frequency Hz.
func Sine(sampleRate int, frequency float64, frame int) float64 {
	t := float64(frame) / float64(sampleRate)
	return math.Sin(2 * math.Pi * frequency * t)
}

// SineSamples returns frames samples of a sine with the given amplitude.
func SineSamples(sampleRate, frames int, frequency, amplitude float64) []float64 {
	out := make([]float64, frames)
	for i := range out {
		out[i] = amplitude * Sine(sampleRate, frequency, i)
	}
	return out
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }

func (m *MockSource) Close() error {
	m.Closed = true
	return nil
}

// Reset rewinds the source.
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float64) (int, error) {
	if m.generated >= m.totalFrames {
		return 0, io.EOF
	}

	frames := min(len(dst)/m.channels, m.totalFrames-m.generated)

	for f := range frames {
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.waveform(m.generated+f, ch)
		}
	}

	m.generated += frames
	n := frames * m.channels

	if m.generated >= m.totalFrames {
		return n, io.EOF
	}

	return n, nil
}

// ErrorSource fails every read with Err.
type ErrorSource struct {
	Rate int
	Err  error
}

func (e ErrorSource) SampleRate() int                    { return e.Rate }
func (e ErrorSource) Channels() int                      { return 1 }
func (e ErrorSource) BufSize() int                       { return 16 }
func (e ErrorSource) Close() error                       { return nil }
func (e ErrorSource) ReadSamples([]float64) (int, error) { return 0, e.Err }
