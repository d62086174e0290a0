// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/audtone/internal/audiotest"
)

func TestResampler_Metadata(t *testing.T) {
	t.Parallel()

	resampler := NewResampler(audiotest.NewSilentSource(44100, 2, 1000), 8000)

	if resampler.SampleRate() != 8000 {
		t.Errorf("Resampler.SampleRate() = %d, want 8000", resampler.SampleRate())
	}
	if resampler.Channels() != 2 {
		t.Errorf("Resampler.Channels() = %d, want 2", resampler.Channels())
	}
}

func TestResampler_SameRateIsIdentity(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSineSource(16000, 1, 1000, 440)
	want := audiotest.SineSamples(16000, 1000, 440, 1)

	got, err := ReadAll(NewResampler(src, 16000))
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	if len(got.Samples) != len(want) {
		t.Fatalf("len = %d, want %d", len(got.Samples), len(want))
	}
	for i := range want {
		if math.Abs(got.Samples[i]-want[i]) > 1e-12 {
			t.Fatalf("sample %d = %v, want %v", i, got.Samples[i], want[i])
		}
	}
}

func TestResampler_Length(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		srcRate  int
		dstRate  int
		channels int
		frames   int
		want     int
	}{
		{"downsample 44.1k to 8k", 44100, 8000, 1, 44100, 8000},
		{"upsample 8k to 16k", 8000, 16000, 1, 8000, 16000},
		{"upsample stereo 8k to 44.1k", 8000, 44100, 2, 8000, 44100},
		{"empty", 8000, 16000, 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewSineSource(tt.srcRate, tt.channels, tt.frames, 220)
			got, err := ReadAll(NewResampler(src, tt.dstRate))
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}

			if got.Channels != tt.channels {
				t.Errorf("channels = %d, want %d", got.Channels, tt.channels)
			}
			if diff := got.Frames() - tt.want; diff < -1 || diff > 1 {
				t.Errorf("frames = %d, want ≈%d", got.Frames(), tt.want)
			}
		})
	}
}

func TestResampler_UpsamplePreservesSine(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSineSource(8000, 1, 8000, 200)
	got, err := ReadAll(NewResampler(src, 16000))
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	// skip the edges where the window is clamped
	for i := 4; i < got.Frames()-4; i++ {
		want := audiotest.Sine(16000, 200, i)
		if math.Abs(got.Samples[i]-want) > 0.01 {
			t.Fatalf("sample %d = %v, want ≈%v", i, got.Samples[i], want)
		}
	}
}

func TestResampler_InvalidDst(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(8000, 2, 10), 16000)

	_, err := r.ReadSamples(make([]float64, 3))
	if !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestResampler_SourceError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	r := NewResampler(&audiotest.ErrorSource{Rate: 8000, Err: boom}, 16000)

	_, err := r.ReadSamples(make([]float64, 4))
	if !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want %v", err, boom)
	}
}

func TestResampler_EOF(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(8000, 1, 0), 16000)

	n, err := r.ReadSamples(make([]float64, 4))
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() = %d, %v, want 0, EOF", n, err)
	}
}
