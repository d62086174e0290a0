// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"fmt"
	"math"

	"github.com/ik5/audtone/audio"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

const (
	// DefaultTone is unity on each tone band.
	DefaultTone = 5.0

	BassCutoff   = 300.0  // Hz, top of the bass band
	MidCutoff    = 2000.0 // Hz, top of the mid band
	TrebleCutoff = 4000.0 // Hz, bottom of the treble band

	// FilterOrder is the Butterworth order of every band filter.
	FilterOrder = 2

	// MinSampleRate is the lowest rate whose Nyquist frequency lies above
	// TrebleCutoff.
	MinSampleRate = 8001

	// maxBandGain is what the loudest band is normalised to.
	maxBandGain = 10.0
)

// Band is one of the three tone filters.
type Band struct {
	Name    string
	Kind    FilterKind
	Cutoffs []float64 // Hz
	Coefficients
}

// Bands designs the bass, mid and treble filters for sampleRate.
func Bands(sampleRate int) ([]Band, error) {
	if sampleRate < MinSampleRate {
		return nil, fmt.Errorf("%w: %d Hz, need at least %d Hz", ErrSampleRateTooLow, sampleRate, MinSampleRate)
	}

	bands := []Band{
		{Name: "bass", Kind: Lowpass, Cutoffs: []float64{BassCutoff}},
		{Name: "mid", Kind: Bandpass, Cutoffs: []float64{BassCutoff, MidCutoff}},
		{Name: "treble", Kind: Highpass, Cutoffs: []float64{TrebleCutoff}},
	}

	nyquist := float64(sampleRate) / 2
	for i := range bands {
		norm := make([]float64, len(bands[i].Cutoffs))
		for j, hz := range bands[i].Cutoffs {
			norm[j] = hz / nyquist
		}

		c, err := DesignFilter(bands[i].Kind, FilterOrder, norm...)
		if err != nil {
			return nil, fmt.Errorf("%s band: %w", bands[i].Name, err)
		}
		bands[i].Coefficients = c
	}

	return bands, nil
}

// NormalizeGains rescales the three gains so the largest becomes 10 while
// their ratios are kept. All-zero gains are returned unchanged.
func NormalizeGains(bass, mid, treble float64) [3]float64 {
	gains := [3]float64{bass, mid, treble}

	peak := floats.Max(gains[:])
	if peak == 0 {
		return gains
	}

	// divide first: maxBandGain/peak overflows for subnormal peaks
	for i, g := range gains {
		gains[i] = g / peak * maxBandGain
	}
	return gains
}

// ValidateTone reports the configuration errors ApplyTone would return,
// without touching any samples.
func ValidateTone(sampleRate int, bass, mid, treble float64) error {
	if sampleRate < MinSampleRate {
		return fmt.Errorf("%w: %d Hz, need at least %d Hz", ErrSampleRateTooLow, sampleRate, MinSampleRate)
	}

	for _, g := range []struct {
		name string
		v    float64
	}{{"bass", bass}, {"mid", mid}, {"treble", treble}} {
		if g.v < 0 || math.IsNaN(g.v) || math.IsInf(g.v, 0) {
			return fmt.Errorf("%w: %s = %v", ErrInvalidGain, g.name, g.v)
		}
	}

	return nil
}

// ApplyTone splits buf into bass, mid and treble with three Butterworth
// filters, weights each band by its normalised gain, sums the bands and
// clips the result to [-1, 1]. Every band filters the original input; they
// are not chained. Channels are filtered independently.
//
// When all three gains are zero the result is silence.
func ApplyTone(buf *audio.Buffer, sampleRate int, bass, mid, treble float64) (*audio.Buffer, error) {
	if err := ValidateTone(sampleRate, bass, mid, treble); err != nil {
		return nil, err
	}
	if err := buf.Validate(); err != nil {
		return nil, err
	}

	gains := NormalizeGains(bass, mid, treble)
	if gains == [3]float64{} {
		return buf.ZerosLike(), nil
	}

	bands, err := Bands(sampleRate)
	if err != nil {
		return nil, err
	}

	channels := make([][]float64, buf.Channels)
	for c := range channels {
		channels[c] = buf.Channel(c)
	}

	outputs := make([]*audio.Buffer, len(bands))

	var g errgroup.Group
	for i, band := range bands {
		g.Go(func() error {
			coeffs := band.Scale(gains[i])
			out := buf.ZerosLike()

			for c, x := range channels {
				y, err := Filter(coeffs, x)
				if err != nil {
					return fmt.Errorf("%s band: %w", band.Name, err)
				}
				out.SetChannel(c, y)
			}

			outputs[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// sum in band order so the result does not depend on scheduling
	result := outputs[0]
	for _, o := range outputs[1:] {
		floats.Add(result.Samples, o.Samples)
	}

	Clip(result.Samples, -1, 1)

	return result, nil
}

// Clip hard-limits samples to [lo, hi] in place. NaN becomes 0, or lo when
// 0 is outside the range.
func Clip(samples []float64, lo, hi float64) {
	nan := max(lo, min(0, hi))
	for i, v := range samples {
		switch {
		case math.IsNaN(v):
			samples[i] = nan
		case v > hi:
			samples[i] = hi
		case v < lo:
			samples[i] = lo
		}
	}
}
