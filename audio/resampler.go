// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audtone/utils"
)

// Resampler streams from src at a new sample rate using Catmull-Rom cubic
// interpolation. Channel count is preserved. When downsampling, a one-pole
// low-pass smooths each input frame first.
type Resampler struct {
	src      Source
	dstRate  int
	ratio    float64 // source frames per output frame
	channels int

	// window holds source frames base, base+1, ...
	window [][]float64
	base   int
	read   int // source frames read so far
	eof    bool

	out int // output frames produced so far

	frame  []float64
	smooth []float64
	alpha  float64 // 0 disables smoothing
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		ratio:    float64(src.SampleRate()) / float64(dstRate),
		channels: channels,
		frame:    make([]float64, channels),
		smooth:   make([]float64, channels),
	}
	if r.ratio > 1.0 {
		r.alpha = 0.5
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// fill reads source frames until frame index k is available or the source
// ends.
func (r *Resampler) fill(k int) error {
	for !r.eof && r.read <= k {
		got, stalls := 0, 0
		for got < r.channels {
			n, err := r.src.ReadSamples(r.frame[got:])
			got += n

			if errors.Is(err, io.EOF) {
				r.eof = true
				break
			}
			if err != nil {
				return fmt.Errorf("%w", err)
			}
			if n == 0 {
				stalls++
				if stalls >= maxEmptyReads {
					return io.ErrNoProgress
				}
			}
		}
		if got < r.channels {
			break
		}

		if r.alpha > 0 {
			if r.read == 0 {
				copy(r.smooth, r.frame)
			}
			for c := range r.channels {
				r.frame[c] = r.alpha*r.frame[c] + (1-r.alpha)*r.smooth[c]
				r.smooth[c] = r.frame[c]
			}
		}

		f := make([]float64, r.channels)
		copy(f, r.frame)
		r.window = append(r.window, f)
		r.read++
	}

	return nil
}

// at returns source frame k, clamped to the frames that exist.
func (r *Resampler) at(k int) []float64 {
	k = max(k, r.base)
	k = min(k, r.read-1)
	return r.window[k-r.base]
}

// ReadSamples produces interleaved samples at the destination rate.
// dst length must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float64) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	written := 0
	for written < len(dst)/r.channels {
		t := float64(r.out) * r.ratio
		i := int(t)
		x := t - float64(i)

		if err := r.fill(i + 2); err != nil {
			return written * r.channels, err
		}
		if i >= r.read {
			return written * r.channels, io.EOF
		}

		// frames before i-1 are never needed again
		if drop := i - 1 - r.base; drop > 0 {
			r.window = r.window[drop:]
			r.base += drop
		}

		y0, y1, y2, y3 := r.at(i-1), r.at(i), r.at(i+1), r.at(i+2)
		for c := range r.channels {
			dst[written*r.channels+c] = utils.CubicInterpolate(y0[c], y1[c], y2[c], y3[c], x)
		}

		written++
		r.out++
	}

	return written * r.channels, nil
}
