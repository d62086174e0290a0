// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"math"

	"github.com/ik5/audtone/audio"
	"gonum.org/v1/gonum/floats"
)

const (
	// DefaultVolume is unity gain on the volume scale.
	DefaultVolume = 9.0

	// MuteThreshold is the lowest volume that produces any output.
	MuteThreshold = 0.1

	// MaxVolume caps the effective volume regardless of input.
	MaxVolume = 25.0
)

// VolumeScale returns the linear factor for a volume setting:
// 10^(v/10) with v capped at MaxVolume, or 0 below MuteThreshold.
func VolumeScale(volume float64) float64 {
	// NaN fails the comparison and mutes as well
	if !(volume >= MuteThreshold) {
		return 0
	}
	return math.Pow(10, math.Min(volume, MaxVolume)/10)
}

// ApplyVolume returns a new buffer holding buf scaled by VolumeScale(volume).
// Below MuteThreshold the result is exact silence. Samples are not clipped
// here, so they may leave [-1, 1].
func ApplyVolume(buf *audio.Buffer, volume float64) *audio.Buffer {
	out := buf.ZerosLike()

	scale := VolumeScale(volume)
	if scale == 0 {
		return out
	}

	floats.ScaleTo(out.Samples, scale, buf.Samples)
	return out
}
