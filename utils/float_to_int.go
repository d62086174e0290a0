// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Int16Scale is the largest positive 16-bit magnitude. Quantising by it
// keeps +1.0 representable.
const Int16Scale = 32767.0

// Float64ToInt16 clips x to [-1, 1], scales it by Int16Scale and truncates
// toward zero. NaN maps to 0.
func Float64ToInt16(x float64) int16 {
	switch {
	case math.IsNaN(x):
		return 0
	case x > 1:
		x = 1
	case x < -1:
		x = -1
	}

	return int16(x * Int16Scale)
}

// Int16ToFloat64 normalises a 16-bit PCM sample by 32768, the decoders'
// convention, so every input maps exactly into [-1, 1).
func Int16ToFloat64(v int16) float64 {
	return float64(v) / 32768.0
}

// QuantizeInt16 converts a whole interleaved buffer with Float64ToInt16.
func QuantizeInt16(samples []float64) []int16 {
	out := make([]int16, len(samples))
	for i, x := range samples {
		out[i] = Float64ToInt16(x)
	}
	return out
}
