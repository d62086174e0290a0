// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestFloat64ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float64
		want  int16
	}{
		{name: "zero", input: 0.0, want: 0},
		{name: "max positive", input: 1.0, want: math.MaxInt16},
		{name: "max negative", input: -1.0, want: -math.MaxInt16},
		{name: "half positive", input: 0.5, want: 16383},   // 16383.5 truncated
		{name: "half negative", input: -0.5, want: -16383}, // truncation is toward zero
		{name: "quarter positive", input: 0.25, want: 8191},
		{name: "small positive", input: 0.001, want: 32},
		{name: "small negative", input: -0.001, want: -32},
		{name: "clamp over max", input: 1.5, want: math.MaxInt16},
		{name: "clamp over min", input: -1.5, want: -math.MaxInt16},
		{name: "clamp way over max", input: 100.0, want: math.MaxInt16},
		{name: "clamp way under min", input: -100.0, want: -math.MaxInt16},
		{name: "positive infinity", input: math.Inf(1), want: math.MaxInt16},
		{name: "negative infinity", input: math.Inf(-1), want: -math.MaxInt16},
		{name: "nan", input: math.NaN(), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Float64ToInt16(tt.input); got != tt.want {
				t.Errorf("Float64ToInt16(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestFloat64ToInt16_RoundTrip checks that every 16-bit value survives
// decode normalisation and re-quantisation within one step.
func TestFloat64ToInt16_RoundTrip(t *testing.T) {
	t.Parallel()

	for v := math.MinInt16; v <= math.MaxInt16; v++ {
		got := Float64ToInt16(Int16ToFloat64(int16(v)))
		if diff := math.Abs(float64(int(got) - v)); diff > 1 {
			t.Fatalf("round trip of %d = %d (diff %v)", v, got, diff)
		}
	}
}

func TestFloat64ToInt16Symmetry(t *testing.T) {
	t.Parallel()

	for _, val := range []float64{0.1, 0.25, 0.5, 0.75, 0.9, 0.99, 1.0} {
		pos := Float64ToInt16(val)
		neg := Float64ToInt16(-val)

		if pos != -neg {
			t.Errorf("Float64ToInt16 not symmetric: +%v=%v, -%v=%v", val, pos, val, neg)
		}
	}
}

func TestFloat64ToInt16Monotonic(t *testing.T) {
	t.Parallel()

	prev := Float64ToInt16(-1.0)

	for f := -0.99; f <= 1.0; f += 0.01 {
		curr := Float64ToInt16(f)
		if curr < prev {
			t.Errorf("Float64ToInt16 not monotonic: f=%v gives %v, but previous was %v", f, curr, prev)
		}
		prev = curr
	}
}

func TestInt16ToFloat64(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input int16
		want  float64
	}{
		{0, 0},
		{math.MinInt16, -1},
		{16384, 0.5},
		{math.MaxInt16, 32767.0 / 32768.0},
	}

	for _, tt := range tests {
		if got := Int16ToFloat64(tt.input); got != tt.want {
			t.Errorf("Int16ToFloat64(%d) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestQuantizeInt16(t *testing.T) {
	t.Parallel()

	got := QuantizeInt16([]float64{0, 0.5, -2, 2})
	want := []int16{0, 16383, -32767, 32767}

	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("QuantizeInt16()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func BenchmarkQuantizeInt16(b *testing.B) {
	samples := make([]float64, 44100)
	for i := range samples {
		samples[i] = math.Sin(float64(i) * 0.1)
	}

	b.ReportAllocs()

	for range b.N {
		_ = QuantizeInt16(samples)
	}
}

// TestFloat64ToInt16_ZeroAllocs verifies no heap allocations
func TestFloat64ToInt16_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	allocs := testing.AllocsPerRun(1000, func() {
		_ = Float64ToInt16(0.5)
	})

	if allocs > 0 {
		t.Errorf("Float64ToInt16 allocated %v times, want 0", allocs)
	}
}
