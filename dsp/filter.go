// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
)

// FilterKind selects the response of a designed filter.
type FilterKind int

const (
	Lowpass FilterKind = iota
	Highpass
	Bandpass
)

func (k FilterKind) String() string {
	switch k {
	case Lowpass:
		return "lowpass"
	case Highpass:
		return "highpass"
	case Bandpass:
		return "bandpass"
	default:
		return fmt.Sprintf("FilterKind(%d)", int(k))
	}
}

// Coefficients of a rational transfer function
//
//	H(z) = (B[0] + B[1]z^-1 + ...) / (A[0] + A[1]z^-1 + ...)
type Coefficients struct {
	B []float64 // feed-forward
	A []float64 // feedback
}

// Scale returns a copy with the feed-forward side multiplied by g, which
// scales the filter's output by g.
func (c Coefficients) Scale(g float64) Coefficients {
	b := make([]float64, len(c.B))
	floats.ScaleTo(b, g, c.B)

	a := make([]float64, len(c.A))
	copy(a, c.A)

	return Coefficients{B: b, A: a}
}

// Filter runs x through c with zero initial state and returns the output.
// It uses the transposed direct form II, normalising by A[0].
func Filter(c Coefficients, x []float64) ([]float64, error) {
	if len(c.A) == 0 || c.A[0] == 0 || len(c.B) == 0 {
		return nil, ErrInvalidCoefficients
	}

	n := max(len(c.A), len(c.B))
	a := make([]float64, n)
	b := make([]float64, n)
	copy(a, c.A)
	copy(b, c.B)

	if a0 := a[0]; a0 != 1 {
		floats.Scale(1/a0, a)
		floats.Scale(1/a0, b)
	}

	y := make([]float64, len(x))
	if n == 1 {
		floats.ScaleTo(y, b[0], x)
		return y, nil
	}

	z := make([]float64, n-1)
	last := n - 1

	for i, xi := range x {
		yi := b[0]*xi + z[0]
		for j := 1; j < last; j++ {
			z[j-1] = b[j]*xi + z[j] - a[j]*yi
		}
		z[last-1] = b[last]*xi - a[last]*yi
		y[i] = yi
	}

	return y, nil
}

// DesignFilter builds a digital Butterworth filter of the given order with
// the bilinear transform. Cutoffs are fractions of the Nyquist frequency and
// must lie strictly inside (0, 1): one for Lowpass and Highpass, a low and
// a high edge for Bandpass. A band-pass of order N has 2N poles, so its
// coefficient slices hold 2N+1 values.
func DesignFilter(kind FilterKind, order int, cutoffs ...float64) (Coefficients, error) {
	if order < 1 {
		return Coefficients{}, ErrInvalidOrder
	}

	want := 1
	if kind == Bandpass {
		want = 2
	}
	if len(cutoffs) != want {
		return Coefficients{}, fmt.Errorf("%w: %s needs %d cutoff(s), got %d", ErrInvalidCutoff, kind, want, len(cutoffs))
	}
	for _, w := range cutoffs {
		if !(w > 0 && w < 1) {
			return Coefficients{}, fmt.Errorf("%w: %v is outside (0, 1)", ErrInvalidCutoff, w)
		}
	}

	proto := butterworthPrototype(order)

	var analog zpk
	switch kind {
	case Lowpass:
		analog = proto.toLowpass(prewarp(cutoffs[0]))
	case Highpass:
		analog = proto.toHighpass(prewarp(cutoffs[0]))
	case Bandpass:
		if cutoffs[0] >= cutoffs[1] {
			return Coefficients{}, fmt.Errorf("%w: band edges %v >= %v", ErrInvalidCutoff, cutoffs[0], cutoffs[1])
		}
		lo, hi := prewarp(cutoffs[0]), prewarp(cutoffs[1])
		analog = proto.toBandpass(math.Sqrt(lo*hi), hi-lo)
	default:
		return Coefficients{}, fmt.Errorf("%w: unknown %s", ErrInvalidCutoff, kind)
	}

	return analog.bilinear().coefficients(), nil
}

// designRate is the sample rate filters are designed at; with 2 the
// Nyquist frequency is 1 and cutoffs can be used as given.
const designRate = 2.0

// prewarp maps a normalised digital cutoff to the analog frequency that the
// bilinear transform will land on it.
func prewarp(w float64) float64 {
	return 2 * designRate * math.Tan(math.Pi*w/designRate)
}

// zpk is a filter in zero-pole-gain form.
type zpk struct {
	z []complex128
	p []complex128
	k float64
}

// butterworthPrototype returns the analog low-pass prototype with cutoff
// 1 rad/s: poles evenly spaced on the left half of the unit circle.
func butterworthPrototype(order int) zpk {
	p := make([]complex128, order)
	for i := range p {
		m := float64(2*i - order + 1)
		p[i] = -cmplx.Exp(complex(0, math.Pi*m/float64(2*order)))
	}
	return zpk{p: p, k: 1}
}

func (f zpk) degree() int { return len(f.p) - len(f.z) }

func (f zpk) toLowpass(wo float64) zpk {
	w := complex(wo, 0)
	return zpk{
		z: scaleRoots(f.z, w),
		p: scaleRoots(f.p, w),
		k: f.k * math.Pow(wo, float64(f.degree())),
	}
}

func (f zpk) toHighpass(wo float64) zpk {
	w := complex(wo, 0)

	z := make([]complex128, 0, len(f.p))
	for _, r := range f.z {
		z = append(z, w/r)
	}
	// zeros at infinity move to the origin
	z = append(z, make([]complex128, f.degree())...)

	p := make([]complex128, len(f.p))
	for i, r := range f.p {
		p[i] = w / r
	}

	k := f.k * real(product(negate(f.z))/product(negate(f.p)))

	return zpk{z: z, p: p, k: k}
}

func (f zpk) toBandpass(wo, bw float64) zpk {
	half := complex(bw/2, 0)
	wo2 := complex(wo*wo, 0)

	split := func(roots []complex128) []complex128 {
		out := make([]complex128, 0, 2*len(roots))
		for _, r := range roots {
			out = append(out, r*half+cmplx.Sqrt(r*half*r*half-wo2))
		}
		for _, r := range roots {
			out = append(out, r*half-cmplx.Sqrt(r*half*r*half-wo2))
		}
		return out
	}

	z := split(f.z)
	z = append(z, make([]complex128, f.degree())...)

	return zpk{
		z: z,
		p: split(f.p),
		k: f.k * math.Pow(bw, float64(f.degree())),
	}
}

// bilinear maps an analog zpk to the z-plane at designRate.
func (f zpk) bilinear() zpk {
	fs2 := complex(2*designRate, 0)

	mapRoots := func(roots []complex128) []complex128 {
		out := make([]complex128, len(roots))
		for i, r := range roots {
			out[i] = (fs2 + r) / (fs2 - r)
		}
		return out
	}

	num := make([]complex128, len(f.z))
	for i, r := range f.z {
		num[i] = fs2 - r
	}
	den := make([]complex128, len(f.p))
	for i, r := range f.p {
		den[i] = fs2 - r
	}

	z := mapRoots(f.z)
	// zeros at infinity land on Nyquist
	for range f.degree() {
		z = append(z, -1)
	}

	return zpk{
		z: z,
		p: mapRoots(f.p),
		k: f.k * real(product(num)/product(den)),
	}
}

func (f zpk) coefficients() Coefficients {
	zp := poly(f.z)
	pp := poly(f.p)

	b := make([]float64, len(zp))
	for i, c := range zp {
		b[i] = f.k * real(c)
	}
	a := make([]float64, len(pp))
	for i, c := range pp {
		a[i] = real(c)
	}

	return Coefficients{B: b, A: a}
}

// poly expands the monic polynomial with the given roots, highest power
// first.
func poly(roots []complex128) []complex128 {
	c := []complex128{1}
	for _, r := range roots {
		next := make([]complex128, len(c)+1)
		for i, v := range c {
			next[i] += v
			next[i+1] -= v * r
		}
		c = next
	}
	return c
}

func product(xs []complex128) complex128 {
	p := complex(1, 0)
	for _, x := range xs {
		p *= x
	}
	return p
}

func negate(xs []complex128) []complex128 {
	out := make([]complex128, len(xs))
	for i, x := range xs {
		out[i] = -x
	}
	return out
}

func scaleRoots(xs []complex128, w complex128) []complex128 {
	out := make([]complex128, len(xs))
	for i, x := range xs {
		out[i] = x * w
	}
	return out
}
