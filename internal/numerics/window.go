// Package numerics holds the small numerical primitives shared by every
// pitch detector: windowing, FFT, magnitude spectra, parabolic peak
// refinement, Goertzel energy, RMS and the noise/silence heuristics.
//
// Every routine here is total on finite input: it degrades to a zero value,
// the unrefined index, or a sentinel rather than panicking, because the
// detectors built on top of it run on a real-time audio tick and must
// never raise mid-buffer.
package numerics

import "math"

// Hann returns the Hann window of length n. Coefficient at index i is
// 0.5*(1 - cos(2*pi*i/(n-1))).
func Hann(n int) []float64 {
	w := make([]float64, n)
	if n <= 1 {
		for i := range w {
			w[i] = 1
		}
		return w
	}
	denom := float64(n - 1)
	for i := 0; i < n; i++ {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/denom))
	}
	return w
}

// ApplyHann returns a copy of samples multiplied by a Hann window of the
// same length. The input is never mutated, so callers can reuse the same
// buffer across multiple detectors.
func ApplyHann(samples []float64) []float64 {
	w := Hann(len(samples))
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s * w[i]
	}
	return out
}

// NextPow2 returns the smallest power of two >= n.
func NextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
