package numerics

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Spectrum is the positive-frequency half of an FFT result: bins
// [0, m/2) of an m-point transform, which is all any detector in this
// package needs since the upper half just mirrors the lower for real
// input.
type Spectrum struct {
	Bins       []complex128
	Size       int // m, the FFT length the bins were computed at
	SampleRate int
}

// WindowedSpectrum Hann-windows samples using its own length, zero-pads to
// size (a power of two >= len(samples)), runs a radix-2 FFT and keeps the
// lower half of the bins.
func WindowedSpectrum(samples []float64, size int, sampleRate int) Spectrum {
	windowed := ApplyHann(samples)

	padded := make([]float64, size)
	copy(padded, windowed)

	full := fft.FFTReal(padded)
	half := size / 2
	if half > len(full) {
		half = len(full)
	}

	return Spectrum{
		Bins:       append([]complex128(nil), full[:half]...),
		Size:       size,
		SampleRate: sampleRate,
	}
}

// Magnitude returns |X_k| for every bin.
func Magnitude(bins []complex128) []float64 {
	mag := make([]float64, len(bins))
	for i, b := range bins {
		mag[i] = cmplx.Abs(b)
	}
	return mag
}

// NormalizeByMax divides every element by the maximum value in place and
// returns it. A zero-valued slice (silence) is left unchanged.
func NormalizeByMax(values []float64) []float64 {
	max := 0.0
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	if max <= 0 {
		return values
	}
	for i := range values {
		values[i] /= max
	}
	return values
}

// BinFrequency converts bin index k of an m-point transform at sampleRate
// to Hz.
func BinFrequency(k, m, sampleRate int) float64 {
	return float64(k) * float64(sampleRate) / float64(m)
}

// FrequencyBin converts a frequency in Hz to a bin index of an m-point
// transform at sampleRate, truncating the fractional bin toward zero.
func FrequencyBin(freq float64, m, sampleRate int) int {
	return int(freq * float64(m) / float64(sampleRate))
}
