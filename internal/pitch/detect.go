package pitch

import (
	"github.com/0xlemi/pitchcore/internal/noteutil"
	"github.com/0xlemi/pitchcore/internal/numerics"
)

// DetectPitch dispatches to the monophonic detector named by kind.
// kind == Chord is not a valid monophonic request and returns
// NoPitchResult.
func DetectPitch(buffer []float64, sampleRate int, kind DetectorKind) PitchResult {
	switch kind {
	case Yin:
		return DetectYin(buffer, sampleRate)
	case Mpm:
		return DetectMpm(buffer, sampleRate)
	case FftPeak:
		return DetectFftPeak(buffer, sampleRate)
	case ZcrSpectral:
		return DetectZcrSpectral(buffer, sampleRate)
	case Hybrid:
		return DetectHybrid(buffer, sampleRate)
	default:
		return NoPitchResult
	}
}

// Cents returns 1200*log2(f1/f2).
func Cents(f1, f2 float64) float64 {
	return noteutil.Cents(f1, f2)
}

// AddCents returns f shifted by the given number of cents.
func AddCents(cents, f float64) float64 {
	return noteutil.AddCents(cents, f)
}

// RMS returns the unscaled root-mean-square amplitude of buffer.
func RMS(buffer []float64) float64 {
	return numerics.RMS(buffer)
}
