package pitch

import "github.com/0xlemi/pitchcore/internal/numerics"

// DetectHybrid implements Strategy A — FFT-first routing. A
// Goertzel-energy "Strategy B" is also implemented below and its
// thresholds are kept live and tunable (HybridThresholds); Strategy A
// itself reads only the frequency range, not those thresholds. This package routes
// through Strategy A because a coarse FFT pass is cheap and already
// narrows the frequency band before a more expensive detector refines it.
func DetectHybrid(buffer []float64, sampleRate int) PitchResult {
	if len(buffer) < 2 || sampleRate <= 0 {
		return NoPitchResult
	}

	if numerics.IsNoiseLike(buffer) {
		return NoPitchResult
	}

	freqRange := GetFrequencyRange()

	coarse := DetectFftPeak(buffer, sampleRate)
	if !coarse.IsNoPitch() {
		switch {
		case coarse.PitchHz < 300:
			if yin := DetectYin(buffer, sampleRate); !yin.IsNoPitch() {
				return yin
			}
		case coarse.PitchHz < 1000:
			if mpm := DetectMpm(buffer, sampleRate); !mpm.IsNoPitch() {
				return mpm
			}
		default:
			return coarse
		}
		return coarse
	}

	if freqRange.MinHz < 200 {
		if yin := DetectYin(buffer, sampleRate); !yin.IsNoPitch() {
			return yin
		}
		if mpm := DetectMpm(buffer, sampleRate); !mpm.IsNoPitch() {
			return mpm
		}
		return DetectFftPeak(buffer, sampleRate)
	}

	if mpm := DetectMpm(buffer, sampleRate); !mpm.IsNoPitch() {
		return mpm
	}
	if yin := DetectYin(buffer, sampleRate); !yin.IsNoPitch() {
		return yin
	}
	return DetectFftPeak(buffer, sampleRate)
}

// goertzelRoute implements Strategy B — energy-driven routing — kept as a
// documented, tested alternative dispatch path: it is not the default
// (DetectHybrid uses Strategy A) but exercises the same HybridThresholds
// both strategies are built around.
func goertzelRoute(buffer []float64, sampleRate int) DetectorKind {
	thresholds := GetHybridThresholds()

	lowEnergy := numerics.Goertzel(buffer, thresholds.LowFreqHz, sampleRate)
	if lowEnergy > thresholds.LowEnergy {
		return Yin
	}

	highEnergy := numerics.Goertzel(buffer, thresholds.HighFreqHz, sampleRate)
	if highEnergy > thresholds.HighEnergy {
		return FftPeak
	}

	return Mpm
}
