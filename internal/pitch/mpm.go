package pitch

import "github.com/0xlemi/pitchcore/internal/numerics"

const mpmPeakThreshold = 0.5
const mpmLagMargin = 0.1

// DetectMpm implements the McLeod Pitch Method: the NSDF over the
// configured lag range (with a 10% margin), a fixed 0.5 peak threshold,
// first-candidate selection among local maxima, and parabolic
// refinement.
func DetectMpm(buffer []float64, sampleRate int) PitchResult {
	n := len(buffer)
	if n < 2 || sampleRate <= 0 {
		return NoPitchResult
	}

	freqRange := GetFrequencyRange()
	maxLagCap := n / 2
	if maxLagCap < 2 {
		return NoPitchResult
	}

	minLag := int(float64(sampleRate) / freqRange.MaxHz * (1 - mpmLagMargin))
	maxLag := int(float64(sampleRate) / freqRange.MinHz * (1 + mpmLagMargin))
	if minLag < 1 {
		minLag = 1
	}
	if maxLag >= maxLagCap {
		maxLag = maxLagCap - 1
	}
	if minLag >= maxLag {
		return NoPitchResult
	}

	nsdf := mpmNSDF(buffer, maxLag+1)

	candidate := -1
	for tau := minLag + 1; tau <= maxLag-1; tau++ {
		if nsdf[tau] <= mpmPeakThreshold {
			continue
		}
		if nsdf[tau] > nsdf[tau-1] && nsdf[tau] >= nsdf[tau+1] {
			candidate = tau
			break
		}
	}
	if candidate < 0 {
		return NoPitchResult
	}

	refined := numerics.ParabolicPeak(nsdf, candidate)
	if refined <= 0 {
		return NoPitchResult
	}

	pitchHz := float64(sampleRate) / refined
	confidence := clip01(nsdf[candidate])

	return PitchResult{PitchHz: pitchHz, Confidence: confidence}
}

// mpmNSDF computes the normalized square difference function for lags
// [0, maxTau).
func mpmNSDF(buffer []float64, maxTau int) []float64 {
	n := len(buffer)
	nsdf := make([]float64, maxTau)

	for tau := 0; tau < maxTau; tau++ {
		limit := n - tau
		if limit <= 0 {
			nsdf[tau] = 0
			continue
		}
		var acf, energy float64
		for i := 0; i < limit; i++ {
			xi := buffer[i]
			xt := buffer[i+tau]
			acf += xi * xt
			energy += xi*xi + xt*xt
		}
		if energy <= 1e-12 {
			nsdf[tau] = 0
			continue
		}
		nsdf[tau] = 2 * acf / energy
	}
	return nsdf
}
