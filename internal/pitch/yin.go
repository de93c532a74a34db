package pitch

import (
	"math"

	"github.com/0xlemi/pitchcore/internal/noteutil"
	"github.com/0xlemi/pitchcore/internal/numerics"
)

const yinCentsMargin = 25

// DetectYin implements the YIN difference-function detector: a difference
// function via the algebraic sum-of-squares rewrite, CMNDF over the lag
// range implied by the configured frequency band, a dynamic RMS-derived
// threshold, and parabolic refinement of the first qualifying local
// minimum.
func DetectYin(buffer []float64, sampleRate int) PitchResult {
	n := len(buffer)
	if n < 2 || sampleRate <= 0 {
		return NoPitchResult
	}

	freqRange := GetFrequencyRange()
	maxTau := n / 2
	if maxTau < 2 {
		return NoPitchResult
	}

	minLag, maxLag := yinLagRange(sampleRate, freqRange, maxTau)
	if minLag >= maxLag {
		return NoPitchResult
	}

	d := yinDifference(buffer, maxTau)
	cmndf := yinCMNDF(d, minLag, maxLag)

	rms := numerics.RMS(buffer)
	threshold := math.Min(0.5, 0.4*(1+0.3/(rms+0.01)))

	tau := -1
	for t := minLag; t <= maxLag; t++ {
		if cmndf[t] >= threshold {
			continue
		}
		if t > 0 && t < len(cmndf)-1 && cmndf[t] < cmndf[t-1] && cmndf[t] <= cmndf[t+1] {
			tau = t
			break
		}
	}
	if tau < 0 {
		return NoPitchResult
	}

	refined := numerics.ParabolicPeak(cmndf, tau)
	if refined <= 0 {
		return NoPitchResult
	}

	pitchHz := float64(sampleRate) / refined
	ratio := cmndf[tau] / threshold
	confidence := clip01(1 - ratio*ratio)

	return PitchResult{PitchHz: pitchHz, Confidence: confidence}
}

// yinLagRange converts the configured frequency band (with a 25-cent
// margin) to the [minTau, maxTau] lag window CMNDF is evaluated over.
func yinLagRange(sampleRate int, freqRange FrequencyRange, cap int) (int, int) {
	maxFreqWithMargin := noteutil.AddCents(yinCentsMargin, freqRange.MaxHz)
	minFreqWithMargin := noteutil.AddCents(-yinCentsMargin, freqRange.MinHz)

	minTau := int(float64(sampleRate) / maxFreqWithMargin)
	maxTau := int(float64(sampleRate) / minFreqWithMargin)

	if minTau < 1 {
		minTau = 1
	}
	if maxTau >= cap {
		maxTau = cap - 1
	}
	return minTau, maxTau
}

// yinDifference computes d(tau) for tau in [0, maxTau) using
// d(tau) = sum(x_i^2) + sum(x_{i+tau}^2) - 2*sum(x_i*x_{i+tau}).
func yinDifference(buffer []float64, maxTau int) []float64 {
	n := len(buffer)
	d := make([]float64, maxTau)

	cumulative := make([]float64, n+1)
	for i := 0; i < n; i++ {
		cumulative[i+1] = cumulative[i] + buffer[i]*buffer[i]
	}

	for tau := 0; tau < maxTau; tau++ {
		limit := n - tau
		if limit <= 0 {
			d[tau] = 0
			continue
		}
		sumX := cumulative[limit]
		sumXTau := cumulative[n] - cumulative[tau]
		var cross float64
		for i := 0; i < limit; i++ {
			cross += buffer[i] * buffer[i+tau]
		}
		d[tau] = sumX + sumXTau - 2*cross
	}
	return d
}

// yinCMNDF normalizes d into the cumulative mean normalized difference
// function, evaluated only within [minLag, maxLag]; outside that range the
// value is pinned to 1 so the search ignores it.
func yinCMNDF(d []float64, minLag, maxLag int) []float64 {
	const eps = 1e-12
	cmndf := make([]float64, len(d))
	for i := range cmndf {
		cmndf[i] = 1
	}
	cmndf[0] = 1

	runningSum := 0.0
	for tau := 1; tau < len(d); tau++ {
		runningSum += d[tau]
		if tau < minLag || tau > maxLag {
			continue
		}
		mean := runningSum / float64(tau)
		cmndf[tau] = d[tau] / (mean + eps)
	}
	return cmndf
}

func clip01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
