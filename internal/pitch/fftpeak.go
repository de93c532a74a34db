package pitch

import "github.com/0xlemi/pitchcore/internal/numerics"

const (
	fftTransitionLowHz  = 275.0
	fftTransitionHighHz = 325.0
	fftAboveBandHz      = 300.0
	fftRoughLowHz       = 100.0
)

// DetectFftPeak finds the fundamental from a windowed magnitude spectrum
// using a dynamic average-magnitude threshold, band-aware peak search,
// parabolic refinement and harmonic/subharmonic validation.
func DetectFftPeak(buffer []float64, sampleRate int) PitchResult {
	n := len(buffer)
	if n < 2 || sampleRate <= 0 {
		return NoPitchResult
	}

	freqRange := GetFrequencyRange()
	size := numerics.NextPow2(n)
	if size < 2048 {
		size = 2048
	}

	spectrum := numerics.WindowedSpectrum(buffer, size, sampleRate)
	mag := numerics.Magnitude(spectrum.Bins)

	avg := mean(mag)
	k := 1.5
	if freqRange.MaxHz > 300 {
		k = 1.2
	}
	threshold := maxFloat(0.1, avg*k)

	minBin := numerics.FrequencyBin(freqRange.MinHz, size, sampleRate)
	maxBin := numerics.FrequencyBin(freqRange.MaxHz, size, sampleRate)
	if minBin < 1 {
		minBin = 1
	}
	if maxBin >= len(mag)-1 {
		maxBin = len(mag) - 2
	}
	if minBin >= maxBin {
		return NoPitchResult
	}

	roughLow := freqRange.MinHz < fftRoughLowHz

	bestBin := -1
	bestMag := 0.0
	for i := minBin; i <= maxBin; i++ {
		freq := numerics.BinFrequency(i, size, sampleRate)
		if !isLocalMaxAt(mag, i, freq, threshold) {
			continue
		}
		if mag[i] > bestMag {
			bestMag = mag[i]
			bestBin = i
		}
	}
	if bestBin < 0 {
		return NoPitchResult
	}

	refinedBin := numerics.ParabolicPeak(mag, bestBin)
	freq := refinedBin * float64(sampleRate) / float64(size)

	if !roughLow && !validateHarmonics(mag, freq, bestMag, size, sampleRate) {
		return NoPitchResult
	}

	confidence := clip01(bestMag / avg / 10)
	return PitchResult{PitchHz: freq, Confidence: confidence}
}

// isLocalMaxAt applies three band-dependent threshold adjustments to
// decide whether bin i (at frequency freq, magnitude mag[i]) qualifies as
// a peak against the base threshold.
func isLocalMaxAt(mag []float64, i int, freq, threshold float64) bool {
	if i <= 0 || i >= len(mag)-1 {
		return false
	}
	if !(mag[i] > mag[i-1] && mag[i] > mag[i+1]) {
		return false
	}

	switch {
	case freq > fftAboveBandHz:
		return mag[i] > threshold*0.5
	case freq >= fftTransitionLowHz && freq <= fftTransitionHighHz:
		effective := threshold * 0.7
		if mag[i] <= effective {
			return false
		}
		if i-2 < 0 || i+2 >= len(mag) {
			return true
		}
		return mag[i] > mag[i-2]*0.8 && mag[i] > mag[i+2]*0.8
	default:
		return mag[i] > threshold
	}
}

// validateHarmonics implements the three harmonic-plausibility branches and
// the subharmonic rejection that gate a candidate fundamental.
func validateHarmonics(mag []float64, fundamental, fundamentalMag float64, size, sampleRate int) bool {
	if hasStrongSubharmonic(mag, fundamental, fundamentalMag, size, sampleRate) {
		return false
	}

	harmonicMag := func(h int) (float64, bool) {
		bin := numerics.FrequencyBin(fundamental*float64(h), size, sampleRate)
		if bin < 0 || bin >= len(mag) {
			return 0, false
		}
		return mag[bin], true
	}

	switch {
	case fundamental >= fftTransitionLowHz && fundamental <= fftTransitionHighHz:
		h2, ok2 := harmonicMag(2)
		h3, ok3 := harmonicMag(3)
		if ok2 && h2 >= 0.15*fundamentalMag {
			return true
		}
		if ok3 && h3 >= 0.10*fundamentalMag {
			return true
		}
		return false

	case fundamental > fftAboveBandHz:
		h2, ok2 := harmonicMag(2)
		if ok2 {
			return h2 >= 0.15*fundamentalMag
		}
		return isProminent(mag, numerics.FrequencyBin(fundamental, size, sampleRate), fundamentalMag)

	default:
		ratios := []float64{0.20, 0.10, 0.067}
		passes, total := 0, 0
		for idx, h := range []int{2, 3, 4} {
			hm, ok := harmonicMag(h)
			if !ok {
				continue
			}
			total++
			if hm >= ratios[idx]*fundamentalMag {
				passes++
			}
		}
		if total == 0 {
			return false
		}
		return passes*2 >= total
	}
}

// hasStrongSubharmonic rejects a fundamental whose /2 or /3 subharmonic is
// suspiciously strong (70% / 60% thresholds).
func hasStrongSubharmonic(mag []float64, fundamental, fundamentalMag float64, size, sampleRate int) bool {
	check := func(divisor int, ratio float64) bool {
		bin := numerics.FrequencyBin(fundamental/float64(divisor), size, sampleRate)
		if bin < 0 || bin >= len(mag) {
			return false
		}
		return mag[bin] >= ratio*fundamentalMag
	}
	return check(2, 0.70) || check(3, 0.60)
}

// isProminent reports whether mag[bin] exceeds 3x the mean of the
// surrounding +-10 bins, excluding the bin itself and its immediate
// neighbor on each side; used as the fallback check when the 2nd harmonic falls outside
// the spectrum.
func isProminent(mag []float64, bin int, peakMag float64) bool {
	if bin < 0 || bin >= len(mag) {
		return false
	}
	var sum float64
	var count int
	for d := -10; d <= 10; d++ {
		if d >= -1 && d <= 1 {
			continue
		}
		i := bin + d
		if i < 0 || i >= len(mag) {
			continue
		}
		sum += mag[i]
		count++
	}
	if count == 0 {
		return false
	}
	return peakMag > 3*(sum/float64(count))
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
