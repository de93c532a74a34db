package pitch

import (
	"math"
	"sort"

	"github.com/0xlemi/pitchcore/internal/numerics"
)

const (
	chordFlatnessGate   = 0.4
	chordPeakThreshold  = 0.05
	chordHarmonicTol    = 0.05
	chordOctaveRatio    = 2
	chordMaxHarmonic    = 5
	chordMagRatio       = 0.30
	chordLowerPrioRatio = 0.6
	chordMergeHz        = 25.0
	MaxPitches          = 4
)

// DetectChord finds up to MaxPitches simultaneous fundamentals from one
// FFT: a spectral-flatness noise gate, then band filter -> harmonic
// filter -> lower-frequency prioritization -> proximity merge -> cap, in
// that order.
func DetectChord(buffer []float64, sampleRate int) ChordResult {
	n := len(buffer)
	if n < 2 || sampleRate <= 0 {
		return NoChordResult()
	}

	freqRange := GetFrequencyRange()
	size := numerics.NextPow2(n)
	if size < 1024 {
		size = 1024
	}

	spectrum := numerics.WindowedSpectrum(buffer, size, sampleRate)
	mag := numerics.Magnitude(spectrum.Bins)

	flatness := spectralFlatness(mag, freqRange, size, sampleRate)
	if flatness > chordFlatnessGate {
		return NoChordResult()
	}

	mag = numerics.NormalizeByMax(append([]float64(nil), mag...))

	peaks := chordPeakList(mag, size, sampleRate)
	peaks = bandFilter(peaks, freqRange)
	peaks = harmonicFilter(peaks)
	peaks = lowerFrequencyPrioritize(peaks)
	peaks = proximityMerge(peaks)
	peaks = capPeaks(peaks, MaxPitches)

	if len(peaks) == 0 {
		return NoChordResult()
	}

	pitches := make([]float64, len(peaks))
	var sumMag float64
	for i, p := range peaks {
		pitches[i] = p.FrequencyHz
		sumMag += p.Magnitude
	}

	return ChordResult{
		PitchesHz:  pitches,
		Confidence: clip01(sumMag / float64(len(peaks))),
	}
}

// spectralFlatness is geometric-mean/arithmetic-mean over bins mapping
// into [minFreq, maxFreq], with an epsilon in the log to avoid log(0).
func spectralFlatness(mag []float64, freqRange FrequencyRange, size, sampleRate int) float64 {
	minBin := numerics.FrequencyBin(freqRange.MinHz, size, sampleRate)
	maxBin := numerics.FrequencyBin(freqRange.MaxHz, size, sampleRate)
	if minBin < 1 {
		minBin = 1
	}
	if maxBin >= len(mag) {
		maxBin = len(mag) - 1
	}
	if minBin >= maxBin {
		return 1
	}

	const eps = 1e-12
	var logSum, arithSum float64
	count := 0
	for i := minBin; i <= maxBin; i++ {
		v := mag[i] + eps
		logSum += math.Log(v)
		arithSum += v
		count++
	}
	if count == 0 || arithSum <= 0 {
		return 1
	}
	geoMean := math.Exp(logSum / float64(count))
	arithMean := arithSum / float64(count)
	return geoMean / arithMean
}

// chordPeakList finds local maxima above the fixed 0.05 threshold on a
// max-normalized spectrum, refines each with parabolic interpolation, and
// returns them sorted by magnitude descending.
func chordPeakList(mag []float64, size, sampleRate int) []SpectralPeak {
	var peaks []SpectralPeak
	for i := 1; i < len(mag)-1; i++ {
		if mag[i] <= chordPeakThreshold {
			continue
		}
		if !(mag[i] > mag[i-1] && mag[i] > mag[i+1]) {
			continue
		}
		refinedBin := numerics.ParabolicPeak(mag, i)
		freq := refinedBin * float64(sampleRate) / float64(size)
		peaks = append(peaks, SpectralPeak{FrequencyHz: freq, Magnitude: mag[i]})
	}

	sort.SliceStable(peaks, func(a, b int) bool {
		return peaks[a].Magnitude > peaks[b].Magnitude
	})
	return peaks
}

func bandFilter(peaks []SpectralPeak, freqRange FrequencyRange) []SpectralPeak {
	out := make([]SpectralPeak, 0, len(peaks))
	for _, p := range peaks {
		if p.FrequencyHz >= freqRange.MinHz && p.FrequencyHz <= freqRange.MaxHz {
			out = append(out, p)
		}
	}
	return out
}

// harmonicFilter discards a peak when a previously kept peak explains it
// as a harmonic: close to an integer ratio within tolerance, unless the
// ratio is the octave (always passes) or > 5 (too far to call harmonic).
func harmonicFilter(peaks []SpectralPeak) []SpectralPeak {
	var kept []SpectralPeak
	for _, p := range peaks {
		discard := false
		for _, k := range kept {
			ratio := p.FrequencyHz / k.FrequencyHz
			if ratio < 1 {
				continue
			}
			nearest := math.Round(ratio)
			if nearest < 2 {
				continue
			}
			if math.Abs(ratio-nearest) > chordHarmonicTol {
				continue
			}
			if nearest == chordOctaveRatio {
				continue
			}
			if ratio > chordMaxHarmonic {
				continue
			}
			if p.Magnitude < chordMagRatio*k.Magnitude {
				discard = true
				break
			}
		}
		if !discard {
			kept = append(kept, p)
		}
	}
	return kept
}

// lowerFrequencyPrioritize sorts ascending by frequency and suppresses a
// higher peak when a previously kept lower peak dominates it by the 0.6
// magnitude ratio. Order-sensitive: this must run after the harmonic
// filter, not before, or the two passes fight over the same peaks.
func lowerFrequencyPrioritize(peaks []SpectralPeak) []SpectralPeak {
	sorted := append([]SpectralPeak(nil), peaks...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].FrequencyHz < sorted[j].FrequencyHz
	})

	var kept []SpectralPeak
	for _, p := range sorted {
		suppressed := false
		for _, k := range kept {
			if k.FrequencyHz < p.FrequencyHz && p.Magnitude < chordLowerPrioRatio*k.Magnitude {
				suppressed = true
				break
			}
		}
		if !suppressed {
			kept = append(kept, p)
		}
	}
	return kept
}

// proximityMerge merges adjacent peaks closer than 25 Hz into one,
// magnitude-weighted for frequency and summed for magnitude.
func proximityMerge(peaks []SpectralPeak) []SpectralPeak {
	if len(peaks) == 0 {
		return peaks
	}
	merged := []SpectralPeak{peaks[0]}
	for _, p := range peaks[1:] {
		last := &merged[len(merged)-1]
		if p.FrequencyHz-last.FrequencyHz < chordMergeHz {
			totalMag := last.Magnitude + p.Magnitude
			if totalMag > 0 {
				last.FrequencyHz = (last.FrequencyHz*last.Magnitude + p.FrequencyHz*p.Magnitude) / totalMag
			}
			last.Magnitude = totalMag
			continue
		}
		merged = append(merged, p)
	}
	return merged
}

// capPeaks keeps at most max entries. The list entering this stage is
// frequency-ascending, so the cap keeps the first max in that order.
func capPeaks(peaks []SpectralPeak, max int) []SpectralPeak {
	if len(peaks) <= max {
		return peaks
	}
	return peaks[:max]
}
