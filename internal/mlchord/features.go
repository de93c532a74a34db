// Package mlchord implements an optional pluggable ML-backed chord
// detector: feature extraction (MFCC-like, chroma, spectral-contrast)
// behind a narrow Classifier interface, so a trained model can be
// substituted without touching feature extraction. This package defines
// the contract, not the weights — Classifier implementations that ship
// real trained parameters are a caller concern.
package mlchord

import (
	"math"

	"github.com/0xlemi/pitchcore/internal/numerics"
)

const (
	// FeatureSize is the width of the feature vector fed to a Classifier:
	// 13 MFCC-like coefficients + 12 chroma bins + 7 spectral-contrast bands.
	FeatureSize = 32

	mfccCount    = 13
	melFilters   = 26
	chromaCount  = 12
	contrastBand = 7

	targetSampleRate = 16000
	frameSize        = 2048
)

// ExtractFeatures resamples buffer to 16 kHz if needed and computes the
// 32-dimensional feature vector.
func ExtractFeatures(buffer []float64, sampleRate int) []float64 {
	samples := buffer
	if sampleRate != targetSampleRate && sampleRate > 0 {
		samples = resampleLinear(buffer, sampleRate, targetSampleRate)
		sampleRate = targetSampleRate
	}

	frame := make([]float64, frameSize)
	copy(frame, samples)

	spectrum := numerics.WindowedSpectrum(frame, frameSize, sampleRate)
	mag := numerics.Magnitude(spectrum.Bins)

	features := make([]float64, 0, FeatureSize)
	features = append(features, mfccLike(mag, sampleRate)...)
	features = append(features, chromaVector(mag, sampleRate)...)
	features = append(features, spectralContrast(mag)...)
	return features
}

// resampleLinear linearly interpolates buffer from fromRate to toRate.
func resampleLinear(buffer []float64, fromRate, toRate int) []float64 {
	if fromRate <= 0 || toRate <= 0 || len(buffer) == 0 {
		return buffer
	}
	ratio := float64(toRate) / float64(fromRate)
	outLen := int(float64(len(buffer)) * ratio)
	if outLen < 1 {
		outLen = 1
	}
	out := make([]float64, outLen)
	for i := range out {
		srcPos := float64(i) / ratio
		idx := int(srcPos)
		frac := srcPos - float64(idx)
		if idx >= len(buffer)-1 {
			out[i] = buffer[len(buffer)-1]
			continue
		}
		out[i] = buffer[idx]*(1-frac) + buffer[idx+1]*frac
	}
	return out
}

// mfccLike computes 13 MFCC-like coefficients: a triangular Mel filter
// bank over the magnitude spectrum followed by a type-II DCT.
func mfccLike(mag []float64, sampleRate int) []float64 {
	filterEnergies := melFilterBank(mag, sampleRate, melFilters)
	logEnergies := make([]float64, melFilters)
	for i, e := range filterEnergies {
		logEnergies[i] = math.Log(e + 1e-10)
	}
	return dctII(logEnergies, mfccCount)
}

func melFilterBank(mag []float64, sampleRate, numFilters int) []float64 {
	n := len(mag)
	toMel := func(f float64) float64 { return 2595 * math.Log10(1+f/700) }
	fromMel := func(m float64) float64 { return 700 * (math.Pow(10, m/2595) - 1) }

	maxFreq := float64(sampleRate) / 2
	minMel, maxMel := toMel(0), toMel(maxFreq)

	bins := make([]int, numFilters+2)
	for i := range bins {
		mel := minMel + (maxMel-minMel)*float64(i)/float64(numFilters+1)
		freq := fromMel(mel)
		bins[i] = int(freq * float64(n*2) / float64(sampleRate))
	}

	energies := make([]float64, numFilters)
	for f := 1; f <= numFilters; f++ {
		left, center, right := bins[f-1], bins[f], bins[f+1]
		var sum float64
		for i := left; i < center && i < n; i++ {
			if center == left {
				continue
			}
			weight := float64(i-left) / float64(center-left)
			sum += mag[i] * weight
		}
		for i := center; i < right && i < n; i++ {
			if right == center {
				continue
			}
			weight := float64(right-i) / float64(right-center)
			sum += mag[i] * weight
		}
		energies[f-1] = sum
	}
	return energies
}

func dctII(input []float64, outCount int) []float64 {
	n := len(input)
	out := make([]float64, outCount)
	for k := 0; k < outCount; k++ {
		var sum float64
		for i := 0; i < n; i++ {
			sum += input[i] * math.Cos(math.Pi/float64(n)*(float64(i)+0.5)*float64(k))
		}
		out[k] = sum
	}
	return out
}

// chromaVector bins spectral energy onto the nearest semitone modulo 12,
// referenced to A440.
func chromaVector(mag []float64, sampleRate int) []float64 {
	chroma := make([]float64, chromaCount)
	n := len(mag)
	for i := 1; i < n; i++ {
		freq := float64(i) * float64(sampleRate) / float64(2*n)
		if freq <= 0 {
			continue
		}
		semitone := 12*math.Log2(freq/440.0) + 69
		class := int(math.Round(semitone)) % 12
		if class < 0 {
			class += 12
		}
		chroma[class] += mag[i]
	}
	return chroma
}

// spectralContrast splits the spectrum into 7 equal-width sub-bands and
// computes peak-minus-valley for each.
func spectralContrast(mag []float64) []float64 {
	n := len(mag)
	contrast := make([]float64, contrastBand)
	bandSize := n / contrastBand
	if bandSize < 1 {
		return contrast
	}
	for b := 0; b < contrastBand; b++ {
		start := b * bandSize
		end := start + bandSize
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}
		peak, valley := mag[start], mag[start]
		for i := start; i < end; i++ {
			if mag[i] > peak {
				peak = mag[i]
			}
			if mag[i] < valley {
				valley = mag[i]
			}
		}
		contrast[b] = peak - valley
	}
	return contrast
}
