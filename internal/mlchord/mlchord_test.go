package mlchord

import (
	"math"
	"testing"
)

func sineBuffer(freqHz float64, sampleRate int, durationSeconds float64) []float64 {
	n := int(float64(sampleRate) * durationSeconds)
	buffer := make([]float64, n)
	for i := range buffer {
		buffer[i] = math.Sin(2 * math.Pi * freqHz * float64(i) / float64(sampleRate))
	}
	return buffer
}

func TestExtractFeaturesProducesExpectedWidth(t *testing.T) {
	buffer := sineBuffer(440.0, 44100, 0.2)
	features := ExtractFeatures(buffer, 44100)
	if len(features) != FeatureSize {
		t.Fatalf("ExtractFeatures length = %d, want %d", len(features), FeatureSize)
	}
}

func TestExtractFeaturesHandlesNonNativeSampleRate(t *testing.T) {
	buffer := sineBuffer(440.0, 22050, 0.2)
	features := ExtractFeatures(buffer, 22050)
	if len(features) != FeatureSize {
		t.Fatalf("ExtractFeatures (resampled) length = %d, want %d", len(features), FeatureSize)
	}
}

func TestStubClassifierReturnsDistributionOverTwelveClasses(t *testing.T) {
	buffer := sineBuffer(440.0, 16000, 0.2)
	features := ExtractFeatures(buffer, 16000)

	probs := StubClassifier{}.Classify(features)
	if len(probs) != chromaCount {
		t.Fatalf("Classify length = %d, want %d", len(probs), chromaCount)
	}

	var sum float64
	for _, p := range probs {
		if p < 0 {
			t.Errorf("negative probability: %v", p)
		}
		sum += p
	}
	if math.Abs(sum-1) > 1e-6 {
		t.Errorf("probabilities should sum to ~1, got %v", sum)
	}
}

func TestDetectorReturnsEmptyChordForSilence(t *testing.T) {
	buffer := make([]float64, 16000)
	d := New(StubClassifier{}, 0)
	result := d.DetectChord(buffer, 16000)
	if len(result.PitchesHz) != 0 {
		t.Errorf("expected empty chord for silence, got %v", result.PitchesHz)
	}
}

func TestDetectorProducesPlausibleChordForTone(t *testing.T) {
	buffer := sineBuffer(440.0, 16000, 0.2)
	d := New(StubClassifier{}, 4)
	result := d.DetectChord(buffer, 16000)

	if result.Confidence < 0 || result.Confidence > 1 {
		t.Errorf("confidence %v out of [0,1]", result.Confidence)
	}
	for _, p := range result.PitchesHz {
		if p <= 0 {
			t.Errorf("non-positive pitch in chord result: %v", p)
		}
	}
}
