package numerics

import (
	"math"
	"testing"
)

func TestHannEndpointsZero(t *testing.T) {
	w := Hann(8)
	if math.Abs(w[0]) > 1e-9 {
		t.Errorf("expected w[0] ~ 0, got %v", w[0])
	}
	if math.Abs(w[len(w)-1]) > 1e-9 {
		t.Errorf("expected w[n-1] ~ 0, got %v", w[len(w)-1])
	}
}

func TestApplyHannPreservesInput(t *testing.T) {
	samples := []float64{1, 1, 1, 1, 1, 1, 1, 1}
	original := append([]float64(nil), samples...)
	ApplyHann(samples)
	for i := range samples {
		if samples[i] != original[i] {
			t.Fatalf("ApplyHann mutated its input at %d", i)
		}
	}
}

func TestNextPow2(t *testing.T) {
	cases := map[int]int{1: 1, 2: 2, 3: 4, 1000: 1024, 2048: 2048, 2049: 4096}
	for n, want := range cases {
		if got := NextPow2(n); got != want {
			t.Errorf("NextPow2(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestRMSOfSilence(t *testing.T) {
	samples := make([]float64, 128)
	if got := RMS(samples); got != 0 {
		t.Errorf("RMS of silence = %v, want 0", got)
	}
}

func TestRMSOfConstant(t *testing.T) {
	samples := make([]float64, 100)
	for i := range samples {
		samples[i] = 0.5
	}
	if got := RMS(samples); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("RMS of constant 0.5 = %v, want 0.5", got)
	}
}

func TestParabolicPeakDegenerateReturnsIndex(t *testing.T) {
	values := []float64{1, 1, 1}
	if got := ParabolicPeak(values, 1); got != 1 {
		t.Errorf("ParabolicPeak flat = %v, want 1", got)
	}
}

func TestParabolicPeakRefinesTowardTrueMaximum(t *testing.T) {
	// An asymmetric peak at bin 2 whose true maximum lies between bins 2
	// and 3, since the right neighbor is larger than the left.
	values := []float64{0, 0.9, 1.0, 0.95, 0}
	refined := ParabolicPeak(values, 2)
	if refined < 1.5 || refined > 2.5 {
		t.Errorf("ParabolicPeak = %v, want within one bin of 2", refined)
	}
}

func TestGoertzelPeaksAtMatchingFrequency(t *testing.T) {
	sampleRate := 8000
	freq := 440.0
	n := 1024
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
	}

	onFreq := Goertzel(samples, freq, sampleRate)
	offFreq := Goertzel(samples, freq*2.5, sampleRate)

	if onFreq <= offFreq {
		t.Errorf("Goertzel energy at matching freq (%v) should exceed energy at unrelated freq (%v)", onFreq, offFreq)
	}
}

func TestIsSilent(t *testing.T) {
	quiet := make([]float64, 64)
	if !IsSilent(quiet, 0.005) {
		t.Errorf("expected silence detection for all-zero buffer")
	}

	loud := make([]float64, 64)
	for i := range loud {
		loud[i] = 0.5
	}
	if IsSilent(loud, 0.005) {
		t.Errorf("expected loud buffer not to be silent")
	}
}

func TestIsNoiseLikeDetectsWhiteNoise(t *testing.T) {
	// A deterministic pseudo-random sequence standing in for white noise.
	samples := make([]float64, 4096)
	state := uint32(12345)
	for i := range samples {
		state = state*1664525 + 1013904223
		samples[i] = (float64(state)/float64(1<<32))*2 - 1
	}
	if !IsNoiseLike(samples) {
		t.Errorf("expected pseudo-random noise buffer to be classified as noise")
	}
}

func TestIsNoiseLikeDoesNotFlagPureTone(t *testing.T) {
	samples := make([]float64, 4096)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * 440 * float64(i) / 44100)
	}
	if IsNoiseLike(samples) {
		t.Errorf("expected pure tone not to be classified as noise")
	}
}

func TestWindowedSpectrumBinFrequencyRoundTrip(t *testing.T) {
	sampleRate := 44100
	freq := 440.0
	n := 2048
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
	}

	size := NextPow2(n)
	spectrum := WindowedSpectrum(samples, size, sampleRate)
	mag := Magnitude(spectrum.Bins)

	bestBin := 0
	bestMag := 0.0
	for i, m := range mag {
		if m > bestMag {
			bestMag = m
			bestBin = i
		}
	}

	gotFreq := BinFrequency(bestBin, size, sampleRate)
	if math.Abs(gotFreq-freq) > float64(sampleRate)/float64(size)+1 {
		t.Errorf("peak bin frequency = %v, want close to %v", gotFreq, freq)
	}
}
