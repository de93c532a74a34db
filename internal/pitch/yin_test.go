package pitch

import "testing"

func TestYinDetectsC4(t *testing.T) {
	RestoreDefaults()
	buffer := sineBuffer(261.63, 44100, 1.0)
	result := DetectYin(buffer, 44100)

	if result.IsNoPitch() {
		t.Fatalf("expected a pitch for C4, got NoPitch")
	}
	if c := absCents(result.PitchHz, 261.63); c > 20 {
		t.Errorf("YIN off by %v cents, want <= 20", c)
	}
	if result.Confidence < 0.6 {
		t.Errorf("confidence = %v, want >= 0.6", result.Confidence)
	}
}

func TestYinDetectsA4(t *testing.T) {
	RestoreDefaults()
	buffer := sineBuffer(440.0, 44100, 1.0)
	result := DetectYin(buffer, 44100)

	if result.IsNoPitch() {
		t.Fatalf("expected a pitch for A4, got NoPitch")
	}
	if c := absCents(result.PitchHz, 440.0); c > 20 {
		t.Errorf("YIN off by %v cents, want <= 20", c)
	}
}

func TestYinRejectsWhiteNoise(t *testing.T) {
	RestoreDefaults()
	buffer := whiteNoiseBuffer(44100, 0.5)
	result := DetectYin(buffer, 44100)
	if !result.IsNoPitch() {
		t.Errorf("expected NoPitch for white noise, got %+v", result)
	}
}

func TestYinIsIdempotent(t *testing.T) {
	RestoreDefaults()
	buffer := sineBuffer(329.63, 44100, 1.0)
	first := DetectYin(buffer, 44100)
	second := DetectYin(buffer, 44100)
	if first != second {
		t.Errorf("YIN not idempotent: %+v vs %+v", first, second)
	}
}

func TestYinConfidenceInRange(t *testing.T) {
	RestoreDefaults()
	for _, f := range []float64{150, 300, 600, 1200, 2500} {
		buffer := sineBuffer(f, 44100, 1.0)
		result := DetectYin(buffer, 44100)
		if result.Confidence < 0 || result.Confidence > 1 {
			t.Errorf("freq %v: confidence %v out of [0,1]", f, result.Confidence)
		}
	}
}
