package pitch

import "testing"

func TestSetFrequencyRangeValidatesOrdering(t *testing.T) {
	defer RestoreDefaults()

	if err := SetFrequencyRange(100, 50); err == nil {
		t.Errorf("expected error for inverted range")
	}
	if err := SetFrequencyRange(0, 100); err == nil {
		t.Errorf("expected error for non-positive min")
	}
	if err := SetFrequencyRange(100, 2000); err != nil {
		t.Errorf("unexpected error for valid range: %v", err)
	}
	got := GetFrequencyRange()
	if got.MinHz != 100 || got.MaxHz != 2000 {
		t.Errorf("frequency range not applied: %+v", got)
	}
}

func TestRestoreDefaultsResetsFrequencyRange(t *testing.T) {
	SetFrequencyRange(200, 3000)
	RestoreDefaults()
	got := GetFrequencyRange()
	if got.MinHz != defaultMinHz || got.MaxHz != defaultMaxHz {
		t.Errorf("RestoreDefaults did not reset frequency range: %+v", got)
	}
}

func TestDetectPitchDispatchesByKind(t *testing.T) {
	RestoreDefaults()
	buffer := sineBuffer(440.0, 44100, 1.0)

	for _, kind := range []DetectorKind{Yin, Mpm, FftPeak, ZcrSpectral, Hybrid} {
		result := DetectPitch(buffer, 44100, kind)
		if result.Confidence < 0 || result.Confidence > 1 {
			t.Errorf("kind %v: confidence %v out of [0,1]", kind, result.Confidence)
		}
	}

	if result := DetectPitch(buffer, 44100, Chord); !result.IsNoPitch() {
		t.Errorf("DetectPitch(Chord) should return NoPitchResult, got %+v", result)
	}
}
