package pitch

import "testing"

func TestHybridDetectsA4(t *testing.T) {
	RestoreDefaults()
	buffer := sineBuffer(440.0, 44100, 1.0)
	result := DetectHybrid(buffer, 44100)

	if result.IsNoPitch() {
		t.Fatalf("expected a pitch for A4, got NoPitch")
	}
	if c := absCents(result.PitchHz, 440.0); c > 50 {
		t.Errorf("hybrid off by %v cents, want <= 50", c)
	}
}

func TestHybridDetectsA5(t *testing.T) {
	RestoreDefaults()
	buffer := sineBuffer(880.0, 44100, 1.0)
	result := DetectHybrid(buffer, 44100)

	if result.IsNoPitch() {
		t.Fatalf("expected a pitch for A5, got NoPitch")
	}
	if c := absCents(result.PitchHz, 880.0); c > 50 {
		t.Errorf("hybrid off by %v cents, want <= 50", c)
	}
}

func TestHybridRejectsWhiteNoise(t *testing.T) {
	RestoreDefaults()
	buffer := whiteNoiseBuffer(44100, 0.5)
	result := DetectHybrid(buffer, 44100)
	if !result.IsNoPitch() {
		t.Errorf("expected NoPitch for white noise (CV+ZCR gate), got %+v", result)
	}
}

func TestGoertzelRouteRespectsThresholds(t *testing.T) {
	RestoreDefaults()
	defer RestoreDefaults()

	lowBuffer := sineBuffer(275.0, 44100, 0.1)
	SetHybridThresholds(0, 400, 275, 900)
	if kind := goertzelRoute(lowBuffer, 44100); kind != Yin {
		t.Errorf("expected Yin route when low-energy threshold is 0, got %v", kind)
	}

	SetHybridThresholds(1e12, 1e12, 275, 900)
	if kind := goertzelRoute(lowBuffer, 44100); kind != Mpm {
		t.Errorf("expected Mpm fallback when both thresholds are unreachable, got %v", kind)
	}
}

func TestHybridThresholdsRestoreDefaults(t *testing.T) {
	SetHybridThresholds(1, 2, 3, 4)
	RestoreDefaults()
	got := GetHybridThresholds()
	if got.LowEnergy != defaultLowEnergy || got.HighEnergy != defaultHighEnergy ||
		got.LowFreqHz != defaultLowFreqHz || got.HighFreqHz != defaultHighFreqHz {
		t.Errorf("RestoreDefaults did not reset hybrid thresholds: %+v", got)
	}
}
