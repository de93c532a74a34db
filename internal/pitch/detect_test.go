package pitch

import "testing"

func TestCentsSelfIsZero(t *testing.T) {
	if got := Cents(440.0, 440.0); got != 0 {
		t.Errorf("Cents(f,f) = %v, want 0", got)
	}
}

func TestCentsOctaveIs1200(t *testing.T) {
	if got := Cents(880.0, 440.0); absFloat(got-1200) > 1e-9 {
		t.Errorf("Cents(2f,f) = %v, want 1200", got)
	}
}

func TestAddCentsRoundTrip(t *testing.T) {
	a, b := 523.25, 440.0
	c := Cents(a, b)
	got := AddCents(c, b)
	if absFloat(got-a) > 1e-6 {
		t.Errorf("AddCents(Cents(a,b),b) = %v, want %v", got, a)
	}
}

func TestRMSOfSineIsInUnitInterval(t *testing.T) {
	buffer := sineBuffer(440.0, 44100, 0.1)
	if got := RMS(buffer); got <= 0 || got > 1 {
		t.Errorf("RMS out of expected (0,1]: %v", got)
	}
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
