// Package noteutil provides the small cents/frequency conversions shared
// by the pitch core and its callers, kept separate from detection so the
// semitone math is testable in isolation.
package noteutil

import "math"

// Cents returns the signed interval between f1 and f2 in cents:
// 1200*log2(f1/f2).
func Cents(f1, f2 float64) float64 {
	return 1200 * math.Log2(f1/f2)
}

// AddCents returns the frequency obtained by shifting f by the given
// number of cents: f*2^(cents/1200).
func AddCents(cents, f float64) float64 {
	return f * math.Pow(2, cents/1200)
}

var noteNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Display is a human-readable rendering of a frequency: nearest note name,
// octave and signed cents deviation from that note's equal-tempered pitch.
type Display struct {
	Name   string
	Octave int
	Cents  float64
}

// Round converts a frequency to its nearest note name, octave and cents
// deviation, using A4 = 440 Hz as the reference pitch.
func Round(freqHz float64) Display {
	semitones := 12 * math.Log2(freqHz/440.0)
	rounded := math.Round(semitones)
	cents := 100 * (semitones - rounded)

	noteIndex := int(math.Mod(rounded+9, 12))
	if noteIndex < 0 {
		noteIndex += 12
	}
	octave := 4 + int(math.Floor((rounded+9)/12))

	return Display{
		Name:   noteNames[noteIndex],
		Octave: octave,
		Cents:  cents,
	}
}
