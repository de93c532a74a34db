package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/0xlemi/pitchcore/internal/noteutil"
	"github.com/0xlemi/pitchcore/internal/pitch"
	"github.com/spf13/cobra"
)

var detectorNames = map[string]pitch.DetectorKind{
	"yin":    pitch.Yin,
	"mpm":    pitch.Mpm,
	"fft":    pitch.FftPeak,
	"zcr":    pitch.ZcrSpectral,
	"hybrid": pitch.Hybrid,
}

func newToneCmd() *cobra.Command {
	var (
		freqs      string
		sampleRate int
		duration   float64
		detector   string
		chord      bool
	)

	cmd := &cobra.Command{
		Use:   "tone",
		Short: "Generate a synthetic sine (or sum of sines) and run a detector against it",
		RunE: func(cmd *cobra.Command, args []string) error {
			frequencies, err := parseFrequencies(freqs)
			if err != nil {
				return err
			}

			buffer := generateTone(frequencies, sampleRate, duration)

			if chord {
				result := pitch.DetectChord(buffer, sampleRate)
				fmt.Printf("chord: %v (confidence %.2f)\n", result.PitchesHz, result.Confidence)
				return nil
			}

			kind, ok := detectorNames[detector]
			if !ok {
				return fmt.Errorf("unknown detector %q", detector)
			}
			result := pitch.DetectPitch(buffer, sampleRate, kind)
			if result.IsNoPitch() {
				fmt.Println("no pitch detected")
				return nil
			}
			disp := noteutil.Round(result.PitchHz)
			fmt.Printf("%.2f Hz (%s%d, %+.1f cents) confidence %.2f\n",
				result.PitchHz, disp.Name, disp.Octave, disp.Cents, result.Confidence)
			return nil
		},
	}

	cmd.Flags().StringVar(&freqs, "freq", "261.63", "comma-separated frequencies in Hz")
	cmd.Flags().IntVar(&sampleRate, "sample-rate", 44100, "sample rate in Hz")
	cmd.Flags().Float64Var(&duration, "duration", 1.0, "buffer duration in seconds")
	cmd.Flags().StringVar(&detector, "detector", "hybrid", "yin|mpm|fft|zcr|hybrid")
	cmd.Flags().BoolVar(&chord, "chord", false, "run the chord detector instead of a monophonic one")

	return cmd
}

func parseFrequencies(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	freqs := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid frequency %q: %w", p, err)
		}
		freqs = append(freqs, f)
	}
	if len(freqs) == 0 {
		return nil, fmt.Errorf("no frequencies given")
	}
	return freqs, nil
}

func generateTone(freqs []float64, sampleRate int, durationSeconds float64) []float64 {
	n := int(float64(sampleRate) * durationSeconds)
	buffer := make([]float64, n)
	amplitude := 1.0 / float64(len(freqs))
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		var sum float64
		for _, f := range freqs {
			sum += amplitude * math.Sin(2*math.Pi*f*t)
		}
		buffer[i] = sum
	}
	return buffer
}
