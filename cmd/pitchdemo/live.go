package main

import (
	"fmt"
	"math"
	"time"

	"github.com/0xlemi/pitchcore/internal/audio"
	"github.com/0xlemi/pitchcore/internal/pitch"
	"github.com/0xlemi/pitchcore/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newLiveCmd() *cobra.Command {
	var (
		bufferSize int
		sampleRate int
		channels   int
		detector   string
	)

	cmd := &cobra.Command{
		Use:   "live",
		Short: "Run a live terminal tuner against the default input device",
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := detectorNames[detector]
			if !ok {
				return fmt.Errorf("unknown detector %q", detector)
			}

			capturer, err := audio.NewPortAudioCapturer(bufferSize, sampleRate, channels)
			if err != nil {
				return fmt.Errorf("failed to create audio capturer: %w", err)
			}

			if err := capturer.Start(); err != nil {
				return fmt.Errorf("failed to start audio capture: %w", err)
			}
			defer capturer.Stop()
			capturer.SetAmplification(7.0)

			model := ui.NewModel(kind)
			program := tea.NewProgram(model, tea.WithAltScreen())

			go runCaptureLoop(program, capturer, kind)

			_, err = program.Run()
			return err
		},
	}

	cmd.Flags().IntVar(&bufferSize, "buffer-size", 4096, "capture buffer size in samples")
	cmd.Flags().IntVar(&sampleRate, "sample-rate", 44100, "sample rate in Hz")
	cmd.Flags().IntVar(&channels, "channels", 1, "input channel count")
	cmd.Flags().StringVar(&detector, "detector", "hybrid", "yin|mpm|fft|zcr|hybrid")

	return cmd
}

func runCaptureLoop(program *tea.Program, capturer *audio.PortAudioCapturer, kind pitch.DetectorKind) {
	lastResultTime := time.Now()

	for {
		buffer, err := capturer.GetBuffer()
		if err != nil || len(buffer.Samples) < 512 {
			time.Sleep(10 * time.Millisecond)
			continue
		}

		rms := pitch.RMS(buffer.Samples)
		var db float64
		if rms > 1e-7 {
			db = 20 * math.Log10(rms)
		} else {
			db = -100
		}
		program.Send(ui.UpdateAudioLevelMsg{RMS: rms, DB: db})

		if db < -30 {
			program.Send(ui.ClearNoteMsg{})
			time.Sleep(50 * time.Millisecond)
			continue
		}

		result := pitch.DetectPitch(buffer.Samples, buffer.SampleRate, kind)
		if result.IsNoPitch() {
			program.Send(ui.ClearNoteMsg{})
			time.Sleep(50 * time.Millisecond)
			continue
		}

		if time.Since(lastResultTime) > 80*time.Millisecond {
			program.Send(ui.UpdatePitchMsg(result))
			lastResultTime = time.Now()
		}

		time.Sleep(50 * time.Millisecond)
	}
}
