package main

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/0xlemi/pitchcore/internal/noteutil"
	"github.com/0xlemi/pitchcore/internal/pitch"
	"github.com/spf13/cobra"
)

func newWavCmd() *cobra.Command {
	var detector string

	cmd := &cobra.Command{
		Use:   "wav [file]",
		Short: "Decode a 16-bit PCM WAV fixture and run a detector against it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buffer, sampleRate, err := readPCM16Wav(args[0])
			if err != nil {
				return err
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

	cmd.Flags().StringVar(&detector, "detector", "hybrid", "yin|mpm|fft|zcr|hybrid")

	return cmd
}

// readPCM16Wav reads a canonical 16-bit PCM mono or stereo WAV file,
// downmixing to mono float64 in [-1, 1]. WAV's header is simple enough
// that a dependency buys nothing here, so this boundary I/O stays plain
// standard library.
func readPCM16Wav(path string) ([]float64, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}
	if len(data) < 44 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, 0, fmt.Errorf("%s: not a RIFF/WAVE file", path)
	}

	var (
		sampleRate    int
		numChannels   int
		bitsPerSample int
		dataOffset    int
		dataSize      int
	)

	offset := 12
	for offset+8 <= len(data) {
		chunkID := string(data[offset : offset+4])
		chunkSize := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		body := offset + 8

		switch chunkID {
		case "fmt ":
			if body+16 > len(data) {
				return nil, 0, fmt.Errorf("%s: truncated fmt chunk", path)
			}
			numChannels = int(binary.LittleEndian.Uint16(data[body+2 : body+4]))
			sampleRate = int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			bitsPerSample = int(binary.LittleEndian.Uint16(data[body+14 : body+16]))
		case "data":
			dataOffset = body
			dataSize = chunkSize
		}

		offset = body + chunkSize
		if chunkSize%2 == 1 {
			offset++
		}
	}

	if bitsPerSample != 16 {
		return nil, 0, fmt.Errorf("%s: only 16-bit PCM WAV is supported, got %d bits", path, bitsPerSample)
	}
	if numChannels < 1 {
		return nil, 0, fmt.Errorf("%s: invalid channel count", path)
	}
	if dataOffset+dataSize > len(data) {
		dataSize = len(data) - dataOffset
	}

	frameBytes := 2 * numChannels
	numFrames := dataSize / frameBytes
	samples := make([]float64, numFrames)

	for i := 0; i < numFrames; i++ {
		var sum float64
		for ch := 0; ch < numChannels; ch++ {
			o := dataOffset + i*frameBytes + ch*2
			v := int16(binary.LittleEndian.Uint16(data[o : o+2]))
			sum += float64(v) / 32768.0
		}
		samples[i] = sum / float64(numChannels)
	}

	return samples, sampleRate, nil
}
