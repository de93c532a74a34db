package pitch

import "math"

func sineBuffer(freqHz float64, sampleRate int, durationSeconds float64) []float64 {
	n := int(float64(sampleRate) * durationSeconds)
	buffer := make([]float64, n)
	for i := range buffer {
		buffer[i] = math.Sin(2 * math.Pi * freqHz * float64(i) / float64(sampleRate))
	}
	return buffer
}

func chordBuffer(freqsHz []float64, sampleRate int, durationSeconds float64) []float64 {
	n := int(float64(sampleRate) * durationSeconds)
	buffer := make([]float64, n)
	amplitude := 1.0 / float64(len(freqsHz))
	for i := range buffer {
		t := float64(i) / float64(sampleRate)
		var sum float64
		for _, f := range freqsHz {
			sum += amplitude * math.Sin(2*math.Pi*f*t)
		}
		buffer[i] = sum
	}
	return buffer
}

func whiteNoiseBuffer(n int, amplitude float64) []float64 {
	samples := make([]float64, n)
	state := uint32(918273645)
	for i := range samples {
		state = state*1664525 + 1013904223
		samples[i] = ((float64(state) / float64(1<<32)) * 2 - 1) * amplitude
	}
	return samples
}

func centsOff(got, want float64) float64 {
	return 1200 * math.Log2(got/want)
}

func absCents(got, want float64) float64 {
	c := centsOff(got, want)
	if c < 0 {
		return -c
	}
	return c
}
