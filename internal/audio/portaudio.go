package audio

import (
	"errors"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// PortAudioCapturer implements audio capture using PortAudio
type PortAudioCapturer struct {
	isCapturing   bool
	stream        *portaudio.Stream
	buffer        *Buffer
	bufferSize    int
	sampleRate    int
	channels      int
	inputBuffer   []float32
	bufferMutex   sync.Mutex
	amplification float64 // Audio signal amplification factor
}

// NewPortAudioCapturer creates a new audio capturer using PortAudio
func NewPortAudioCapturer(bufferSize, sampleRate, channels int) (*PortAudioCapturer, error) {
	err := portaudio.Initialize()
	if err != nil {
		return nil, err
	}

	capturer := &PortAudioCapturer{
		isCapturing: false,
		buffer: &Buffer{
			Samples:    make([]float64, 0, bufferSize),
			SampleRate: sampleRate,
		},
		bufferSize:    bufferSize,
		sampleRate:    sampleRate,
		channels:      channels,
		inputBuffer:   make([]float32, bufferSize*channels),
		amplification: 5.0,
	}

	return capturer, nil
}

// Start begins audio capture
func (c *PortAudioCapturer) Start() error {
	if c.isCapturing {
		return errors.New("audio capture already started")
	}

	var err error
	c.stream, err = portaudio.OpenDefaultStream(
		c.channels,
		0,
		float64(c.sampleRate),
		c.bufferSize/c.channels,
		c.processAudio,
	)
	if err != nil {
		return err
	}

	err = c.stream.Start()
	if err != nil {
		c.stream.Close()
		return err
	}

	c.isCapturing = true
	return nil
}

// Stop ends audio capture
func (c *PortAudioCapturer) Stop() error {
	if !c.isCapturing {
		return errors.New("audio capture not started")
	}

	err := c.stream.Stop()
	if err != nil {
		return err
	}

	err = c.stream.Close()
	if err != nil {
		return err
	}

	err = portaudio.Terminate()
	if err != nil {
		return err
	}

	c.isCapturing = false
	return nil
}

// processAudio is the callback function for audio processing. PortAudio
// delivers float32 samples; they are converted to float64 and amplified
// here so everything downstream of this package speaks the core's buffer
// type directly.
func (c *PortAudioCapturer) processAudio(in, _ []float32) {
	c.bufferMutex.Lock()
	defer c.bufferMutex.Unlock()

	if c.channels > 1 {
		monoBuffer := make([]float64, len(in)/c.channels)

		for i := 0; i < len(monoBuffer); i++ {
			sum := 0.0
			for ch := 0; ch < c.channels; ch++ {
				sum += float64(in[i*c.channels+ch])
			}
			monoBuffer[i] = (sum / float64(c.channels)) * c.amplification
		}

		c.buffer.Samples = monoBuffer
	} else {
		c.buffer.Samples = make([]float64, len(in))
		for i, sample := range in {
			c.buffer.Samples[i] = float64(sample) * c.amplification
		}
	}
}

// GetBuffer returns the current audio buffer
func (c *PortAudioCapturer) GetBuffer() (*Buffer, error) {
	if !c.isCapturing {
		return nil, errors.New("audio capture not started")
	}

	c.bufferMutex.Lock()
	defer c.bufferMutex.Unlock()

	bufferCopy := &Buffer{
		Samples:    make([]float64, len(c.buffer.Samples)),
		SampleRate: c.buffer.SampleRate,
	}
	copy(bufferCopy.Samples, c.buffer.Samples)

	return bufferCopy, nil
}

// IsCapturing returns true if currently capturing audio
func (c *PortAudioCapturer) IsCapturing() bool {
	return c.isCapturing
}

// SetAmplification sets the audio amplification factor
func (c *PortAudioCapturer) SetAmplification(factor float64) {
	c.bufferMutex.Lock()
	defer c.bufferMutex.Unlock()

	if factor < 0.1 {
		factor = 0.1
	}

	c.amplification = factor
}
