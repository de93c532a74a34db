// Package audio is the capture collaborator that sits outside the
// pitch-estimation core: device I/O, not detection. It exists only to
// feed cmd/pitchdemo's live mode a real PCM buffer; the core package
// never imports it.
package audio

import (
	"errors"
	"fmt"
)

// Buffer is a mono PCM sample buffer with its sample rate, the shape the
// pitch core consumes directly.
type Buffer struct {
	Samples    []float64
	SampleRate int
}

// Capturer defines the interface for audio capture
type Capturer interface {
	// Start begins audio capture
	Start() error

	// Stop ends audio capture
	Stop() error

	// GetBuffer returns the current audio buffer
	GetBuffer() (*Buffer, error)

	// IsCapturing returns true if currently capturing audio
	IsCapturing() bool
}

// DefaultCapturer is a placeholder implementation, useful in tests and
// when no real input device is available.
type DefaultCapturer struct {
	isCapturing bool
	buffer      *Buffer
}

// NewDefaultCapturer creates a new audio capturer
func NewDefaultCapturer(sampleRate int) *DefaultCapturer {
	return &DefaultCapturer{
		isCapturing: false,
		buffer: &Buffer{
			Samples:    make([]float64, 0),
			SampleRate: sampleRate,
		},
	}
}

// Start begins audio capture
func (c *DefaultCapturer) Start() error {
	if c.isCapturing {
		return errors.New("audio capture already started")
	}
	fmt.Println("Starting audio capture...")
	c.isCapturing = true
	return nil
}

// Stop ends audio capture
func (c *DefaultCapturer) Stop() error {
	if !c.isCapturing {
		return errors.New("audio capture not started")
	}
	fmt.Println("Stopping audio capture...")
	c.isCapturing = false
	return nil
}

// GetBuffer returns the current audio buffer
func (c *DefaultCapturer) GetBuffer() (*Buffer, error) {
	if !c.isCapturing {
		return nil, errors.New("audio capture not started")
	}
	return c.buffer, nil
}

// IsCapturing returns true if currently capturing audio
func (c *DefaultCapturer) IsCapturing() bool {
	return c.isCapturing
}
