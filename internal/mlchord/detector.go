package mlchord

import (
	"context"
	"math"
	"sort"

	"github.com/0xlemi/pitchcore/internal/numerics"
	"github.com/0xlemi/pitchcore/internal/pitch"
	"golang.org/x/sync/errgroup"
)

const (
	// ConfidenceThreshold is the minimum per-class probability retained
	// from a classifier's output.
	ConfidenceThreshold = 0.10
	// MaxPitches caps the number of retained semitone classes.
	MaxPitches = 10

	silenceRMSThreshold = 1e-6
	referenceOctave     = 4
)

// Classifier maps a 32-dim feature vector to a per-semitone confidence
// distribution over 12 pitch classes. Implementations are the pluggable
// pre-trained model artifact; this package supplies only the contract,
// never the weights.
type Classifier interface {
	// Classify returns a probability per semitone class (len 12).
	Classify(features []float64) []float64
}

// Detector is a ChordResult-producing strategy that substitutes the
// spectral chord detector with ML inference, satisfying the same external
// ChordResult shape as the rest of the package.
type Detector struct {
	classifier Classifier
	octave     int
}

// New constructs a Detector bound to a classifier. octave is the reference
// octave used to map a semitone class to a concrete frequency; pass 0 to
// use the default (octave 4).
func New(classifier Classifier, octave int) *Detector {
	if octave <= 0 {
		octave = referenceOctave
	}
	return &Detector{classifier: classifier, octave: octave}
}

// DetectChord runs feature extraction and classifier inference, returning
// the same ChordResult shape as the spectral detector.
func (d *Detector) DetectChord(buffer []float64, sampleRate int) pitch.ChordResult {
	if len(buffer) < 2 || sampleRate <= 0 || d.classifier == nil {
		return pitch.NoChordResult()
	}

	if numerics.RMS(buffer) < silenceRMSThreshold {
		return pitch.NoChordResult()
	}

	features, err := extractFeaturesConcurrently(buffer, sampleRate)
	if err != nil {
		return pitch.NoChordResult()
	}

	probs := d.classifier.Classify(features)
	if len(probs) == 0 {
		return pitch.NoChordResult()
	}

	type scored struct {
		class int
		prob  float64
	}
	var retained []scored
	for class, p := range probs {
		if p >= ConfidenceThreshold {
			retained = append(retained, scored{class: class, prob: p})
		}
	}
	if len(retained) == 0 {
		return pitch.NoChordResult()
	}

	sort.SliceStable(retained, func(i, j int) bool {
		return retained[i].prob > retained[j].prob
	})
	if len(retained) > MaxPitches {
		retained = retained[:MaxPitches]
	}

	pitches := make([]float64, len(retained))
	var sumProb float64
	for i, r := range retained {
		midiNote := d.octave*12 + r.class
		pitches[i] = 440 * math.Pow(2, float64(midiNote-69)/12)
		sumProb += r.prob
	}

	return pitch.ChordResult{
		PitchesHz:  pitches,
		Confidence: sumProb / float64(len(retained)),
	}
}

// extractFeaturesConcurrently runs the three independent feature-extraction
// stages (MFCC-like, chroma, spectral contrast) over the same spectrum
// concurrently via errgroup, since each is a read-only reduction over mag
// with no shared mutable state and nothing to gain from running serially.
func extractFeaturesConcurrently(buffer []float64, sampleRate int) ([]float64, error) {
	samples := buffer
	if sampleRate != targetSampleRate && sampleRate > 0 {
		samples = resampleLinear(buffer, sampleRate, targetSampleRate)
		sampleRate = targetSampleRate
	}

	frame := make([]float64, frameSize)
	copy(frame, samples)

	spectrum := numerics.WindowedSpectrum(frame, frameSize, sampleRate)
	mag := numerics.Magnitude(spectrum.Bins)

	var mfcc, chroma, contrast []float64
	g, _ := errgroup.WithContext(context.Background())

	g.Go(func() error {
		mfcc = mfccLike(mag, sampleRate)
		return nil
	})
	g.Go(func() error {
		chroma = chromaVector(mag, sampleRate)
		return nil
	})
	g.Go(func() error {
		contrast = spectralContrast(mag)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	features := make([]float64, 0, FeatureSize)
	features = append(features, mfcc...)
	features = append(features, chroma...)
	features = append(features, contrast...)
	return features, nil
}
