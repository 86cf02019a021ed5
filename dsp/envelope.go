package dsp

import (
	"math"

	"github.com/physiopy/physioqc/waveform"
)

// Envelope tracks the slow upper and lower amplitude bounds of a normalized
// oscillating signal. Each polarity is rectified and squared, low-pass
// filtered at cutoff to strip the oscillation itself, then mapped back to
// signal units through sqrt(2x). The lower envelope is non-positive.
func Envelope(w waveform.Waveform, cutoff float64, order int) (lower, upper []float64, err error) {
	n := len(w.Samples)

	pos := make([]float64, n)
	neg := make([]float64, n)

	for i, v := range w.Samples {
		if v > 0.0 {
			pos[i] = v * v
		} else {
			neg[i] = v * v
		}
	}

	posLP, err := LowpassFilter(w.WithSamples(pos), cutoff, order)
	if err != nil {
		return nil, nil, err
	}

	negLP, err := LowpassFilter(w.WithSamples(neg), cutoff, order)
	if err != nil {
		return nil, nil, err
	}

	upper = make([]float64, n)
	lower = make([]float64, n)

	for i := range upper {
		upper[i] = math.Sqrt(math.Max(0.0, 2.0*posLP.Samples[i]))
		lower[i] = -math.Sqrt(math.Max(0.0, 2.0*negLP.Samples[i]))
	}

	return lower, upper, nil
}
