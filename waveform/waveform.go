// Package waveform provides the sampled-signal value type shared by all
// pipeline stages.
package waveform

import (
	"github.com/pkg/errors"

	"gonum.org/v1/gonum/floats"
)

// Waveform is an ordered run of samples at a fixed rate. Stages treat it as
// immutable and return new values rather than mutating in place.
type Waveform struct {
	Samples []float64 // signal samples, oldest first
	Rate    float64   // sample rate in Hz
}

// New returns a Waveform over samples at rate. The slice is not copied.
func New(samples []float64, rate float64) Waveform {
	return Waveform{Samples: samples, Rate: rate}
}

// Validate checks the basic waveform invariants.
func (w Waveform) Validate() error {
	if w.Rate <= 0 {
		return errors.Errorf("waveform: sample rate must be positive, got %g", w.Rate)
	}

	if len(w.Samples) == 0 {
		return errors.New("waveform: no samples")
	}

	return nil
}

// Len returns the number of samples.
func (w Waveform) Len() int {
	return len(w.Samples)
}

// Duration returns the covered time span in seconds.
func (w Waveform) Duration() float64 {
	return float64(len(w.Samples)) / w.Rate
}

// TimeAt converts a sample index to seconds from the start of the waveform.
func (w Waveform) TimeAt(idx int) float64 {
	return float64(idx) / w.Rate
}

// WithSamples returns a waveform holding samples at the receiver's rate.
func (w Waveform) WithSamples(samples []float64) Waveform {
	return Waveform{Samples: samples, Rate: w.Rate}
}

// Resampled converts the waveform to targetRate by linear interpolation.
// Interpolation is exact at shared sample instants and deterministic, which
// is all the 25-50Hz analysis rates need.
func (w Waveform) Resampled(targetRate float64) Waveform {
	if targetRate == w.Rate {
		out := make([]float64, len(w.Samples))
		copy(out, w.Samples)
		return Waveform{Samples: out, Rate: w.Rate}
	}

	ratio := w.Rate / targetRate
	outLen := int(float64(len(w.Samples)) * targetRate / w.Rate)
	if outLen < 1 {
		outLen = 1
	}

	out := make([]float64, outLen)
	last := len(w.Samples) - 1

	for i := range out {
		pos := float64(i) * ratio
		lo := int(pos)

		if lo >= last {
			out[i] = w.Samples[last]
			continue
		}

		frac := pos - float64(lo)
		out[i] = w.Samples[lo]*(1.0-frac) + w.Samples[lo+1]*frac
	}

	return Waveform{Samples: out, Rate: targetRate}
}

// Gradient returns the first derivative, estimated by centered differences
// over the sample interval, one-sided at both ends.
func (w Waveform) Gradient() Waveform {
	n := len(w.Samples)
	out := make([]float64, n)

	if n < 2 {
		return Waveform{Samples: out, Rate: w.Rate}
	}

	dt := 1.0 / w.Rate

	out[0] = (w.Samples[1] - w.Samples[0]) / dt
	out[n-1] = (w.Samples[n-1] - w.Samples[n-2]) / dt

	for i := 1; i < n-1; i++ {
		out[i] = (w.Samples[i+1] - w.Samples[i-1]) / (2.0 * dt)
	}

	return Waveform{Samples: out, Rate: w.Rate}
}

// Normalized rescales the waveform into [-1, 1] by its min-max range. A
// flat signal comes back all zero; the envelope stage downstream rejects it
// rather than this method dividing by zero.
func (w Waveform) Normalized() Waveform {
	out := make([]float64, len(w.Samples))

	lo := floats.Min(w.Samples)
	hi := floats.Max(w.Samples)

	if hi == lo {
		return Waveform{Samples: out, Rate: w.Rate}
	}

	span := hi - lo
	for i, v := range w.Samples {
		out[i] = 2.0*(v-lo)/span - 1.0
	}

	return Waveform{Samples: out, Rate: w.Rate}
}
