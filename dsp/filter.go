// Package dsp provides the numeric primitives behind the quality pipeline:
// zero-phase Butterworth filtering, amplitude envelope tracking, Welch
// dominant-frequency estimation and fourier-domain resampling.
package dsp

import (
	"fmt"
	"math"

	"github.com/physiopy/physioqc/waveform"
)

// FilterKind selects the filter response shape.
type FilterKind int

const (
	Lowpass FilterKind = iota
	Highpass
	Bandpass
)

// FilterSpec describes one Butterworth filter. Cutoffs are in Hz and are
// clamped into (0, Nyquist) at application time, so specs derived from noisy
// frequency estimates never fail on range.
type FilterSpec struct {
	Kind  FilterKind // response shape
	Low   float64    // low cutoff (lowpass: the only cutoff)
	High  float64    // high cutoff (bandpass only)
	Order int        // Butterworth order per pass
}

// FilterError reports an input too short to pad for the requested filter.
type FilterError struct {
	Len    int // samples supplied
	MinLen int // samples required
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("dsp: input of %d samples too short to filter, need at least %d", e.Len, e.MinLen)
}

// biquad is one direct form II transposed second order section. First order
// sections set b2 and a2 to zero.
type biquad struct {
	b0, b1, b2 float64
	a1, a2     float64
}

func (s biquad) dcGain() float64 {
	return (s.b0 + s.b1 + s.b2) / (1.0 + s.a1 + s.a2)
}

// clampCutoff pulls cutoff into the open interval (0, Nyquist). The bounds
// stay slightly inside so the bilinear prewarp tangent remains finite.
func clampCutoff(cutoff, rate float64) float64 {
	nyquist := rate / 2.0

	if cutoff < nyquist*1e-6 {
		return nyquist * 1e-6
	}

	if cutoff > nyquist*0.999 {
		return nyquist * 0.999
	}

	return cutoff
}

// butterworth returns the cascade realizing an order-N Butterworth response
// at cutoff. Pole pairs become biquads with the classic quality factors
// 1/(2 sin((2k+1)pi/2N)); odd orders carry one extra first order section.
func butterworth(kind FilterKind, cutoff, rate float64, order int) []biquad {
	k := math.Tan(math.Pi * clampCutoff(cutoff, rate) / rate)
	kk := k * k

	sections := make([]biquad, 0, order/2+1)

	for pair := 0; pair < order/2; pair++ {
		q := 1.0 / (2.0 * math.Sin(float64(2*pair+1)*math.Pi/float64(2*order)))
		norm := 1.0 / (1.0 + k/q + kk)

		s := biquad{
			a1: 2.0 * (kk - 1.0) * norm,
			a2: (1.0 - k/q + kk) * norm,
		}

		if kind == Highpass {
			s.b0 = norm
			s.b1 = -2.0 * norm
			s.b2 = norm
		} else {
			s.b0 = kk * norm
			s.b1 = 2.0 * kk * norm
			s.b2 = kk * norm
		}

		sections = append(sections, s)
	}

	if order%2 == 1 {
		norm := 1.0 / (k + 1.0)

		s := biquad{a1: (k - 1.0) * norm}

		if kind == Highpass {
			s.b0 = norm
			s.b1 = -norm
		} else {
			s.b0 = k * norm
			s.b1 = k * norm
		}

		sections = append(sections, s)
	}

	return sections
}

// run filters x through the cascade in place. Each section starts at its
// steady state for the first input sample, so step transients do not leak
// into the output even at cutoffs far below the sample rate.
func run(sections []biquad, x []float64) {
	for _, s := range sections {
		x0 := x[0]
		y0 := s.dcGain() * x0

		z1 := y0 - s.b0*x0
		z2 := s.b2*x0 - s.a2*y0

		for i, v := range x {
			y := s.b0*v + z1
			z1 = s.b1*v - s.a1*y + z2
			z2 = s.b2*v - s.a2*y

			x[i] = y
		}
	}
}

func reverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}

// transientLen returns the settling length of the cascade: the distance a
// boundary disturbance needs to decay to about e^-10 of its size. The
// slowest pole dominates, and a biquad's pole radius squared is its a2.
func transientLen(sections []biquad) int {
	rmax := 0.0

	for _, s := range sections {
		r := math.Abs(s.a1)
		if s.a2 != 0.0 {
			r = math.Sqrt(math.Abs(s.a2))
		}

		if r > rmax {
			rmax = r
		}
	}

	if rmax <= 0.0 || rmax >= 1.0 {
		return 0
	}

	return int(-10.0 / math.Log(rmax))
}

// filtfilt applies the cascade forward and backward over an odd-reflection
// padded copy of x, cancelling phase distortion. Steady-state priming only
// absorbs the constant part of the boundary state; the rest decays over the
// cascade's settling length, so the pad scales with that length (a 0.01Hz
// highpass settles over hundreds of samples, not a fixed tap count), capped
// by the signal itself.
func filtfilt(sections []biquad, x []float64, order int) ([]float64, error) {
	minLen := 3*(2*order+1) + 1

	if len(x) < minLen {
		return nil, &FilterError{Len: len(x), MinLen: minLen}
	}

	padlen := transientLen(sections)
	if padlen < minLen-1 {
		padlen = minLen - 1
	}
	if padlen > len(x)-1 {
		padlen = len(x) - 1
	}

	n := len(x)
	buf := make([]float64, n+2*padlen)

	for i := 0; i < padlen; i++ {
		buf[i] = 2.0*x[0] - x[padlen-i]
		buf[padlen+n+i] = 2.0*x[n-1] - x[n-2-i]
	}
	copy(buf[padlen:], x)

	run(sections, buf)
	reverse(buf)
	run(sections, buf)
	reverse(buf)

	out := make([]float64, n)
	copy(out, buf[padlen:padlen+n])

	return out, nil
}

// LowpassFilter applies a zero-phase Butterworth low-pass to w.
func LowpassFilter(w waveform.Waveform, cutoff float64, order int) (waveform.Waveform, error) {
	out, err := filtfilt(butterworth(Lowpass, cutoff, w.Rate, order), w.Samples, order)
	if err != nil {
		return waveform.Waveform{}, err
	}

	return w.WithSamples(out), nil
}

// HighpassFilter applies a zero-phase Butterworth high-pass to w.
func HighpassFilter(w waveform.Waveform, cutoff float64, order int) (waveform.Waveform, error) {
	out, err := filtfilt(butterworth(Highpass, cutoff, w.Rate, order), w.Samples, order)
	if err != nil {
		return waveform.Waveform{}, err
	}

	return w.WithSamples(out), nil
}

// BandpassFilter applies a zero-phase Butterworth band-pass to w, realized
// as a high-pass then low-pass cascade. The pipeline's passbands keep their
// corners more than two decades apart, where the cascade is equivalent to a
// direct band-pass design.
func BandpassFilter(w waveform.Waveform, low, high float64, order int) (waveform.Waveform, error) {
	hp, err := HighpassFilter(w, low, order)
	if err != nil {
		return waveform.Waveform{}, err
	}

	return LowpassFilter(hp, high, order)
}

// Filter applies spec to w.
func Filter(w waveform.Waveform, spec FilterSpec) (waveform.Waveform, error) {
	switch spec.Kind {
	case Highpass:
		return HighpassFilter(w, spec.Low, spec.Order)
	case Bandpass:
		return BandpassFilter(w, spec.Low, spec.High, spec.Order)
	default:
		return LowpassFilter(w, spec.Low, spec.Order)
	}
}
