package dsp

import (
	"github.com/physiopy/physioqc/fft"
)

// ResampleFourier resamples x to m points in the fourier domain: transform,
// truncate or zero-extend the spectrum, transform back. Periodic-signal
// resampling with no added phase, the natural fit for single-cycle segments
// about to be shape compared.
func ResampleFourier(x []float64, m int) []float64 {
	n := len(x)

	if n == m {
		out := make([]float64, n)
		copy(out, x)
		return out
	}

	coeff := fft.Forward(x)
	target := make([]complex128, m/2+1)

	shared := len(coeff)
	if len(target) < shared {
		shared = len(target)
	}
	copy(target, coeff[:shared])

	// A populated terminal bin is a folded Nyquist component. Halve it when
	// it stops (or starts) being terminal so its energy is not doubled.
	if n%2 == 0 && shared == len(coeff) && m > n {
		target[shared-1] *= 0.5
	}
	if m%2 == 0 && shared == len(target) && m < n {
		target[shared-1] = complex(real(target[shared-1]), 0)
	}

	out := fft.Inverse(target, m)

	// Inverse normalizes by m; rescale to the source length so amplitude
	// carries over.
	scale := float64(m) / float64(n)
	for i := range out {
		out[i] *= scale
	}

	return out
}
