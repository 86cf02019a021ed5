// Package fft provides pooled real-valued fourier transform plans.
package fft

import (
	"sync"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Plan building is not free, and the resampler asks for the same lengths
// over and over (one canonical cycle length, a handful of raw cycle
// lengths). A plan carries internal scratch, so a single cached plan per
// length would race when cycles are scored in parallel. Plans live in a
// per-length pool instead: each call checks one out for the duration of
// its transform.
var pools = struct {
	sync.Mutex
	byLen map[int]*sync.Pool
}{byLen: map[int]*sync.Pool{}}

func pool(n int) *sync.Pool {
	pools.Lock()
	defer pools.Unlock()

	if p, ok := pools.byLen[n]; ok {
		return p
	}

	p := &sync.Pool{New: func() any { return fourier.NewFFT(n) }}
	pools.byLen[n] = p

	return p
}

// Forward returns the len(seq)/2+1 fourier coefficients of seq. Safe for
// concurrent use.
func Forward(seq []float64) []complex128 {
	p := pool(len(seq))
	plan := p.Get().(*fourier.FFT)
	out := plan.Coefficients(make([]complex128, len(seq)/2+1), seq)
	p.Put(plan)

	return out
}

// Inverse returns the n-point real sequence for coeff, normalized so that
// Inverse(Forward(x), len(x)) == x. coeff must hold n/2+1 values. Safe for
// concurrent use.
func Inverse(coeff []complex128, n int) []float64 {
	p := pool(n)
	plan := p.Get().(*fourier.FFT)
	seq := plan.Sequence(make([]float64, n), coeff)
	p.Put(plan)

	scale := 1.0 / float64(n)
	for i := range seq {
		seq[i] *= scale
	}

	return seq
}
