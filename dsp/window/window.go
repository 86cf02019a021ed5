// Package window provides window functions for spectral analysis.
//
// See https://wikipedia.org/wiki/Window_function
package window

import (
	"math"
	"sync"
)

// hammingCache memoizes Hamming coefficient vectors by length. The vector is
// requested once per analysis segment and its generation is pure, so one
// process-wide cache is safe. Guarded for concurrent pipelines.
var hammingCache = struct {
	sync.Mutex
	vectors map[int][]float64
}{vectors: map[int][]float64{}}

// cosSum returns an n-point cosine sum window following a0.
func cosSum(n int, a0 float64) []float64 {
	var out = make([]float64, n)
	var a1 = 1.0 - a0
	var coef = 2.0 * math.Pi / float64(n)

	for i := range out {
		out[i] = a0 - a1*math.Cos(coef*float64(i))
	}

	return out
}

// Hamming returns the n-point Hamming coefficient vector. The returned slice
// is shared cache state and must not be modified by the caller.
func Hamming(n int) []float64 {
	hammingCache.Lock()
	defer hammingCache.Unlock()

	if v, ok := hammingCache.vectors[n]; ok {
		return v
	}

	v := cosSum(n, 25.0/46.0)
	hammingCache.vectors[n] = v

	return v
}

// Hann returns an n-point Hann window.
func Hann(n int) []float64 {
	return cosSum(n, 0.5)
}

// ApplyHamming tapers buf in place with the cached Hamming window of
// matching length.
func ApplyHamming(buf []float64) {
	v := Hamming(len(buf))
	for i := range buf {
		buf[i] *= v[i]
	}
}
