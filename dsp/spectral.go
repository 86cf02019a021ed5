package dsp

import (
	"github.com/mjibson/go-dsp/spectral"
)

// Welch estimation parameters. Blocks of up to 256 samples with half
// overlap, zero padded to a 4096 point transform for fine bin spacing at
// the sub-hertz rates physiological signals live at.
const (
	welchBlock = 256
	welchNFFT  = 4096
)

// DominantFrequency returns the frequency of maximum spectral power in
// segment, estimated with Welch's method.
func DominantFrequency(segment []float64, rate float64) float64 {
	block := welchBlock
	if len(segment) < block {
		block = len(segment)
	}
	// Pwelch wants an even block size.
	block -= block % 2

	opts := &spectral.PwelchOptions{
		NFFT:     block,
		Pad:      welchNFFT,
		Noverlap: block / 2,
	}

	power, freqs := spectral.Pwelch(segment, rate, opts)

	peak := 0
	for i := 1; i < len(power); i++ {
		if power[i] > power[peak] {
			peak = i
		}
	}

	return freqs[peak]
}
