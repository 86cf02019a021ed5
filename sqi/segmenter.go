package sqi

import (
	"sync"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/physiopy/physioqc/dsp"
	"github.com/physiopy/physioqc/dsp/window"
	"github.com/physiopy/physioqc/waveform"
)

// AnalysisSegment is one sliding-window view [Start, End) into the
// normalized signal, with the dominant frequency estimated inside it and
// the filter derived from that estimate.
type AnalysisSegment struct {
	Start int
	End   int
	Freq  float64
	Spec  dsp.FilterSpec
}

// envelopeNormalize rescales the signal by its amplitude envelope so every
// region oscillates over the same unit range. A collapsed envelope means
// there is no amplitude to normalize by and the input is unusable.
func envelopeNormalize(samples, lower, upper []float64) ([]float64, error) {
	out := make([]float64, len(samples))

	for i := range samples {
		span := upper[i] - lower[i]
		if span <= 1e-10 {
			return nil, &DegenerateEnvelopeError{Index: i}
		}

		out[i] = (samples[i] - lower[i]) / span
	}

	return out, nil
}

// segmentBounds partitions n samples into windows of segSamples stepped by
// stepSamples. The final window is anchored to the signal end so the whole
// signal is covered; it may overlap its predecessor by more than the
// nominal step.
func segmentBounds(n, segSamples, stepSamples int) []AnalysisSegment {
	var segs []AnalysisSegment

	for start := 0; start+segSamples < n; start += stepSamples {
		segs = append(segs, AnalysisSegment{Start: start, End: start + segSamples})
	}

	// Step never exceeds the window length, so anchoring the last window to
	// the end leaves no sample uncovered.
	segs = append(segs, AnalysisSegment{Start: n - segSamples, End: n})

	return segs
}

// analyzeSegment estimates the dominant frequency of one window and filters
// the window down to a narrow band around it. The returned samples are
// de-meaned and ready for overlap-add.
func analyzeSegment(normalized []float64, seg *AnalysisSegment, cfg *Config) ([]float64, error) {
	buf := make([]float64, seg.End-seg.Start)
	copy(buf, normalized[seg.Start:seg.End])

	// De-mean before the taper too: tapering a DC offset leaks power into
	// the lowest spectral bins and can outvote the real dominant frequency.
	floats.AddConst(-stat.Mean(buf, nil), buf)
	window.ApplyHamming(buf)
	floats.AddConst(-stat.Mean(buf, nil), buf)

	seg.Freq = dsp.DominantFrequency(buf, cfg.TargetRate)
	seg.Spec = dsp.FilterSpec{
		Kind:  dsp.Lowpass,
		Low:   seg.Freq * (1.0 + cfg.BandWidthPct/200.0),
		Order: cfg.SegFilterOrder,
	}

	filtered, err := dsp.Filter(waveform.New(buf, cfg.TargetRate), seg.Spec)
	if err != nil {
		return nil, err
	}

	out := filtered.Samples
	floats.AddConst(-stat.Mean(out, nil), out)

	return out, nil
}

// reconstruct runs the per-window analysis and rebuilds a full-length
// filtered signal by weighted overlap-add, normalized to unit standard
// deviation. Windows are processed in parallel; each produces its own
// buffer and accumulation happens strictly after the barrier, so no two
// goroutines touch shared state.
func reconstruct(normalized []float64, cfg *Config) ([]float64, []AnalysisSegment, error) {
	n := len(normalized)

	segSamples := int(cfg.SegLength * cfg.TargetRate)
	if segSamples < 1 {
		segSamples = 1
	}

	stepSamples := int(cfg.SegStep * cfg.TargetRate)
	if stepSamples < 1 {
		stepSamples = 1
	}

	segs := segmentBounds(n, segSamples, stepSamples)

	filtered := make([][]float64, len(segs))
	errs := make([]error, len(segs))

	jobs := make(chan int)

	var wg sync.WaitGroup
	workers := cfg.workerCount(len(segs))

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for idx := range jobs {
				filtered[idx], errs[idx] = analyzeSegment(normalized, &segs[idx], cfg)
			}
		}()
	}

	for idx := range segs {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, nil, err
		}
	}

	out := make([]float64, n)
	weights := make([]float64, n)

	for idx, seg := range segs {
		for i, v := range filtered[idx] {
			out[seg.Start+i] += v
			weights[seg.Start+i] += 1.0
		}
	}

	for i := range out {
		if weights[i] > 0.0 {
			out[i] /= weights[i]
		}
	}

	if sd := stat.PopStdDev(out, nil); sd > 0.0 {
		floats.Scale(1.0/sd, out)
	}

	for _, seg := range segs {
		cfg.Logger.Debug("analysis window",
			zap.Int("start", seg.Start),
			zap.Int("end", seg.End),
			zap.Float64("dominant_hz", seg.Freq))
	}

	return out, segs, nil
}

// slowestFrequency returns the minimum positive dominant frequency across
// the analysis windows, or 0 when no window produced one.
func slowestFrequency(segs []AnalysisSegment) float64 {
	min := 0.0

	for _, seg := range segs {
		if seg.Freq <= 0.0 {
			continue
		}
		if min == 0.0 || seg.Freq < min {
			min = seg.Freq
		}
	}

	return min
}
