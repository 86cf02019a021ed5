package sqi

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/physiopy/physioqc/dsp"
)

// CycleRecord is the scored outcome for one detected cycle. Times are in
// seconds from the start of the waveform; Correlation is the Pearson
// correlation of the cycle's shape with the recording's average cycle.
type CycleRecord struct {
	StartTime   float64
	EndTime     float64
	CenterTime  float64
	Correlation float64
}

// canonicalShape resamples one cycle to length m in the fourier domain and
// min-max normalizes it to [0, 1]. A shapeless (constant) cycle comes back
// all zero and scores zero correlation later.
func canonicalShape(cycle []float64, m int) []float64 {
	shape := dsp.ResampleFourier(cycle, m)

	lo := floats.Min(shape)
	hi := floats.Max(shape)

	if hi == lo {
		return make([]float64, m)
	}

	floats.AddConst(-lo, shape)
	floats.Scale(1.0/(hi-lo), shape)

	return shape
}

// scoreCycles scores every cycle between consecutive extrema against the
// average cycle template. Two phases: all canonical shapes first (cycles
// are independent and resampled in parallel), then the template reduction,
// then the per-cycle correlations.
func scoreCycles(recon []float64, extrema []int, cfg *Config) ([]CycleRecord, error) {
	if len(extrema) < 3 {
		return nil, &InsufficientCyclesError{Extrema: len(extrema)}
	}

	cycles := splitCycles(recon, extrema)
	shapes := make([][]float64, len(cycles))

	jobs := make(chan int)

	var wg sync.WaitGroup
	workers := cfg.workerCount(len(cycles))

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for idx := range jobs {
				shapes[idx] = canonicalShape(cycles[idx], cfg.TemplateLen)
			}
		}()
	}

	for idx := range cycles {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	template := make([]float64, cfg.TemplateLen)
	for _, shape := range shapes {
		floats.Add(template, shape)
	}
	floats.Scale(1.0/float64(len(shapes)), template)

	records := make([]CycleRecord, len(cycles))

	for i := range records {
		start, end := extrema[i], extrema[i+1]

		corr := stat.Correlation(shapes[i], template, nil)
		if math.IsNaN(corr) {
			// Constant shape or constant template; no resemblance to score.
			corr = 0.0
		}

		records[i] = CycleRecord{
			StartTime:   float64(start) / cfg.TargetRate,
			EndTime:     float64(end) / cfg.TargetRate,
			CenterTime:  float64(start+end) / (2.0 * cfg.TargetRate),
			Correlation: corr,
		}
	}

	return records, nil
}
