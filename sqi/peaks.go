package sqi

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// ExtremumSet holds the detected signal extrema as strictly increasing
// sample indices with the minimum spacing already enforced.
type ExtremumSet struct {
	Peaks   []int
	Troughs []int
}

// Of returns the extrema of the requested kind.
func (es ExtremumSet) Of(kind ExtremumKind) []int {
	if kind == Troughs {
		return es.Troughs
	}

	return es.Peaks
}

// DetectExtrema finds peaks and troughs of x. An extremum must rise at
// least thresh of the signal's amplitude range above its floor, and two
// kept extrema of the same kind are never closer than dist samples; when
// they collide the taller one wins.
func DetectExtrema(x []float64, thresh float64, dist int) ExtremumSet {
	neg := make([]float64, len(x))
	for i, v := range x {
		neg[i] = -v
	}

	return ExtremumSet{
		Peaks:   findPeaks(x, thresh, dist),
		Troughs: findPeaks(neg, thresh, dist),
	}
}

func findPeaks(x []float64, thresh float64, dist int) []int {
	if len(x) < 3 {
		return nil
	}

	lo := floats.Min(x)
	hi := floats.Max(x)
	height := lo + thresh*(hi-lo)

	var candidates []int
	for i := 1; i < len(x)-1; i++ {
		if x[i] > x[i-1] && x[i] > x[i+1] && x[i] >= height {
			candidates = append(candidates, i)
		}
	}

	if dist < 1 {
		dist = 1
	}

	// Tallest first; a kept peak suppresses every lower peak within dist.
	sort.Slice(candidates, func(a, b int) bool {
		return x[candidates[a]] > x[candidates[b]]
	})

	var kept []int
	for _, c := range candidates {
		ok := true
		for _, k := range kept {
			if abs(c-k) < dist {
				ok = false
				break
			}
		}

		if ok {
			kept = append(kept, c)
		}
	}

	sort.Ints(kept)

	return kept
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}

// splitCycles slices x into one segment per consecutive extremum pair.
// Boundaries are inclusive on both ends, so adjacent cycles share their
// boundary sample.
func splitCycles(x []float64, extrema []int) [][]float64 {
	if len(extrema) < 2 {
		return nil
	}

	cycles := make([][]float64, len(extrema)-1)

	for i := range cycles {
		start, end := extrema[i], extrema[i+1]

		seg := make([]float64, end-start+1)
		copy(seg, x[start:end+1])

		cycles[i] = seg
	}

	return cycles
}
