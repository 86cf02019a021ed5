package sqi

import (
	"math"
	"testing"
)

func testSine(freq, rate, seconds float64) []float64 {
	n := int(rate * seconds)
	out := make([]float64, n)

	for i := range out {
		out[i] = math.Sin(2.0 * math.Pi * freq * float64(i) / rate)
	}

	return out
}

func TestDetectExtremaSine(t *testing.T) {
	// 0.25Hz at 25Hz: one peak and one trough per 100 samples.
	x := testSine(0.25, 25.0, 120.0)

	es := DetectExtrema(x, 0.05, 50)

	if got := len(es.Peaks); got != 30 {
		t.Errorf("peaks = %d, want 30", got)
	}

	if got := len(es.Troughs); got != 30 {
		t.Errorf("troughs = %d, want 30", got)
	}

	for i := 1; i < len(es.Peaks); i++ {
		if gap := es.Peaks[i] - es.Peaks[i-1]; gap < 50 {
			t.Fatalf("peaks %d apart, want >= 50", gap)
		}
	}
}

func TestDetectExtremaOrdered(t *testing.T) {
	x := testSine(0.5, 25.0, 60.0)

	es := DetectExtrema(x, 0.05, 10)

	for i := 1; i < len(es.Peaks); i++ {
		if es.Peaks[i] <= es.Peaks[i-1] {
			t.Fatal("peak indices not strictly increasing")
		}
	}
}

func TestDetectExtremaThreshold(t *testing.T) {
	// Small ripple riding on a tall oscillation; the threshold should keep
	// only the tall peaks.
	rate := 25.0
	x := make([]float64, 3000)
	for i := range x {
		ts := float64(i) / rate
		x[i] = math.Sin(2.0*math.Pi*0.25*ts) + 0.02*math.Sin(2.0*math.Pi*3.0*ts)
	}

	es := DetectExtrema(x, 0.3, 1)

	for _, p := range es.Peaks {
		if x[p] < 0.3 {
			t.Fatalf("kept sub-threshold peak of height %g", x[p])
		}
	}
}

func TestDistanceSuppressionKeepsTaller(t *testing.T) {
	x := make([]float64, 40)
	x[10] = 1.0
	x[14] = 2.0 // taller neighbor inside the distance window

	es := DetectExtrema(x, 0.0, 8)

	if len(es.Peaks) != 1 || es.Peaks[0] != 14 {
		t.Errorf("peaks = %v, want [14]", es.Peaks)
	}
}

func TestTroughsMirrorPeaks(t *testing.T) {
	x := testSine(0.25, 25.0, 120.0)
	neg := make([]float64, len(x))
	for i, v := range x {
		neg[i] = -v
	}

	a := DetectExtrema(x, 0.05, 50)
	b := DetectExtrema(neg, 0.05, 50)

	if len(a.Peaks) != len(b.Troughs) {
		t.Fatalf("peaks of x (%d) != troughs of -x (%d)", len(a.Peaks), len(b.Troughs))
	}

	for i := range a.Peaks {
		if a.Peaks[i] != b.Troughs[i] {
			t.Fatalf("index %d: %d != %d", i, a.Peaks[i], b.Troughs[i])
		}
	}
}

func TestSplitCycles(t *testing.T) {
	x := testSine(0.25, 25.0, 120.0)
	extrema := []int{100, 200, 300, 450}

	cycles := splitCycles(x, extrema)

	if len(cycles) != 3 {
		t.Fatalf("cycles = %d, want 3", len(cycles))
	}

	// Boundary-inclusive on both ends: adjacent cycles share the boundary
	// sample.
	if len(cycles[0]) != 101 || len(cycles[2]) != 151 {
		t.Errorf("cycle lengths = %d, %d; want 101, 151", len(cycles[0]), len(cycles[2]))
	}

	if cycles[0][100] != x[200] || cycles[1][0] != x[200] {
		t.Error("adjacent cycles do not share their boundary sample")
	}
}
