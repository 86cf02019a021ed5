package waveform

import (
	"math"
	"testing"
)

func ramp(n int, slope float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = slope * float64(i)
	}

	return out
}

func TestValidate(t *testing.T) {
	if err := New([]float64{1, 2, 3}, 25.0).Validate(); err != nil {
		t.Errorf("valid waveform rejected: %v", err)
	}

	if err := New([]float64{1}, -1.0).Validate(); err == nil {
		t.Error("negative rate accepted")
	}

	if err := New(nil, 25.0).Validate(); err == nil {
		t.Error("empty waveform accepted")
	}
}

func TestDuration(t *testing.T) {
	w := New(make([]float64, 250), 25.0)

	if got := w.Duration(); got != 10.0 {
		t.Errorf("duration = %g, want 10", got)
	}

	if got := w.TimeAt(50); got != 2.0 {
		t.Errorf("TimeAt(50) = %g, want 2", got)
	}
}

func TestResampledRate(t *testing.T) {
	w := New(ramp(1000, 0.5), 100.0)
	out := w.Resampled(25.0)

	if out.Rate != 25.0 {
		t.Fatalf("rate = %g, want 25", out.Rate)
	}

	if out.Len() != 250 {
		t.Fatalf("length = %d, want 250", out.Len())
	}

	// Linear interpolation reproduces a linear signal exactly.
	for i, v := range out.Samples {
		want := 0.5 * float64(i) * 4.0
		if math.Abs(v-want) > 1e-9 {
			t.Fatalf("sample %d = %g, want %g", i, v, want)
		}
	}
}

func TestResampledSameRateCopies(t *testing.T) {
	w := New([]float64{1, 2, 3}, 25.0)
	out := w.Resampled(25.0)

	out.Samples[0] = 99.0
	if w.Samples[0] != 1.0 {
		t.Error("resampling at the same rate aliased the input")
	}
}

func TestGradient(t *testing.T) {
	w := New(ramp(100, 2.0), 10.0)
	g := w.Gradient()

	// d(2i)/dt at 10Hz is 20 everywhere, ends included.
	for i, v := range g.Samples {
		if math.Abs(v-20.0) > 1e-9 {
			t.Fatalf("gradient[%d] = %g, want 20", i, v)
		}
	}
}

func TestNormalized(t *testing.T) {
	w := New([]float64{2, 4, 6}, 25.0)
	out := w.Normalized()

	want := []float64{-1, 0, 1}
	for i, v := range out.Samples {
		if math.Abs(v-want[i]) > 1e-12 {
			t.Fatalf("normalized[%d] = %g, want %g", i, v, want[i])
		}
	}
}

func TestNormalizedFlat(t *testing.T) {
	w := New([]float64{3, 3, 3, 3}, 25.0)

	for i, v := range w.Normalized().Samples {
		if v != 0.0 {
			t.Fatalf("flat normalized[%d] = %g, want 0", i, v)
		}
	}
}
