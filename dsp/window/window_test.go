package window

import (
	"math"
	"testing"
)

func TestHammingShape(t *testing.T) {
	v := Hamming(64)

	if len(v) != 64 {
		t.Fatalf("length = %d, want 64", len(v))
	}

	// Periodic window: symmetric about the midpoint excluding index zero.
	for i := 1; i < 32; i++ {
		if math.Abs(v[i]-v[64-i]) > 1e-12 {
			t.Fatalf("asymmetric at %d: %g vs %g", i, v[i], v[64-i])
		}
	}

	edge := 25.0/46.0 - 21.0/46.0
	if math.Abs(v[0]-edge) > 1e-12 {
		t.Errorf("edge = %g, want %g", v[0], edge)
	}
}

func TestHammingCached(t *testing.T) {
	a := Hamming(128)
	b := Hamming(128)

	if &a[0] != &b[0] {
		t.Error("repeated lengths not served from the cache")
	}
}

func TestHannShape(t *testing.T) {
	v := Hann(4)
	want := []float64{0, 0.5, 1, 0.5}

	for i := range v {
		if math.Abs(v[i]-want[i]) > 1e-12 {
			t.Fatalf("hann[%d] = %g, want %g", i, v[i], want[i])
		}
	}
}

func TestApplyHamming(t *testing.T) {
	buf := []float64{1, 1, 1, 1, 1, 1, 1, 1}
	ApplyHamming(buf)

	v := Hamming(8)
	for i := range buf {
		if buf[i] != v[i] {
			t.Fatalf("taper[%d] = %g, want %g", i, buf[i], v[i])
		}
	}
}
