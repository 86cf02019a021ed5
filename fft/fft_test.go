package fft

import (
	"math"
	"sync"
	"testing"
)

func generateReals(n int) []float64 {
	input := make([]float64, n)

	c := 3.1
	for i := range input {
		c += 0.3
		input[i] = math.Sin(c) * c
	}

	return input
}

func TestRoundTrip(t *testing.T) {
	for _, n := range []int{64, 100, 101} {
		in := generateReals(n)
		out := Inverse(Forward(in), n)

		for i := range in {
			if math.Abs(out[i]-in[i]) > 1e-9 {
				t.Fatalf("n=%d: sample %d = %g, want %g", n, i, out[i], in[i])
			}
		}
	}
}

func TestCoefficientCount(t *testing.T) {
	if got := len(Forward(generateReals(100))); got != 51 {
		t.Errorf("coefficients = %d, want 51", got)
	}

	if got := len(Forward(generateReals(101))); got != 51 {
		t.Errorf("coefficients = %d, want 51", got)
	}
}

func TestConcurrentTransforms(t *testing.T) {
	// Goroutines sharing one sequence length must not corrupt each other's
	// transforms. Run with -race.
	in := generateReals(100)
	want := Forward(in)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for i := 0; i < 200; i++ {
				got := Forward(in)
				for j := range got {
					if got[j] != want[j] {
						t.Errorf("coefficient %d = %v, want %v", j, got[j], want[j])
						return
					}
				}
			}
		}()
	}
	wg.Wait()
}

func Benchmark(b *testing.B) {
	reals := generateReals(4096)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		Forward(reals)
	}
}
