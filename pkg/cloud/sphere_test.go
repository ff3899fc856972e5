package cloud

import (
	"math"
	"math/rand/v2"
	"sync"
	"testing"
)

func TestSamplerOnSphere(t *testing.T) {
	s := NewSampler(1)
	for _, r := range []float64{0.5, 1, 4, 100} {
		for i := 0; i < 1000; i++ {
			p := s.Point(r)
			if d := math.Abs(p.Norm() - r); d > 1e-9*r {
				t.Fatalf("Point(%v) = %+v, |p| = %v, off by %v", r, p, p.Norm(), d)
			}
		}
	}
}

// z/r must be uniform on [-1, 1]; sampling the polar angle uniformly would
// pile points up near ±1 instead.
func TestSamplerAreaUniform(t *testing.T) {
	const (
		n       = 200000
		buckets = 10
		r       = 4.0
	)
	s := NewSampler(7)

	var counts [buckets]int
	for i := 0; i < n; i++ {
		z := s.Point(r).Z / r
		b := int((z + 1) / 2 * buckets)
		if b == buckets {
			b--
		}
		counts[b]++
	}

	// Chi-square with 9 degrees of freedom; 37.7 is the 1e-5 critical value.
	expected := float64(n) / buckets
	var chi2 float64
	for _, c := range counts {
		d := float64(c) - expected
		chi2 += d * d / expected
	}
	if chi2 > 37.7 {
		t.Errorf("z/r not uniform: chi2 = %.2f, counts = %v", chi2, counts)
	}
}

func TestSamplerDeterministic(t *testing.T) {
	a, b := NewSampler(42), NewSampler(42)
	for i := 0; i < 100; i++ {
		if pa, pb := a.Point(4), b.Point(4); pa != pb {
			t.Fatalf("draw %d: %+v != %+v", i, pa, pb)
		}
	}

	c := NewSampler(43)
	if NewSampler(42).Point(4) == c.Point(4) {
		t.Error("different seeds should give different points")
	}
}

func TestSamplerFrom(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	s := NewSamplerFrom(rng)
	p := s.Point(2)
	if math.Abs(p.Norm()-2) > 1e-9 {
		t.Errorf("|p| = %v, want 2", p.Norm())
	}
}

func TestSamplerConcurrent(t *testing.T) {
	s := NewRandomSampler()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				if p := s.Point(1); math.Abs(p.Norm()-1) > 1e-9 {
					t.Errorf("|p| = %v, want 1", p.Norm())
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestVec3Array(t *testing.T) {
	v := Vec3{1, 2, 3}
	if got := v.Array(); got != [3]float64{1, 2, 3} {
		t.Errorf("Array() = %v", got)
	}
}
