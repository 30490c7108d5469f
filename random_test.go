package oilshape

import "testing"

func TestSeededRandomFirstValue(t *testing.T) {
	r := NewSeededRandom(1)
	want := float64(16807-1) / 2147483646
	if got := r.Float64(); got != want {
		t.Errorf("first value = %v, want %v", got, want)
	}
}

func TestSeededRandomDeterministic(t *testing.T) {
	a := NewSeededRandom(12345)
	b := NewSeededRandom(12345)
	c := NewSeededRandom(54321)
	differs := false
	for i := 0; i < 100; i++ {
		va, vb, vc := a.Float64(), b.Float64(), c.Float64()
		if va != vb {
			t.Fatalf("step %d: %v != %v for identical seeds", i, va, vb)
		}
		if va != vc {
			differs = true
		}
	}
	if !differs {
		t.Error("seeds 12345 and 54321 produced identical sequences")
	}
}

func TestSeededRandomRange(t *testing.T) {
	r := NewSeededRandom(99)
	for i := 0; i < 1000; i++ {
		v := r.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("draw %d = %v, want [0, 1)", i, v)
		}
	}
}

func TestNormalizeSeed(t *testing.T) {
	tests := []struct {
		in, want int64
	}{
		{5, 5},
		{0, 2147483646},
		{-1, 2147483646},
		{-5, 2147483642},
		{2147483647, 2147483646},
		{2147483648, 1},
	}
	for _, tt := range tests {
		if got := NormalizeSeed(tt.in); got != tt.want {
			t.Errorf("NormalizeSeed(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestZeroAndNegativeSeedsProduceValues(t *testing.T) {
	for _, seed := range []int64{0, -1, -2147483647} {
		r := NewSeededRandom(seed)
		for i := 0; i < 10; i++ {
			v := r.Float64()
			if !finite(v) || v < 0 || v >= 1 {
				t.Fatalf("seed %d draw %d = %v", seed, i, v)
			}
		}
	}
}

func TestNormalizeSeedFloat(t *testing.T) {
	if got := NormalizeSeedFloat(3.9); got != 3 {
		t.Errorf("NormalizeSeedFloat(3.9) = %d, want 3", got)
	}
	nan := 0.0
	nan = nan / nan
	if got := NormalizeSeedFloat(nan); got != 1 {
		t.Errorf("NormalizeSeedFloat(NaN) = %d, want 1", got)
	}
}

func TestSeededRandomIntn(t *testing.T) {
	r := NewSeededRandom(7)
	seen := make(map[int]bool)
	for i := 0; i < 500; i++ {
		v := r.Intn(4)
		if v < 0 || v >= 4 {
			t.Fatalf("Intn(4) = %d", v)
		}
		seen[v] = true
	}
	if len(seen) != 4 {
		t.Errorf("Intn(4) hit %d distinct values, want 4", len(seen))
	}
	if got := r.Intn(0); got != 0 {
		t.Errorf("Intn(0) = %d, want 0", got)
	}
}

func TestSeededRandomSeedInRange(t *testing.T) {
	r := NewSeededRandom(42)
	for i := 0; i < 200; i++ {
		s := r.Seed()
		if s < 1 || s > 2147483646 {
			t.Fatalf("Seed() = %d out of range", s)
		}
	}
}

func TestNormalizeDegrees(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{360, 0},
		{-90, 270},
		{725, 5},
	}
	for _, tt := range tests {
		if got := normalizeDegrees(tt.in); !approxEqual(got, tt.want, 1e-9) {
			t.Errorf("normalizeDegrees(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
