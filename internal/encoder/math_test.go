package encoder

import (
	"math"
	"testing"
)

func TestMeanPool(t *testing.T) {
	vectors := [][]float32{
		{1, 2, 3},
		{3, 4, 5},
		{100, 100, 100}, // masked out
	}

	got := MeanPool(vectors, []int64{1, 1, 0})
	want := []float32{2, 3, 4}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("MeanPool() = %v, want %v", got, want)
		}
	}
}

func TestMeanPool_AllZeroMask(t *testing.T) {
	vectors := [][]float32{{1, 2}, {3, 4}}

	got := MeanPool(vectors, []int64{0, 0})

	if !IsZero(got) {
		t.Errorf("MeanPool() with all-zero mask = %v, want zero vector", got)
	}
	if len(got) != 2 {
		t.Errorf("MeanPool() len = %d, want 2", len(got))
	}
}

func TestMeanPool_Empty(t *testing.T) {
	if got := MeanPool(nil, nil); got != nil {
		t.Errorf("MeanPool(nil) = %v, want nil", got)
	}
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical unit vectors", []float32{1, 0}, []float32{1, 0}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"zero norm left", []float32{0, 0}, []float32{1, 1}, 0},
		{"zero norm right", []float32{1, 1}, []float32{0, 0}, 0},
		{"dimension mismatch", []float32{1}, []float32{1, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cosine(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Cosine() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCosine_SymmetricAndBounded(t *testing.T) {
	vecs := [][]float32{
		{0.3, -0.5, 0.8},
		{1, 2, 3},
		{-4, 0.1, 2.5},
	}

	for _, a := range vecs {
		for _, b := range vecs {
			ab := Cosine(a, b)
			ba := Cosine(b, a)
			if math.Abs(ab-ba) > 1e-12 {
				t.Errorf("Cosine(%v,%v)=%v != Cosine(%v,%v)=%v", a, b, ab, b, a, ba)
			}
			if ab < -1-1e-9 || ab > 1+1e-9 {
				t.Errorf("Cosine(%v,%v)=%v out of [-1,1]", a, b, ab)
			}
		}
		if self := Cosine(a, a); math.Abs(self-1) > 1e-9 {
			t.Errorf("Cosine(a,a) = %v, want 1", self)
		}
	}
}
