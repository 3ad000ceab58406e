package encoder

import "math"

// MeanPool averages per-position vectors over the attended positions.
// An all-zero mask yields the all-zero vector; callers treat that as
// "no embedding".
func MeanPool(vectors [][]float32, mask []int64) []float32 {
	if len(vectors) == 0 {
		return nil
	}

	dim := len(vectors[0])
	pooled := make([]float32, dim)
	var attended float32

	for i, vec := range vectors {
		if i >= len(mask) || mask[i] == 0 {
			continue
		}
		attended++
		for j := 0; j < dim && j < len(vec); j++ {
			pooled[j] += vec[j]
		}
	}

	if attended == 0 {
		return pooled
	}
	for j := range pooled {
		pooled[j] /= attended
	}
	return pooled
}

// Cosine computes cosine similarity between two vectors, defined as 0 when
// either norm is 0 or the dimensions differ.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// IsZero reports whether every component of v is 0.
func IsZero(v []float32) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}
