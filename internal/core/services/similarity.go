package services

import "math"

// CosineSimilarity returns dot(a, b) / (|a| * |b|) computed in float64.
// It returns 0 when the vectors differ in length, are empty, either norm
// is zero, or the result is not a finite number. The result is clamped
// to [-1, 1] to absorb rounding.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	score := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0
	}

	return math.Max(-1, math.Min(1, score))
}
