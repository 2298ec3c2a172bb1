// Package embedding maps text to fixed-dimensional vectors and scores their
// similarity.
package embedding

import (
	"context"
	"math"
)

// Embedder converts text strings into numeric vectors, one per input and in
// input order. Implementations are read-only after construction and safe for
// concurrent use.
type Embedder interface {
	Name() string
	Dimensions() int
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// Cosine returns the cosine similarity of a and b. Vectors with zero norm
// score 0.
func Cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
