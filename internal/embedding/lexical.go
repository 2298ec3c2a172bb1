package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"regexp"
	"strings"
)

const defaultLexicalDims = 512

// Lexical is a deterministic bag-of-words embedder using feature hashing.
// Tokens are lowercased, stopwords dropped, hashed into a fixed number of
// buckets, term-frequency weighted and L2 normalized. It requires no model
// download or network access, so the service stays self-contained in dev
// and tests.
type Lexical struct {
	dims         int
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

// NewLexical constructs a Lexical embedder with the given dimensionality.
func NewLexical(dims int) *Lexical {
	if dims <= 0 {
		dims = defaultLexicalDims
	}
	return &Lexical{
		dims:         dims,
		tokenPattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`),
		stopwords:    defaultStopwords(),
	}
}

// Name returns the identifier of this embedder implementation.
func (e *Lexical) Name() string { return "lexical" }

// Dimensions returns the dimensionality of produced vectors.
func (e *Lexical) Dimensions() int { return e.dims }

// Embed computes one vector per input text, in input order.
func (e *Lexical) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([][]float64, 0, len(texts))
	for _, text := range texts {
		out = append(out, e.embedOne(text))
	}
	return out, nil
}

func (e *Lexical) embedOne(text string) []float64 {
	vec := make([]float64, e.dims)
	tokens := e.tokenize(text)
	if len(tokens) == 0 {
		return vec
	}
	for _, tok := range tokens {
		vec[e.bucket(tok)]++
	}
	total := float64(len(tokens))
	norm := 0.0
	for i := range vec {
		vec[i] /= total
		norm += vec[i] * vec[i]
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

func (e *Lexical) bucket(token string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(token))
	return int(h.Sum32() % uint32(e.dims))
}

func (e *Lexical) tokenize(text string) []string {
	lower := strings.ToLower(text)
	raw := e.tokenPattern.FindAllString(lower, -1)
	if len(raw) == 0 {
		return nil
	}
	out := raw[:0]
	for _, t := range raw {
		if _, isStop := e.stopwords[t]; isStop {
			continue
		}
		out = append(out, t)
	}
	return out
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
