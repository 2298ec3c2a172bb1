// Package textproc splits page text into scoreable chunks and produces short
// extractive summaries for them.
package textproc

import (
	"regexp"
	"strings"
)

const (
	// DefaultChunkLength is the soft upper bound on chunk size in bytes.
	DefaultChunkLength = 500
	// MinChunkLength is the minimum chunk size worth scoring; shorter chunks
	// are discarded by callers before embedding.
	MinChunkLength = 50
	// DefaultSummaryLength bounds the extractive summary size in bytes.
	DefaultSummaryLength = 200
)

var sentenceSplitter = regexp.MustCompile(`[.!?]+`)

// ChunkText splits text into sentence-grouped chunks of roughly maxLength
// characters. Sentences are accumulated greedily; a buffer is flushed once
// appending the next sentence would reach the bound. A single over-length
// sentence is kept whole rather than split.
func ChunkText(text string, maxLength int) []string {
	if maxLength <= 0 {
		maxLength = DefaultChunkLength
	}

	var chunks []string
	current := ""
	for _, sentence := range sentenceSplitter.Split(text, -1) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		if len(current)+len(sentence) < maxLength {
			current += sentence + ". "
			continue
		}
		if current != "" {
			chunks = append(chunks, strings.TrimSpace(current))
		}
		current = sentence + ". "
	}
	if current != "" {
		chunks = append(chunks, strings.TrimSpace(current))
	}

	return chunks
}
