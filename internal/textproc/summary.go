package textproc

import (
	"strings"
	"unicode/utf8"
)

const maxSummarySentences = 3

// Summarize produces a short extractive summary of text: the leading
// sentences, at most three, whose cumulative length stays under maxLength.
// When no sentence fits it falls back to the prefix of the original text.
// The result is non-empty whenever text is non-empty.
func Summarize(text string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultSummaryLength
	}

	var sentences []string
	for _, s := range sentenceSplitter.Split(text, -1) {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}
	if len(sentences) == 0 {
		return prefix(text, maxLength)
	}

	limit := maxSummarySentences
	if len(sentences) < limit {
		limit = len(sentences)
	}
	summary := ""
	for _, sentence := range sentences[:limit] {
		if len(summary)+len(sentence) >= maxLength {
			break
		}
		summary += sentence + ". "
	}

	if trimmed := strings.TrimSpace(summary); trimmed != "" {
		return trimmed
	}
	return prefix(text, maxLength)
}

func prefix(text string, max int) string {
	if len(text) <= max {
		return text
	}
	// Back off to a rune boundary.
	for max > 0 && !utf8.RuneStart(text[max]) {
		max--
	}
	return text[:max]
}
