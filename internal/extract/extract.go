package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PageText holds the cleaned text of one PDF page. Page numbers are 1-based.
type PageText struct {
	Page int
	Text string
}

var (
	whitespaceRuns = regexp.MustCompile(`\s+`)
	newlineRuns    = regexp.MustCompile(`\n+`)
)

// CleanText normalizes whitespace runs to a single space and newline runs to
// a single newline, then trims the result.
func CleanText(text string) string {
	text = whitespaceRuns.ReplaceAllString(text, " ")
	text = newlineRuns.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

// PagesFromFile opens the PDF at path and returns cleaned text for every page
// whose extracted text is non-empty. Pages that yield no text are skipped.
func PagesFromFile(path string) (pages []PageText, err error) {
	// The pdf package panics on some malformed content streams.
	defer func() {
		if rec := recover(); rec != nil {
			pages = nil
			err = fmt.Errorf("parse pdf %s: %v", path, rec)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	total := reader.NumPage()
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		raw, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("extract page %d: %w", i, err)
		}
		cleaned := CleanText(raw)
		if cleaned == "" {
			continue
		}
		pages = append(pages, PageText{Page: i, Text: cleaned})
	}

	return pages, nil
}

// Extractor adapts PagesFromFile to the orchestrator's extraction interface.
type Extractor struct{}

// Pages returns per-page cleaned text for the PDF at path.
func (Extractor) Pages(path string) ([]PageText, error) {
	return PagesFromFile(path)
}
