package analyses

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"time"

	"github.com/google/uuid"

	"docintel-backend/internal/embedding"
	"docintel-backend/internal/extract"
	"docintel-backend/internal/textproc"
)

// PageExtractor returns cleaned per-page text for the PDF at path.
type PageExtractor interface {
	Pages(path string) ([]extract.PageText, error)
}

// Service runs the ranking pipeline and persists its results.
type Service struct {
	Repo             Repo
	Embedder         embedding.Embedder
	Extractor        PageExtractor
	MaxChunkLength   int
	MaxSummaryLength int
	TopK             int
}

// Analyze extracts, chunks and scores the uploaded files against the
// persona/job query, then persists and returns the ranked result. Files are
// processed sequentially; any failure aborts the whole request and nothing
// is persisted.
func (s *Service) Analyze(ctx context.Context, persona, job string, files []*multipart.FileHeader) (Analysis, error) {
	queryText := fmt.Sprintf("Persona: %s. Job: %s.", persona, job)
	queryVecs, err := s.Embedder.Embed(ctx, []string{queryText})
	if err != nil {
		return Analysis{}, fmt.Errorf("embed query: %w", err)
	}
	if len(queryVecs) == 0 {
		return Analysis{}, fmt.Errorf("embed query: no vector returned")
	}
	queryVec := queryVecs[0]

	var sections []scoredSection
	for _, fh := range files {
		fileSections, err := s.processFile(ctx, fh, queryVec)
		if err != nil {
			return Analysis{}, fmt.Errorf("process %s: %w", fh.Filename, err)
		}
		sections = append(sections, fileSections...)
	}

	results := rankSections(sections, s.TopK)

	analysis := Analysis{
		ID:        uuid.NewString(),
		Persona:   persona,
		Job:       job,
		Results:   results,
		Timestamp: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, analysis); err != nil {
		return Analysis{}, fmt.Errorf("persist analysis: %w", err)
	}
	return analysis, nil
}

// GetByID returns a stored analysis.
func (s *Service) GetByID(ctx context.Context, id string) (Analysis, error) {
	return s.Repo.GetByID(ctx, id)
}

// ListRecent returns up to limit stored analyses, newest first.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]Analysis, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return s.Repo.ListRecent(ctx, limit)
}

// processFile buffers one upload to a temp file, extracts its pages and
// scores every qualifying chunk against the query vector. The temp file is
// removed on all exit paths.
func (s *Service) processFile(ctx context.Context, fh *multipart.FileHeader, queryVec []float64) ([]scoredSection, error) {
	path, err := bufferToTemp(fh)
	if err != nil {
		return nil, err
	}
	defer os.Remove(path)

	pages, err := s.Extractor.Pages(path)
	if err != nil {
		return nil, err
	}

	var out []scoredSection
	for _, page := range pages {
		for _, chunk := range textproc.ChunkText(page.Text, s.MaxChunkLength) {
			if len(chunk) < textproc.MinChunkLength {
				continue
			}
			vecs, err := s.Embedder.Embed(ctx, []string{chunk})
			if err != nil {
				return nil, fmt.Errorf("embed chunk page %d: %w", page.Page, err)
			}
			if len(vecs) == 0 {
				return nil, fmt.Errorf("embed chunk page %d: no vector returned", page.Page)
			}
			out = append(out, scoredSection{
				Page:    page.Page,
				Text:    chunk,
				Score:   embedding.Cosine(queryVec, vecs[0]),
				Summary: textproc.Summarize(chunk, s.MaxSummaryLength),
			})
		}
	}
	return out, nil
}

func bufferToTemp(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "docintel-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	_, copyErr := io.Copy(tmp, src)
	closeErr := tmp.Close()
	if copyErr != nil || closeErr != nil {
		os.Remove(tmp.Name())
		if copyErr != nil {
			return "", fmt.Errorf("buffer upload: %w", copyErr)
		}
		return "", fmt.Errorf("buffer upload: %w", closeErr)
	}
	return tmp.Name(), nil
}
