package analyses_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"docintel-backend/internal/bootstrap"
	"docintel-backend/internal/pdftest"
	"docintel-backend/internal/shared/config"
)

func newTestApp(t *testing.T) *bootstrap.App {
	t.Helper()
	app, err := bootstrap.Build(config.Config{
		Env:              "dev",
		MaxChunkLength:   500,
		MaxSummaryLength: 200,
	})
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	return app
}

type pdfUpload struct {
	name string
	data []byte
}

func analyzeRequest(t *testing.T, fields map[string]string, files []pdfUpload) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, val := range fields {
		if err := w.WriteField(key, val); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile("files", f.name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(f.data); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

type errorPayload struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type analysisPayload struct {
	ID      string `json:"id"`
	Persona string `json:"persona"`
	Job     string `json:"job"`
	Results []struct {
		Page    int     `json:"page"`
		Rank    int     `json:"rank"`
		Score   float64 `json:"score"`
		Text    string  `json:"text"`
		Summary string  `json:"summary"`
	} `json:"results"`
}

func decodeJSON(t *testing.T, body *bytes.Buffer, dst any) {
	t.Helper()
	if err := json.Unmarshal(body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", body.String(), err)
	}
}

func TestAnalyzeValidation(t *testing.T) {
	app := newTestApp(t)
	validPDF := pdftest.Build("Valid content for upload tests that is long enough to matter.")

	elevenFiles := make([]pdfUpload, 0, 11)
	for i := 0; i < 11; i++ {
		elevenFiles = append(elevenFiles, pdfUpload{fmt.Sprintf("doc%d.pdf", i), validPDF})
	}

	tests := []struct {
		name        string
		fields      map[string]string
		files       []pdfUpload
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "missing persona field",
			fields:      map[string]string{"job": "review"},
			files:       []pdfUpload{{"doc.pdf", validPDF}},
			wantStatus:  http.StatusUnprocessableEntity,
			wantMessage: "persona field is required",
		},
		{
			name:        "missing job field",
			fields:      map[string]string{"persona": "Analyst"},
			files:       []pdfUpload{{"doc.pdf", validPDF}},
			wantStatus:  http.StatusUnprocessableEntity,
			wantMessage: "job field is required",
		},
		{
			name:        "blank persona",
			fields:      map[string]string{"persona": "   ", "job": "review"},
			files:       []pdfUpload{{"doc.pdf", validPDF}},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Persona and job are required",
		},
		{
			name:        "no files",
			fields:      map[string]string{"persona": "Analyst", "job": "review"},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "At least one PDF file is required",
		},
		{
			name:        "too many files",
			fields:      map[string]string{"persona": "Analyst", "job": "review"},
			files:       elevenFiles,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Maximum 10 files allowed",
		},
		{
			name:        "non-pdf upload",
			fields:      map[string]string{"persona": "Analyst", "job": "review"},
			files:       []pdfUpload{{"notes.txt", []byte("plain text")}},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "File notes.txt is not a PDF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			app.Router.ServeHTTP(rec, analyzeRequest(t, tt.fields, tt.files))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			var payload errorPayload
			decodeJSON(t, rec.Body, &payload)
			if payload.Error.Message != tt.wantMessage {
				t.Fatalf("message = %q, want %q", payload.Error.Message, tt.wantMessage)
			}
		})
	}

	// None of the rejected requests may leave a record behind.
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analyses", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var listed []analysisPayload
	decodeJSON(t, rec.Body, &listed)
	if len(listed) != 0 {
		t.Fatalf("expected no persisted analyses, got %d", len(listed))
	}
}

func TestAnalyzeAndFetchFlow(t *testing.T) {
	app := newTestApp(t)

	files := []pdfUpload{
		{"practices.pdf", pdftest.Build("Software engineering practices include code review, automated testing and continuous integration pipelines for every software change.")},
		{"menu.pdf", pdftest.Build("Slow roasted vegetables taste best with garlic butter sauce and a generous pinch of sea salt on top.")},
	}
	fields := map[string]string{
		"persona": "Software Engineer",
		"job":     "find software engineering best practices",
	}

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, analyzeRequest(t, fields, files))
	if rec.Code != http.StatusOK {
		t.Fatalf("analyze status = %d (body %s)", rec.Code, rec.Body.String())
	}

	var created analysisPayload
	decodeJSON(t, rec.Body, &created)
	if created.ID == "" {
		t.Fatal("response is missing an id")
	}
	if created.Persona != fields["persona"] || created.Job != fields["job"] {
		t.Fatalf("persona/job not echoed: %+v", created)
	}
	if len(created.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(created.Results))
	}
	for i, section := range created.Results {
		if section.Rank != i+1 {
			t.Fatalf("rank at %d = %d", i, section.Rank)
		}
		if i > 0 && created.Results[i-1].Score < section.Score {
			t.Fatalf("scores not descending: %+v", created.Results)
		}
	}
	if !strings.Contains(strings.ToLower(created.Results[0].Text), "software") {
		t.Fatalf("top section should match the query, got %q", created.Results[0].Text)
	}

	rec = httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analyses/"+created.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var fetched analysisPayload
	decodeJSON(t, rec.Body, &fetched)
	if fetched.ID != created.ID || len(fetched.Results) != len(created.Results) {
		t.Fatalf("fetched analysis differs: %+v", fetched)
	}

	rec = httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analyses", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var listed []analysisPayload
	decodeJSON(t, rec.Body, &listed)
	if len(listed) != 1 || listed[0].ID != created.ID {
		t.Fatalf("unexpected list: %+v", listed)
	}
}

func TestAnalyzeShortContentReturnsEmptyResults(t *testing.T) {
	app := newTestApp(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, analyzeRequest(t,
		map[string]string{"persona": "Analyst", "job": "review"},
		[]pdfUpload{{"tiny.pdf", pdftest.Build("Too short.")}},
	))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"results":[]`) {
		t.Fatalf("results should be an empty array, body %s", rec.Body.String())
	}
}

func TestAnalyzeCorruptPDFReturnsProcessingError(t *testing.T) {
	app := newTestApp(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, analyzeRequest(t,
		map[string]string{"persona": "Analyst", "job": "review"},
		[]pdfUpload{{"broken.pdf", []byte("not a pdf at all")}},
	))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d (body %s)", rec.Code, rec.Body.String())
	}
	var payload errorPayload
	decodeJSON(t, rec.Body, &payload)
	if payload.Error.Message != "Error processing documents" {
		t.Fatalf("message = %q", payload.Error.Message)
	}
}

func TestGetUnknownAnalysis(t *testing.T) {
	app := newTestApp(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analyses/does-not-exist", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	var payload errorPayload
	decodeJSON(t, rec.Body, &payload)
	if payload.Error.Message != "Analysis not found" {
		t.Fatalf("message = %q", payload.Error.Message)
	}
}

func TestRootEndpoint(t *testing.T) {
	app := newTestApp(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	decodeJSON(t, rec.Body, &body)
	if body["message"] != "Document Intelligence API" {
		t.Fatalf("unexpected body: %v", body)
	}
}
