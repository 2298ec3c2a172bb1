package status_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"docintel-backend/internal/bootstrap"
	"docintel-backend/internal/shared/config"
)

func newTestApp(t *testing.T) *bootstrap.App {
	t.Helper()
	app, err := bootstrap.Build(config.Config{Env: "dev"})
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	return app
}

type checkPayload struct {
	ID         string `json:"id"`
	ClientName string `json:"client_name"`
	Timestamp  string `json:"timestamp"`
}

func postStatus(t *testing.T, app *bootstrap.App, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/status", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func TestCreateAndListStatusChecks(t *testing.T) {
	app := newTestApp(t)

	rec := postStatus(t, app, `{"client_name":"uptime-probe"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("create status = %d (body %s)", rec.Code, rec.Body.String())
	}
	var created checkPayload
	decode(t, rec.Body, &created)
	if created.ID == "" || created.ClientName != "uptime-probe" || created.Timestamp == "" {
		t.Fatalf("unexpected check: %+v", created)
	}

	rec = postStatus(t, app, `{"client_name":"second-probe"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("second create status = %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec = httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var listed []checkPayload
	decode(t, rec.Body, &listed)
	if len(listed) != 2 {
		t.Fatalf("got %d checks, want 2", len(listed))
	}
	// Oldest first.
	if listed[0].ClientName != "uptime-probe" || listed[1].ClientName != "second-probe" {
		t.Fatalf("unexpected order: %+v", listed)
	}
}

func TestCreateStatusValidation(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name string
		body string
	}{
		{"blank client name", `{"client_name":"   "}`},
		{"missing client name", `{}`},
		{"malformed json", `{"client_name":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postStatus(t, app, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d (body %s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func decode(t *testing.T, body *bytes.Buffer, dst any) {
	t.Helper()
	if err := json.Unmarshal(body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", body.String(), err)
	}
}
