package analyses

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"docintel-backend/internal/shared/metrics"
	"docintel-backend/internal/shared/server/respond"
	"docintel-backend/internal/shared/telemetry"
)

const (
	maxFilesPerRequest = 10
	maxRequestSize     = 50 << 20 // 50MB across all uploaded files
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze", h.analyze)
	rg.GET("/analyses", h.list)
	rg.GET("/analyses/:id", h.get)
}

func (h *Handler) analyze(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestSize)

	form, err := c.MultipartForm()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid multipart form", nil)
		return
	}

	personaVals, personaPresent := form.Value["persona"]
	jobVals, jobPresent := form.Value["job"]
	if !personaPresent || len(personaVals) == 0 {
		respond.Error(c, http.StatusUnprocessableEntity, "validation_error", "persona field is required", nil)
		return
	}
	if !jobPresent || len(jobVals) == 0 {
		respond.Error(c, http.StatusUnprocessableEntity, "validation_error", "job field is required", nil)
		return
	}

	persona := strings.TrimSpace(personaVals[0])
	job := strings.TrimSpace(jobVals[0])
	if persona == "" || job == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Persona and job are required", nil)
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "At least one PDF file is required", nil)
		return
	}
	if len(files) > maxFilesPerRequest {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Maximum 10 files allowed", nil)
		return
	}
	for _, fh := range files {
		if !strings.HasSuffix(strings.ToLower(fh.Filename), ".pdf") {
			respond.Error(c, http.StatusBadRequest, "validation_error", fmt.Sprintf("File %s is not a PDF", fh.Filename), nil)
			return
		}
	}

	metrics.IncAnalysisStarted()
	started := time.Now()

	result, err := h.Svc.Analyze(c.Request.Context(), persona, job, files)
	if err != nil {
		metrics.IncAnalysisFailed()
		telemetry.Error("analyze.failed", map[string]any{
			"err":        err.Error(),
			"files":      len(files),
			"request_id": c.GetString("requestId"),
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Error processing documents", nil)
		return
	}

	metrics.IncAnalysisCompleted()
	metrics.AddDocumentsProcessed(len(files))
	metrics.ObserveAnalysisDurationMs(float64(time.Since(started)) / float64(time.Millisecond))

	c.Set("analysisId", result.ID)
	respond.JSON(c, http.StatusOK, result)
}

func (h *Handler) list(c *gin.Context) {
	results, err := h.Svc.ListRecent(c.Request.Context(), 100)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list analyses", nil)
		return
	}
	respond.JSON(c, http.StatusOK, results)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")

	result, err := h.Svc.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Analysis not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch analysis", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, result)
}
