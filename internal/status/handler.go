package status

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docintel-backend/internal/shared/server/respond"
)

const listLimit = 1000

// Handler wires HTTP handlers to the repo.
type Handler struct {
	Repo Repo
}

// NewHandler constructs a Handler.
func NewHandler(repo Repo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterRoutes attaches status routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/status", h.create)
	rg.GET("/status", h.list)
}

type createRequest struct {
	ClientName string `json:"client_name"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	req.ClientName = strings.TrimSpace(req.ClientName)
	if req.ClientName == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "client_name is required", nil)
		return
	}

	check := Check{
		ID:         uuid.NewString(),
		ClientName: req.ClientName,
		Timestamp:  time.Now().UTC(),
	}
	if err := h.Repo.Create(c.Request.Context(), check); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create status check", nil)
		return
	}

	respond.JSON(c, http.StatusOK, check)
}

func (h *Handler) list(c *gin.Context) {
	checks, err := h.Repo.List(c.Request.Context(), listLimit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list status checks", nil)
		return
	}
	respond.JSON(c, http.StatusOK, checks)
}
