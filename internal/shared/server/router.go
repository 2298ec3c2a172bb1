package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docintel-backend/internal/analyses"
	"docintel-backend/internal/shared/config"
	"docintel-backend/internal/shared/metrics"
	"docintel-backend/internal/shared/server/middleware"
	"docintel-backend/internal/shared/server/respond"
	"docintel-backend/internal/status"
)

// RouterDeps carries the handlers wired into the router.
type RouterDeps struct {
	Config          config.Config
	AnalysisHandler *analyses.Handler
	StatusHandler   *status.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	api.GET("/", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"message": "Document Intelligence API"})
	})
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	deps.AnalysisHandler.RegisterRoutes(api)
	deps.StatusHandler.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
