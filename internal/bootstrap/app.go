// Package bootstrap wires configuration, storage, the embedder and the HTTP
// router into a runnable application.
package bootstrap

import (
	"context"
	"database/sql"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"docintel-backend/internal/analyses"
	"docintel-backend/internal/embedding"
	"docintel-backend/internal/extract"
	"docintel-backend/internal/shared/config"
	"docintel-backend/internal/shared/server"
	"docintel-backend/internal/shared/storage/db"
	"docintel-backend/internal/status"
)

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	Embedder        embedding.Embedder
	AnalysesRepo    analyses.Repo
	StatusRepo      status.Repo
	AnalysesService *analyses.Service
	AnalysisHandler *analyses.Handler
	StatusHandler   *status.Handler
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return nil, err
	}

	var analysesRepo analyses.Repo
	var statusRepo status.Repo
	if sqlDB != nil {
		analysesRepo = &analyses.PGRepo{DB: sqlDB}
		statusRepo = &status.PGRepo{DB: sqlDB}
	} else {
		analysesRepo = analyses.NewMemoryRepo()
		statusRepo = status.NewMemoryRepo()
	}

	analysesSvc := &analyses.Service{
		Repo:             analysesRepo,
		Embedder:         embedder,
		Extractor:        extract.Extractor{},
		MaxChunkLength:   cfg.MaxChunkLength,
		MaxSummaryLength: cfg.MaxSummaryLength,
		TopK:             analyses.DefaultTopK,
	}

	app := &App{
		Config:          cfg,
		DB:              sqlDB,
		Embedder:        embedder,
		AnalysesRepo:    analysesRepo,
		StatusRepo:      statusRepo,
		AnalysesService: analysesSvc,
		AnalysisHandler: analyses.NewHandler(analysesSvc),
		StatusHandler:   status.NewHandler(statusRepo),
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		AnalysisHandler: app.AnalysisHandler,
		StatusHandler:   app.StatusHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, errDatabaseRequired
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildEmbedder(cfg config.Config) (embedding.Embedder, error) {
	if cfg.EmbeddingProvider == "openai" {
		client, err := embedding.NewOpenAI(embedding.OpenAIConfig{
			BaseURL:    cfg.EmbeddingBaseURL,
			APIKey:     cfg.EmbeddingAPIKey,
			Model:      cfg.EmbeddingModel,
			Dimensions: cfg.EmbeddingDims,
		})
		if err != nil {
			if isDevLike(cfg.Env) {
				log.Printf("bootstrap: embedding client unavailable; using lexical embedder: %v", err)
				return embedding.NewLexical(cfg.EmbeddingDims), nil
			}
			return nil, err
		}
		return client, nil
	}
	return embedding.NewLexical(cfg.EmbeddingDims), nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

type buildError string

func (e buildError) Error() string { return string(e) }

const errDatabaseRequired = buildError("DATABASE_URL is required")
