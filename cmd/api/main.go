package main

import (
	"log"

	"docintel-backend/internal/bootstrap"
	"docintel-backend/internal/shared/config"
	"docintel-backend/internal/shared/server"
	"docintel-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer telemetry.Sync()

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s (embedder=%s)", addr, app.Embedder.Name())

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
