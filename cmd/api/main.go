package main

import (
	"context"
	"os"

	"tailor-backend/internal/bootstrap"
	"tailor-backend/internal/shared/config"
	"tailor-backend/internal/shared/server"
	"tailor-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(context.Background(), cfg)
	if err != nil {
		telemetry.Error("bootstrap failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer app.Close()

	addr := server.Addr(cfg.Port)
	telemetry.Info("server starting", map[string]any{"addr": addr, "env": cfg.Env})
	if err := app.Router.Run(addr); err != nil {
		telemetry.Error("server exited", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
