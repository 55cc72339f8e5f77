package main

import (
	"context"
	"os"

	"github.com/R3gret/ITPM-Backend/internal/logging"
	"github.com/R3gret/ITPM-Backend/internal/server"
	"github.com/R3gret/ITPM-Backend/internal/server/config"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewJSONLogger(os.Stdout, cfg.IsDevelopment())

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "server stopped with error", "error", err)
		os.Exit(1)
	}
}
