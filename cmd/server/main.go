package main

import (
	"context"
	"os"

	"blog/internal/config"
	"blog/internal/logging"
	"blog/internal/server"
)

func main() {
	envFile, envLoaded := config.LoadDotenv()

	cfg := config.Load()
	logger := logging.New(os.Stdout, cfg.LogLevel)
	ctx := context.Background()

	if envLoaded {
		logger.Info(ctx, "loaded env file", "path", envFile)
	}

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "server stopped", "error", err)
		os.Exit(1)
	}
}
