package main

import (
	"context"
	"os"

	"github.com/leverblum/boardsctrl/internal/app"
	"github.com/leverblum/boardsctrl/internal/pkg/config"
	"github.com/leverblum/boardsctrl/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "boardsctrl",
	})

	application, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize application")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		log.Error().Err(err).Msg("application run failed")
		os.Exit(1)
	}
}
