// Package main is the entry point for the Lumen scene viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/lumen/internal/app"
	"github.com/Faultbox/lumen/internal/config"
	"github.com/Faultbox/lumen/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Lumen Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	e, err := app.New(cfg, "Lumen Viewer", newViewer(cfg, config.SaveOnExit()))
	if err != nil {
		logger.Error("failed to create engine", zap.Error(err))
		os.Exit(1)
	}
	defer e.Close()

	if err := e.Run(); err != nil {
		logger.Error("engine error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
