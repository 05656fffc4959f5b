// Package main is the entry point for the voxel mesh streaming server.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/lumina3d/voxelmesh/internal/config"
	"github.com/lumina3d/voxelmesh/internal/logger"
	"github.com/lumina3d/voxelmesh/internal/server"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
	defer logger.Sync()

	logger.Log.Info("=== voxelmesh server ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	srv, err := server.New(cfg)
	if err != nil {
		logger.Log.Error("failed to create server", zap.Error(err))
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Log.Error("server error", zap.Error(err))
		os.Exit(1)
	}
}
