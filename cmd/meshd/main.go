// Package main is the entry point for the Fairway mesh debug daemon: it
// serves a course file over HTTP for external editor tooling.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/fairway/internal/config"
	"github.com/Faultbox/fairway/internal/logger"
	"github.com/Faultbox/fairway/internal/mesh"
	"github.com/Faultbox/fairway/internal/server"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	mesh.SetLogger(logger.Log)

	logger.Info("=== Fairway Mesh Daemon ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	m, err := loadCourse(cfg)
	if err != nil {
		logger.Error("failed to load course", zap.Error(err))
		os.Exit(1)
	}
	if cfg.Editing.ValidateAfterEdit {
		if err := m.Validate(); err != nil {
			logger.Error("course failed validation", zap.Error(err))
			os.Exit(1)
		}
	}
	logger.Info("course ready",
		zap.Int("vertices", m.VertexCount()),
		zap.Int("triangles", m.TriangleCount()))

	srv := server.New(cfg.Server.Addr, m, logger.Log)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("shutdown error", zap.Error(err))
			os.Exit(1)
		}
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("daemon stopped normally")
}

// loadCourse opens the course file given as the first positional argument,
// or builds a fresh grid from the configured world size.
func loadCourse(cfg *config.Config) (*mesh.Mesh, error) {
	if args := config.Args(); len(args) > 0 {
		return mesh.LoadFile(args[0])
	}
	return mesh.NewGrid(cfg.World.Cols, cfg.World.Rows, cfg.World.CellSize, mesh.TerrainRough), nil
}
