package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test world defaults
	if cfg.World.Cols != 64 {
		t.Errorf("expected cols 64, got %d", cfg.World.Cols)
	}
	if cfg.World.Rows != 64 {
		t.Errorf("expected rows 64, got %d", cfg.World.Rows)
	}
	if cfg.World.CellSize != 1.0 {
		t.Errorf("expected cell size 1.0, got %f", cfg.World.CellSize)
	}

	// Test editing defaults
	if !cfg.Editing.ValidateAfterEdit {
		t.Error("expected validate_after_edit to be true by default")
	}
	if cfg.Editing.MaxSlopeDeg != 45 {
		t.Errorf("expected max slope 45, got %f", cfg.Editing.MaxSlopeDeg)
	}

	// Test stamp defaults
	if cfg.Stamp.BoundaryPoints != 24 {
		t.Errorf("expected boundary points 24, got %d", cfg.Stamp.BoundaryPoints)
	}
	if cfg.Stamp.Jitter != 0.4 {
		t.Errorf("expected jitter 0.4, got %f", cfg.Stamp.Jitter)
	}

	// Test server defaults
	if cfg.Server.Addr != "127.0.0.1:8642" {
		t.Errorf("expected addr 127.0.0.1:8642, got %s", cfg.Server.Addr)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
world:
  cols: 128
  rows: 96
  cell_size: 2.0

editing:
  validate_after_edit: false
  max_slope_deg: 30

stamp:
  boundary_points: 48
  jitter: 0.25
  seed: 42

server:
  addr: "0.0.0.0:9000"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.World.Cols != 128 {
		t.Errorf("expected cols 128, got %d", cfg.World.Cols)
	}
	if cfg.World.Rows != 96 {
		t.Errorf("expected rows 96, got %d", cfg.World.Rows)
	}
	if cfg.World.CellSize != 2.0 {
		t.Errorf("expected cell size 2.0, got %f", cfg.World.CellSize)
	}
	if cfg.Editing.ValidateAfterEdit {
		t.Error("expected validate_after_edit to be overridden to false")
	}
	if cfg.Editing.MaxSlopeDeg != 30 {
		t.Errorf("expected max slope 30, got %f", cfg.Editing.MaxSlopeDeg)
	}
	if cfg.Stamp.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.Stamp.Seed)
	}
	if cfg.Server.Addr != "0.0.0.0:9000" {
		t.Errorf("expected addr 0.0.0.0:9000, got %s", cfg.Server.Addr)
	}

	// Sections absent from the file keep their defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level, got %s", cfg.Logging.Level)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := Default()
	cfg.World.Cols = 10
	cfg.Stamp.Seed = 7

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.World.Cols != 10 {
		t.Errorf("expected cols 10 after round trip, got %d", loaded.World.Cols)
	}
	if loaded.Stamp.Seed != 7 {
		t.Errorf("expected seed 7 after round trip, got %d", loaded.Stamp.Seed)
	}
}
