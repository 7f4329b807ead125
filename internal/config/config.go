// Package config handles editor configuration loading and management.
package config

// Config holds all editor settings.
type Config struct {
	World   WorldConfig   `yaml:"world"`
	Editing EditingConfig `yaml:"editing"`
	Stamp   StampConfig   `yaml:"stamp"`
	Preview PreviewConfig `yaml:"preview"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// WorldConfig describes the default terrain grid.
type WorldConfig struct {
	Cols     int     `yaml:"cols"`      // Grid cells along X
	Rows     int     `yaml:"rows"`      // Grid cells along Z
	CellSize float32 `yaml:"cell_size"` // World units per cell
}

// EditingConfig holds edit-operator settings.
type EditingConfig struct {
	ValidateAfterEdit bool    `yaml:"validate_after_edit"` // Run the full invariant check after every operator
	MaxSlopeDeg       float32 `yaml:"max_slope_deg"`       // Steepest walkable face angle
}

// StampConfig holds defaults for procedural stamp insertion.
type StampConfig struct {
	BoundaryPoints int     `yaml:"boundary_points"` // Points on the outer boundary ring
	Jitter         float32 `yaml:"jitter"`          // Fill-grid jitter as a fraction of cell size
	Seed           int64   `yaml:"seed"`            // Noise seed for jitter and kidney lobes
}

// PreviewConfig holds top-down preview render settings.
type PreviewConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ServerConfig holds debug server settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		World: WorldConfig{
			Cols:     64,
			Rows:     64,
			CellSize: 1.0,
		},
		Editing: EditingConfig{
			ValidateAfterEdit: true,
			MaxSlopeDeg:       45,
		},
		Stamp: StampConfig{
			BoundaryPoints: 24,
			Jitter:         0.4,
			Seed:           1,
		},
		Preview: PreviewConfig{
			Width:  1024,
			Height: 1024,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8642",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
