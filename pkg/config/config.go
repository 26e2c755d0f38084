// Package config provides configuration loading and management for medviz.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// MiddleFrame selects the middle frame of the chosen axis, which is
// usually the most informative one for a quick look at a scan.
const MiddleFrame = -1

// Config represents the application configuration loaded from YAML
type Config struct {
	// Input file locations
	Input struct {
		// Metadata is the path of the metadata text file carrying the
		// volume dimensions
		Metadata string `yaml:"metadata"`

		// Data is the path of the flat binary voxel data file
		Data string `yaml:"data"`
	} `yaml:"input"`

	// Output parameters
	Output struct {
		// Dir is the directory extracted frames are written to
		Dir string `yaml:"dir"`

		// Format is the frame encoding: bmp, jpeg, png or raw
		Format string `yaml:"format"`
	} `yaml:"output"`

	// Frame selection
	Frames struct {
		// Axes lists the axes to extract a frame for (x, y, z)
		Axes []string `yaml:"axes"`

		// Index is the frame index along each axis; MiddleFrame (-1)
		// selects dim/2 per axis
		Index int `yaml:"index"`

		// Stats enables per-frame intensity statistics in the log output
		Stats bool `yaml:"stats"`
	} `yaml:"frames"`

	// Verbosity controls the log level: 0 warnings, 1 info, 2 debug
	Verbosity int `yaml:"verbosity"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default output parameters
	cfg.Output.Dir = "frames"
	cfg.Output.Format = "bmp"

	// Extract the middle Y and Z frames by default
	cfg.Frames.Axes = []string{"y", "z"}
	cfg.Frames.Index = MiddleFrame
	cfg.Frames.Stats = false

	cfg.Verbosity = 0

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}
