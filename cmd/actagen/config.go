package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the optional CLI configuration file.
type Config struct {
	// Output is the directory generated PDFs are written to.
	Output string `yaml:"output"`

	// LogoJPEG is an optional path to a JPEG embedded in exported PDFs.
	LogoJPEG string `yaml:"logo_jpeg"`
}

func loadConfig(path string) (Config, error) {
	cfg := Config{Output: "."}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Output == "" {
		cfg.Output = "."
	}
	return cfg, nil
}
