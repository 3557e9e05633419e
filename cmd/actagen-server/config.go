package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the server configuration, loaded from YAML when a config file
// is supplied and completed with defaults otherwise.
type Config struct {
	// Listen is the address the HTTP server binds to.
	Listen string `yaml:"listen"`

	// Title is the page title and heading of the web shell.
	Title string `yaml:"title"`

	// LogoMarkup is optional HTML placed in the acta header band. It is
	// sanitized before rendering.
	LogoMarkup string `yaml:"logo_markup"`

	// LogoJPEG is an optional path to a JPEG drawn into exported PDFs.
	LogoJPEG string `yaml:"logo_jpeg"`
}

func defaultConfig() Config {
	return Config{
		Listen: ":8080",
		Title:  "Actas Soporte técnico MoDo",
	}
}

func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
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
	if cfg.Listen == "" {
		cfg.Listen = defaultConfig().Listen
	}
	if cfg.Title == "" {
		cfg.Title = defaultConfig().Title
	}
	return cfg, nil
}
