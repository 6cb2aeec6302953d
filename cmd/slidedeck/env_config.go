package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-logr/logr"

	slidedeck "github.com/ceresimaging/daq-slide-deck"
)

const envPrefix = "SLIDEDECK_"

// envConfig holds overrides from environment variables.
// Precedence: env vars > config file > defaults.
type envConfig struct {
	OutputDir     string // SLIDEDECK_OUTPUT_DIR
	ImageFormat   string // SLIDEDECK_IMAGE_FORMAT: webp or jpeg
	Quality       int    // SLIDEDECK_WEBP_QUALITY: 1-100
	MaxImageWidth int    // SLIDEDECK_MAX_IMAGE_WIDTH: pixels
	Date          string // SLIDEDECK_DATE: "auto", "auto:FORMAT" or literal
}

// knownEnvVars lists valid SLIDEDECK_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"SLIDEDECK_OUTPUT_DIR":      true,
	"SLIDEDECK_IMAGE_FORMAT":    true,
	"SLIDEDECK_WEBP_QUALITY":    true,
	"SLIDEDECK_MAX_IMAGE_WIDTH": true,
	"SLIDEDECK_DATE":            true,
	"SLIDEDECK_DEBUG":           true, // GOMAXPROCS diagnostics
}

// loadEnvConfig reads SLIDEDECK_* variables from env.
// Returns ErrInvalidEnv for numeric variables that do not parse.
func loadEnvConfig(env *Environment) (*envConfig, error) {
	cfg := &envConfig{}
	cfg.OutputDir, _ = env.lookup("SLIDEDECK_OUTPUT_DIR")
	cfg.ImageFormat, _ = env.lookup("SLIDEDECK_IMAGE_FORMAT")
	cfg.Date, _ = env.lookup("SLIDEDECK_DATE")

	for name, dst := range map[string]*int{
		"SLIDEDECK_WEBP_QUALITY":    &cfg.Quality,
		"SLIDEDECK_MAX_IMAGE_WIDTH": &cfg.MaxImageWidth,
	} {
		raw, ok := env.lookup(name)
		if !ok || raw == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w: %s=%q (want a positive integer)", ErrInvalidEnv, name, raw)
		}
		*dst = n
	}
	return cfg, nil
}

// warnUnknownEnvVars logs a warning for each unrecognized SLIDEDECK_* variable.
func warnUnknownEnvVars(env *Environment, log logr.Logger) {
	if env.Environ == nil {
		return
	}
	for _, kv := range env.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			log.Info("unknown environment variable (typo?)", "name", name)
		}
	}
}

// applyEnvConfig overrides cfg with every variable that is set.
func applyEnvConfig(e *envConfig, cfg *slidedeck.Config) {
	if e.OutputDir != "" {
		cfg.OutputDir = e.OutputDir
	}
	if e.ImageFormat != "" {
		cfg.ImageFormat = strings.ToLower(e.ImageFormat)
	}
	if e.Quality != 0 {
		cfg.Quality = e.Quality
	}
	if e.MaxImageWidth != 0 {
		cfg.MaxImageWidth = e.MaxImageWidth
	}
	if e.Date != "" {
		cfg.Date = e.Date
	}
}
