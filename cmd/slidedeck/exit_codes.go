package main

import (
	"errors"
	"os"

	slidedeck "github.com/ceresimaging/daq-slide-deck"
	"github.com/ceresimaging/daq-slide-deck/internal/assets"
	"github.com/ceresimaging/daq-slide-deck/internal/config"
	"github.com/ceresimaging/daq-slide-deck/internal/dateutil"
	"github.com/ceresimaging/daq-slide-deck/internal/fileutil"
)

// Exit codes for the slidedeck CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Build completed
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // Output directory, permission or write failures
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidEnv) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyPath) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrInputTooLarge) ||
		errors.Is(err, slidedeck.ErrInvalidConfig) ||
		errors.Is(err, slidedeck.ErrUnsupportedFormat) ||
		errors.Is(err, slidedeck.ErrTemplateRender) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, fileutil.ErrUnsafeOutput) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, slidedeck.ErrOutputSetup) ||
		errors.Is(err, slidedeck.ErrArchive) ||
		errors.Is(err, slidedeck.ErrManifest) {
		return ExitIO
	}

	return ExitGeneral
}
