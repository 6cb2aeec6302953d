// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"

	"github.com/ceresimaging/daq-slide-deck/internal/fileutil"
)

// ForConfigNotFound returns a hint for a config file that does not exist.
func ForConfigNotFound(path string) string {
	if path == "" {
		return format("pass the config file as the first argument: slidedeck path/to/config.yaml")
	}
	if filepath.Ext(path) == "" && fileutil.FileExists(path+".yaml") {
		return format("did you mean " + path + ".yaml?")
	}
	return format("check the path, or run without arguments to use config.yaml")
}

// ForNoSlides returns a hint when the config lists no slides.
func ForNoSlides(slidesDir string) string {
	hint := "add a \"slides:\" list of file names to the config"
	if slidesDir != "" && fileutil.DirExists(slidesDir) {
		hint += " (files are read from " + slidesDir + "/)"
	}
	return format(hint)
}

// ForOutputDirectory returns hints for output directory setup errors.
func ForOutputDirectory(outputDir string) string {
	if outputDir == "" {
		return format("set build.output_dir in the config")
	}
	return format("check that " + outputDir + " is writable and not open in another program")
}

// ForTemplateDir returns a hint for an invalid build.template_dir.
func ForTemplateDir(available []string) string {
	if len(available) == 0 {
		return format("build.template_dir must be an existing directory")
	}
	return format("overridable templates: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
