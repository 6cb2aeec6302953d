package config

// Notes:
// - LoadOrDefault's fallback is tested from the package directory, which
//   holds no config.yaml.
// - Strict decoding is relied on for typo detection; one unknown key case
//   covers it.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestDefaultConfig - Built-in defaults
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if !cfg.Build.SingleFile || !cfg.Build.BundleFolder {
		t.Error("both outputs should be enabled by default")
	}
	if cfg.Build.WebPQuality != 90 || cfg.Build.MaxImageWidth != 1920 {
		t.Errorf("quality/width = %d/%d, want 90/1920", cfg.Build.WebPQuality, cfg.Build.MaxImageWidth)
	}
	if cfg.Build.OutputDir != "docs" || cfg.Build.SlidesDir != "slides" {
		t.Errorf("dirs = %q/%q", cfg.Build.OutputDir, cfg.Build.SlidesDir)
	}
	if cfg.Presentation.Date != "auto" {
		t.Errorf("Date = %q, want auto", cfg.Presentation.Date)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestParse - Decoding over defaults
// ---------------------------------------------------------------------------

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("full document", func(t *testing.T) {
		t.Parallel()

		cfg, err := Parse([]byte(`presentation:
  title: Field Trial Results
  author: Imaging Team
  date: auto:long
build:
  single_file: false
  webp_quality: 80
  max_image_width: 1280
  image_format: JPEG
  output_dir: site
  name_exclude: [home]
slides:
  - intro.html
  - file: results.md
`))
		if err != nil {
			t.Fatalf("Parse() error: %v", err)
		}

		if cfg.Presentation.Title != "Field Trial Results" {
			t.Errorf("Title = %q", cfg.Presentation.Title)
		}
		if cfg.Build.SingleFile {
			t.Error("SingleFile = true, want false")
		}
		if !cfg.Build.BundleFolder {
			t.Error("BundleFolder lost its default")
		}
		if cfg.Build.ImageFormat != FormatJPEG {
			t.Errorf("ImageFormat = %q, want lowercased jpeg", cfg.Build.ImageFormat)
		}
		if cfg.Build.SlidesDir != "slides" {
			t.Errorf("SlidesDir = %q, want default", cfg.Build.SlidesDir)
		}
		if diff := cmp.Diff([]string{"home"}, cfg.Build.NameExclude); diff != "" {
			t.Errorf("NameExclude mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"intro.html", "results.md"}, cfg.SlideFiles()); diff != "" {
			t.Errorf("SlideFiles mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty document is defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := Parse([]byte("  \n"))
		if err != nil {
			t.Fatalf("Parse() error: %v", err)
		}
		if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	errorCases := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{"unknown key", "build:\n  outputdir: x\n", ErrConfigParse},
		{"bad slide entry", "slides:\n  - [a, b]\n", ErrConfigParse},
		{"slide mapping with extra key", "slides:\n  - file: a.html\n    title: A\n", ErrConfigParse},
		{"slide mapping without file", "slides:\n  - name: a.html\n", ErrConfigParse},
		{"quality too high", "build:\n  webp_quality: 101\n", ErrInvalidValue},
		{"quality zero", "build:\n  webp_quality: 0\n", ErrInvalidValue},
		{"width too large", "build:\n  max_image_width: 20000\n", ErrInvalidValue},
		{"unknown format", "build:\n  image_format: avif\n", ErrInvalidValue},
		{"empty output dir", "build:\n  output_dir: \"\"\n", ErrInvalidValue},
		{"blank slide name", "slides:\n  - \" \"\n", ErrInvalidValue},
		{"title too long", "presentation:\n  title: " + strings.Repeat("t", MaxTitleLength+1) + "\n", ErrFieldTooLong},
	}
	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse([]byte(tt.yaml))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("input too large", func(t *testing.T) {
		t.Parallel()

		_, err := Parse(make([]byte, MaxInputSize+1))
		if !errors.Is(err, ErrInputTooLarge) {
			t.Errorf("Parse() error = %v, want ErrInputTooLarge", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestLoad / TestLoadOrDefault - Files on disk
// ---------------------------------------------------------------------------

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("reads file", func(t *testing.T) {
		t.Parallel()

		cfg, err := Load(writeConfig(t, "presentation:\n  title: Demo\n"))
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if cfg.Presentation.Title != "Demo" {
			t.Errorf("Title = %q, want Demo", cfg.Presentation.Title)
		}
	})

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()

		if _, err := Load(""); !errors.Is(err, ErrEmptyPath) {
			t.Errorf("Load(\"\") error = %v, want ErrEmptyPath", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("Load() error = %v, want ErrConfigNotFound", err)
		}
	})
}

func TestLoadOrDefault(t *testing.T) {
	t.Parallel()

	t.Run("default path absent", func(t *testing.T) {
		t.Parallel()

		for _, path := range []string{"", DefaultPath} {
			cfg, found, err := LoadOrDefault(path)
			if err != nil {
				t.Fatalf("LoadOrDefault(%q) error: %v", path, err)
			}
			if found {
				t.Errorf("LoadOrDefault(%q) found = true", path)
			}
			if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		}
	})

	t.Run("explicit path absent", func(t *testing.T) {
		t.Parallel()

		_, _, err := LoadOrDefault(filepath.Join(t.TempDir(), "deck.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("LoadOrDefault() error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("explicit path present", func(t *testing.T) {
		t.Parallel()

		_, found, err := LoadOrDefault(writeConfig(t, "slides: [a.html]\n"))
		if err != nil || !found {
			t.Errorf("LoadOrDefault() = found %v, err %v", found, err)
		}
	})
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	if err := validateFieldLength("f", "1234567890", 10); err != nil {
		t.Errorf("value at limit: %v", err)
	}
	if err := validateFieldLength("f", "12345678901", 10); !errors.Is(err, ErrFieldTooLong) {
		t.Errorf("value over limit: %v, want ErrFieldTooLong", err)
	}
}
