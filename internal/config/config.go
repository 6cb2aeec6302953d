package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ceresimaging/daq-slide-deck/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrEmptyPath      = errors.New("config path cannot be empty")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrFieldTooLong   = errors.New("field exceeds maximum length")
	ErrInvalidValue   = errors.New("invalid config value")
	ErrInputTooLarge  = errors.New("config exceeds maximum size")
)

// DefaultPath is the config file read when no path is given.
const DefaultPath = "config.yaml"

// MaxInputSize limits config input to prevent memory exhaustion (1MB).
var MaxInputSize = 1 << 20

// Field limits.
const (
	MaxTitleLength  = 200
	MaxAuthorLength = 100
	MaxDateLength   = 50
	MaxPathLength   = 4096
	MaxImageWidth   = 16384
	MinQuality      = 1
	MaxQuality      = 100
)

// Supported image output formats.
const (
	FormatWebP = "webp"
	FormatJPEG = "jpeg"
)

// Config holds the presentation build configuration.
type Config struct {
	Presentation PresentationConfig `yaml:"presentation"`
	Build        BuildConfig        `yaml:"build"`
	Slides       []SlideEntry       `yaml:"slides"`
}

// PresentationConfig holds presentation metadata.
type PresentationConfig struct {
	Title  string `yaml:"title"`
	Author string `yaml:"author"`
	Date   string `yaml:"date"` // "auto", "auto:FORMAT", or literal
}

// BuildConfig holds build flags and input/output locations.
type BuildConfig struct {
	SingleFile    bool     `yaml:"single_file"`
	BundleFolder  bool     `yaml:"bundle_folder"`
	WebPQuality   int      `yaml:"webp_quality"`
	MaxImageWidth int      `yaml:"max_image_width"`
	CompressJSON  bool     `yaml:"compress_json"`
	ImageFormat   string   `yaml:"image_format"` // "webp" (default) or "jpeg"
	OutputDir     string   `yaml:"output_dir"`
	SlidesDir     string   `yaml:"slides_dir"`
	JSDir         string   `yaml:"js_dir"`
	Stylesheet    string   `yaml:"stylesheet"`
	TemplateDir   string   `yaml:"template_dir"` // Empty = embedded templates only
	StaticAssets  []string `yaml:"static_assets"`
	NameExclude   []string `yaml:"name_exclude"`
	Debug         bool     `yaml:"debug"`
}

// SlideEntry is one configured slide. In YAML it is either a bare file name
// or a mapping with a "file" key.
type SlideEntry struct {
	File string `yaml:"file"`
}

// UnmarshalYAML accepts both `- intro.html` and `- file: intro.html`.
func (s *SlideEntry) UnmarshalYAML(unmarshal func(any) error) error {
	var raw any
	if err := unmarshal(&raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case string:
		s.File = v
		return nil
	case map[string]any:
		return s.fromMap(v["file"], len(v))
	case map[any]any:
		return s.fromMap(v["file"], len(v))
	default:
		return fmt.Errorf("slide entry must be a file name or {file: name}, got %T", raw)
	}
}

func (s *SlideEntry) fromMap(file any, keys int) error {
	name, ok := file.(string)
	if !ok {
		return errors.New("slide entry mapping requires a string \"file\" key")
	}
	if keys != 1 {
		return errors.New("slide entry mapping accepts only the \"file\" key")
	}
	s.File = name
	return nil
}

// SlideFiles returns the configured slide file names in order.
func (c *Config) SlideFiles() []string {
	files := make([]string, 0, len(c.Slides))
	for _, s := range c.Slides {
		files = append(files, s.File)
	}
	return files
}

// Validate checks value ranges and field lengths.
// Called by Load, but available for configs built in code.
func (c *Config) Validate() error {
	if err := validateFieldLength("presentation.title", c.Presentation.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("presentation.author", c.Presentation.Author, MaxAuthorLength); err != nil {
		return err
	}
	if err := validateFieldLength("presentation.date", c.Presentation.Date, MaxDateLength); err != nil {
		return err
	}

	b := c.Build
	if b.WebPQuality < MinQuality || b.WebPQuality > MaxQuality {
		return fmt.Errorf("%w: build.webp_quality must be between %d and %d, got %d",
			ErrInvalidValue, MinQuality, MaxQuality, b.WebPQuality)
	}
	if b.MaxImageWidth < 1 || b.MaxImageWidth > MaxImageWidth {
		return fmt.Errorf("%w: build.max_image_width must be between 1 and %d, got %d",
			ErrInvalidValue, MaxImageWidth, b.MaxImageWidth)
	}
	switch strings.ToLower(b.ImageFormat) {
	case FormatWebP, FormatJPEG:
	default:
		return fmt.Errorf("%w: build.image_format %q (must be webp or jpeg)", ErrInvalidValue, b.ImageFormat)
	}
	if b.OutputDir == "" {
		return fmt.Errorf("%w: build.output_dir cannot be empty", ErrInvalidValue)
	}

	for field, value := range map[string]string{
		"build.output_dir":   b.OutputDir,
		"build.slides_dir":   b.SlidesDir,
		"build.js_dir":       b.JSDir,
		"build.stylesheet":   b.Stylesheet,
		"build.template_dir": b.TemplateDir,
	} {
		if err := validateFieldLength(field, value, MaxPathLength); err != nil {
			return err
		}
	}

	for i, s := range c.Slides {
		if strings.TrimSpace(s.File) == "" {
			return fmt.Errorf("%w: slides[%d] has an empty file name", ErrInvalidValue, i)
		}
		if err := validateFieldLength(fmt.Sprintf("slides[%d]", i), s.File, MaxPathLength); err != nil {
			return err
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Presentation: PresentationConfig{
			Title: "Presentation",
			Date:  "auto",
		},
		Build: BuildConfig{
			SingleFile:    true,
			BundleFolder:  true,
			WebPQuality:   90,
			MaxImageWidth: 1920,
			CompressJSON:  true,
			ImageFormat:   FormatWebP,
			OutputDir:     "docs",
			SlidesDir:     "slides",
			JSDir:         "js",
			Stylesheet:    "styles.css",
			NameExclude:   []string{"home", "projects", "users"},
		},
	}
}

// Load reads, decodes and validates the config file at path.
// Keys absent from the file keep their DefaultConfig values; unknown keys are rejected.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load, except that a missing file at DefaultPath
// yields DefaultConfig. The second result reports whether a file was read.
func LoadOrDefault(path string) (*Config, bool, error) {
	if path == "" {
		path = DefaultPath
	}
	cfg, err := Load(path)
	if errors.Is(err, ErrConfigNotFound) && path == DefaultPath {
		return DefaultConfig(), false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return cfg, true, nil
}

// Parse decodes YAML data over DefaultConfig and validates the result.
func Parse(data []byte) (*Config, error) {
	if len(data) > MaxInputSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}

	cfg := DefaultConfig()
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
	}
	cfg.Build.ImageFormat = strings.ToLower(cfg.Build.ImageFormat)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
