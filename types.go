package slidedeck

import (
	"fmt"
	"strings"
	"time"

	"github.com/ceresimaging/daq-slide-deck/internal/dateutil"
)

// AssetKind classifies a referenced asset.
type AssetKind string

const (
	KindImage AssetKind = "image"
	KindData  AssetKind = "data"
)

// Status is the processing outcome of one asset reference.
type Status string

const (
	StatusProcessed Status = "processed"
	StatusDegraded  Status = "degraded" // image copied raw after a transcode error
	StatusSkipped   Status = "skipped"  // referenced file does not exist
	StatusFailed    Status = "failed"   // neither transcode nor raw copy succeeded
)

// Mode selects how references are rewritten.
type Mode int

const (
	// ModeBundle rewrites references to files under an assets/ directory.
	ModeBundle Mode = iota
	// ModeSingleFile inlines images as data URIs.
	ModeSingleFile
)

func (m Mode) String() string {
	switch m {
	case ModeBundle:
		return "bundle"
	case ModeSingleFile:
		return "single-file"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// AssetRecord describes one processed asset.
type AssetRecord struct {
	OriginalPath  string    `json:"original"`
	LocalName     string    `json:"local"`
	ProcessedPath string    `json:"-"`
	Kind          AssetKind `json:"type"`
	Slide         string    `json:"used_in_slide"`
	Match         string    `json:"match"`
	Size          int64     `json:"size_bytes"`
	Status        Status    `json:"status"`
}

// SlideRecord is one collected slide with its rewritten content.
type SlideRecord struct {
	SourcePath string        `json:"-"`
	Name       string        `json:"file"`
	Number     int           `json:"number"`
	Title      string        `json:"title"`
	Content    string        `json:"content"`
	Assets     []AssetRecord `json:"assets"`
}

// Outcome records what happened to a single reference.
type Outcome struct {
	Slide     string
	Reference string
	Status    Status
	Err       error
}

// Collection is the result of collecting every configured slide in one mode.
type Collection struct {
	Mode     Mode
	Slides   []SlideRecord
	Assets   []AssetRecord
	Outcomes []Outcome
}

// Count returns the number of outcomes with the given status.
func (c *Collection) Count(status Status) int {
	if c == nil {
		return 0
	}
	n := 0
	for _, o := range c.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

// Artifact is one file written to the output directory.
type Artifact struct {
	Path   string
	Size   int64
	Digest string // content digest, set for archives
}

// Report summarizes a build.
type Report struct {
	OutputDir  string
	SingleFile *Collection // nil when single-file output is disabled
	Bundle     *Collection // nil when bundle output is disabled
	Artifacts  []Artifact
	TotalSize  int64 // bytes under OutputDir after the build
	Duration   time.Duration
}

// Slides returns the slide count of whichever collection was built.
func (r *Report) Slides() int {
	switch {
	case r.Bundle != nil:
		return len(r.Bundle.Slides)
	case r.SingleFile != nil:
		return len(r.SingleFile.Slides)
	}
	return 0
}

// Default build settings.
const (
	DefaultTitle         = "Presentation"
	DefaultOutputDir     = "docs"
	DefaultSlidesDir     = "slides"
	DefaultJSDir         = "js"
	DefaultStylesheet    = "styles.css"
	DefaultQuality       = 90
	DefaultMaxImageWidth = 1920
	MaxImageWidthLimit   = 16384
)

// DefaultNameExclude lists path segments dropped when deriving asset names.
var DefaultNameExclude = []string{"home", "projects", "users"}

// Config holds everything a build needs. Paths are relative to the working
// directory unless absolute.
type Config struct {
	Title  string
	Author string
	Date   string // literal, "auto" or "auto:FORMAT"

	Slides    []string // file names under SlidesDir, in presentation order
	SlidesDir string
	JSDir     string

	// Stylesheet is a CSS file path. When it does not exist the built-in
	// style is used instead.
	Stylesheet   string
	TemplateDir  string   // optional per-file template overrides
	StaticAssets []string // copied verbatim to OutputDir

	OutputDir     string
	SingleFile    bool
	Bundle        bool
	ImageFormat   string // "webp" or "jpeg"
	Quality       int    // 1..100
	MaxImageWidth int
	CompactJSON   bool
	NameExclude   []string
	Debug         bool // write slides_debug.json
}

// DefaultConfig returns a Config with default values and no slides.
func DefaultConfig() Config {
	return Config{
		Title:         DefaultTitle,
		Date:          "auto",
		SlidesDir:     DefaultSlidesDir,
		JSDir:         DefaultJSDir,
		Stylesheet:    DefaultStylesheet,
		OutputDir:     DefaultOutputDir,
		SingleFile:    true,
		Bundle:        true,
		ImageFormat:   FormatWebP,
		Quality:       DefaultQuality,
		MaxImageWidth: DefaultMaxImageWidth,
		CompactJSON:   true,
		NameExclude:   append([]string(nil), DefaultNameExclude...),
	}
}

// Validate checks that c describes a buildable deck.
func (c Config) Validate() error {
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("%w: output directory is empty", ErrInvalidConfig)
	}
	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("%w: quality %d (must be between 1 and 100)", ErrInvalidConfig, c.Quality)
	}
	if c.MaxImageWidth < 1 || c.MaxImageWidth > MaxImageWidthLimit {
		return fmt.Errorf("%w: max image width %d (must be between 1 and %d)", ErrInvalidConfig, c.MaxImageWidth, MaxImageWidthLimit)
	}
	if _, err := NewEncoder(c.ImageFormat); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := dateutil.Resolve(c.Date, time.Time{}); err != nil {
		return fmt.Errorf("%w: date: %v", ErrInvalidConfig, err)
	}
	for i, name := range c.Slides {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: slide %d has an empty file name", ErrInvalidConfig, i+1)
		}
	}
	return nil
}
