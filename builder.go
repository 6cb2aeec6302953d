package slidedeck

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/fluxcd/pkg/lockedfile"
	"github.com/go-logr/logr"

	"github.com/ceresimaging/daq-slide-deck/internal/assets"
	"github.com/ceresimaging/daq-slide-deck/internal/dateutil"
	"github.com/ceresimaging/daq-slide-deck/internal/fileutil"
)

// Option configures a Builder.
type Option func(*Builder)

// WithEncoder overrides the image encoder chosen by Config.ImageFormat.
func WithEncoder(enc Encoder) Option {
	if enc == nil {
		panic("slidedeck: WithEncoder encoder must not be nil")
	}
	return func(b *Builder) {
		b.encoder = enc
	}
}

// WithClock sets the time source used for "auto" dates and build duration.
func WithClock(now func() time.Time) Option {
	if now == nil {
		panic("slidedeck: WithClock function must not be nil")
	}
	return func(b *Builder) {
		b.now = now
	}
}

// Builder runs complete builds for one Config.
type Builder struct {
	cfg       Config
	encoder   Encoder
	now       func() time.Time
	templates *assets.Resolver
}

// NewBuilder validates cfg and creates a Builder.
// Returns ErrInvalidConfig if cfg is unusable or TemplateDir is not a directory.
func NewBuilder(cfg Config, opts ...Option) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := &Builder{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(b)
	}

	if b.encoder == nil {
		enc, err := NewEncoder(cfg.ImageFormat)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		b.encoder = enc
	}

	templates, err := assets.NewResolver(cfg.TemplateDir)
	if err != nil {
		return nil, fmt.Errorf("%w: template directory: %w", ErrInvalidConfig, err)
	}
	b.templates = templates

	return b, nil
}

// Build writes every enabled output into Config.OutputDir.
//
// The output directory is deleted and recreated first, so a build never
// mixes files from an earlier run. Concurrent builds into the same directory
// wait for each other through a lock file next to it. Missing slides and
// assets are logged and skipped; only configuration, I/O and cancellation
// errors are returned.
func (b *Builder) Build(ctx context.Context) (*Report, error) {
	start := b.now()
	log := logr.FromContextOrDiscard(ctx)

	date, err := dateutil.Resolve(b.cfg.Date, start)
	if err != nil {
		return nil, fmt.Errorf("%w: date: %v", ErrInvalidConfig, err)
	}

	if err := fileutil.CheckOutputDir(b.cfg.OutputDir); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOutputSetup, err)
	}
	out := filepath.Clean(b.cfg.OutputDir)
	// The lock file sits next to out, so its parent must exist first.
	if err := os.MkdirAll(filepath.Dir(out), fileutil.DirPermissions); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOutputSetup, err)
	}
	unlock, err := lockedfile.MutexAt(out + ".lock").Lock()
	if err != nil {
		return nil, fmt.Errorf("%w: locking %s: %v", ErrOutputSetup, out, err)
	}
	defer unlock()

	if err := fileutil.ResetDir(out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOutputSetup, err)
	}
	log.V(1).Info("reset output directory", "path", out)
	if b.templates.HasCustomLoader() {
		log.V(1).Info("using template overrides", "dir", b.cfg.TemplateDir)
	}

	if err := b.copyStatic(ctx, out); err != nil {
		return nil, err
	}

	cfg := b.cfg
	cfg.OutputDir = out
	namer := NewAssetNamer(cfg.NameExclude, b.encoder.Extension())
	transcoder := NewAssetTranscoder(b.encoder, cfg.Quality, cfg.MaxImageWidth)
	collector := NewSlideCollector(cfg.SlidesDir, namer, transcoder)
	asm := newOutputAssembler(cfg, date, collector, b.templates, b.encoder)

	report := &Report{OutputDir: out}

	if cfg.SingleFile {
		coll, arts, err := asm.SingleFile(ctx)
		if err != nil {
			return nil, err
		}
		report.SingleFile = coll
		report.Artifacts = append(report.Artifacts, arts...)
	}

	if cfg.Bundle {
		coll, arts, err := asm.Bundle(ctx)
		if err != nil {
			return nil, err
		}
		report.Bundle = coll
		report.Artifacts = append(report.Artifacts, arts...)
	}

	if !cfg.SingleFile && !cfg.Bundle {
		log.Info("single-file and bundle outputs are both disabled, writing manifest only")
	}

	var records []AssetRecord
	switch {
	case report.Bundle != nil:
		records = report.Bundle.Assets
	case report.SingleFile != nil:
		records = report.SingleFile.Assets
	}
	manifest, err := asm.WriteManifest(records)
	if err != nil {
		return nil, err
	}
	report.Artifacts = append(report.Artifacts, manifest)

	total, err := fileutil.DirSize(out)
	if err != nil {
		return nil, err
	}
	report.TotalSize = total
	report.Duration = b.now().Sub(start)

	log.Info("build complete",
		"output", out,
		"slides", report.Slides(),
		"assets", len(records),
		"size", fileutil.HumanSize(total),
		"duration", report.Duration.String())
	return report, nil
}

// copyStatic copies each static asset into out, keeping its base name.
// Missing files are logged and skipped.
func (b *Builder) copyStatic(ctx context.Context, out string) error {
	log := logr.FromContextOrDiscard(ctx)
	for _, src := range b.cfg.StaticAssets {
		if !fileutil.FileExists(src) {
			log.Info("static asset not found, skipping", "path", src)
			continue
		}
		dst, err := securejoin.SecureJoin(out, filepath.Base(src))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrOutputSetup, err)
		}
		if _, err := fileutil.CopyFile(src, dst); err != nil {
			return fmt.Errorf("copying static asset: %w", err)
		}
		log.V(1).Info("copied static asset", "path", src)
	}
	return nil
}

// Config returns the configuration the Builder was created with.
func (b *Builder) Config() Config {
	return b.cfg
}
