package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"

	slidedeck "github.com/ceresimaging/daq-slide-deck"
	"github.com/ceresimaging/daq-slide-deck/internal/assets"
	"github.com/ceresimaging/daq-slide-deck/internal/config"
	"github.com/ceresimaging/daq-slide-deck/internal/hints"
)

// runMain parses args, runs a build and returns the process exit code.
func runMain(args []string, env *Environment) int {
	flags, positional, err := parseFlags(args)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n\n", err)
		printUsage(env.Stderr)
		return ExitUsage
	}
	if flags.help {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	if flags.version {
		fmt.Fprintf(env.Stdout, "slidedeck %s\n", Version)
		return ExitSuccess
	}
	if len(positional) > 1 {
		fmt.Fprintf(env.Stderr, "error: expected at most one config file, got %d arguments\n\n", len(positional))
		printUsage(env.Stderr)
		return ExitUsage
	}

	log, err := newLogger(flags.log, flags.quiet, env.Stderr)
	if err != nil {
		fmt.Fprintln(env.Stderr, "error:", err)
		return exitCodeFor(err)
	}

	configPath := config.DefaultPath
	if len(positional) == 1 {
		configPath = positional[0]
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()
	ctx = logr.NewContext(ctx, log)

	if err := run(ctx, configPath, flags.quiet, env); err != nil {
		fmt.Fprintln(env.Stderr, "error:", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// run loads the configuration, applies environment overrides and builds.
func run(ctx context.Context, configPath string, quiet bool, env *Environment) error {
	log := logr.FromContextOrDiscard(ctx)

	fileCfg, found, err := config.LoadOrDefault(configPath)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return fmt.Errorf("%w%s", err, hints.ForConfigNotFound(configPath))
		}
		return err
	}
	if !found {
		log.Info("config file not found, using defaults", "path", configPath)
	}

	cfg := buildConfig(fileCfg)

	warnUnknownEnvVars(env, log)
	envCfg, err := loadEnvConfig(env)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, &cfg)

	if len(cfg.Slides) == 0 && !quiet {
		fmt.Fprintf(env.Stderr, "warning: %s lists no slides, building an empty presentation%s\n", configPath, hints.ForNoSlides(cfg.SlidesDir))
	}

	b, err := slidedeck.NewBuilder(cfg, slidedeck.WithClock(env.Now))
	if err != nil {
		if errors.Is(err, assets.ErrInvalidBasePath) {
			return fmt.Errorf("%w%s", err, hints.ForTemplateDir(overridableTemplates()))
		}
		return err
	}

	report, err := b.Build(ctx)
	if err != nil {
		if errors.Is(err, slidedeck.ErrOutputSetup) {
			return fmt.Errorf("%w%s", err, hints.ForOutputDirectory(cfg.OutputDir))
		}
		return err
	}

	if !quiet {
		printReport(env.Stdout, cfg.Title, report)
	}
	return nil
}

// buildConfig maps the file configuration onto the library Config.
func buildConfig(c *config.Config) slidedeck.Config {
	return slidedeck.Config{
		Title:         c.Presentation.Title,
		Author:        c.Presentation.Author,
		Date:          c.Presentation.Date,
		Slides:        c.SlideFiles(),
		SlidesDir:     c.Build.SlidesDir,
		JSDir:         c.Build.JSDir,
		Stylesheet:    c.Build.Stylesheet,
		TemplateDir:   c.Build.TemplateDir,
		StaticAssets:  c.Build.StaticAssets,
		OutputDir:     c.Build.OutputDir,
		SingleFile:    c.Build.SingleFile,
		Bundle:        c.Build.BundleFolder,
		ImageFormat:   c.Build.ImageFormat,
		Quality:       c.Build.WebPQuality,
		MaxImageWidth: c.Build.MaxImageWidth,
		CompactJSON:   c.Build.CompressJSON,
		NameExclude:   c.Build.NameExclude,
		Debug:         c.Build.Debug,
	}
}

func overridableTemplates() []string {
	return []string{
		"templates/" + assets.TemplateSingleFile,
		"templates/" + assets.TemplateBundleIndex,
		"templates/" + assets.TemplatePresentation,
		"templates/" + assets.TemplateNavigation,
		"styles/" + assets.DefaultStyle + ".css",
	}
}
