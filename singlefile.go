package slidedeck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"

	"github.com/ceresimaging/daq-slide-deck/internal/assets"
)

// singleFileData feeds the single-file template.
type singleFileData struct {
	Title        string
	Author       string
	CSS          string
	TotalSlides  int
	ModulesJS    string
	SlidesJSON   string
	NavigationJS string
}

// SingleFile builds OutputDir/index.html with every image inlined.
//
// Processed assets are staged in a temporary directory inside OutputDir and
// removed once embedded. Data assets are not inlined; their references stay
// as written. ErrNoSlides is logged and an empty presentation is written.
func (a *OutputAssembler) SingleFile(ctx context.Context) (*Collection, []Artifact, error) {
	log := logr.FromContextOrDiscard(ctx).WithName("single-file")

	stage, err := os.MkdirTemp(a.cfg.OutputDir, ".staging-")
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrOutputSetup, err)
	}
	defer func() { _ = os.RemoveAll(stage) }()

	coll, err := a.collector.Collect(logr.NewContext(ctx, log), a.cfg.Slides, ModeSingleFile, stage)
	if err != nil && !errors.Is(err, ErrNoSlides) {
		return nil, nil, err
	}

	css, err := a.stylesheet(ctx)
	if err != nil {
		return nil, nil, err
	}
	modulesJS, err := a.inlineModules()
	if err != nil {
		return nil, nil, err
	}
	slidesJSON, err := a.slidesJSON(coll.Slides)
	if err != nil {
		return nil, nil, err
	}
	nav, err := a.templates.LoadTemplate(assets.TemplateNavigation)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}

	page, err := a.render(assets.TemplateSingleFile, singleFileData{
		Title:        a.cfg.Title,
		Author:       a.cfg.Author,
		CSS:          escapeScript(css),
		TotalSlides:  len(coll.Slides),
		ModulesJS:    modulesJS,
		SlidesJSON:   slidesJSON,
		NavigationJS: escapeScript(nav),
	})
	if err != nil {
		return nil, nil, err
	}

	index, err := writeArtifact(filepath.Join(a.cfg.OutputDir, IndexFile), []byte(page))
	if err != nil {
		return nil, nil, err
	}
	artifacts := []Artifact{index}
	log.Info("wrote single-file presentation", "path", index.Path, "slides", len(coll.Slides), "assets", len(coll.Assets))

	if a.cfg.Debug {
		dbg, err := json.MarshalIndent(coll.Slides, "", "  ")
		if err != nil {
			return nil, nil, fmt.Errorf("encoding debug slides: %w", err)
		}
		art, err := writeArtifact(filepath.Join(a.cfg.OutputDir, DebugFile), dbg)
		if err != nil {
			return nil, nil, err
		}
		artifacts = append(artifacts, art)
	}

	return coll, artifacts, nil
}

// inlineModules concatenates every JS module for embedding in one script.
func (a *OutputAssembler) inlineModules() (string, error) {
	names, err := a.modules()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, name := range names {
		src, err := os.ReadFile(filepath.Join(a.cfg.JSDir, name))
		if err != nil {
			return "", fmt.Errorf("reading JS module: %w", err)
		}
		fmt.Fprintf(&b, "// %s\n%s\n\n", name, escapeScript(string(src)))
	}
	return b.String(), nil
}
