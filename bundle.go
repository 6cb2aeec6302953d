package slidedeck

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"

	"github.com/ceresimaging/daq-slide-deck/internal/assets"
	"github.com/ceresimaging/daq-slide-deck/internal/fileutil"
)

type bundleIndexData struct {
	Title   string
	Author  string
	Scripts []string
}

type presentationData struct {
	SlidesJSON   string
	NavigationJS string
}

// Bundle builds the multi-file presentation under OutputDir/presentation_bundle
// and archives it to OutputDir/presentation_bundle.zip.
//
// Layout:
//
//	index.html
//	css/styles.css
//	js/<modules>.js
//	js/presentation.js
//	assets/<processed assets>
func (a *OutputAssembler) Bundle(ctx context.Context) (*Collection, []Artifact, error) {
	log := logr.FromContextOrDiscard(ctx).WithName("bundle")

	dir := filepath.Join(a.cfg.OutputDir, BundleDirName)
	for _, sub := range []string{"css", "js", BundleAssetsDir} {
		if err := os.MkdirAll(filepath.Join(dir, sub), fileutil.DirPermissions); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrOutputSetup, err)
		}
	}

	coll, err := a.collector.Collect(logr.NewContext(ctx, log), a.cfg.Slides, ModeBundle, filepath.Join(dir, BundleAssetsDir))
	if err != nil && !errors.Is(err, ErrNoSlides) {
		return nil, nil, err
	}

	css, err := a.stylesheet(ctx)
	if err != nil {
		return nil, nil, err
	}
	if err := fileutil.WriteFile(filepath.Join(dir, "css", BundleCSSFile), []byte(css)); err != nil {
		return nil, nil, err
	}

	modules, err := a.modules()
	if err != nil {
		return nil, nil, err
	}
	for _, name := range modules {
		if _, err := fileutil.CopyFile(filepath.Join(a.cfg.JSDir, name), filepath.Join(dir, "js", name)); err != nil {
			return nil, nil, fmt.Errorf("copying JS module: %w", err)
		}
	}

	slidesJSON, err := a.slidesJSON(coll.Slides)
	if err != nil {
		return nil, nil, err
	}
	nav, err := a.templates.LoadTemplate(assets.TemplateNavigation)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	script, err := a.render(assets.TemplatePresentation, presentationData{SlidesJSON: slidesJSON, NavigationJS: nav})
	if err != nil {
		return nil, nil, err
	}
	if err := fileutil.WriteFile(filepath.Join(dir, "js", PresentationJS), []byte(script)); err != nil {
		return nil, nil, err
	}

	page, err := a.render(assets.TemplateBundleIndex, bundleIndexData{
		Title:   a.cfg.Title,
		Author:  a.cfg.Author,
		Scripts: append(modules, PresentationJS),
	})
	if err != nil {
		return nil, nil, err
	}
	index, err := writeArtifact(filepath.Join(dir, IndexFile), []byte(page))
	if err != nil {
		return nil, nil, err
	}

	zip, err := Archive(dir, filepath.Join(a.cfg.OutputDir, BundleZipName))
	if err != nil {
		return nil, nil, err
	}
	log.Info("wrote bundle", "path", dir, "archive", zip.Path, "digest", zip.Digest, "slides", len(coll.Slides), "assets", len(coll.Assets))

	return coll, []Artifact{index, zip}, nil
}
