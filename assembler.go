package slidedeck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/go-logr/logr"

	"github.com/ceresimaging/daq-slide-deck/internal/assets"
	"github.com/ceresimaging/daq-slide-deck/internal/fileutil"
)

// Output file names.
const (
	IndexFile      = "index.html"
	BundleDirName  = "presentation_bundle"
	BundleZipName  = BundleDirName + ".zip"
	ManifestFile   = "assets_manifest.json"
	DebugFile      = "slides_debug.json"
	BundleCSSFile  = "styles.css"
	PresentationJS = "presentation.js"
)

// OutputAssembler writes the presentation outputs for one build.
type OutputAssembler struct {
	cfg       Config
	date      string
	collector *SlideCollector
	templates assets.Loader
	encoder   Encoder
}

func newOutputAssembler(cfg Config, date string, collector *SlideCollector, templates assets.Loader, enc Encoder) *OutputAssembler {
	return &OutputAssembler{
		cfg:       cfg,
		date:      date,
		collector: collector,
		templates: templates,
		encoder:   enc,
	}
}

// slideData is the per-slide shape the navigation script reads.
type slideData struct {
	Content string `json:"content"`
	Title   string `json:"title"`
}

// slidesJSON encodes slides for embedding in a script. encoding/json escapes
// <, > and &, so slide content can never close the surrounding <script>.
func (a *OutputAssembler) slidesJSON(slides []SlideRecord) (string, error) {
	data := make([]slideData, len(slides))
	for i, s := range slides {
		data[i] = slideData{Content: s.Content, Title: s.Title}
	}

	var (
		b   []byte
		err error
	)
	if a.cfg.CompactJSON {
		b, err = json.Marshal(data)
	} else {
		b, err = json.MarshalIndent(data, "", "  ")
	}
	if err != nil {
		return "", fmt.Errorf("encoding slides: %w", err)
	}
	return string(b), nil
}

// stylesheet returns the deck's CSS, or the built-in style when the
// configured stylesheet does not exist.
func (a *OutputAssembler) stylesheet(ctx context.Context) (string, error) {
	if a.cfg.Stylesheet != "" {
		b, err := os.ReadFile(a.cfg.Stylesheet)
		if err == nil {
			return string(b), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("reading stylesheet: %w", err)
		}
		logr.FromContextOrDiscard(ctx).Info("stylesheet not found, using built-in style", "path", a.cfg.Stylesheet)
	}
	return a.templates.LoadStyle(assets.DefaultStyle)
}

// modules returns the JavaScript module file names in JSDir, sorted.
// A missing directory means no modules.
func (a *OutputAssembler) modules() ([]string, error) {
	if a.cfg.JSDir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(a.cfg.JSDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading JS directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.EqualFold(filepath.Ext(e.Name()), ".js") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// render executes the named template with data.
func (a *OutputAssembler) render(name string, data any) (string, error) {
	src, err := a.templates.LoadTemplate(name)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	tmpl, err := template.New(name).Parse(src)
	if err != nil {
		return "", fmt.Errorf("%w: parsing %s: %v", ErrTemplateRender, name, err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("%w: executing %s: %v", ErrTemplateRender, name, err)
	}
	return b.String(), nil
}

// escapeScript keeps inlined text from terminating an enclosing
// <script> or <style> element.
func escapeScript(s string) string {
	return strings.ReplaceAll(s, "</", `<\/`)
}

// writeArtifact writes data to path and returns it as an Artifact.
func writeArtifact(path string, data []byte) (Artifact, error) {
	if err := fileutil.WriteFile(path, data); err != nil {
		return Artifact{}, err
	}
	return Artifact{Path: path, Size: int64(len(data))}, nil
}
