package slidedeck

import (
	"encoding/base64"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ceresimaging/daq-slide-deck/internal/pipeline"
)

// BundleAssetsDir is the bundle-relative directory holding assets.
const BundleAssetsDir = "assets"

// mediaTypes maps image extensions to data URI media types.
var mediaTypes = map[string]string{
	".webp": "image/webp",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
}

// Rewrite pairs a reference with its replacement path text.
type Rewrite struct {
	Ref  Reference
	Text string
}

// ReferenceRewriter produces replacement text for resolved references.
type ReferenceRewriter struct {
	mode Mode
}

// NewReferenceRewriter creates a ReferenceRewriter for mode.
func NewReferenceRewriter(mode Mode) *ReferenceRewriter {
	return &ReferenceRewriter{mode: mode}
}

// Plan returns the rewrite for ref given the record of its processed asset.
// The boolean is false when the reference stays as written: in single-file
// mode only images are inlined.
func (w *ReferenceRewriter) Plan(ref Reference, rec AssetRecord) (Rewrite, bool, error) {
	switch w.mode {
	case ModeBundle:
		return Rewrite{Ref: ref, Text: path.Join(BundleAssetsDir, filepath.Base(rec.ProcessedPath))}, true, nil
	case ModeSingleFile:
		if rec.Kind != KindImage || rec.ProcessedPath == "" {
			return Rewrite{}, false, nil
		}
		uri, err := DataURI(rec.ProcessedPath)
		if err != nil {
			return Rewrite{}, false, err
		}
		return Rewrite{Ref: ref, Text: uri}, true, nil
	}
	return Rewrite{}, false, fmt.Errorf("unknown mode %v", w.mode)
}

// Apply replaces the path of every planned reference in content. Only the
// bytes each reference was found at change, so identical text elsewhere is
// left alone.
func (w *ReferenceRewriter) Apply(content string, rewrites []Rewrite) (string, error) {
	edits := make([]pipeline.Edit, len(rewrites))
	for i, rw := range rewrites {
		edits[i] = pipeline.Edit{Span: rw.Ref.pathSpan, Text: rw.Text}
	}
	return pipeline.ApplyEdits(content, edits)
}

// DataURI reads the file at p and returns it as a base64 data URI.
func DataURI(p string) (string, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return "", fmt.Errorf("inlining %s: %w", filepath.Base(p), err)
	}
	mt, ok := mediaTypes[strings.ToLower(filepath.Ext(p))]
	if !ok {
		mt = "application/octet-stream"
	}
	return "data:" + mt + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
