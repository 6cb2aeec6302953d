package slidedeck

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ceresimaging/daq-slide-deck/internal/pipeline"
)

// Reference is one asset reference found in slide text.
type Reference struct {
	Kind     AssetKind
	Match    string // whole matched text, e.g. `src="fig/plot.png"`
	Path     string // path as written in the slide
	Resolved string // absolute, cleaned filesystem path
	Exists   bool   // Resolved names an existing regular file

	span     pipeline.Span
	pathSpan pipeline.Span
}

// Offset returns the byte offset of the reference in the scanned text.
func (r Reference) Offset() int { return r.span.Start }

// AssetResolver discovers asset references in slide text and resolves them
// against the slide's location.
type AssetResolver struct{}

// NewAssetResolver creates an AssetResolver.
func NewAssetResolver() *AssetResolver {
	return &AssetResolver{}
}

// Resolve scans content and returns its references in order of appearance.
// slidePath is the path of the file content was read from; relative
// references are resolved against its directory. References to URLs and data
// URIs are not returned.
func (r *AssetResolver) Resolve(content, slidePath string) []Reference {
	matches := pipeline.Scan(content)
	if len(matches) == 0 {
		return nil
	}

	baseDir := filepath.Dir(slidePath)
	if abs, err := filepath.Abs(baseDir); err == nil {
		baseDir = abs
	}

	refs := make([]Reference, 0, len(matches))
	for _, m := range matches {
		if pipeline.IsExternal(m.Path) {
			continue
		}
		resolved := resolvePath(baseDir, m.Path)
		refs = append(refs, Reference{
			Kind:     AssetKind(m.Kind),
			Match:    m.Text,
			Path:     m.Path,
			Resolved: resolved,
			Exists:   isRegularFile(resolved),
			span:     m.Span,
			pathSpan: m.PathSpan,
		})
	}
	return refs
}

// resolvePath joins a slide-relative reference to baseDir. A leading "/"
// makes the reference absolute. Symlinks are followed when the target exists.
func resolvePath(baseDir, ref string) string {
	p := filepath.FromSlash(ref)
	if !strings.HasPrefix(ref, "/") {
		p = filepath.Join(baseDir, p)
	}
	p = filepath.Clean(p)
	if real, err := filepath.EvalSymlinks(p); err == nil {
		return real
	}
	return p
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
