package slidedeck

import (
	_ "crypto/sha256" // registers digest.Canonical
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/opencontainers/go-digest"
)

const (
	nameSegments = 3
	hashLength   = 10
)

var (
	unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)
	underscoreRuns  = regexp.MustCompile(`_+`)
)

// AssetNamer derives output file names for assets.
//
// A name is built from the last three path segments that are not in the
// exclusion set, joined with "_" and restricted to [A-Za-z0-9_.-], followed by
// a short content hash so distinct files never share a name. Images take the
// encoder's extension.
type AssetNamer struct {
	exclude map[string]struct{}
	imgExt  string
}

// NewAssetNamer creates an AssetNamer. Segments in exclude are compared
// case-insensitively. imageExt is the extension given to image assets,
// including the leading dot.
func NewAssetNamer(exclude []string, imageExt string) *AssetNamer {
	set := make(map[string]struct{}, len(exclude))
	for _, seg := range exclude {
		set[strings.ToLower(seg)] = struct{}{}
	}
	return &AssetNamer{exclude: set, imgExt: imageExt}
}

// Name returns the output file name for the asset at path.
// The file must be readable since its content determines the hash.
func (n *AssetNamer) Name(path string, kind AssetKind) (string, error) {
	sum, err := fileDigest(path)
	if err != nil {
		return "", err
	}

	base := n.Stem(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if kind == KindImage {
		ext = n.imgExt
	}
	return stem + "-" + sum + ext, nil
}

// Stem returns the readable part of a name: filtered segments joined and
// sanitized, with the original extension and no hash.
func (n *AssetNamer) Stem(path string) string {
	var kept []string
	for _, seg := range strings.FieldsFunc(filepath.ToSlash(path), func(r rune) bool { return r == '/' }) {
		if seg == "." || seg == ".." {
			continue
		}
		if _, skip := n.exclude[strings.ToLower(seg)]; skip {
			continue
		}
		kept = append(kept, seg)
	}
	if len(kept) > nameSegments {
		kept = kept[len(kept)-nameSegments:]
	}

	name := strings.Join(kept, "_")
	name = unsafeNameChars.ReplaceAllString(name, "_")
	name = underscoreRuns.ReplaceAllString(name, "_")
	if name == "" || name == "." {
		name = "asset"
	}
	return name
}

func fileDigest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("hashing asset: %w", err)
	}
	defer func() { _ = f.Close() }()

	d, err := digest.Canonical.FromReader(f)
	if err != nil {
		return "", fmt.Errorf("hashing asset %s: %w", path, err)
	}
	return d.Encoded()[:hashLength], nil
}
