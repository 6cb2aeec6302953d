package pipeline

import (
	"regexp"
	"strings"
)

// Kind classifies a discovered reference.
type Kind string

const (
	KindImage Kind = "image"
	KindData  Kind = "data"
)

// Span is a half-open byte range [Start, End) into scanned text.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// Match is one asset reference found by Scan.
type Match struct {
	Kind     Kind
	Text     string // Whole matched reference, e.g. `src="fig/plot.png"`
	Path     string // Referenced path as written, e.g. `fig/plot.png`
	Span     Span   // Location of Text
	PathSpan Span   // Location of Path; always inside Span
}

const (
	imageExts = `png|jpe?g|gif|webp|tiff?`
	dataExts  = `json|csv|txt|md|html`
)

// referencePattern is one alternation so that a single left-to-right pass
// finds every reference. At a given offset the alternatives are tried in
// order: src attribute, CSS url(), then data href.
var referencePattern = regexp.MustCompile(`(?i)` +
	`src=["']([^"']+\.(?:` + imageExts + `))["']` +
	`|url\(["']?([^"')\s]+\.(?:` + imageExts + `))["']?\)` +
	`|href=["']([^"']+\.(?:` + dataExts + `))["']`)

// groupKinds maps capture group index (1-based) to reference kind.
var groupKinds = [...]Kind{1: KindImage, 2: KindImage, 3: KindData}

// Scan returns every asset reference in content, in order of appearance.
// Matches never overlap. Each call rescans from the beginning.
func Scan(content string) []Match {
	locs := referencePattern.FindAllStringSubmatchIndex(content, -1)
	if len(locs) == 0 {
		return nil
	}

	matches := make([]Match, 0, len(locs))
	for _, loc := range locs {
		for g := 1; g < len(groupKinds); g++ {
			start, end := loc[2*g], loc[2*g+1]
			if start < 0 {
				continue
			}
			matches = append(matches, Match{
				Kind:     groupKinds[g],
				Text:     content[loc[0]:loc[1]],
				Path:     content[start:end],
				Span:     Span{Start: loc[0], End: loc[1]},
				PathSpan: Span{Start: start, End: end},
			})
			break
		}
	}
	return matches
}

// IsExternal reports whether a referenced path points off the local filesystem
// (URLs, protocol-relative paths, data URIs).
func IsExternal(path string) bool {
	lower := strings.ToLower(path)
	for _, prefix := range []string{"http://", "https://", "file://", "data:", "//"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
