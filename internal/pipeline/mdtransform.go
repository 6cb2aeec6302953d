package pipeline

import (
	"regexp"
	"strings"
)

// Highlight markers live in the Unicode Private Use Area so goldmark passes
// them through as text; finishMarkdown turns them into <mark> tags.
const (
	markStart = "\uE000"
	markEnd   = "\uE001"
)

var (
	crlfOrCR         = regexp.MustCompile(`\r\n?`)
	highlightPattern = regexp.MustCompile(`==([^=\n]+?)==`)
)

// prepareMarkdown normalizes line endings and replaces ==text== with
// highlight markers. Lines inside fenced code blocks are left alone.
func prepareMarkdown(content string) string {
	content = crlfOrCR.ReplaceAllString(content, "\n")
	if !strings.Contains(content, "==") {
		return content
	}

	lines := strings.Split(content, "\n")
	fence := ""
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		if marker := fenceMarker(trimmed); marker != "" {
			switch {
			case fence == "":
				fence = marker
			case strings.HasPrefix(trimmed, fence):
				fence = ""
			}
			continue
		}
		if fence == "" {
			lines[i] = highlightPattern.ReplaceAllString(line, markStart+"$1"+markEnd)
		}
	}
	return strings.Join(lines, "\n")
}

func fenceMarker(line string) string {
	for _, m := range []string{"```", "~~~"} {
		if strings.HasPrefix(line, m) {
			return m
		}
	}
	return ""
}

// finishMarkdown converts highlight markers in rendered HTML to <mark> tags.
func finishMarkdown(rendered string) string {
	if !strings.Contains(rendered, markStart) {
		return rendered
	}
	return strings.NewReplacer(markStart, "<mark>", markEnd, "</mark>").Replace(rendered)
}
