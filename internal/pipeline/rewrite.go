package pipeline

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrOverlappingEdits indicates two edits target intersecting spans.
var ErrOverlappingEdits = errors.New("overlapping edits")

// ErrSpanOutOfRange indicates an edit span lies outside the text.
var ErrSpanOutOfRange = errors.New("edit span out of range")

// Edit replaces the bytes covered by Span with Text.
type Edit struct {
	Span Span
	Text string
}

// ApplyEdits replaces each edit's span in content.
// Spans refer to the original content, so edits may be given in any order;
// text outside the spans is copied unchanged.
func ApplyEdits(content string, edits []Edit) (string, error) {
	if len(edits) == 0 {
		return content, nil
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Span.Start < sorted[j].Span.Start
	})

	var b strings.Builder
	b.Grow(len(content))

	pos := 0
	for _, e := range sorted {
		if e.Span.Start < 0 || e.Span.End > len(content) || e.Span.Start > e.Span.End {
			return "", fmt.Errorf("%w: [%d,%d) in %d bytes", ErrSpanOutOfRange, e.Span.Start, e.Span.End, len(content))
		}
		if e.Span.Start < pos {
			return "", fmt.Errorf("%w: edit at %d starts before %d", ErrOverlappingEdits, e.Span.Start, pos)
		}
		b.WriteString(content[pos:e.Span.Start])
		b.WriteString(e.Text)
		pos = e.Span.End
	}
	b.WriteString(content[pos:])

	return b.String(), nil
}
