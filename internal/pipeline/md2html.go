package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates Markdown to HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// FragmentRenderer abstracts Markdown to HTML fragment conversion.
type FragmentRenderer interface {
	RenderFragment(ctx context.Context, content string) (string, error)
}

// GoldmarkRenderer renders Markdown slides to HTML fragments using goldmark.
type GoldmarkRenderer struct {
	md goldmark.Markdown
}

// NewGoldmarkRenderer creates a GoldmarkRenderer with GFM extensions and
// class-based syntax highlighting.
func NewGoldmarkRenderer() *GoldmarkRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			// Slides embed raw HTML (demo containers, inline SVG); the deck
			// author is the only source of slide content.
			html.WithUnsafe(),
			html.WithXHTML(),
		),
	)
	return &GoldmarkRenderer{md: md}
}

// RenderFragment converts Markdown to an HTML fragment without a document wrapper.
// ==text== becomes <mark>text</mark> outside fenced code.
// Goldmark has no context support, so conversion runs in a goroutine and the
// call returns early if ctx is cancelled.
func (r *GoldmarkRenderer) RenderFragment(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(prepareMarkdown(content)), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: finishMarkdown(buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// Compile-time interface check.
var _ FragmentRenderer = (*GoldmarkRenderer)(nil)
