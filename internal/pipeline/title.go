package pipeline

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FirstHeading returns the text of the first <h1> element in an HTML fragment,
// with inner tags dropped, entities decoded and whitespace collapsed.
// Only the first <h1> counts: the second result is false when the fragment
// has no <h1> or when the first one is empty.
func FirstHeading(fragment string) (string, bool) {
	z := html.NewTokenizer(strings.NewReader(fragment))

	depth := 0
	var text strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			// EOF or malformed input; an unclosed <h1> still yields its text.
			return finishHeading(text.String())
		case html.StartTagToken:
			if isH1(z) {
				depth++
			}
		case html.EndTagToken:
			if depth > 0 && isH1(z) {
				depth--
				if depth == 0 {
					return finishHeading(text.String())
				}
			}
		case html.TextToken:
			if depth > 0 {
				text.Write(z.Text())
				text.WriteByte(' ')
			}
		}
	}
}

func isH1(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	return atom.Lookup(name) == atom.H1
}

func finishHeading(raw string) (string, bool) {
	title := strings.Join(strings.Fields(raw), " ")
	return title, title != ""
}
