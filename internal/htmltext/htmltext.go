// Package htmltext converts small HTML fragments to plain text and
// bounds text to snippet length.
package htmltext

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var tagRe = regexp.MustCompile(`<[^>]+>`)

// Strip converts an HTML fragment into plain text by walking the node
// tree and concatenating text nodes with minimal whitespace
// normalization. If parsing fails it falls back to a naive tag strip.
func Strip(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	n, err := html.Parse(strings.NewReader(s))
	if err != nil || n == nil {
		out := tagRe.ReplaceAllString(s, " ")
		return strings.Join(strings.Fields(out), " ")
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			t := strings.TrimSpace(n.Data)
			if t != "" {
				if b.Len() > 0 {
					b.WriteString(" ")
				}
				b.WriteString(t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// Ellipsis marks a truncated snippet.
const Ellipsis = "..."

// Truncate bounds s to at most limit runes, appending Ellipsis. Strings
// already within the limit keep the marker too, matching the snippet
// format produced for every source.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) > limit {
		return string(runes[:limit]) + Ellipsis
	}
	return s + Ellipsis
}
