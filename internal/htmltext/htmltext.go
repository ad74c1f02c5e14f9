// Package htmltext extracts the visible text of an HTML document.
package htmltext

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Extract returns the text content of doc with script and style elements
// removed, each line trimmed and blank lines dropped. Malformed markup is
// handled leniently by the HTML5 parser; if parsing still fails the input is
// cleaned as plain text.
func Extract(doc string) string {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return collapse(doc)
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(n.Data)
			return
		case html.ElementNode:
			if n.DataAtom == atom.Script || n.DataAtom == atom.Style {
				return
			}
		case html.CommentNode:
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return collapse(sb.String())
}

func collapse(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
