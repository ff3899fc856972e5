package extract

import (
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/norm"
)

var whitespace = regexp.MustCompile(`\s+`)

// MainText returns the readable text of an article: the text of every <p>
// element, in document order, joined by single spaces. Script, style and
// noscript content is ignored. The result is NFKC-normalized so that
// ligatures and full-width forms tokenize like their plain equivalents.
func MainText(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	var paragraphs []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if skipped(n) {
				return
			}
			if n.DataAtom == atom.P {
				paragraphs = append(paragraphs, nodeText(n))
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	text := strings.Join(paragraphs, " ")
	text = whitespace.ReplaceAllString(text, " ")
	return norm.NFKC.String(strings.TrimSpace(text)), nil
}

func skipped(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Noscript:
		return true
	}
	return false
}

// nodeText joins the trimmed text nodes under n with spaces.
func nodeText(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			if s := strings.TrimSpace(n.Data); s != "" {
				parts = append(parts, s)
			}
			return
		case n.Type == html.ElementNode && skipped(n):
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, " ")
}
