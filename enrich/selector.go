package enrich

import (
	"errors"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// ErrNoMatch is returned by SelectText when the selector is valid but matches
// nothing; callers keep the unnarrowed text in that case.
var ErrNoMatch = errors.New("selector matched no elements")

// SelectText parses the captured markup, matches elements against the given
// CSS selector, and returns their concatenated visible text in document
// order. The stored markup itself is never modified.
func SelectText(rawHTML string, selector string) (string, error) {
	sel, err := cascadia.Parse(selector)
	if err != nil {
		return "", err
	}

	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", err
	}

	matches := cascadia.QueryAll(doc, sel)
	if len(matches) == 0 {
		return "", ErrNoMatch
	}

	parts := make([]string, 0, len(matches))
	for _, node := range matches {
		if text := strings.TrimSpace(nodeText(node)); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n\n"), nil
}

// nodeText collects the text descendants of n, skipping script and style
// bodies.
func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return ""
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return b.String()
}
