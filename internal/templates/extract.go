package templates

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// ExtractContentDiv returns the inner HTML of the first div whose id is
// "content" or whose class list contains "content". ok is false when the
// document has no such element.
func ExtractContentDiv(document string) (inner string, ok bool, err error) {
	doc, err := html.Parse(strings.NewReader(document))
	if err != nil {
		return "", false, fmt.Errorf("parse HTML: %w", err)
	}

	target := findContentDiv(doc)
	if target == nil {
		return "", false, nil
	}

	var buf bytes.Buffer
	for c := target.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", false, fmt.Errorf("render content: %w", err)
		}
	}
	return buf.String(), true, nil
}

func findContentDiv(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "div" && isContentDiv(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findContentDiv(c); found != nil {
			return found
		}
	}
	return nil
}

func isContentDiv(n *html.Node) bool {
	if getAttr(n, "id") == "content" {
		return true
	}
	for _, class := range strings.Fields(getAttr(n, "class")) {
		if class == "content" {
			return true
		}
	}
	return false
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
