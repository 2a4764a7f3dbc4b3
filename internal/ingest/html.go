package ingest

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/conversight/conversight/internal/platform/textutils"
)

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}

	return ""
}

func classList(n *html.Node) []string {
	return strings.Fields(attrValue(n, "class"))
}

// hasClasses reports whether the node carries every given class.
func hasClasses(n *html.Node, classes ...string) bool {
	if n.Type != html.ElementNode {
		return false
	}

	have := make(map[string]bool)
	for _, c := range classList(n) {
		have[c] = true
	}

	for _, c := range classes {
		if !have[c] {
			return false
		}
	}

	return true
}

func isDiv(n *html.Node) bool {
	return n.Type == html.ElementNode && n.Data == "div"
}

// findDivs collects descendant divs carrying all the given classes, in
// document order. Matched nodes are not descended into.
func findDivs(root *html.Node, classes ...string) []*html.Node {
	var out []*html.Node

	var traverse func(*html.Node)

	traverse = func(n *html.Node) {
		if isDiv(n) && hasClasses(n, classes...) {
			out = append(out, n)
			return
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}

	traverse(root)

	return out
}

// findDiv returns the first descendant div with all the given classes.
func findDiv(root *html.Node, classes ...string) *html.Node {
	divs := findDivs(root, classes...)
	if len(divs) == 0 {
		return nil
	}

	return divs[0]
}

// nodeText joins the trimmed text fragments below the node with the
// separator, collapsing runs of whitespace inside each fragment.
func nodeText(n *html.Node, sep string) string {
	var fragments []string

	var traverse func(*html.Node)

	traverse = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := textutils.CollapseSpaces(n.Data); t != "" {
				fragments = append(fragments, t)
			}

			return
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}

	traverse(n)

	return strings.Join(fragments, sep)
}
