package extract

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/eorzea-tools/aetheryte-cli/internal/model"
)

// aetherytesLabel is the wiki's definition-term heading for the teleport
// point list on an area page.
const aetherytesLabel = "Aetherytes"

// pageScanKeywords gate the whole-page tier: a match is kept only when
// its name suggests a settlement or teleport point. The tier is too
// permissive to run unfiltered.
var pageScanKeywords = []string{"aetheryte", "camp", "settlement", "outpost", "city", "town"}

// definitionList finds a <dt> whose text is exactly the Aetherytes label
// and parses the next <dd> in document order.
func definitionList(doc *html.Node) []model.Candidate {
	var out []model.Candidate
	elements := elementsInOrder(doc)
	for i, n := range elements {
		if n.Data != "dt" || strings.TrimSpace(nodeText(n)) != aetherytesLabel {
			continue
		}
		for _, next := range elements[i+1:] {
			if next.Data == "dd" {
				out = append(out, parseCoords(nodeText(next))...)
				break
			}
		}
	}
	return out
}

// adjacentSibling scans every text node mentioning the Aetherytes label
// and parses the element immediately following its parent.
func adjacentSibling(doc *html.Node) []model.Candidate {
	var out []model.Candidate
	walk(doc, func(n *html.Node) bool {
		if n.Type != html.TextNode || !strings.Contains(n.Data, aetherytesLabel) {
			return true
		}
		if sib := nextElement(n.Parent); sib != nil {
			out = append(out, parseCoords(nodeText(sib))...)
		}
		return true
	})
	return out
}

// pageScan applies the coordinate pattern to the whole page's visible
// text, keeping only keyword-bearing names.
func pageScan(doc *html.Node) []model.Candidate {
	var out []model.Candidate
	for _, c := range parseCoords(visibleText(doc)) {
		name := strings.ToLower(c.Name)
		for _, kw := range pageScanKeywords {
			if strings.Contains(name, kw) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// walk visits every node depth-first. Returning false from fn skips the
// node's children.
func walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

// elementsInOrder flattens the element nodes in document order.
func elementsInOrder(doc *html.Node) []*html.Node {
	var els []*html.Node
	walk(doc, func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			els = append(els, n)
		}
		return true
	})
	return els
}

// nextElement returns the first element sibling after n.
func nextElement(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

// nodeText concatenates the text content of a subtree.
func nodeText(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}

// visibleText concatenates the page's text content, skipping script and
// style blocks.
func visibleText(doc *html.Node) string {
	var b strings.Builder
	walk(doc, func(n *html.Node) bool {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return false
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		return true
	})
	return b.String()
}
