package scraper

import (
	"io"

	"github.com/PuerkitoBio/goquery"
)

// Node is the narrow view of a parsed HTML node the extraction pipeline
// depends on. Keeping the surface this small means the extractors never touch
// a concrete parsing library directly.
type Node interface {
	// FindOne returns the first node matching the selector, or nil.
	FindOne(selector string) Node
	// Find returns all nodes matching the selector in document order.
	Find(selector string) []Node
	// Text returns the node's whitespace-normalized text content.
	Text() string
	// Attr returns the named attribute's value, or "".
	Attr(name string) string
}

// Document is the root node of a parsed page.
type Document = Node

type goqueryNode struct {
	sel *goquery.Selection
}

// ParseDocument parses HTML from r into a Document backed by goquery.
func ParseDocument(r io.Reader) (Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return &goqueryNode{sel: doc.Selection}, nil
}

func (n *goqueryNode) FindOne(selector string) Node {
	s := n.sel.Find(selector).First()
	if s.Length() == 0 {
		return nil
	}
	return &goqueryNode{sel: s}
}

func (n *goqueryNode) Find(selector string) []Node {
	var nodes []Node
	n.sel.Find(selector).Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, &goqueryNode{sel: s})
	})
	return nodes
}

func (n *goqueryNode) Text() string {
	return cleanString(n.sel.Text())
}

func (n *goqueryNode) Attr(name string) string {
	val, _ := n.sel.Attr(name)
	return val
}
