package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// leafNode is a terminal stub node.
type leafNode struct {
	text  string
	attrs map[string]string
}

func (l *leafNode) FindOne(string) Node { return nil }
func (l *leafNode) Find(string) []Node  { return nil }
func (l *leafNode) Text() string        { return l.text }
func (l *leafNode) Attr(name string) string {
	return l.attrs[name]
}

// countingScope records every selector it is queried with.
type countingScope struct {
	nodes   map[string]*leafNode
	queried []string
}

func (s *countingScope) FindOne(selector string) Node {
	s.queried = append(s.queried, selector)
	if node, ok := s.nodes[selector]; ok {
		return node
	}
	return nil
}
func (s *countingScope) Find(string) []Node { return nil }
func (s *countingScope) Text() string       { return "" }
func (s *countingScope) Attr(string) string { return "" }

func TestResolveShortCircuits(t *testing.T) {
	scope := &countingScope{nodes: map[string]*leafNode{
		"#second": {text: "second value"},
		"#third":  {text: "third value"},
	}}
	chain := Chain{
		{Selector: "#first"},
		{Selector: "#second"},
		{Selector: "#third"},
	}

	got := Resolve(scope, chain)

	assert.Equal(t, "second value", got)
	// The third candidate must never be evaluated.
	assert.Equal(t, []string{"#first", "#second"}, scope.queried)
}

func TestResolveSkipsEmptyText(t *testing.T) {
	scope := &countingScope{nodes: map[string]*leafNode{
		"#first":  {text: ""},
		"#second": {text: "value"},
	}}
	chain := Chain{{Selector: "#first"}, {Selector: "#second"}}

	assert.Equal(t, "value", Resolve(scope, chain))
}

func TestResolveNoMatch(t *testing.T) {
	scope := &countingScope{nodes: map[string]*leafNode{}}
	chain := Chain{{Selector: "#first"}, {Selector: "#second"}}

	assert.Equal(t, "", Resolve(scope, chain))
	assert.Len(t, scope.queried, 2)
}

func TestResolveAttrExtraction(t *testing.T) {
	scope := &countingScope{nodes: map[string]*leafNode{
		"a.offers": {text: "See all offers", attrs: map[string]string{"href": " /gp/offer-listing/B0X "}},
	}}
	chain := Chain{{Selector: "a.offers", Attr: "href"}}

	assert.Equal(t, "/gp/offer-listing/B0X", Resolve(scope, chain))
}
