package scraper

import (
	"regexp"
	"strings"
)

// Candidate is one step in a locator chain: a structural selector plus the
// extraction rule applied to the first node it matches. An empty Attr means
// "take the node text".
type Candidate struct {
	Selector string
	Attr     string
}

// Chain is an ordered list of candidates for one logical field, from the most
// specific structural match down to the loosest pattern. Chains are static
// configuration data; reordering one never touches extraction logic.
type Chain []Candidate

// Resolve evaluates the chain against scope and returns the first candidate's
// non-empty extraction. Later candidates are not evaluated once one succeeds.
// Returns "" when no candidate matches.
func Resolve(scope Node, chain Chain) string {
	for _, cand := range chain {
		node := scope.FindOne(cand.Selector)
		if node == nil {
			continue
		}
		var text string
		if cand.Attr != "" {
			text = strings.TrimSpace(node.Attr(cand.Attr))
		} else {
			text = node.Text()
		}
		if text != "" {
			return text
		}
	}
	return ""
}

// firstSubmatch scans text with each pattern in order and returns the first
// trimmed capture group, or "".
func firstSubmatch(patterns []*regexp.Regexp, text string) string {
	for _, pattern := range patterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}
