package scraper

import "strings"

// unavailableIndicators are matched as exact substrings against the page
// text, preserving the casing real product pages use for these phrases.
var unavailableIndicators = []string{
	"Currently unavailable",
	"This item is not available",
	"Page Not Found",
	"Sorry, we just ran out",
	"Out of stock",
}

// IsAvailable reports whether the page text carries no unavailability phrase.
func IsAvailable(pageText string) bool {
	for _, indicator := range unavailableIndicators {
		if strings.Contains(pageText, indicator) {
			return false
		}
	}
	return true
}
