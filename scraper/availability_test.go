package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAvailable(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"normal product page", "Widget Pro 3000 $49.99 In Stock", true},
		{"currently unavailable", "Widget Pro 3000 Currently unavailable.", false},
		{"not available", "This item is not available in your region", false},
		{"page not found", "Page Not Found", false},
		{"ran out", "Sorry, we just ran out.", false},
		{"out of stock", "Out of stock. Check back later.", false},
		{"indicators match exact casing only", "currently unavailable", true},
		{"empty text", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAvailable(tt.text))
		})
	}
}
