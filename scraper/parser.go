package scraper

import (
	"regexp"
	"strconv"
	"strings"
)

var whitespacePattern = regexp.MustCompile(`\s+`)

func cleanString(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\t", " ")
	return whitespacePattern.ReplaceAllString(s, " ")
}

// Well-formed currency shapes, tried before any loose digit scanning so that
// "$1,234.56" never loses to an unrelated digit run.
var (
	priceDecimalPattern = regexp.MustCompile(`\$?(\d{1,3}(?:,\d{3})*\.\d{2})`)
	priceWholePattern   = regexp.MustCompile(`\$?(\d{1,3}(?:,\d{3})*)`)
	digitRunPattern     = regexp.MustCompile(`\d+\.?\d*`)
)

// CleanPrice normalizes a raw price fragment. It returns a numeric Price when
// any plausible numeric shape is found, the trimmed original text otherwise,
// and nil for empty input.
//
// Order matters: currency shapes with optional thousands separators win
// first, then digit runs with exactly two fractional digits, then bare runs
// of at most six integer digits (longer runs are likely SKUs, not prices).
func CleanPrice(text string) *Price {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil
	}

	for _, pattern := range []*regexp.Regexp{priceDecimalPattern, priceWholePattern} {
		m := pattern.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		if v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64); err == nil {
			return &Price{Amount: v, Numeric: true}
		}
	}

	runs := digitRunPattern.FindAllString(s, -1)
	for _, run := range runs {
		dot := strings.IndexByte(run, '.')
		if dot >= 0 && len(run)-dot-1 == 2 {
			if v, err := strconv.ParseFloat(run, 64); err == nil {
				return &Price{Amount: v, Numeric: true}
			}
		}
	}
	for _, run := range runs {
		if !strings.Contains(run, ".") && len(run) <= 6 {
			if v, err := strconv.ParseFloat(run, 64); err == nil {
				return &Price{Amount: v, Numeric: true}
			}
		}
	}

	return &Price{Raw: s}
}
