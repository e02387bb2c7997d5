package scraper

import "regexp"

// Buy-box chains, most reliable selector first.
var (
	titleChain = Chain{
		{Selector: "span#productTitle"},
		{Selector: "#productTitle"},
		{Selector: "h1.a-size-large"},
		{Selector: "h1 span"},
		{Selector: "h1"},
		{Selector: ".product-title"},
		{Selector: `[data-automation-id="product-title"]`},
	}

	buyBoxPriceChain = Chain{
		{Selector: ".a-price-whole"},
		{Selector: "#apex_desktop .a-price .a-price-whole"},
		{Selector: "#priceblock_dealprice"},
		{Selector: "#priceblock_pospromoprice"},
		{Selector: ".a-price .a-offscreen"},
		{Selector: "#priceDisplayInfoFeature .a-price .a-offscreen"},
	}

	buyBoxSellerChain = Chain{
		{Selector: "#merchantInfoFeature_feature_div a"},
		{Selector: "#sellerProfileTriggerId"},
		{Selector: "#merchant-info a"},
		{Selector: `a[href*="seller="]`},
		{Selector: `.tabular-buybox-text[data-feature-name="bylineInfo"] a`},
	}
)

// Containers scanned for fulfillment text, in decreasing confidence.
var fulfillmentContainers = []string{
	"#merchantInfoFeature_feature_div",
	"#tabular-buybox",
	".tabular-buybox-text",
	"#merchant-info",
}

var (
	sellerPrefixPattern = regexp.MustCompile(`(?i)^(by\s+|sold\s+by\s+)`)

	shipsFromPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Ships from\s+([^.\n]+)`),
		regexp.MustCompile(`(?i)Shipped from\s+([^.\n]+)`),
		regexp.MustCompile(`(?i)Ships from:\s*([^.\n]+)`),
	}
	soldByPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Sold by\s+([^.\n]+)`),
		regexp.MustCompile(`(?i)Sold by:\s*([^.\n]+)`),
	}
)

// ExtractBuyBox pulls the primary offer out of a product page. Every field
// tolerates "no match"; the record may come back entirely empty.
func ExtractBuyBox(doc Document) BuyBoxRecord {
	rec := BuyBoxRecord{Price: extractBuyBoxPrice(doc)}

	if seller := Resolve(doc, buyBoxSellerChain); seller != "" {
		rec.Seller = sellerPrefixPattern.ReplaceAllString(seller, "")
	}

	for _, selector := range fulfillmentContainers {
		container := doc.FindOne(selector)
		if container == nil {
			continue
		}
		text := container.Text()
		if rec.ShipsFrom == "" {
			rec.ShipsFrom = firstSubmatch(shipsFromPatterns, text)
		}
		if rec.SoldBy == "" {
			rec.SoldBy = firstSubmatch(soldByPatterns, text)
		}
		if rec.ShipsFrom != "" && rec.SoldBy != "" {
			break
		}
	}

	return rec
}

// extractBuyBoxPrice prefers the composite price widget (separate whole and
// fraction spans) and only falls back to the flat selector chain when no
// widget carries a whole-amount span.
func extractBuyBoxPrice(doc Document) *Price {
	for _, widget := range doc.Find("span.a-price") {
		whole := widget.FindOne("span.a-price-whole")
		if whole == nil {
			continue
		}
		full := whole.Text()
		if fraction := widget.FindOne("span.a-price-fraction"); fraction != nil {
			full = full + "." + fraction.Text()
		}
		return CleanPrice(full)
	}

	if text := Resolve(doc, buyBoxPriceChain); text != "" {
		return CleanPrice(text)
	}
	return nil
}
