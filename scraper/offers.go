package scraper

import (
	"fmt"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Link candidates for the offer-listing page. The live link's presence is
// layout-dependent, hence the constructed fallback URL in offersURL.
var offerLinkChain = Chain{
	{Selector: `a[href*="offer-listing"]`, Attr: "href"},
	{Selector: `a[href*="/gp/offer-listing/"]`, Attr: "href"},
	{Selector: "#aod-ingress-link", Attr: "href"},
	{Selector: `a[id="aod-ingress-link"]`, Attr: "href"},
}

// Container candidates, modern layout first, then legacy row classes, then a
// loose class-substring match.
var offerContainerSelectors = []string{
	"div[data-aod-atc-action]",
	"div.a-row.a-spacing-mini.olp-offer-row",
	"div.olp-offer-row",
	`div[class*="olp-offer"]`,
	"div.a-section.a-spacing-small.olp-offer",
}

var (
	inlinePricePattern = regexp.MustCompile(`\$\d+`)
	offerPricePattern  = regexp.MustCompile(`\$(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`)

	offerSellerPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Sold by\s+([^.\n]+?)(?:\s|$)`),
		regexp.MustCompile(`(?i)Ships from and sold by\s+([^.\n]+?)(?:\s|$)`),
		regexp.MustCompile(`(?i)by\s+([^.\n]+?)(?:\s|$)`),
	}

	shippingPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\$\d+\.\d{2}\s+shipping)`),
		regexp.MustCompile(`(?i)(FREE\s+(?:Shipping|delivery))`),
		regexp.MustCompile(`(?i)(\+\s*\$\d+\.\d{2}\s+shipping)`),
		regexp.MustCompile(`(?i)(Prime\s+FREE\s+Delivery)`),
	}

	offerShipsFromPattern = regexp.MustCompile(`(?i)Ships from\s+([^.\n]+)`)
	offerSoldByPattern    = regexp.MustCompile(`(?i)Sold by\s+([^.\n]+)`)

	byPrefixPattern = regexp.MustCompile(`(?i)^by\s+`)
)

// extractOtherSellers locates and fetches the offer-listing page, then walks
// its offer containers. An offers fetch failure degrades to zero offers; the
// buy-box row is unaffected.
func (s *Scraper) extractOtherSellers(doc Document, asin string) []OfferRecord {
	offersURL := s.offersURL(doc, asin)
	logger := log.WithFields(log.Fields{"asin": asin, "url": offersURL})
	logger.Info("Fetching marketplace offers")

	offersDoc, err := s.fetcher.FetchOffers(offersURL)
	if err != nil {
		logger.WithError(err).Warn("Failed to fetch offer-listing page, skipping offers")
		return nil
	}

	containers := findOfferContainers(offersDoc)
	logger.WithField("containers", len(containers)).Debug("Partitioned offer containers")

	var offers []OfferRecord
	for i, container := range containers {
		// The cap counts containers visited, not records accepted.
		if i >= s.maxOffers {
			break
		}
		rec := extractOffer(container)
		if rec.Price == nil && rec.SellerName == "" {
			continue
		}
		offers = append(offers, rec)
	}

	logger.WithField("offers", len(offers)).Info("Extracted marketplace offers")
	return offers
}

// offersURL prefers a live same-site link; otherwise it constructs the
// conventional offer-listing path with the all-conditions parameter.
func (s *Scraper) offersURL(doc Document, asin string) string {
	if href := Resolve(doc, offerLinkChain); href != "" {
		if strings.HasPrefix(href, "/") {
			return s.siteRoot + href
		}
		return href
	}
	return fmt.Sprintf("%s/gp/offer-listing/%s/ref=dp_olp_ALL_mbc?ie=UTF8&condition=ALL", s.siteRoot, asin)
}

// findOfferContainers applies the container cascade and, when every selector
// misses, falls back to a broad scan of block nodes that look price-bearing.
// The broad scan trades precision for survival under total layout drift.
func findOfferContainers(doc Document) []Node {
	for _, selector := range offerContainerSelectors {
		if containers := doc.Find(selector); len(containers) > 0 {
			return containers
		}
	}

	var containers []Node
	for _, div := range doc.Find("div") {
		if div.FindOne("span.a-price") != nil || inlinePricePattern.MatchString(div.Text()) {
			containers = append(containers, div)
		}
	}
	return containers
}

// extractOffer pulls one OfferRecord out of a container. Every field is
// independent; any of them may stay empty.
func extractOffer(container Node) OfferRecord {
	text := container.Text()
	rec := OfferRecord{
		Price:      extractOfferPrice(container, text),
		SellerName: extractOfferSeller(container, text),
		Shipping:   firstSubmatch(shippingPatterns, text),
	}

	lower := strings.ToLower(text)
	for _, condition := range conditionVocabulary {
		if strings.Contains(lower, strings.ToLower(condition)) {
			rec.Condition = condition
			break
		}
	}

	// Fulfillment attribution, independent of the seller identity above.
	if m := offerShipsFromPattern.FindStringSubmatch(text); m != nil {
		rec.ShipsFrom = strings.TrimSpace(m[1])
	}
	if m := offerSoldByPattern.FindStringSubmatch(text); m != nil {
		rec.SoldBy = strings.TrimSpace(m[1])
	}

	return rec
}

// extractOfferPrice tries, in order: the accessible offscreen price node,
// reconstruction from the composite widget parts, then a regex scan of the
// container text.
func extractOfferPrice(container Node, text string) *Price {
	if offscreen := container.FindOne("span.a-offscreen"); offscreen != nil {
		if price := CleanPrice(offscreen.Text()); price != nil {
			return price
		}
	}

	if widget := container.FindOne("span.a-price"); widget != nil {
		if whole := widget.FindOne("span.a-price-whole"); whole != nil {
			wholeText := strings.ReplaceAll(whole.Text(), ",", "")
			full := wholeText
			if fraction := widget.FindOne("span.a-price-fraction"); fraction != nil {
				if decimal := widget.FindOne("span.a-price-decimal"); decimal != nil {
					full = wholeText + decimal.Text() + fraction.Text()
				} else {
					full = wholeText + "." + fraction.Text()
				}
			}
			if price := CleanPrice(full); price != nil {
				return price
			}
		}
	}

	if m := offerPricePattern.FindStringSubmatch(text); m != nil {
		return CleanPrice(m[1])
	}
	return nil
}

// extractOfferSeller prefers a seller-profile link (never Amazon itself),
// then falls back to the seller regex cascade over the container text. Regex
// matches shorter than three characters are discarded as noise.
func extractOfferSeller(container Node, text string) string {
	for _, link := range container.Find(`a[href*="seller="]`) {
		name := link.Text()
		if name == "" {
			continue
		}
		lower := strings.ToLower(name)
		if lower == "amazon" || lower == "amazon.com" {
			continue
		}
		return byPrefixPattern.ReplaceAllString(name, "")
	}

	for _, pattern := range offerSellerPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if len(name) > 2 {
			return name
		}
	}
	return ""
}
