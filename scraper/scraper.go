package scraper

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Fetcher retrieves and parses documents. The scraper never performs raw
// network I/O itself; delays, timeouts and request identity all live behind
// this interface. FetchOffers carries its own, shorter delay window.
type Fetcher interface {
	FetchProduct(url string) (Document, error)
	FetchOffers(url string) (Document, error)
}

// Scraper extracts one buy-box record and up to maxOffers marketplace offers
// per ASIN and flattens them into result rows. It holds no per-product state.
type Scraper struct {
	fetcher   Fetcher
	siteRoot  string
	maxOffers int
}

func New(fetcher Fetcher, cfg Config) *Scraper {
	return &Scraper{
		fetcher:   fetcher,
		siteRoot:  cfg.SiteRoot,
		maxOffers: cfg.MaxOffers,
	}
}

// ScrapeASIN extracts all rows for one product. A product page fetch failure
// yields a single error row and is never raised to the caller; extraction
// misses on individual fields are not errors at all.
func (s *Scraper) ScrapeASIN(asin string) []ResultRow {
	url := s.siteRoot + "/dp/" + asin + "/"
	logger := log.WithFields(log.Fields{"asin": asin, "url": url})
	logger.Info("Scraping product page")

	doc, err := s.fetcher.FetchProduct(url)
	if err != nil || doc == nil {
		logger.WithError(err).Error("Failed to fetch product page")
		return []ResultRow{errorRow(asin, url)}
	}

	title := Resolve(doc, titleChain)
	if title == "" {
		title = "Title not found"
	}

	status := StatusAvailable
	if !IsAvailable(doc.Text()) {
		status = StatusUnavailable
	}

	buybox := ExtractBuyBox(doc)
	offers := s.extractOtherSellers(doc, asin)

	base := ResultRow{
		ASIN:            asin,
		Title:           title,
		URL:             url,
		Status:          status,
		BuyBoxPrice:     buybox.Price,
		BuyBoxSeller:    buybox.Seller,
		BuyBoxShipsFrom: buybox.ShipsFrom,
		BuyBoxSoldBy:    buybox.SoldBy,
		SellerType:      SellerTypeBuyBox,
		SellerName:      buybox.Seller,
		SellerPrice:     buybox.Price,
		SellerCondition: "New", // the buy box is conventionally a new-condition listing
		SellerShipsFrom: buybox.ShipsFrom,
		SellerSoldBy:    buybox.SoldBy,
	}

	rows := []ResultRow{base}
	for i, offer := range offers {
		row := base
		row.SellerType = fmt.Sprintf("other_seller_%d", i+1)
		row.SellerName = offer.SellerName
		row.SellerPrice = offer.Price
		row.SellerCondition = offer.Condition
		if row.SellerCondition == "" {
			row.SellerCondition = "Unknown"
		}
		row.SellerShipping = offer.Shipping
		row.SellerShipsFrom = offer.ShipsFrom
		row.SellerSoldBy = offer.SoldBy
		rows = append(rows, row)
	}

	logger.WithFields(log.Fields{"rows": len(rows), "status": status}).Info("Finished product")
	return rows
}

// Run processes a batch of ASINs strictly sequentially. A failed product
// never aborts the batch.
func (s *Scraper) Run(asins []string) []ResultRow {
	var results []ResultRow
	for i, asin := range asins {
		log.Infof("Processing ASIN %d/%d: %s", i+1, len(asins), asin)
		results = append(results, s.ScrapeASIN(asin)...)
	}
	return results
}

func errorRow(asin, url string) ResultRow {
	return ResultRow{
		ASIN:       asin,
		Title:      "Error: Could not fetch page",
		URL:        url,
		Status:     StatusError,
		SellerType: SellerTypeBuyBox,
	}
}
