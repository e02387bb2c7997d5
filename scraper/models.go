package scraper

import (
	"encoding/json"
	"strconv"
	"time"
)

// Row statuses and the buy-box seller discriminator. The string values are a
// compatibility contract for downstream tabular export.
const (
	StatusAvailable   = "Available"
	StatusUnavailable = "Unavailable"
	StatusError       = "Error"

	SellerTypeBuyBox = "buybox"
)

// conditionVocabulary is matched against offer container text in order; the
// first hit wins, so the order is the tie-break.
var conditionVocabulary = []string{"New", "Used", "Refurbished", "Collectible", "Renewed"}

// Price is a normalized price: a numeric amount when parsing succeeded,
// otherwise the raw trimmed text (e.g. "Free"). A nil *Price means no price
// was found at all.
type Price struct {
	Amount  float64
	Raw     string
	Numeric bool
}

func (p *Price) String() string {
	if p == nil {
		return ""
	}
	if p.Numeric {
		return strconv.FormatFloat(p.Amount, 'f', -1, 64)
	}
	return p.Raw
}

func (p *Price) MarshalJSON() ([]byte, error) {
	if p.Numeric {
		return json.Marshal(p.Amount)
	}
	return json.Marshal(p.Raw)
}

// BuyBoxRecord holds the primary offer shown on the product page. All fields
// are optional; an empty record is valid.
type BuyBoxRecord struct {
	Price     *Price
	Seller    string
	ShipsFrom string
	SoldBy    string
}

// OfferRecord holds one marketplace offer from the offer-listing page.
// SellerName is the seller's identity (usually from the profile link); SoldBy
// is fulfillment attribution parsed from the container text. The two can
// legitimately disagree and are never reconciled.
type OfferRecord struct {
	Price      *Price
	SellerName string
	Condition  string
	Shipping   string
	ShipsFrom  string
	SoldBy     string
}

// ResultRow is one flattened (product, seller) record. Exactly one row per
// product has SellerType == "buybox"; offer rows follow in discovery order as
// "other_seller_<n>".
type ResultRow struct {
	ASIN            string `json:"ASIN"`
	Title           string `json:"Title"`
	URL             string `json:"URL"`
	Status          string `json:"Status"`
	BuyBoxPrice     *Price `json:"buybox_price"`
	BuyBoxSeller    string `json:"buybox_seller"`
	BuyBoxShipsFrom string `json:"buybox_ships_from"`
	BuyBoxSoldBy    string `json:"buybox_sold_by"`
	SellerType      string `json:"seller_type"`
	SellerName      string `json:"seller_name"`
	SellerPrice     *Price `json:"seller_price"`
	SellerCondition string `json:"seller_condition"`
	SellerShipping  string `json:"seller_shipping"`
	SellerShipsFrom string `json:"seller_ships_from"`
	SellerSoldBy    string `json:"seller_sold_by"`
}

// Columns returns the exported column names in their fixed order.
func Columns() []string {
	return []string{
		"ASIN", "Title", "URL", "Status",
		"buybox_price", "buybox_seller", "buybox_ships_from", "buybox_sold_by",
		"seller_type", "seller_name", "seller_price", "seller_condition",
		"seller_shipping", "seller_ships_from", "seller_sold_by",
	}
}

// Record projects the row into the fixed column order.
func (r ResultRow) Record() []string {
	return []string{
		r.ASIN, r.Title, r.URL, r.Status,
		r.BuyBoxPrice.String(), r.BuyBoxSeller, r.BuyBoxShipsFrom, r.BuyBoxSoldBy,
		r.SellerType, r.SellerName, r.SellerPrice.String(), r.SellerCondition,
		r.SellerShipping, r.SellerShipsFrom, r.SellerSoldBy,
	}
}

// Config is the per-run scraper configuration. It is loaded once and treated
// as immutable for the whole batch.
type Config struct {
	SiteRoot            string   `json:"site_root"`
	UserAgents          []string `json:"user_agents"`
	DelayMs             int      `json:"delay_ms"`
	RandomDelayMs       int      `json:"random_delay_ms"`
	OffersDelayMs       int      `json:"offers_delay_ms"`
	OffersRandomDelayMs int      `json:"offers_random_delay_ms"`
	TimeoutSec          int      `json:"timeout_sec"`
	MaxOffers           int      `json:"max_offers"`
	RequestsPerMinute   int      `json:"requests_per_minute"`
}

// ProductDelay returns the fixed and randomized parts of the delay window
// applied before product page fetches.
func (c Config) ProductDelay() (time.Duration, time.Duration) {
	return time.Duration(c.DelayMs) * time.Millisecond, time.Duration(c.RandomDelayMs) * time.Millisecond
}

// OffersDelay is the shorter window applied before offer-listing fetches.
func (c Config) OffersDelay() (time.Duration, time.Duration) {
	return time.Duration(c.OffersDelayMs) * time.Millisecond, time.Duration(c.OffersRandomDelayMs) * time.Millisecond
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}
