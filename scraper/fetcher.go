package scraper

import (
	"bytes"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/parallel-digital/amazon-price-listing/utils"
)

// CollyFetcher implements Fetcher on top of two colly collectors: one for
// product pages and one for offer-listing pages, so each document class keeps
// its own delay window. Both share a rate-limited transport.
type CollyFetcher struct {
	product    *colly.Collector
	offers     *colly.Collector
	userAgents []string
}

// NewCollyFetcher builds a fetcher from an immutable per-run config value.
func NewCollyFetcher(cfg Config) (*CollyFetcher, error) {
	transport := utils.NewThrottledTransport(cfg.RequestsPerMinute)

	delay, randomDelay := cfg.ProductDelay()
	product, err := newCollector(cfg.Timeout(), delay, randomDelay, transport)
	if err != nil {
		return nil, fmt.Errorf("failed to configure product collector: %w", err)
	}

	delay, randomDelay = cfg.OffersDelay()
	offers, err := newCollector(cfg.Timeout(), delay, randomDelay, transport)
	if err != nil {
		return nil, fmt.Errorf("failed to configure offers collector: %w", err)
	}

	return &CollyFetcher{
		product:    product,
		offers:     offers,
		userAgents: cfg.UserAgents,
	}, nil
}

func newCollector(timeout, delay, randomDelay time.Duration, transport http.RoundTripper) (*colly.Collector, error) {
	c := colly.NewCollector(
		colly.AllowURLRevisit(),
		colly.IgnoreRobotsTxt(),
	)
	c.SetRequestTimeout(timeout)
	c.WithTransport(transport)

	limitRule := &colly.LimitRule{
		DomainGlob:  "*",
		Delay:       delay,
		RandomDelay: randomDelay,
	}
	if err := c.Limit(limitRule); err != nil {
		return nil, err
	}
	return c, nil
}

func (f *CollyFetcher) FetchProduct(url string) (Document, error) {
	return f.fetch(f.product, url)
}

func (f *CollyFetcher) FetchOffers(url string) (Document, error) {
	return f.fetch(f.offers, url)
}

// fetch clones the base collector so response callbacks never accumulate
// across calls; the clone shares the base's limit rules and transport.
func (f *CollyFetcher) fetch(base *colly.Collector, url string) (Document, error) {
	c := base.Clone()

	var doc Document
	var fetchErr error

	c.OnRequest(func(r *colly.Request) {
		if len(f.userAgents) > 0 {
			r.Headers.Set("User-Agent", f.userAgents[rand.Intn(len(f.userAgents))])
		}
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
		r.Headers.Set("Accept-Language", "en-US,en;q=0.5")
	})
	c.OnResponse(func(r *colly.Response) {
		parsed, err := ParseDocument(bytes.NewReader(r.Body))
		if err != nil {
			fetchErr = fmt.Errorf("failed to parse response from %s: %w", url, err)
			return
		}
		doc = parsed
	})
	c.OnError(func(_ *colly.Response, err error) {
		fetchErr = err
	})

	if err := c.Visit(url); err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	c.Wait()

	if fetchErr != nil {
		return nil, fetchErr
	}
	if doc == nil {
		return nil, fmt.Errorf("no document returned for %s", url)
	}
	return doc, nil
}
