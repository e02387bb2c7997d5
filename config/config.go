package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/parallel-digital/amazon-price-listing/scraper"
)

// Default returns the configuration used when no config file is supplied:
// the public site root, a small pool of desktop user agents, a 1-3s delay
// window for product pages and a 1-2s window for offer-listing pages.
func Default() scraper.Config {
	return scraper.Config{
		SiteRoot: "https://www.amazon.com",
		UserAgents: []string{
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
			"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:89.0) Gecko/20100101 Firefox/89.0",
		},
		DelayMs:             1000,
		RandomDelayMs:       2000,
		OffersDelayMs:       1000,
		OffersRandomDelayMs: 1000,
		TimeoutSec:          10,
		MaxOffers:           20,
		RequestsPerMinute:   20,
	}
}

// Load reads a JSON config file and fills any missing fields with defaults.
func Load(filePath string) (scraper.Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", filePath, err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal config JSON from %s: %w", filePath, err)
	}

	return applyDefaults(cfg), nil
}

func applyDefaults(cfg scraper.Config) scraper.Config {
	defaults := Default()
	if cfg.SiteRoot == "" {
		cfg.SiteRoot = defaults.SiteRoot
	}
	if len(cfg.UserAgents) == 0 {
		cfg.UserAgents = defaults.UserAgents
	}
	if cfg.DelayMs <= 0 {
		cfg.DelayMs = defaults.DelayMs
	}
	if cfg.RandomDelayMs <= 0 {
		cfg.RandomDelayMs = defaults.RandomDelayMs
	}
	if cfg.OffersDelayMs <= 0 {
		cfg.OffersDelayMs = defaults.OffersDelayMs
	}
	if cfg.OffersRandomDelayMs <= 0 {
		cfg.OffersRandomDelayMs = defaults.OffersRandomDelayMs
	}
	if cfg.TimeoutSec <= 0 {
		cfg.TimeoutSec = defaults.TimeoutSec
	}
	if cfg.MaxOffers <= 0 {
		cfg.MaxOffers = defaults.MaxOffers
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = defaults.RequestsPerMinute
	}
	return cfg
}
