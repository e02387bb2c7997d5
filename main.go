package main

import (
	"bufio"
	"flag"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/parallel-digital/amazon-price-listing/config"
	"github.com/parallel-digital/amazon-price-listing/exporter"
	"github.com/parallel-digital/amazon-price-listing/scraper"
)

func init() {
	// Configure logrus
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.InfoLevel) // Default level, can be changed via flag
}

func main() {
	// Define command-line flags
	configFile := flag.String("config", "", "Path to an optional JSON config file.")
	inputFile := flag.String("input", "", "Path to a file of ASINs (one per line, or CSV with an ASIN column).")
	asinList := flag.String("asins", "", "Comma-separated ASINs to scrape.")
	outputDir := flag.String("output", "output_data", "Directory to save scraped data.")
	format := flag.String("format", "csv", "Export format (csv, json, both).")
	logLevel := flag.String("loglevel", "info", "Log level (debug, info, warn, error, fatal, panic).")
	flag.Parse()

	// Set log level from flag
	parsedLevel, err := log.ParseLevel(*logLevel)
	if err != nil {
		log.Fatalf("Invalid log level: %v", err)
	}
	log.SetLevel(parsedLevel)

	log.Info("Amazon price listing scraper starting...")

	// Load configuration (defaults unless a file is given)
	cfg := config.Default()
	if *configFile != "" {
		cfg, err = config.Load(*configFile)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}

	// Collect ASINs from the input file and the flag, de-duplicated
	asins, err := collectASINs(*inputFile, *asinList)
	if err != nil {
		log.Fatalf("Failed to load ASINs: %v", err)
	}
	if len(asins) == 0 {
		log.Fatal("No ASINs provided. Use -input or -asins. Exiting.")
	}
	log.Infof("Loaded %d unique ASINs.", len(asins))

	fetcher, err := scraper.NewCollyFetcher(cfg)
	if err != nil {
		log.Fatalf("Failed to build fetcher: %v", err)
	}

	// Strictly sequential: one product at a time, delays between fetches are
	// handled by the fetcher's limit rules.
	s := scraper.New(fetcher, cfg)
	results := s.Run(asins)

	switch strings.ToLower(*format) {
	case "csv":
		err = exporter.ExportToCSV(results, *outputDir, "amazon_scrape_results")
	case "json":
		err = exporter.ExportToJSON(results, *outputDir, "amazon_scrape_results")
	case "both":
		if err = exporter.ExportToCSV(results, *outputDir, "amazon_scrape_results"); err == nil {
			err = exporter.ExportToJSON(results, *outputDir, "amazon_scrape_results")
		}
	default:
		log.Fatalf("Unknown export format: %s", *format)
	}
	if err != nil {
		log.Errorf("Failed to export results: %v", err)
	}

	// Summary stats
	availableCount := 0
	otherSellerCount := 0
	for _, row := range results {
		if row.SellerType == scraper.SellerTypeBuyBox {
			if row.Status == scraper.StatusAvailable {
				availableCount++
			}
		} else {
			otherSellerCount++
		}
	}
	log.Infof("Finished. ASINs processed: %d, available products: %d, other sellers found: %d. Output saved to directory: %s",
		len(asins), availableCount, otherSellerCount, *outputDir)
}

// collectASINs merges ASINs from an optional input file and a comma-separated
// flag value, preserving first-seen order and dropping duplicates.
func collectASINs(inputFile, asinList string) ([]string, error) {
	var asins []string
	seen := make(map[string]bool)

	add := func(asin string) {
		asin = strings.TrimSpace(asin)
		if asin == "" || seen[asin] {
			return
		}
		seen[asin] = true
		asins = append(asins, asin)
	}

	if inputFile != "" {
		fromFile, err := readASINFile(inputFile)
		if err != nil {
			return nil, err
		}
		for _, asin := range fromFile {
			add(asin)
		}
	}

	for _, asin := range strings.Split(asinList, ",") {
		add(asin)
	}

	return asins, nil
}

// readASINFile reads ASINs from a plain list (one per line) or a CSV whose
// header names an ASIN column (case-insensitive).
func readASINFile(filePath string) ([]string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var asins []string
	asinColumn := -1
	firstLine := true

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Split(line, ",")
		if firstLine {
			firstLine = false
			// CSV header detection: look for an ASIN column
			for i, field := range fields {
				name := strings.ToLower(strings.TrimSpace(field))
				if name == "asin" || name == "asins" {
					asinColumn = i
					break
				}
			}
			if asinColumn >= 0 {
				continue
			}
		}

		if asinColumn >= 0 {
			if asinColumn < len(fields) {
				asins = append(asins, strings.TrimSpace(fields[asinColumn]))
			}
			continue
		}
		asins = append(asins, fields[0])
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return asins, nil
}
