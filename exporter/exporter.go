package exporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/parallel-digital/amazon-price-listing/scraper"
)

// ExportToCSV saves result rows to a timestamped CSV file with the fixed
// column order. The column set is a compatibility contract; do not reorder.
func ExportToCSV(rows []scraper.ResultRow, outputDir string, name string) error {
	if len(rows) == 0 {
		log.WithField("name", name).Info("No rows found to export.")
		return nil
	}

	filePath, err := outputPath(outputDir, name, "csv")
	if err != nil {
		return err
	}

	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file %s: %w", filePath, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(scraper.Columns()); err != nil {
		return fmt.Errorf("failed to write CSV header to %s: %w", filePath, err)
	}
	for _, row := range rows {
		if err := w.Write(row.Record()); err != nil {
			return fmt.Errorf("failed to write CSV row to %s: %w", filePath, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV file %s: %w", filePath, err)
	}

	log.WithFields(log.Fields{
		"file":  filePath,
		"count": len(rows),
	}).Info("Successfully exported rows to CSV.")
	return nil
}

// ExportToJSON saves result rows to a timestamped JSON file.
func ExportToJSON(rows []scraper.ResultRow, outputDir string, name string) error {
	if len(rows) == 0 {
		log.WithField("name", name).Info("No rows found to export.")
		return nil
	}

	filePath, err := outputPath(outputDir, name, "json")
	if err != nil {
		return err
	}

	jsonData, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal rows to JSON: %w", err)
	}

	if err := os.WriteFile(filePath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON to file %s: %w", filePath, err)
	}

	log.WithFields(log.Fields{
		"file":  filePath,
		"count": len(rows),
	}).Info("Successfully exported rows to JSON.")
	return nil
}

func outputPath(outputDir, name, ext string) (string, error) {
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	fileName := fmt.Sprintf("%s_%s.%s", name, timestamp, ext)
	return filepath.Join(outputDir, fileName), nil
}
