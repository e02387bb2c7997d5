package exporter

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parallel-digital/amazon-price-listing/scraper"
)

func sampleRows() []scraper.ResultRow {
	return []scraper.ResultRow{
		{
			ASIN:            "B0TEST1234",
			Title:           "Widget Pro 3000",
			URL:             "https://www.amazon.com/dp/B0TEST1234/",
			Status:          scraper.StatusAvailable,
			BuyBoxPrice:     &scraper.Price{Amount: 49.99, Numeric: true},
			BuyBoxSeller:    "Acme Co",
			SellerType:      scraper.SellerTypeBuyBox,
			SellerName:      "Acme Co",
			SellerPrice:     &scraper.Price{Amount: 49.99, Numeric: true},
			SellerCondition: "New",
		},
		{
			ASIN:            "B0TEST1234",
			Title:           "Widget Pro 3000",
			URL:             "https://www.amazon.com/dp/B0TEST1234/",
			Status:          scraper.StatusAvailable,
			SellerType:      "other_seller_1",
			SellerName:      "TradeCo",
			SellerPrice:     &scraper.Price{Raw: "Free"},
			SellerCondition: "Used",
			SellerShipping:  "FREE Shipping",
		},
	}
}

func findExport(t *testing.T, dir, ext string) string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), "."+ext) {
			return filepath.Join(dir, entry.Name())
		}
	}
	t.Fatalf("no .%s file found in %s", ext, dir)
	return ""
}

func TestExportToCSV(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, ExportToCSV(sampleRows(), dir, "test_results"))

	f, err := os.Open(findExport(t, dir, "csv"))
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, scraper.Columns(), records[0])

	buybox := records[1]
	assert.Equal(t, "B0TEST1234", buybox[0])
	assert.Equal(t, "49.99", buybox[4])  // buybox_price
	assert.Equal(t, "buybox", buybox[8]) // seller_type

	offer := records[2]
	assert.Equal(t, "other_seller_1", offer[8])
	assert.Equal(t, "Free", offer[10]) // seller_price passthrough text
	assert.Equal(t, "", offer[5])      // buybox_seller empty
}

func TestExportToJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, ExportToJSON(sampleRows(), dir, "test_results"))

	data, err := os.ReadFile(findExport(t, dir, "json"))
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)

	assert.Equal(t, "B0TEST1234", decoded[0]["ASIN"])
	assert.Equal(t, 49.99, decoded[0]["buybox_price"])
	assert.Equal(t, "Free", decoded[1]["seller_price"])
	// Absent prices serialize as null, absent text fields as "".
	assert.Nil(t, decoded[1]["buybox_price"])
	assert.Equal(t, "", decoded[1]["seller_ships_from"])
}

func TestExportEmptyRows(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, ExportToCSV(nil, dir, "test_results"))
	require.NoError(t, ExportToJSON(nil, dir, "test_results"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
