package inventory

import (
	"encoding/csv"
	"io"
	"strconv"
)

// exportHeader is the fixed column set of the expiry export.
var exportHeader = []string{"Store", "StoreCode", "Product", "SKU", "Batch", "ExpiryDate", "DaysToExpiry", "Quantity"}

// WriteExportCSV writes the expiry table as a semicolon-delimited,
// double-quote-escaped, UTF-8 CSV. Items are expected to be decorated
// already (days computed).
func WriteExportCSV(w io.Writer, items []*Item) error {
	writer := csv.NewWriter(w)
	writer.Comma = ';'

	if err := writer.Write(exportHeader); err != nil {
		return err
	}

	for _, item := range items {
		record := []string{
			item.StoreName,
			strOrEmpty(item.StoreCode),
			item.ProductName,
			strOrEmpty(item.ProductSKU),
			item.BatchCode,
			"",
			"",
			strconv.Itoa(item.Quantity),
		}
		if item.ExpiryDate != nil {
			record[5] = item.ExpiryDate.Format("2006-01-02")
		}
		if item.DaysToExpiry != nil {
			record[6] = strconv.Itoa(*item.DaysToExpiry)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
