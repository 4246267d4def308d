package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/lfcamargo/pricewatch/models"
)

var csvHeaders = []string{
	"ASIN", "Title", "Current Price", "List Price",
	"Discount", "Availability", "Last Scraped", "URL",
}

// WriteCSV exports records as a spreadsheet-shaped CSV file.
func WriteCSV(path string, records []*models.Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	w := csv.NewWriter(file)
	write := func() error {
		if err := w.Write(csvHeaders); err != nil {
			return err
		}
		for _, r := range records {
			row := []string{
				r.ID,
				r.Fields.Title,
				r.Fields.CurrentPrice,
				r.Fields.ReferencePrice,
				r.Fields.DiscountAmount,
				r.Fields.Availability,
				r.ScrapedAt.Format(time.RFC3339),
				r.SourceURL,
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	}

	if err := write(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
