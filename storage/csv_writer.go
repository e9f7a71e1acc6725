package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"airbnb-cleaner/models"
)

// cleanHeader is the column order of the cleaned output table.
var cleanHeader = []string{
	"id", "host_since", "suburb", "state", "country", "lga",
	"property_type", "instant_bookable",
	"accommodates", "bathrooms", "bedrooms", "guests_included",
	"price", "price_per_guest", "number_of_reviews",
	"lga_area_km2", "lga_density", "lga_population", "price_duplicate",
}

// CSVWriter writes cleaned listings to a CSV file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)

	if err := w.Write(cleanHeader); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// Write appends every cleaned listing as one row.
func (c *CSVWriter) Write(listings []*models.Listing) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, l := range listings {
		row := []string{
			l.ID,
			l.HostSince.Format(time.DateOnly),
			l.Suburb,
			l.State,
			l.Country,
			l.LGA,
			l.PropertyType,
			l.InstantBookable,
			num(l.Accommodates),
			num(l.Bathrooms),
			num(l.Bedrooms),
			num(l.GuestsIncluded),
			num(l.Price),
			num(l.PricePerGuest),
			num(l.NumberOfReviews),
			num(l.LGAAreaKm2),
			num(l.LGADensity),
			num(l.LGAPopulation),
			num(l.PriceDuplicate),
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
