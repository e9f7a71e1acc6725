package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"airbnb-cleaner/models"
	"airbnb-cleaner/utils"
)

// requiredColumns are the header names the listings file must carry.
// street holds the composite location; neighbourhood_cleansed is the LGA
// join key.
var requiredColumns = []string{
	"id", "host_since", "street", "neighbourhood_cleansed", "property_type",
	"accommodates", "bathrooms", "bedrooms", "price", "guests_included",
	"number_of_reviews", "instant_bookable",
}

// CSVReader loads the raw listings snapshot from a delimited file.
type CSVReader struct {
	path   string
	logger *utils.Logger
}

// NewCSVReader creates a reader for the listings file at path.
func NewCSVReader(path string, logger *utils.Logger) *CSVReader {
	return &CSVReader{path: path, logger: logger}
}

// ReadAll parses the whole file. A missing required column or a file with
// no data rows is a structural error and aborts the run — per-record
// problems are left for the pipeline to handle.
func (r *CSVReader) ReadAll() ([]*models.RawListing, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", r.path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows; missing cells become nulls later

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var listings []*models.RawListing
	seen := make(map[string]struct{})

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read row: %w", err)
		}

		l := &models.RawListing{
			ID:              field(row, index["id"]),
			HostSince:       field(row, index["host_since"]),
			Location:        field(row, index["street"]),
			LGA:             field(row, index["neighbourhood_cleansed"]),
			PropertyType:    field(row, index["property_type"]),
			Accommodates:    field(row, index["accommodates"]),
			Bathrooms:       field(row, index["bathrooms"]),
			Bedrooms:        field(row, index["bedrooms"]),
			Price:           field(row, index["price"]),
			GuestsIncluded:  field(row, index["guests_included"]),
			NumberOfReviews: field(row, index["number_of_reviews"]),
			InstantBookable: field(row, index["instant_bookable"]),
		}

		// id uniqueness is advisory only
		if _, dup := seen[l.ID]; dup && l.ID != "" {
			r.logger.Warn("[csv] Duplicate listing id %q", l.ID)
		}
		seen[l.ID] = struct{}{}

		listings = append(listings, l)
	}

	if len(listings) == 0 {
		return nil, fmt.Errorf("csv: %q contains no data rows", r.path)
	}

	r.logger.Info("[csv] Read %d raw listings from %s", len(listings), r.path)
	return listings, nil
}

// columnIndex maps required column names to their positions, erroring on
// the first missing one.
func columnIndex(header []string) (map[string]int, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		positions[name] = i
	}

	index := make(map[string]int, len(requiredColumns))
	for _, name := range requiredColumns {
		pos, ok := positions[name]
		if !ok {
			return nil, fmt.Errorf("csv: required column %q missing from header", name)
		}
		index[name] = pos
	}
	return index, nil
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
