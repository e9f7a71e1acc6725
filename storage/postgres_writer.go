package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"airbnb-cleaner/models"
)

// PostgresWriter persists cleaned listings to PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS clean_listings (
			id                SERIAL PRIMARY KEY,
			listing_id        TEXT          NOT NULL,
			host_since        DATE          NOT NULL,
			suburb            TEXT          NOT NULL,
			state             TEXT          NOT NULL,
			country           TEXT          NOT NULL,
			lga               TEXT          NOT NULL,
			property_type     TEXT          NOT NULL,
			instant_bookable  VARCHAR(1)    NOT NULL,
			accommodates      NUMERIC(4,1)  NOT NULL,
			bathrooms         NUMERIC(4,1)  NOT NULL,
			bedrooms          NUMERIC(4,1)  NOT NULL,
			guests_included   NUMERIC(4,1)  NOT NULL,
			price             NUMERIC(10,2) NOT NULL,
			price_per_guest   NUMERIC(10,2) NOT NULL,
			number_of_reviews NUMERIC(10,1) NOT NULL,
			lga_area_km2      NUMERIC(12,2) NOT NULL,
			lga_density       NUMERIC(12,2) NOT NULL,
			lga_population    NUMERIC(14,2) NOT NULL,
			price_duplicate   NUMERIC(10,2) NOT NULL,
			created_at        TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_clean_listings_lga   ON clean_listings(lga);
		CREATE INDEX IF NOT EXISTS idx_clean_listings_price ON clean_listings(price);
	`)
	return err
}

// Clear deletes all existing listings from the table.
func (pw *PostgresWriter) Clear() error {
	_, err := pw.db.Exec("DELETE FROM clean_listings")
	if err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	return nil
}

// Write batch-inserts ALL cleaned listings, clearing old data first.
func (pw *PostgresWriter) Write(listings []*models.Listing) error {
	if len(listings) == 0 {
		return nil
	}

	if err := pw.Clear(); err != nil {
		return err
	}

	const batchSize = 50
	for i := 0; i < len(listings); i += batchSize {
		end := i + batchSize
		if end > len(listings) {
			end = len(listings)
		}
		if err := pw.insertBatch(listings[i:end]); err != nil {
			return err
		}
	}
	return nil
}

const insertColumns = 19

func (pw *PostgresWriter) insertBatch(batch []*models.Listing) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*insertColumns)

	for idx, l := range batch {
		base := idx * insertColumns
		placeholders := make([]string, insertColumns)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs,
			l.ID, l.HostSince, l.Suburb, l.State, l.Country, l.LGA,
			l.PropertyType, l.InstantBookable,
			l.Accommodates, l.Bathrooms, l.Bedrooms, l.GuestsIncluded,
			l.Price, l.PricePerGuest, l.NumberOfReviews,
			l.LGAAreaKm2, l.LGADensity, l.LGAPopulation, l.PriceDuplicate)
	}

	query := fmt.Sprintf(`
		INSERT INTO clean_listings (
			listing_id, host_since, suburb, state, country, lga,
			property_type, instant_bookable,
			accommodates, bathrooms, bedrooms, guests_included,
			price, price_per_guest, number_of_reviews,
			lga_area_km2, lga_density, lga_population, price_duplicate
		)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	return err
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// Count returns how many cleaned listings are stored.
func (pw *PostgresWriter) Count() (int, error) {
	var n int
	if err := pw.db.QueryRow("SELECT COUNT(*) FROM clean_listings").Scan(&n); err != nil {
		return 0, fmt.Errorf("postgres: count: %w", err)
	}
	return n, nil
}
