package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airbnb-cleaner/models"
)

func cleanListing() *models.Listing {
	l := models.NewListing()
	l.ID = "1"
	l.HostSince = time.Date(2014, 1, 15, 0, 0, 0, 0, time.UTC)
	l.Suburb = "Richmond"
	l.State = " Victoria"
	l.Country = " Australia"
	l.LGA = "Yarra"
	l.PropertyType = "Apartment"
	l.InstantBookable = "t"
	l.Accommodates = 4
	l.Bathrooms = 1.5
	l.Bedrooms = 2
	l.GuestsIncluded = 2
	l.Price = 120
	l.PricePerGuest = 60
	l.NumberOfReviews = 10
	l.LGAAreaKm2 = 19.5
	l.LGADensity = 4900
	l.LGAPopulation = 19.5 * 4900
	l.PriceDuplicate = 120
	return l
}

func TestCSVWriterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "clean.csv")

	w, err := NewCSVWriter(path)
	require.NoError(t, err)

	require.NoError(t, w.Write([]*models.Listing{cleanListing()}))
	require.NoError(t, w.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, cleanHeader, rows[0])
	require.Len(t, rows[1], len(cleanHeader))
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "2014-01-15", rows[1][1])
	assert.Equal(t, "1.5", rows[1][9])  // bathrooms keeps its half step
	assert.Equal(t, "120", rows[1][12]) // price
	assert.Equal(t, "95550", rows[1][17])
}

func TestCSVWriterCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "clean.csv")

	w, err := NewCSVWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
