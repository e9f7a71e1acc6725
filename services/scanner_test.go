package services

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airbnb-cleaner/models"
)

// completeListing returns a record that survives the missing-value scan.
// PriceDuplicate stays NaN: it is only set later by the outlier engine
// and must not count as missing here.
func completeListing(id string) *models.Listing {
	l := models.NewListing()
	l.ID = id
	l.HostSince = time.Date(2014, 1, 15, 0, 0, 0, 0, time.UTC)
	l.Location = "Richmond, Victoria, Australia"
	l.Suburb = "Richmond"
	l.State = " Victoria"
	l.Country = " Australia"
	l.LGA = "Yarra"
	l.PropertyType = "Apartment"
	l.InstantBookable = "t"
	l.Accommodates = 4
	l.Bathrooms = 1
	l.Bedrooms = 2
	l.GuestsIncluded = 2
	l.Price = 120
	l.PricePerGuest = 60
	l.NumberOfReviews = 10
	l.LGAAreaKm2 = 19.5
	l.LGADensity = 4900
	l.LGAPopulation = 19.5 * 4900
	return l
}

func TestScanKeepsCompleteRecords(t *testing.T) {
	s := NewScanner(newTestLogger())

	listings := []*models.Listing{completeListing("1"), completeListing("2")}
	kept := s.Scan(listings)

	assert.Len(t, kept, 2)
}

func TestScanRemovesWholeRecord(t *testing.T) {
	s := NewScanner(newTestLogger())

	nanPrice := completeListing("nan-price")
	nanPrice.Price = math.NaN()

	infPPG := completeListing("inf-ppg")
	infPPG.PricePerGuest = math.Inf(1)

	noDate := completeListing("no-date")
	noDate.HostSince = time.Time{}

	noSuburb := completeListing("no-suburb")
	noSuburb.Suburb = ""

	joinMiss := completeListing("join-miss")
	joinMiss.LGAAreaKm2 = math.NaN()
	joinMiss.LGADensity = math.NaN()
	joinMiss.LGAPopulation = math.NaN()

	listings := []*models.Listing{
		completeListing("ok"),
		nanPrice, infPPG, noDate, noSuburb, joinMiss,
	}

	kept := s.Scan(listings)
	require.Len(t, kept, 1)
	assert.Equal(t, "ok", kept[0].ID)
}

func TestScanIgnoresPriceDuplicate(t *testing.T) {
	s := NewScanner(newTestLogger())

	l := completeListing("1")
	require.True(t, math.IsNaN(l.PriceDuplicate))

	kept := s.Scan([]*models.Listing{l})
	assert.Len(t, kept, 1)
}

func TestAuditCountsNullsPerColumn(t *testing.T) {
	s := NewScanner(newTestLogger())

	a := completeListing("a")
	a.Price = math.NaN()

	b := completeListing("b")
	b.Price = math.NaN()
	b.Suburb = ""

	counts := s.Audit([]*models.Listing{completeListing("ok"), a, b})

	assert.Equal(t, 2, counts["price"])
	assert.Equal(t, 1, counts["suburb"])
	assert.Equal(t, 0, counts["lga"])
}

func TestAuditDoesNotRemove(t *testing.T) {
	s := NewScanner(newTestLogger())

	bad := completeListing("bad")
	bad.Price = math.NaN()
	listings := []*models.Listing{bad}

	s.Audit(listings)
	assert.Len(t, listings, 1)
}
