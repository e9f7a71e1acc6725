package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airbnb-cleaner/models"
)

// duplicatedPrices builds listings whose frozen price_duplicate column is
// 49 copies of 100 plus a single 200. Whatever lambda the search picks,
// the lone high value standardizes to |z| = 7, so exactly one record is
// flagged.
func duplicatedPrices() []*models.Listing {
	listings := make([]*models.Listing, 50)
	for i := range listings {
		l := completeListing(fmt.Sprintf("l%d", i))
		l.PriceDuplicate = 100
		listings[i] = l
	}
	listings[49].PriceDuplicate = 200
	return listings
}

func TestAnalyzeFlagsExtremeValue(t *testing.T) {
	tr := NewTransformer(newTestLogger())

	summary := tr.Analyze(duplicatedPrices())

	assert.Equal(t, 50, summary.Total)
	assert.Equal(t, 1, summary.Flagged)
	require.Len(t, summary.FlaggedIDs, 1)
	assert.Equal(t, "l49", summary.FlaggedIDs[0])
	assert.Greater(t, summary.MaxAbsZScore, ZThreshold)
}

func TestAnalyzeIsDiagnosticOnly(t *testing.T) {
	tr := NewTransformer(newTestLogger())

	listings := duplicatedPrices()
	before := make([]models.Listing, len(listings))
	for i, l := range listings {
		before[i] = *l
	}

	tr.Analyze(listings)

	// Flagged records are counted, never removed or altered.
	for i, l := range listings {
		assert.Equal(t, before[i], *l)
	}
}

func TestAnalyzeNoFlagsOnTightDistribution(t *testing.T) {
	tr := NewTransformer(newTestLogger())

	listings := make([]*models.Listing, 20)
	for i := range listings {
		l := completeListing(fmt.Sprintf("l%d", i))
		l.PriceDuplicate = 100 + float64(i) // gentle linear spread
		listings[i] = l
	}

	summary := tr.Analyze(listings)
	assert.Equal(t, 0, summary.Flagged)
	assert.Empty(t, summary.FlaggedIDs)
}

func TestAnalyzeReportsLambdaInSearchRange(t *testing.T) {
	tr := NewTransformer(newTestLogger())

	summary := tr.Analyze(duplicatedPrices())
	assert.GreaterOrEqual(t, summary.Lambda, -2.0)
	assert.LessOrEqual(t, summary.Lambda, 2.0)
	assert.Equal(t, ZThreshold, summary.ZThreshold)
}
