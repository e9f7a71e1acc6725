package services

import (
	"math"

	"airbnb-cleaner/models"
	"airbnb-cleaner/utils"
)

// scannedColumn pairs a column name with its null-or-special predicate.
// PriceDuplicate is deliberately absent: the outlier engine has not set
// it yet when the scanner runs.
type scannedColumn struct {
	name   string
	isNull func(*models.Listing) bool
}

var scannedColumns = []scannedColumn{
	{"id", func(l *models.Listing) bool { return l.ID == "" }},
	{"host_since", func(l *models.Listing) bool { return l.HostSince.IsZero() }},
	{"suburb", func(l *models.Listing) bool { return l.Suburb == "" }},
	{"state", func(l *models.Listing) bool { return l.State == "" }},
	{"country", func(l *models.Listing) bool { return l.Country == "" }},
	{"lga", func(l *models.Listing) bool { return l.LGA == "" }},
	{"property_type", func(l *models.Listing) bool { return l.PropertyType == "" }},
	{"instant_bookable", func(l *models.Listing) bool { return l.InstantBookable == "" }},
	{"accommodates", numericNull(func(l *models.Listing) float64 { return l.Accommodates })},
	{"bathrooms", numericNull(func(l *models.Listing) float64 { return l.Bathrooms })},
	{"bedrooms", numericNull(func(l *models.Listing) float64 { return l.Bedrooms })},
	{"guests_included", numericNull(func(l *models.Listing) float64 { return l.GuestsIncluded })},
	{"price", numericNull(func(l *models.Listing) float64 { return l.Price })},
	{"price_per_guest", numericNull(func(l *models.Listing) float64 { return l.PricePerGuest })},
	{"number_of_reviews", numericNull(func(l *models.Listing) float64 { return l.NumberOfReviews })},
	{"lga_area_km2", numericNull(func(l *models.Listing) float64 { return l.LGAAreaKm2 })},
	{"lga_density", numericNull(func(l *models.Listing) float64 { return l.LGADensity })},
	{"lga_population", numericNull(func(l *models.Listing) float64 { return l.LGAPopulation })},
}

func numericNull(get func(*models.Listing) float64) func(*models.Listing) bool {
	return func(l *models.Listing) bool {
		v := get(l)
		return math.IsNaN(v) || math.IsInf(v, 0)
	}
}

// Scanner removes every record carrying a null, NaN or infinite value in
// any column. At this point in the pipeline the affected fraction is
// small, so whole-record deletion loses little; later stages impute
// instead because their affected fractions are too large to discard.
type Scanner struct {
	logger *utils.Logger
}

// NewScanner creates a Scanner with the given logger.
func NewScanner(logger *utils.Logger) *Scanner {
	return &Scanner{logger: logger}
}

// Audit counts nulls per column without removing anything. Run before
// Scan for the diagnostic report.
func (s *Scanner) Audit(listings []*models.Listing) map[string]int {
	counts := make(map[string]int, len(scannedColumns))
	for _, col := range scannedColumns {
		for _, l := range listings {
			if col.isNull(l) {
				counts[col.name]++
			}
		}
	}
	return counts
}

// Scan returns the listings with every incomplete record removed.
func (s *Scanner) Scan(listings []*models.Listing) []*models.Listing {
	kept := make([]*models.Listing, 0, len(listings))

	for _, l := range listings {
		if incomplete(l) {
			s.logger.Debug("[scanner] Dropping incomplete listing %s", l.ID)
			continue
		}
		kept = append(kept, l)
	}

	s.logger.Info("[scanner] Missing-value scan: %d -> %d listings (dropped %d)",
		len(listings), len(kept), len(listings)-len(kept))
	return kept
}

func incomplete(l *models.Listing) bool {
	for _, col := range scannedColumns {
		if col.isNull(l) {
			return true
		}
	}
	return false
}
