package services

import (
	"math"
	"strings"

	"airbnb-cleaner/models"
	"airbnb-cleaner/utils"
)

const locationDelimiter = ","

// Deriver computes the derived columns: price_per_guest, lga_population
// and the suburb/state/country split of the composite location string.
// All derivations are pure per-record functions over coerced columns and
// must run before the missing-value scan, since they can introduce new
// NaN/Inf values (zero guests divide, malformed location).
type Deriver struct {
	logger *utils.Logger
}

// NewDeriver creates a Deriver with the given logger.
func NewDeriver(logger *utils.Logger) *Deriver {
	return &Deriver{logger: logger}
}

// Derive fills the derived columns of every listing in place.
func (d *Deriver) Derive(listings []*models.Listing) {
	badLocations := 0

	for _, l := range listings {
		l.PricePerGuest = pricePerGuest(l.Price, l.GuestsIncluded)
		l.LGAPopulation = l.LGAAreaKm2 * l.LGADensity

		if !splitLocation(l) {
			badLocations++
			d.logger.Debug("[derive] Listing %s: location %q does not split into three parts",
				l.ID, l.Location)
		}
	}

	d.logger.Info("[derive] Derived columns for %d listings (%d malformed locations)",
		len(listings), badLocations)
}

// pricePerGuest is price/guests rounded to cents. A zero guest count
// produces +Inf, which the missing-value scanner removes.
func pricePerGuest(price, guests float64) float64 {
	if guests == 0 {
		if math.IsNaN(price) {
			return math.NaN()
		}
		return math.Inf(1)
	}
	return round2(price / guests)
}

// splitLocation splits the composite location on its delimiter into
// suburb, state and country. Anything but exactly three parts nulls all
// three outputs. The parts keep their surrounding whitespace; trimming is
// a downstream concern.
func splitLocation(l *models.Listing) bool {
	parts := strings.Split(l.Location, locationDelimiter)
	if l.Location == "" || len(parts) != 3 {
		l.Suburb, l.State, l.Country = "", "", ""
		return false
	}
	l.Suburb, l.State, l.Country = parts[0], parts[1], parts[2]
	return true
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
