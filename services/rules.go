package services

import (
	"airbnb-cleaner/models"
	"airbnb-cleaner/utils"
)

const (
	// MinPrice is the lowest plausible nightly rate; anything below is a
	// data-entry error.
	MinPrice = 5
	// PriceCeiling is the hard cutoff for implausible listings, applied
	// before statistical outlier detection.
	PriceCeiling = 5000
)

// rule is a per-record validity predicate. Rules never look across
// records, so removal order cannot change which records are flagged.
type rule struct {
	name string
	ok   func(*models.Listing) bool
}

var validityRules = []rule{
	{"price >= 5", func(l *models.Listing) bool { return l.Price >= MinPrice }},
	{"price_per_guest >= 0", func(l *models.Listing) bool { return l.PricePerGuest >= 0 }},
	{"number_of_reviews >= 0", func(l *models.Listing) bool { return l.NumberOfReviews >= 0 }},
	{"lga_area_km2 >= 0", func(l *models.Listing) bool { return l.LGAAreaKm2 >= 0 }},
	{"lga_density >= 0", func(l *models.Listing) bool { return l.LGADensity >= 0 }},
	{"lga_population >= 0", func(l *models.Listing) bool { return l.LGAPopulation >= 0 }},
}

// RuleEngine enforces the validity rules. Violations of the numeric rules
// are rare data-entry errors and delete the record; the common
// guests/accommodates inconsistency has an obvious safe correction and is
// clamped instead.
type RuleEngine struct {
	logger *utils.Logger

	violations map[string]int
	clamped    int
	ceilinged  int
}

// NewRuleEngine creates a RuleEngine with the given logger.
func NewRuleEngine(logger *utils.Logger) *RuleEngine {
	return &RuleEngine{logger: logger}
}

// Apply runs the three passes in their fixed order: validity-rule
// deletion, guests clamp, price ceiling.
func (e *RuleEngine) Apply(listings []*models.Listing) []*models.Listing {
	listings = e.removeViolations(listings)
	e.clampGuests(listings)
	return e.applyCeiling(listings)
}

// Violations returns per-rule flag counts from the last Apply call.
func (e *RuleEngine) Violations() map[string]int { return e.violations }

// Clamped returns how many records had guests_included clamped.
func (e *RuleEngine) Clamped() int { return e.clamped }

// Ceilinged returns how many records exceeded the price ceiling.
func (e *RuleEngine) Ceilinged() int { return e.ceilinged }

// removeViolations flags every record against every rule, then removes
// all flagged records in a single pass.
func (e *RuleEngine) removeViolations(listings []*models.Listing) []*models.Listing {
	e.violations = make(map[string]int, len(validityRules))
	flagged := make(map[*models.Listing]struct{})

	for _, r := range validityRules {
		for _, l := range listings {
			if !r.ok(l) {
				e.violations[r.name]++
				flagged[l] = struct{}{}
				e.logger.Debug("[rules] Listing %s violates %q", l.ID, r.name)
			}
		}
	}

	kept := make([]*models.Listing, 0, len(listings))
	for _, l := range listings {
		if _, bad := flagged[l]; bad {
			continue
		}
		kept = append(kept, l)
	}

	e.logger.Info("[rules] Validity rules: %d -> %d listings (removed %d)",
		len(listings), len(kept), len(flagged))
	return kept
}

// clampGuests overwrites guests_included with accommodates wherever the
// guest count exceeds capacity.
func (e *RuleEngine) clampGuests(listings []*models.Listing) {
	e.clamped = 0
	for _, l := range listings {
		if l.GuestsIncluded > l.Accommodates {
			e.logger.Debug("[rules] Listing %s: clamping guests_included %.0f -> %.0f",
				l.ID, l.GuestsIncluded, l.Accommodates)
			l.GuestsIncluded = l.Accommodates
			e.clamped++
		}
	}
	e.logger.Info("[rules] Clamped guests_included on %d listings", e.clamped)
}

// applyCeiling drops listings priced above the hard ceiling.
func (e *RuleEngine) applyCeiling(listings []*models.Listing) []*models.Listing {
	kept := make([]*models.Listing, 0, len(listings))
	e.ceilinged = 0

	for _, l := range listings {
		if l.Price > PriceCeiling {
			e.ceilinged++
			e.logger.Debug("[rules] Listing %s: price %.2f exceeds ceiling %d", l.ID, l.Price, PriceCeiling)
			continue
		}
		kept = append(kept, l)
	}

	e.logger.Info("[rules] Price ceiling: removed %d listings above %d", e.ceilinged, PriceCeiling)
	return kept
}
