package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"airbnb-cleaner/models"
	"airbnb-cleaner/utils"
)

var (
	// numericRegexp captures a plain numeric value after decorations are gone
	numericRegexp = regexp.MustCompile(`^-?\d+(?:\.\d+)?$`)
	// currencyReplacer strips currency decorations before numeric parsing
	currencyReplacer = strings.NewReplacer("$", "", ",", "", " ", "")
)

// dateLayouts are tried in order when parsing host_since.
var dateLayouts = []string{
	"2006-01-02",
	"2/01/2006",
	"02/01/2006",
}

// Ordered categorical domains. A parsed value outside its domain is a
// coercion failure, not a new domain member.
const (
	accommodatesMin = 1
	accommodatesMax = 16
	bathroomsMax    = 8
	bedroomsMax     = 10
	guestsMax       = 16
)

// instantBookableLevels is the unordered domain for instant_bookable.
var instantBookableLevels = map[string]struct{}{"t": {}, "f": {}}

// Coercer converts joined raw rows into typed Listings. Every parse
// function is total: a failure produces a null marker (NaN, zero time or
// empty string) and is counted, never raised.
type Coercer struct {
	logger *utils.Logger
	fails  int
}

// NewCoercer creates a Coercer with the given logger.
func NewCoercer(logger *utils.Logger) *Coercer {
	return &Coercer{logger: logger}
}

// Coerce types every column of every joined row.
func (c *Coercer) Coerce(rows []*models.JoinedListing) []*models.Listing {
	c.fails = 0
	listings := make([]*models.Listing, 0, len(rows))

	for _, row := range rows {
		listings = append(listings, c.coerceRow(row))
	}

	c.logger.Info("[coerce] Typed %d listings (%d coercion failures became nulls)",
		len(listings), c.fails)
	return listings
}

// Failures returns the number of individual parse failures seen by the
// last Coerce call.
func (c *Coercer) Failures() int { return c.fails }

func (c *Coercer) coerceRow(row *models.JoinedListing) *models.Listing {
	raw := row.Raw
	l := models.NewListing()

	l.ID = strings.TrimSpace(raw.ID)
	l.LGA = strings.TrimSpace(raw.LGA)
	l.Location = normaliseText(raw.Location)
	l.PropertyType = normaliseText(raw.PropertyType)

	l.HostSince = c.parseDate(raw.HostSince, "host_since")
	l.InstantBookable = c.parseLevel(raw.InstantBookable, "instant_bookable")

	l.Accommodates = c.parseOrdered(raw.Accommodates, "accommodates", accommodatesMin, accommodatesMax, 1)
	l.Bathrooms = c.parseOrdered(raw.Bathrooms, "bathrooms", 0, bathroomsMax, 0.5)
	l.Bedrooms = c.parseOrdered(raw.Bedrooms, "bedrooms", 0, bedroomsMax, 1)
	l.GuestsIncluded = c.parseOrdered(raw.GuestsIncluded, "guests_included", 0, guestsMax, 1)

	l.Price = c.parseCurrency(raw.Price, "price")
	l.NumberOfReviews = c.parseCurrency(raw.NumberOfReviews, "number_of_reviews")

	// Reference columns arrive numeric from the joiner; NaN marks a miss.
	l.LGAAreaKm2 = row.AreaKm2
	l.LGADensity = row.Density

	return l
}

// parseCurrency strips currency symbols and thousands separators and
// parses the remainder as a non-negative-capable float. Failure -> NaN.
func (c *Coercer) parseCurrency(raw, column string) float64 {
	cleaned := currencyReplacer.Replace(strings.TrimSpace(raw))
	if !numericRegexp.MatchString(cleaned) {
		return c.failNumeric(raw, column)
	}
	val, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return c.failNumeric(raw, column)
	}
	return val
}

// parseOrdered parses a value belonging to a finite ordered domain
// [min, max] on the given step. A value off the grid or outside the
// bounds is a coercion failure, not a new level.
func (c *Coercer) parseOrdered(raw, column string, min, max, step float64) float64 {
	cleaned := strings.TrimSpace(raw)
	if !numericRegexp.MatchString(cleaned) {
		return c.failNumeric(raw, column)
	}
	val, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return c.failNumeric(raw, column)
	}
	if val < min || val > max {
		return c.failNumeric(raw, column)
	}
	if rem := math.Mod(val-min, step); math.Abs(rem) > 1e-9 && math.Abs(rem-step) > 1e-9 {
		return c.failNumeric(raw, column)
	}
	return val
}

func (c *Coercer) parseDate(raw, column string) time.Time {
	cleaned := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t
		}
	}
	c.fails++
	c.logger.Debug("[coerce] %s: cannot parse %q as a date", column, raw)
	return time.Time{}
}

func (c *Coercer) parseLevel(raw, column string) string {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := instantBookableLevels[cleaned]; !ok {
		c.fails++
		c.logger.Debug("[coerce] %s: %q is not a known level", column, raw)
		return ""
	}
	return cleaned
}

func (c *Coercer) failNumeric(raw, column string) float64 {
	c.fails++
	c.logger.Debug("[coerce] %s: cannot parse %q", column, raw)
	return math.NaN()
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	s = strings.TrimSpace(s)
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}
