package services

import (
	"math"
	"strings"

	"airbnb-cleaner/models"
	"airbnb-cleaner/utils"
)

// Joiner attaches LGA reference columns to every raw listing via a left
// join on the area name. Listings whose LGA has no reference row keep NaN
// reference columns and are dropped later by the missing-value scanner.
type Joiner struct {
	logger *utils.Logger
}

// NewJoiner creates a Joiner with the given logger.
func NewJoiner(logger *utils.Logger) *Joiner {
	return &Joiner{logger: logger}
}

// Join performs the left join. Every listing appears in the output exactly
// once, in input order, whether or not its key matched.
func (j *Joiner) Join(rows []*models.RawListing, refs []*models.LGARef) []*models.JoinedListing {
	byName := make(map[string]*models.LGARef, len(refs))
	for _, ref := range refs {
		key := joinKey(ref.Name)
		if _, dup := byName[key]; dup {
			j.logger.Warn("[joiner] Duplicate reference row for %q — keeping the last one", ref.Name)
		}
		byName[key] = ref
	}

	joined := make([]*models.JoinedListing, 0, len(rows))
	misses := 0

	for _, row := range rows {
		jl := &models.JoinedListing{
			Raw:     row,
			AreaKm2: math.NaN(),
			Density: math.NaN(),
		}
		if ref, ok := byName[joinKey(row.LGA)]; ok {
			jl.AreaKm2 = ref.AreaKm2
			jl.Density = ref.Density
		} else {
			misses++
			j.logger.Debug("[joiner] No reference match for LGA %q (listing %s)", row.LGA, row.ID)
		}
		joined = append(joined, jl)
	}

	j.logger.Info("[joiner] Joined %d listings against %d reference rows (%d misses)",
		len(rows), len(refs), misses)
	return joined
}

// joinKey normalizes an area name for matching. Prefix stripping
// ("City of", "Shire of") has already happened on the reference side.
func joinKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// JoinMissCount reports how many joined rows carry no reference columns.
func JoinMissCount(rows []*models.JoinedListing) int {
	misses := 0
	for _, row := range rows {
		if math.IsNaN(row.AreaKm2) || math.IsNaN(row.Density) {
			misses++
		}
	}
	return misses
}
