package services

import (
	"math"

	"airbnb-cleaner/models"
	"airbnb-cleaner/stats"
	"airbnb-cleaner/utils"
)

// ZThreshold is the absolute standardized-score cutoff for the diagnostic
// outlier flagging.
const ZThreshold = 3.0

// Transformer demonstrates the alternative outlier method: a Box-Cox
// transform of the untouched pre-imputation price distribution, followed
// by z-score thresholding. It is diagnostic only — flagged records are
// counted and reported, never removed or altered. It intentionally does
// not interact with the fence-based engine that already imputed price.
type Transformer struct {
	logger *utils.Logger
}

// NewTransformer creates a Transformer with the given logger.
func NewTransformer(logger *utils.Logger) *Transformer {
	return &Transformer{logger: logger}
}

// Analyze runs the transform over price_duplicate and returns the
// diagnostic summary.
func (t *Transformer) Analyze(listings []*models.Listing) models.TransformSummary {
	values := make([]float64, len(listings))
	for i, l := range listings {
		values[i] = l.PriceDuplicate
	}

	lambda := stats.BoxCoxLambda(values)
	transformed := stats.BoxCox(values, lambda)
	scores := stats.ZScores(transformed)

	summary := models.TransformSummary{
		Lambda:     lambda,
		Mean:       stats.Mean(transformed),
		StdDev:     stats.StdDev(transformed),
		ZThreshold: ZThreshold,
		Total:      len(listings),
	}

	for i, z := range scores {
		abs := math.Abs(z)
		if abs > summary.MaxAbsZScore {
			summary.MaxAbsZScore = abs
		}
		if abs > ZThreshold {
			summary.Flagged++
			summary.FlaggedIDs = append(summary.FlaggedIDs, listings[i].ID)
		}
	}

	t.logger.Info("[transform] Box-Cox lambda %.2f — %d/%d listings beyond |z| > %.0f (max |z| %.2f)",
		lambda, summary.Flagged, summary.Total, ZThreshold, summary.MaxAbsZScore)
	return summary
}
