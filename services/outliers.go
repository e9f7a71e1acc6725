package services

import (
	"airbnb-cleaner/models"
	"airbnb-cleaner/stats"
	"airbnb-cleaner/utils"
)

// numericAttribute names a column the outlier engine fences, with its
// accessors. The LGA-level columns are deliberately excluded: their
// extremes reflect genuine between-area variation, not error, and their
// cardinality is far too low for meaningful fencing.
type numericAttribute struct {
	name string
	get  func(*models.Listing) float64
	set  func(*models.Listing, float64)
}

var fencedAttributes = []numericAttribute{
	{
		name: "price",
		get:  func(l *models.Listing) float64 { return l.Price },
		set:  func(l *models.Listing, v float64) { l.Price = v },
	},
	{
		name: "price_per_guest",
		get:  func(l *models.Listing) float64 { return l.PricePerGuest },
		set:  func(l *models.Listing, v float64) { l.PricePerGuest = v },
	},
	{
		name: "number_of_reviews",
		get:  func(l *models.Listing) float64 { return l.NumberOfReviews },
		set:  func(l *models.Listing, v float64) { l.NumberOfReviews = v },
	},
}

// OutlierEngine applies Tukey fencing independently per attribute and
// replaces flagged values with the attribute's pre-replacement median.
// Median substitution is preferred over winsorizing here: with outlier
// fractions above 5%, clipping would pile an artificial spike onto the
// fence value itself.
type OutlierEngine struct {
	logger *utils.Logger
}

// NewOutlierEngine creates an OutlierEngine with the given logger.
func NewOutlierEngine(logger *utils.Logger) *OutlierEngine {
	return &OutlierEngine{logger: logger}
}

// Impute snapshots price into price_duplicate, then fences and imputes
// each attribute. The passes operate on disjoint columns, so their order
// is immaterial.
func (e *OutlierEngine) Impute(listings []*models.Listing) []models.AttributeOutlierSummary {
	for _, l := range listings {
		l.PriceDuplicate = l.Price
	}

	summaries := make([]models.AttributeOutlierSummary, 0, len(fencedAttributes))
	for _, attr := range fencedAttributes {
		summaries = append(summaries, e.imputeAttribute(listings, attr))
	}
	return summaries
}

func (e *OutlierEngine) imputeAttribute(listings []*models.Listing, attr numericAttribute) models.AttributeOutlierSummary {
	values := make([]float64, len(listings))
	for i, l := range listings {
		values[i] = attr.get(l)
	}

	fences := stats.TukeyFences(values)
	median := stats.Median(values)

	flagged := 0
	for _, l := range listings {
		if fences.Outside(attr.get(l)) {
			attr.set(l, median)
			flagged++
		}
	}

	e.logger.Info("[outliers] %s: fences [%.2f, %.2f], median %.2f — imputed %d/%d values",
		attr.name, fences.Lower, fences.Upper, median, flagged, len(listings))

	return models.AttributeOutlierSummary{
		Attribute:  attr.name,
		Q1:         fences.Q1,
		Q3:         fences.Q3,
		LowerFence: fences.Lower,
		UpperFence: fences.Upper,
		Median:     median,
		Flagged:    flagged,
		Total:      len(listings),
	}
}
