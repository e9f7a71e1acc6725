package models

import (
	"math"
	"time"
)

// RawListing holds the 12 consumed columns of the listings CSV exactly as
// they appear on disk. All fields are textual; nothing is parsed yet.
type RawListing struct {
	ID              string
	HostSince       string
	Location        string // composite "suburb, state, country" street field
	LGA             string // neighbourhood_cleansed, the join key
	PropertyType    string
	Accommodates    string
	Bathrooms       string
	Bedrooms        string
	Price           string // currency-formatted, e.g. "$1,250.00"
	GuestsIncluded  string
	NumberOfReviews string
	InstantBookable string
}

// LGARef is one row of the scraped Local Government Area reference table,
// with the "City of "/"Shire of " prefix already stripped from Name.
type LGARef struct {
	Name    string
	AreaKm2 float64
	Density float64
}

// JoinedListing is a raw listing with its LGA reference columns attached.
// A join miss leaves AreaKm2 and Density as NaN.
type JoinedListing struct {
	Raw     *RawListing
	AreaKm2 float64
	Density float64
}

// Listing is the fully coerced 16-column record the pipeline operates on.
//
// Null markers: NaN for numeric columns, the zero time.Time for HostSince,
// "" for categorical columns. The missing-value scanner removes any record
// still carrying one of these markers.
type Listing struct {
	ID        string
	HostSince time.Time

	// Location is the raw composite "suburb, state, country" string. The
	// derived-attribute stage splits it; output writers never emit it.
	Location string

	Suburb          string
	State           string
	Country         string
	LGA             string
	PropertyType    string
	InstantBookable string

	// Ordered categoricals, validated against finite domains at parse time.
	Accommodates   float64
	Bathrooms      float64
	Bedrooms       float64
	GuestsIncluded float64

	Price           float64
	PricePerGuest   float64
	NumberOfReviews float64

	LGAAreaKm2    float64
	LGADensity    float64
	LGAPopulation float64

	// PriceDuplicate freezes Price as it was before outlier imputation.
	PriceDuplicate float64
}

// NewListing returns a Listing with every column set to its null marker.
func NewListing() *Listing {
	nan := math.NaN()
	return &Listing{
		Accommodates:    nan,
		Bathrooms:       nan,
		Bedrooms:        nan,
		GuestsIncluded:  nan,
		Price:           nan,
		PricePerGuest:   nan,
		NumberOfReviews: nan,
		LGAAreaKm2:      nan,
		LGADensity:      nan,
		LGAPopulation:   nan,
		PriceDuplicate:  nan,
	}
}
