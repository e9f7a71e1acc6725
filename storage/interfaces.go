package storage

import "airbnb-cleaner/models"

// ListingWriter is the interface any clean-output backend must satisfy.
type ListingWriter interface {
	Write(listings []*models.Listing) error
	Close() error
}

// ListingReader is the interface for loading the raw listings snapshot.
type ListingReader interface {
	ReadAll() ([]*models.RawListing, error)
}
