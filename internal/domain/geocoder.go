package domain

import "context"

// GeocodingResult contains location data returned by a geocoding provider.
type GeocodingResult struct {
	Lat              float64
	Lon              float64
	FormattedAddress string
	PlaceName        string
	Confidence       float64 // 0.0–1.0 provider confidence score
}

// Geocoder resolves the free-text farm location typed into the form.
type Geocoder interface {
	// Geocode converts a place query to coordinates. An empty result with a
	// nil error means the provider found nothing.
	Geocode(ctx context.Context, query string) (GeocodingResult, error)
}
