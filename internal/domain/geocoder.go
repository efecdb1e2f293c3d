package domain

import "context"

// GeocodingResult contains location data returned by a geocoding provider.
type GeocodingResult struct {
	Lat              float64
	Lon              float64
	City             string
	State            string // postal code, e.g. "TX"
	ZipCode          string
	FormattedAddress string
	PlaceName        string
	Confidence       float64 // 0.0–1.0 provider confidence score
}

// Empty reports whether the provider found nothing.
func (r GeocodingResult) Empty() bool {
	return r.Lat == 0 && r.Lon == 0 && r.FormattedAddress == ""
}

// Geocoder turns place names into coordinates and back.
type Geocoder interface {
	// ForwardGeocode converts a place name and optional state to coordinates.
	ForwardGeocode(ctx context.Context, name, state string) (GeocodingResult, error)

	// ReverseGeocode converts coordinates to place details.
	ReverseGeocode(ctx context.Context, lat, lon float64) (GeocodingResult, error)
}
