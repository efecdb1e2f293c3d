package domain

import (
	"context"
	"fmt"
	"log/slog"
)

// ResolveWithGeocoder resolves input statically, then refines it with the
// geocoder: coordinates, city/state where the query left placeholders, and a
// zone recomputed from the geocoded latitude. Zip-table hits skip the
// geocoder. A nil geocoder returns the static result.
//
// When the geocoder fails or finds nothing, the returned error wraps
// ErrUnresolvedLocation and callers should apply FallbackLocation.
func ResolveWithGeocoder(ctx context.Context, input string, geocoder Geocoder, logger *slog.Logger) (Location, error) {
	loc, err := ResolveLocation(input)
	if err != nil {
		return Location{}, err
	}
	if geocoder == nil || loc.Source == SourceZipTable {
		return loc, nil
	}

	name, state := loc.City, loc.State
	switch {
	case loc.Source == SourceZip:
		name, state = loc.ZipCode, ""
	case state == PlaceholderState:
		state = ""
	}

	result, err := geocoder.ForwardGeocode(ctx, name, state)
	if err != nil {
		logger.Warn("forward geocoding failed",
			"query", input,
			"error", err,
		)
		return Location{}, fmt.Errorf("geocode %q: %w: %w", input, ErrUnresolvedLocation, err)
	}
	if result.Empty() {
		return Location{}, fmt.Errorf("geocode %q: %w", input, ErrUnresolvedLocation)
	}

	return mergeGeocode(loc, result), nil
}

// ResolveCoordinates reverse geocodes a coordinate pair. When the geocoder
// is nil or fails, the location keeps the coordinates, placeholder labels
// and a latitude-derived zone, and the error wraps ErrUnresolvedLocation.
func ResolveCoordinates(ctx context.Context, lat, lon float64, geocoder Geocoder, logger *slog.Logger) (Location, error) {
	loc := Location{
		Lat:           lat,
		Lon:           lon,
		City:          PlaceholderCity,
		State:         PlaceholderState,
		HardinessZone: ZoneFromLocation("", "", lat),
		Source:        SourceGeocoder,
	}
	if geocoder == nil {
		return loc, fmt.Errorf("reverse geocode: no provider: %w", ErrUnresolvedLocation)
	}

	result, err := geocoder.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		logger.Warn("reverse geocoding failed",
			"lat", lat,
			"lon", lon,
			"error", err,
		)
		return loc, fmt.Errorf("reverse geocode: %w: %w", ErrUnresolvedLocation, err)
	}
	if result.FormattedAddress == "" {
		return loc, fmt.Errorf("reverse geocode: %w", ErrUnresolvedLocation)
	}

	result.Lat, result.Lon = lat, lon
	return mergeGeocode(loc, result), nil
}

func mergeGeocode(loc Location, r GeocodingResult) Location {
	loc.Lat, loc.Lon = r.Lat, r.Lon
	loc.FormattedAddress = r.FormattedAddress
	if r.City != "" {
		loc.City = r.City
	}
	if _, known := stateTable[loc.State]; r.State != "" && !known {
		loc.State = NormalizeState(r.State)
	}
	if r.ZipCode != "" && loc.ZipCode == "" {
		loc.ZipCode = r.ZipCode
	}
	loc.HardinessZone = ZoneFromLocation(loc.ZipCode, loc.State, loc.Lat)
	loc.Source = SourceGeocoder
	return loc
}
