package domain

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Sentinel errors describing why a fallback value was applied. Core functions
// still return a usable value alongside them.
var (
	// ErrUnresolvedLocation means a geocoding provider yielded nothing.
	ErrUnresolvedLocation = errors.New("unresolved location")
	// ErrMalformedInput means the query was empty or too short to act on.
	ErrMalformedInput = errors.New("malformed input")
	// ErrUnknownZone means a zone code was absent from the static tables.
	ErrUnknownZone = errors.New("unknown hardiness zone")
	// ErrNoSavedLocation means a session has not remembered a location yet.
	ErrNoSavedLocation = errors.New("no saved location")
)

// Placeholder labels used when a query does not name a city or state.
const (
	PlaceholderCity  = "Your City"
	PlaceholderState = "Your State"
)

// Location sources.
const (
	SourceZipTable  = "zip-table"
	SourceZip       = "zip"
	SourceCityState = "city-state"
	SourceCity      = "city"
	SourceGeocoder  = "geocoder"
	SourceFallback  = "fallback"
)

// DefaultZone is used when neither the zip, state nor latitude identifies a zone.
const DefaultZone = "8a"

// Location is a normalized place with its USDA hardiness zone.
type Location struct {
	Lat              float64 `json:"lat"`
	Lon              float64 `json:"lng"`
	City             string  `json:"city"`
	State            string  `json:"state"`
	ZipCode          string  `json:"zipCode,omitempty"`
	HardinessZone    string  `json:"hardinessZone"`
	FormattedAddress string  `json:"formattedAddress,omitempty"`
	Source           string  `json:"source,omitempty"`
}

// SavedLocation is a location remembered for a session.
type SavedLocation struct {
	SessionID string    `json:"sessionId"`
	Location  Location  `json:"location"`
	SavedAt   time.Time `json:"savedAt"`
}

// HasCoords reports whether the location carries a coordinate pair.
func (l Location) HasCoords() bool {
	return l.Lat != 0 || l.Lon != 0
}

// FallbackLocation is the location used when nothing else resolves.
func FallbackLocation() Location {
	return Location{
		Lat:              30.2672,
		Lon:              -97.7431,
		City:             "Austin",
		State:            "TX",
		ZipCode:          "78701",
		HardinessZone:    "8b",
		FormattedAddress: "Austin, TX, USA",
		Source:           SourceFallback,
	}
}

var zoneCodes = func() map[string]bool {
	m := make(map[string]bool, 26)
	for n := 1; n <= 13; n++ {
		m[strconv.Itoa(n)+"a"] = true
		m[strconv.Itoa(n)+"b"] = true
	}
	return m
}()

// ValidZone reports whether zone is one of the USDA codes 1a through 13b.
func ValidZone(zone string) bool {
	return zoneCodes[zone]
}

// ZoneNumber returns the numeric part of a zone code, e.g. 8 for "8b".
func ZoneNumber(zone string) (int, bool) {
	if !ValidZone(zone) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimRight(zone, "ab"))
	if err != nil {
		return 0, false
	}
	return n, true
}
