package domain

import (
	"fmt"
	"strings"
)

// ResolveLocation derives a Location from free text: a zip code, a
// "City, State" pair or a bare city name. Blank input returns
// ErrMalformedInput. Any other input resolves to a location with a valid
// hardiness zone.
func ResolveLocation(input string) (Location, error) {
	q := strings.TrimSpace(input)
	if q == "" {
		return Location{}, ErrMalformedInput
	}

	if e, ok := zipTable[q]; ok {
		return Location{
			Lat:           e.Lat,
			Lon:           e.Lon,
			City:          e.City,
			State:         e.State,
			ZipCode:       q,
			HardinessZone: e.Zone,
			Source:        SourceZipTable,
		}, nil
	}

	if isZip(q) {
		return Location{
			City:          "City for " + q,
			State:         PlaceholderState,
			ZipCode:       q,
			HardinessZone: ZoneFromLocation(q, "", 0),
			Source:        SourceZip,
		}, nil
	}

	if city, state, ok := strings.Cut(q, ","); ok {
		city = strings.TrimSpace(city)
		state = NormalizeState(state)
		if city == "" {
			city = PlaceholderCity
		}
		if state == "" {
			state = PlaceholderState
		}
		return Location{
			City:          city,
			State:         state,
			HardinessZone: ZoneFromLocation("", state, 0),
			Source:        SourceCityState,
		}, nil
	}

	return Location{
		City:          q,
		State:         PlaceholderState,
		HardinessZone: ZoneFromLocation("", PlaceholderState, 0),
		Source:        SourceCity,
	}, nil
}

// ZoneFromLocation picks a hardiness zone from the most specific signal
// available: the zip table, then the state's latitude bands, then the
// latitude ladder, then a regional guess from the zip prefix. A latitude of
// zero is treated as unknown.
func ZoneFromLocation(zip, state string, lat float64) string {
	if e, ok := zipTable[zip]; ok {
		return e.Zone
	}
	if s, ok := stateTable[NormalizeState(state)]; ok {
		if lat == 0 {
			lat = s.repLat
		}
		return s.zoneFor(lat)
	}
	if lat != 0 {
		return zoneFromLatitude(lat)
	}
	if isZip(zip) {
		if z, ok := zipRegionZones[zip[0]]; ok {
			return z
		}
	}
	return DefaultZone
}

// NormalizeState trims a state and maps full names to postal codes.
// Unrecognized text is returned trimmed.
func NormalizeState(state string) string {
	s := strings.TrimSpace(state)
	if s == "" {
		return ""
	}
	if _, ok := stateTable[strings.ToUpper(s)]; ok {
		return strings.ToUpper(s)
	}
	if code, ok := stateCodes[strings.ToLower(s)]; ok {
		return code
	}
	return s
}

// Describe formats a location for display, e.g. "Austin, TX (zone 8b)".
func (l Location) Describe() string {
	return fmt.Sprintf("%s, %s (zone %s)", l.City, l.State, l.HardinessZone)
}

func isZip(s string) bool {
	if len(s) != 5 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
