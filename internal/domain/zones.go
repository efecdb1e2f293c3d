package domain

import "strings"

// zipEntry is a hand-curated postal code with its known place and zone.
type zipEntry struct {
	City  string
	State string
	Lat   float64
	Lon   float64
	Zone  string
}

var zipTable = map[string]zipEntry{
	"10001": {"New York", "NY", 40.7506, -73.9972, "7a"},
	"90210": {"Beverly Hills", "CA", 34.0901, -118.4065, "10a"},
	"60601": {"Chicago", "IL", 41.8858, -87.6181, "6a"},
	"30301": {"Atlanta", "GA", 33.7490, -84.3880, "8a"},
	"80201": {"Denver", "CO", 39.7392, -104.9903, "5b"},
	"98101": {"Seattle", "WA", 47.6101, -122.3344, "9a"},
	"33101": {"Miami", "FL", 25.7743, -80.1937, "10b"},
	"78701": {"Austin", "TX", 30.2672, -97.7431, "8b"},
	"97201": {"Portland", "OR", 45.5078, -122.6897, "9a"},
	"02101": {"Boston", "MA", 42.3601, -71.0589, "6b"},
}

// zipRegionZones guesses a zone from the first digit of an unknown zip code.
var zipRegionZones = map[byte]string{
	'0': "6a", // New England
	'1': "6b", // NY, PA
	'2': "7b", // Mid-Atlantic, Carolinas
	'3': "9a", // Southeast
	'4': "6a", // Great Lakes
	'5': "4b", // Upper Midwest
	'6': "6a", // Central plains
	'7': "8a", // South central
	'8': "6b", // Mountain
	'9': "9b", // Pacific
}

// latBand assigns zone to latitudes strictly above min.
type latBand struct {
	min  float64
	zone string
}

// stateZones maps a state to its north-to-south zone gradient. Bands are
// ordered north first; south is used below the last band. repLat stands in
// for the latitude when a query carries none.
type stateZones struct {
	name   string
	repLat float64
	bands  []latBand
	south  string
}

func (s stateZones) zoneFor(lat float64) string {
	for _, b := range s.bands {
		if lat > b.min {
			return b.zone
		}
	}
	return s.south
}

var stateTable = map[string]stateZones{
	"FL": {name: "Florida", repLat: 28.0, bands: []latBand{{26, "9b"}}, south: "10b"},
	"TX": {name: "Texas", repLat: 31.0, bands: []latBand{{32, "8a"}, {29, "8b"}}, south: "9a"},
	"AL": {name: "Alabama", repLat: 33.0, bands: []latBand{{34, "7b"}, {32, "8a"}}, south: "8b"},
	"AK": {name: "Alaska", repLat: 61.2, bands: []latBand{{64, "2b"}, {60, "4b"}}, south: "6b"},
	"AZ": {name: "Arizona", repLat: 33.4, bands: []latBand{{35, "6b"}, {34, "8a"}, {32, "9b"}}, south: "10a"},
	"AR": {name: "Arkansas", repLat: 34.8, bands: []latBand{{36, "7a"}, {35, "7b"}}, south: "8a"},
	"CA": {name: "California", repLat: 35.5, bands: []latBand{{40, "8a"}, {37, "9b"}, {34, "10a"}}, south: "10b"},
	"CO": {name: "Colorado", repLat: 39.7, bands: []latBand{{40, "5a"}, {38, "5b"}}, south: "6a"},
	"CT": {name: "Connecticut", repLat: 41.6, bands: []latBand{{41.5, "6a"}}, south: "7a"},
	"DE": {name: "Delaware", repLat: 39.2, bands: []latBand{{39.5, "7a"}}, south: "7b"},
	"DC": {name: "District of Columbia", repLat: 38.9, bands: nil, south: "7b"},
	"GA": {name: "Georgia", repLat: 33.7, bands: []latBand{{34, "7b"}, {32, "8a"}}, south: "8b"},
	"HI": {name: "Hawaii", repLat: 21.3, bands: []latBand{{21.5, "11a"}}, south: "12b"},
	"ID": {name: "Idaho", repLat: 43.6, bands: []latBand{{46, "5b"}, {44, "5a"}}, south: "6b"},
	"IL": {name: "Illinois", repLat: 41.0, bands: []latBand{{42, "5b"}, {40, "6a"}, {38, "6b"}}, south: "7a"},
	"IN": {name: "Indiana", repLat: 40.0, bands: []latBand{{41, "6a"}, {39, "6b"}}, south: "7a"},
	"IA": {name: "Iowa", repLat: 41.9, bands: []latBand{{42.5, "5a"}, {41, "5b"}}, south: "6a"},
	"KS": {name: "Kansas", repLat: 38.5, bands: []latBand{{39, "6a"}, {38, "6b"}}, south: "7a"},
	"KY": {name: "Kentucky", repLat: 37.8, bands: []latBand{{38, "6b"}}, south: "7a"},
	"LA": {name: "Louisiana", repLat: 30.9, bands: []latBand{{32, "8a"}, {30.5, "8b"}}, south: "9a"},
	"ME": {name: "Maine", repLat: 44.7, bands: []latBand{{46, "4a"}, {44, "5a"}}, south: "5b"},
	"MD": {name: "Maryland", repLat: 39.0, bands: []latBand{{39.5, "6b"}, {38.5, "7a"}}, south: "7b"},
	"MA": {name: "Massachusetts", repLat: 42.3, bands: []latBand{{42.5, "6a"}, {42, "6b"}}, south: "7a"},
	"MI": {name: "Michigan", repLat: 43.3, bands: []latBand{{45, "5a"}, {43, "6a"}}, south: "6b"},
	"MN": {name: "Minnesota", repLat: 45.5, bands: []latBand{{47, "3b"}, {45, "4b"}}, south: "5a"},
	"MS": {name: "Mississippi", repLat: 32.7, bands: []latBand{{34, "7b"}, {32, "8a"}, {31, "8b"}}, south: "9a"},
	"MO": {name: "Missouri", repLat: 38.5, bands: []latBand{{39.5, "6a"}, {37, "6b"}}, south: "7a"},
	"MT": {name: "Montana", repLat: 46.9, bands: []latBand{{47, "4a"}, {45, "4b"}}, south: "5a"},
	"NE": {name: "Nebraska", repLat: 41.3, bands: []latBand{{42, "5a"}, {41, "5b"}}, south: "6a"},
	"NV": {name: "Nevada", repLat: 37.0, bands: []latBand{{40, "6a"}, {38, "7a"}, {36.5, "8a"}}, south: "9a"},
	"NH": {name: "New Hampshire", repLat: 43.2, bands: []latBand{{44, "4b"}, {43, "5b"}}, south: "6a"},
	"NJ": {name: "New Jersey", repLat: 40.2, bands: []latBand{{40.8, "6b"}, {39.5, "7a"}}, south: "7b"},
	"NM": {name: "New Mexico", repLat: 35.1, bands: []latBand{{36, "6a"}, {34, "7a"}, {33, "7b"}}, south: "8a"},
	"NY": {name: "New York", repLat: 41.5, bands: []latBand{{43, "5a"}, {42, "5b"}, {41, "6a"}}, south: "7a"},
	"NC": {name: "North Carolina", repLat: 35.6, bands: []latBand{{36, "7a"}, {35, "7b"}}, south: "8a"},
	"ND": {name: "North Dakota", repLat: 47.0, bands: []latBand{{47.5, "3b"}}, south: "4a"},
	"OH": {name: "Ohio", repLat: 40.2, bands: []latBand{{41, "6a"}, {39, "6b"}}, south: "7a"},
	"OK": {name: "Oklahoma", repLat: 35.5, bands: []latBand{{36.5, "6b"}, {35, "7a"}}, south: "7b"},
	"OR": {name: "Oregon", repLat: 44.5, bands: []latBand{{44, "8b"}, {43, "8a"}}, south: "7b"},
	"PA": {name: "Pennsylvania", repLat: 40.6, bands: []latBand{{41.5, "5b"}, {40.5, "6a"}, {40, "6b"}}, south: "7a"},
	"RI": {name: "Rhode Island", repLat: 41.7, bands: []latBand{{41.8, "6b"}}, south: "7a"},
	"SC": {name: "South Carolina", repLat: 33.8, bands: []latBand{{34.5, "7b"}, {33, "8a"}}, south: "8b"},
	"SD": {name: "South Dakota", repLat: 44.0, bands: []latBand{{45, "4a"}, {44, "4b"}}, south: "5a"},
	"TN": {name: "Tennessee", repLat: 36.0, bands: []latBand{{36.3, "6b"}, {35.5, "7a"}}, south: "7b"},
	"UT": {name: "Utah", repLat: 40.0, bands: []latBand{{41, "6a"}, {39, "6b"}, {38, "7a"}}, south: "8a"},
	"VT": {name: "Vermont", repLat: 44.3, bands: []latBand{{44.5, "4a"}, {43.5, "4b"}}, south: "5a"},
	"VA": {name: "Virginia", repLat: 37.5, bands: []latBand{{38.5, "6b"}, {37, "7a"}}, south: "7b"},
	"WA": {name: "Washington", repLat: 47.5, bands: []latBand{{48, "8a"}, {46.5, "8b"}}, south: "7b"},
	"WV": {name: "West Virginia", repLat: 38.6, bands: []latBand{{39.5, "6a"}, {38, "6b"}}, south: "7a"},
	"WI": {name: "Wisconsin", repLat: 44.0, bands: []latBand{{45.5, "4a"}, {44, "4b"}, {43, "5a"}}, south: "5b"},
	"WY": {name: "Wyoming", repLat: 42.8, bands: []latBand{{44, "4a"}, {42, "4b"}}, south: "5a"},
}

// stateCodes maps lower-cased full state names to their postal codes.
var stateCodes = func() map[string]string {
	m := make(map[string]string, len(stateTable))
	for code, s := range stateTable {
		m[strings.ToLower(s.name)] = code
	}
	return m
}()

// latitudeLadder is the coarse zone fallback when only latitude is known.
var latitudeLadder = []latBand{
	{45, "4b"},
	{40, "6a"},
	{35, "7b"},
	{30, "8b"},
	{25, "9b"},
}

func zoneFromLatitude(lat float64) string {
	for _, b := range latitudeLadder {
		if lat > b.min {
			return b.zone
		}
	}
	return "10a"
}
