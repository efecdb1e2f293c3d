// Package domain holds the plant advisor's core model and algorithms.
//
// # Locations and Hardiness Zones
//
// Free-text queries resolve to a [Location] through [ResolveLocation]: a
// known zip code, any other 5-digit zip, a "City, State" pair or a bare city.
// Zones are USDA codes "1a" through "13b". [ZoneFromLocation] tries, in
// order:
//
//	zip table     → hand-curated zip codes with known zones
//	state bands   → per-state latitude breakpoints, north to south
//	latitude      → >45 4b | >40 6a | >35 7b | >30 8b | >25 9b | else 10a
//	zip prefix    → regional guess from the first digit
//	default       → 8a
//
// A latitude of zero means unknown. States without a latitude use a
// representative latitude for the state.
//
// When a geocoder yields nothing, callers substitute [FallbackLocation]
// (Austin, TX, zone 8b) and report [ErrUnresolvedLocation].
//
// # Scoring
//
// [ScorePlant] adds fixed weights for each satisfied criterion:
//
//	plant type   40  category contains, or is contained in, a selected type
//	sun          25  one-way lattice, see sunCompatibility
//	experience   20  beginner→Easy, intermediate→Easy|Medium, advanced→any
//	goal         10  food→Vegetables|Herbs, beauty→Flowers, tag keywords otherwise
//	interest      5  first word of an interest in a tag or benefit (fragrant also matches aromatic)
//
// The total is clamped to [10, 100]. [Recommend] keeps the top eight by
// default with a stable sort so equal scores keep catalog order.
//
// # Seasons
//
// Season month ranges overlap at March, June, September and December. The
// first match in the order Spring, Summer, Fall, Winter wins, so March is
// always Spring.
//
// All functions in this package are pure. Callers that need "now" pass a time
// from their own clock, as [AdviseAt] takes one.
package domain
