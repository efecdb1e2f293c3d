package domain

import (
	"fmt"
	"slices"
	"time"
)

// Season is a planting season.
type Season string

const (
	Spring Season = "Spring"
	Summer Season = "Summer"
	Fall   Season = "Fall"
	Winter Season = "Winter"
)

// FrostDates are the average last spring and first fall frost for a zone.
type FrostDates struct {
	LastSpring string `json:"lastSpring"`
	FirstFall  string `json:"firstFall"`
}

// Advice is the seasonal guidance for a zone and month.
type Advice struct {
	Zone            string     `json:"zone"`
	Month           int        `json:"month"`
	Season          Season     `json:"season"`
	FrostDates      FrostDates `json:"frostDates"`
	FallbackApplied bool       `json:"fallbackApplied,omitempty"`
}

// FallbackFrostZone supplies frost dates for zones missing from the table.
const FallbackFrostZone = "8b"

// seasonMonths overlap at the boundaries. Order is the match priority.
var seasonMonths = []struct {
	season Season
	months []int
}{
	{Spring, []int{2, 3, 4, 5}},
	{Summer, []int{5, 6, 7, 8}},
	{Fall, []int{8, 9, 10, 11}},
	{Winter, []int{11, 0, 1, 2}},
}

var frostTable = map[string]FrostDates{
	"3a":  {"May 15", "September 15"},
	"4b":  {"May 1", "October 1"},
	"6a":  {"April 15", "October 15"},
	"7b":  {"April 1", "November 1"},
	"8b":  {"March 15", "November 20"},
	"9b":  {"February 15", "December 15"},
	"10a": {"January 30", "December 30"},
}

// SeasonForMonth maps a zero-based month (0 = January) to its season.
// Months outside 0..11 wrap.
func SeasonForMonth(month int) Season {
	m := normalizeMonth(month)
	for _, s := range seasonMonths {
		if slices.Contains(s.months, m) {
			return s.season
		}
	}
	return Winter
}

// FrostDatesFor looks up zone. Unknown zones get the FallbackFrostZone dates
// together with ErrUnknownZone.
func FrostDatesFor(zone string) (FrostDates, error) {
	if d, ok := frostTable[zone]; ok {
		return d, nil
	}
	return frostTable[FallbackFrostZone], fmt.Errorf("frost dates for %q: %w", zone, ErrUnknownZone)
}

// AdviseForZone returns the season and frost dates for zone in the given
// zero-based month.
func AdviseForZone(zone string, month int) Advice {
	frost, err := FrostDatesFor(zone)
	return Advice{
		Zone:            zone,
		Month:           normalizeMonth(month),
		Season:          SeasonForMonth(month),
		FrostDates:      frost,
		FallbackApplied: err != nil,
	}
}

// AdviseAt is AdviseForZone for the month containing at.
func AdviseAt(zone string, at time.Time) Advice {
	return AdviseForZone(zone, MonthIndex(at))
}

// MonthIndex converts a time to a zero-based month.
func MonthIndex(t time.Time) int {
	return int(t.Month()) - 1
}

func normalizeMonth(month int) int {
	return ((month % 12) + 12) % 12
}
