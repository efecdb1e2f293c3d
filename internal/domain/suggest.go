package domain

import (
	"context"
	"strings"
)

// MinSuggestionQuery is the shortest input worth autocompleting.
const MinSuggestionQuery = 3

// Suggestion is one place autocomplete prediction.
type Suggestion struct {
	PlaceID       string `json:"placeId"`
	Description   string `json:"description"`
	MainText      string `json:"mainText"`
	SecondaryText string `json:"secondaryText"`
}

// SuggestionProvider completes partial addresses.
type SuggestionProvider interface {
	Suggest(ctx context.Context, input string) ([]Suggestion, error)
}

// ValidSuggestionQuery reports whether input is long enough to autocomplete.
func ValidSuggestionQuery(input string) bool {
	return len(strings.TrimSpace(input)) >= MinSuggestionQuery
}

// MockSuggestions pairs input with a fixed list of Texas cities.
func MockSuggestions(input string) []Suggestion {
	cities := []struct{ id, name string }{
		{"mock_austin", "Austin"},
		{"mock_houston", "Houston"},
		{"mock_dallas", "Dallas"},
		{"mock_san_antonio", "San Antonio"},
		{"mock_fort_worth", "Fort Worth"},
	}
	in := strings.TrimSpace(input)
	out := make([]Suggestion, len(cities))
	for i, c := range cities {
		out[i] = Suggestion{
			PlaceID:       c.id,
			Description:   in + ", " + c.name + ", TX, USA",
			MainText:      in + ", " + c.name,
			SecondaryText: "TX, USA",
		}
	}
	return out
}
