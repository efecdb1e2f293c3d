package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidSuggestionQuery(t *testing.T) {
	assert.False(t, ValidSuggestionQuery(""))
	assert.False(t, ValidSuggestionQuery(" ab "))
	assert.True(t, ValidSuggestionQuery("abc"))
}

func TestMockSuggestions(t *testing.T) {
	s := MockSuggestions(" 123 Main ")
	assert.Len(t, s, 5)
	assert.Equal(t, "123 Main, Austin, TX, USA", s[0].Description)
	assert.Equal(t, "123 Main, Fort Worth", s[4].MainText)
	assert.Equal(t, "mock_houston", s[1].PlaceID)
}
