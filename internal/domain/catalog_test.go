package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	plants := DefaultCatalog()
	require.Len(t, plants, 12)

	basil, ok := PlantByID(plants, "4")
	require.True(t, ok)
	assert.Equal(t, "Sweet Basil", basil.Name)
	assert.Equal(t, "Herbs", basil.Category)
	assert.Equal(t, Easy, basil.Difficulty)
	assert.Contains(t, basil.Tags, "Aromatic")

	for _, p := range plants {
		assert.NotEmpty(t, p.HardinessZones, p.Name)
		assert.Contains(t, []string{SunFull, SunPartial, SunPartialShade}, p.SunRequirement, p.Name)
	}

	_, ok = PlantByID(plants, "99")
	assert.False(t, ok)
}

func TestParseCatalog_Errors(t *testing.T) {
	tests := map[string]string{
		"not json":        `{`,
		"missing id":      `[{"name":"Sage"}]`,
		"duplicate id":    `[{"id":"1","name":"Sage"},{"id":"1","name":"Dill"}]`,
		"unknown zone":    `[{"id":"1","name":"Sage","hardinessZones":["5a","15c"]}]`,
		"missing name":    `[{"id":"1"}]`,
		"object not list": `{"id":"1","name":"Sage"}`,
	}
	for name, data := range tests {
		_, err := ParseCatalog([]byte(data))
		assert.Error(t, err, name)
	}

	plants, err := ParseCatalog([]byte(`[{"id":"1","name":"Sage","hardinessZones":["5a"]}]`))
	require.NoError(t, err)
	assert.Len(t, plants, 1)
}
