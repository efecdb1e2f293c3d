package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheKey_Normalization(t *testing.T) {
	base := RecommendationRequest{
		Location: "Austin, TX",
		Preferences: UserPreferences{
			PlantTypes:       []string{"Herbs", "Flowers"},
			SunExposure:      FullSun,
			ExperienceLevel:  Beginner,
			PrimaryGoal:      GoalBeauty,
			SpecialInterests: []string{"fragrant", "pollinators"},
		},
	}

	same := base
	same.Location = "  austin,   tx "
	same.RequestID = "other-id"
	same.SessionID = "other-session"
	same.Preferences.PlantTypes = []string{"flowers", "herbs"}
	same.Preferences.SpecialInterests = []string{"pollinators", "Fragrant"}
	assert.Equal(t, base.CacheKey(), same.CacheKey())
	assert.Len(t, base.CacheKey(), 64)

	diff := base
	diff.Preferences.SunExposure = FullShade
	assert.NotEqual(t, base.CacheKey(), diff.CacheKey())

	limited := base
	limited.Limit = 3
	assert.NotEqual(t, base.CacheKey(), limited.CacheKey())
}

func TestCacheKey_DoesNotMutateRequest(t *testing.T) {
	req := RecommendationRequest{
		Location:    "Denver, CO",
		Preferences: UserPreferences{PlantTypes: []string{"Vegetables", "Herbs"}},
	}
	_ = req.CacheKey()
	assert.Equal(t, []string{"Vegetables", "Herbs"}, req.Preferences.PlantTypes)
}
