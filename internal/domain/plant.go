package domain

import (
	"slices"
	"time"
)

// SunExposure is the light a user's garden receives.
type SunExposure string

const (
	FullSun      SunExposure = "full-sun"
	PartialSun   SunExposure = "partial-sun"
	PartialShade SunExposure = "partial-shade"
	FullShade    SunExposure = "full-shade"
)

// ExperienceLevel is the user's self-reported gardening experience.
type ExperienceLevel string

const (
	Beginner     ExperienceLevel = "beginner"
	Intermediate ExperienceLevel = "intermediate"
	Advanced     ExperienceLevel = "advanced"
)

// Goal is what the user primarily wants from the garden.
type Goal string

const (
	GoalFood       Goal = "food"
	GoalBeauty     Goal = "beauty"
	GoalWildlife   Goal = "wildlife"
	GoalRelaxation Goal = "relaxation"
)

// Difficulty is how demanding a plant is to grow.
type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// Plant sun requirements as they appear in the catalog.
const (
	SunFull         = "Full Sun"
	SunPartial      = "Partial Sun"
	SunPartialShade = "Partial Shade"
)

// UserPreferences are the onboarding answers the scorer reads.
type UserPreferences struct {
	PlantTypes       []string        `json:"plantTypes"`
	SunExposure      SunExposure     `json:"sunExposure"`
	ExperienceLevel  ExperienceLevel `json:"experienceLevel"`
	PrimaryGoal      Goal            `json:"primaryGoal"`
	SpecialInterests []string        `json:"specialInterests"`
}

// PlantCandidate is a catalog entry. Candidates are shared reference data and
// must not be modified after loading.
type PlantCandidate struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	ScientificName   string     `json:"scientificName"`
	Category         string     `json:"category"`
	Difficulty       Difficulty `json:"difficulty"`
	SunRequirement   string     `json:"sunRequirement"`
	WaterRequirement string     `json:"waterRequirement,omitempty"`
	PlantingTime     string     `json:"plantingTime,omitempty"`
	Description      string     `json:"description,omitempty"`
	Benefits         []string   `json:"benefits"`
	Tags             []string   `json:"tags"`
	HardinessZones   []string   `json:"hardinessZones,omitempty"`
}

// MatchResult is a plant's score for one profile.
type MatchResult struct {
	PlantID string `json:"plantId"`
	Score   int    `json:"score"`
}

// Recommendation pairs a plant with its match score.
type Recommendation struct {
	Plant PlantCandidate `json:"plant"`
	Score int            `json:"matchScore"`
}

// GrowsInZone reports whether the plant lists zone. Plants without zone data
// are assumed to grow anywhere.
func (p PlantCandidate) GrowsInZone(zone string) bool {
	if len(p.HardinessZones) == 0 || zone == "" {
		return true
	}
	return slices.Contains(p.HardinessZones, zone)
}

// FilterByZone keeps candidates that grow in zone.
func FilterByZone(candidates []PlantCandidate, zone string) []PlantCandidate {
	out := make([]PlantCandidate, 0, len(candidates))
	for _, p := range candidates {
		if p.GrowsInZone(zone) {
			out = append(out, p)
		}
	}
	return out
}

// RecommendationSet is the answer to one recommendation request.
type RecommendationSet struct {
	ID              string           `json:"id"`
	RequestID       string           `json:"requestId,omitempty"`
	Location        Location         `json:"location"`
	Recommendations []Recommendation `json:"recommendations"`
	Matches         []MatchResult    `json:"matches,omitempty"`
	Retryable       bool             `json:"retryable,omitempty"` // location fell back; the user may retry
	CreatedAt       time.Time        `json:"createdAt"`
}
