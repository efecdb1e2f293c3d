package domain

import (
	"cmp"
	"slices"
	"strings"
)

// Score weights. They sum to MaxScore.
const (
	WeightPlantType  = 40
	WeightSun        = 25
	WeightExperience = 20
	WeightGoal       = 10
	WeightInterest   = 5

	MinScore = 10
	MaxScore = 100

	// DefaultTopN is how many recommendations are returned by default.
	DefaultTopN = 8
)

// sunCompatibility lists the plant requirements each exposure accepts.
// The relation is one-way: a full-sun garden does not accept partial-sun plants.
var sunCompatibility = map[SunExposure][]string{
	FullSun:      {SunFull},
	PartialSun:   {SunPartial, SunFull},
	PartialShade: {SunPartialShade, SunPartial},
	FullShade:    {SunPartialShade},
}

// interestSynonyms maps an interest keyword to the one catalog word that
// names the same trait. Anything else must appear literally.
var interestSynonyms = map[string]string{
	"fragrant": "aromatic",
}

// ScorePlant computes how well plant fits prefs, between MinScore and MaxScore.
func ScorePlant(plant PlantCandidate, prefs UserPreferences) int {
	score := 0
	if matchesPlantType(plant.Category, prefs.PlantTypes) {
		score += WeightPlantType
	}
	if slices.Contains(sunCompatibility[prefs.SunExposure], plant.SunRequirement) {
		score += WeightSun
	}
	if matchesExperience(plant.Difficulty, prefs.ExperienceLevel) {
		score += WeightExperience
	}
	if matchesGoal(plant, prefs.PrimaryGoal) {
		score += WeightGoal
	}
	if matchesInterests(plant, prefs.SpecialInterests) {
		score += WeightInterest
	}
	return min(max(score, MinScore), MaxScore)
}

// Recommend scores every candidate and returns the best topN, highest first.
// Equal scores keep catalog order. topN <= 0 means DefaultTopN.
func Recommend(candidates []PlantCandidate, prefs UserPreferences, topN int) []Recommendation {
	if topN <= 0 {
		topN = DefaultTopN
	}
	recs := make([]Recommendation, 0, len(candidates))
	for _, p := range candidates {
		recs = append(recs, Recommendation{Plant: p, Score: ScorePlant(p, prefs)})
	}
	slices.SortStableFunc(recs, func(a, b Recommendation) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(recs) > topN {
		recs = recs[:topN]
	}
	return recs
}

// MatchResults flattens recommendations to plant IDs and scores.
func MatchResults(recs []Recommendation) []MatchResult {
	out := make([]MatchResult, len(recs))
	for i, r := range recs {
		out[i] = MatchResult{PlantID: r.Plant.ID, Score: r.Score}
	}
	return out
}

func matchesPlantType(category string, types []string) bool {
	cat := strings.ToLower(strings.TrimSpace(category))
	if cat == "" {
		return false
	}
	for _, t := range types {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if strings.Contains(t, cat) || strings.Contains(cat, t) {
			return true
		}
	}
	return false
}

func matchesExperience(d Difficulty, level ExperienceLevel) bool {
	switch level {
	case Beginner:
		return d == Easy
	case Intermediate:
		return d == Easy || d == Medium
	case Advanced:
		return true
	}
	return false
}

func matchesGoal(p PlantCandidate, goal Goal) bool {
	switch goal {
	case GoalFood:
		return p.Category == "Vegetables" || p.Category == "Herbs"
	case GoalBeauty:
		return p.Category == "Flowers"
	case GoalWildlife:
		return anyContains(p.Tags, "Wildlife", "Butterfly", "Pollinator")
	case GoalRelaxation:
		return anyContains(p.Tags, "Fragrant", "Aromatic")
	}
	return false
}

func matchesInterests(p PlantCandidate, interests []string) bool {
	for _, interest := range interests {
		fields := strings.Fields(strings.ToLower(interest))
		if len(fields) == 0 {
			continue
		}
		keywords := []string{fields[0]}
		if syn, ok := interestSynonyms[fields[0]]; ok {
			keywords = append(keywords, syn)
		}
		for _, text := range slices.Concat(p.Tags, p.Benefits) {
			text = strings.ToLower(text)
			for _, k := range keywords {
				if strings.Contains(text, k) {
					return true
				}
			}
		}
	}
	return false
}

func anyContains(values []string, subs ...string) bool {
	for _, v := range values {
		for _, s := range subs {
			if strings.Contains(v, s) {
				return true
			}
		}
	}
	return false
}
