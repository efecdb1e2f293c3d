package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"slices"
	"strings"
)

// RecommendationRequest asks for plants suited to a location and profile.
// It is the body of POST /api/v1/recommendations and the pipeline's input
// message.
type RecommendationRequest struct {
	RequestID   string          `json:"requestId,omitempty"`
	SessionID   string          `json:"sessionId,omitempty"`
	Location    string          `json:"location"`
	Preferences UserPreferences `json:"preferences"`
	Limit       int             `json:"limit,omitempty"`
}

// CacheKey hashes the parts of the request that affect the answer. Location
// case and whitespace and the order of list preferences do not change the key.
func (r RecommendationRequest) CacheKey() string {
	norm := struct {
		Location string          `json:"l"`
		Prefs    UserPreferences `json:"p"`
		Limit    int             `json:"n"`
	}{
		Location: strings.Join(strings.Fields(strings.ToLower(r.Location)), " "),
		Prefs:    r.Preferences,
		Limit:    r.Limit,
	}
	norm.Prefs.PlantTypes = sortedLower(r.Preferences.PlantTypes)
	norm.Prefs.SpecialInterests = sortedLower(r.Preferences.SpecialInterests)

	// Marshal of plain strings and ints cannot fail.
	data, _ := json.Marshal(norm)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func sortedLower(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(strings.TrimSpace(s))
	}
	slices.Sort(out)
	return out
}
