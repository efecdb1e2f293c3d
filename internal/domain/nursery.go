package domain

import (
	"cmp"
	"context"
	"math"
	"net/url"
	"slices"
	"strings"
)

// MaxNurseries caps nursery listings.
const MaxNurseries = 20

// Nursery is a garden center near the user.
type Nursery struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Address     string   `json:"address,omitempty"`
	Lat         float64  `json:"lat"`
	Lon         float64  `json:"lng"`
	Rating      float64  `json:"rating"`
	Phone       string   `json:"phone,omitempty"`
	Website     string   `json:"website,omitempty"`
	Distance    float64  `json:"distance"` // miles from the query origin
	Hours       []string `json:"hours,omitempty"`
	Specialties []string `json:"specialties"`
	PriceLevel  int      `json:"priceLevel,omitempty"`
	IsOpenNow   bool     `json:"isOpenNow"`
}

// NurseryProvider lists nurseries within radiusMeters of a coordinate.
type NurseryProvider interface {
	NearbyNurseries(ctx context.Context, lat, lon float64, radiusMeters int) ([]Nursery, error)
}

// MockNurseries are the listings served when no provider is configured.
func MockNurseries() []Nursery {
	return []Nursery{
		{
			ID:          "1",
			Name:        "Green Thumb Garden Center",
			Address:     "1234 Garden Way, Austin, TX 78701",
			Lat:         30.2672,
			Lon:         -97.7431,
			Rating:      4.8,
			Phone:       "(512) 555-0123",
			Website:     "www.greenthumbgarden.com",
			Hours:       []string{"Mon-Fri: 8AM-7PM", "Sat-Sun: 9AM-6PM"},
			Specialties: []string{"Native Plants", "Organic Vegetables", "Fruit Trees"},
			PriceLevel:  2,
			IsOpenNow:   true,
		},
		{
			ID:          "2",
			Name:        "Austin Native Plant Society",
			Address:     "5678 Native Trail, Austin, TX 78704",
			Lat:         30.25,
			Lon:         -97.75,
			Rating:      4.6,
			Phone:       "(512) 555-0456",
			Website:     "www.austinnativeplants.org",
			Hours:       []string{"Tue-Sat: 9AM-5PM", "Closed Mon & Sun"},
			Specialties: []string{"Native Texas Plants", "Drought Resistant", "Wildlife Gardens"},
			PriceLevel:  1,
		},
		{
			ID:          "3",
			Name:        "Urban Harvest Nursery",
			Address:     "9876 Organic Ave, Austin, TX 78705",
			Lat:         30.3072,
			Lon:         -97.7231,
			Rating:      4.9,
			Phone:       "(512) 555-0789",
			Website:     "www.urbanharvest.com",
			Hours:       []string{"Daily: 7AM-8PM"},
			Specialties: []string{"Organic Herbs", "Vegetable Starts", "Permaculture"},
			PriceLevel:  3,
			IsOpenNow:   true,
		},
	}
}

var specialtyRules = []struct {
	keywords  []string
	specialty string
}{
	{[]string{"native", "indigenous"}, "Native Plants"},
	{[]string{"organic", "natural"}, "Organic"},
	{[]string{"rose", "flower"}, "Flowers & Roses"},
	{[]string{"tree", "fruit"}, "Trees & Fruit"},
	{[]string{"vegetable", "herb"}, "Vegetables & Herbs"},
	{[]string{"succulent", "cactus"}, "Succulents & Cacti"},
	{[]string{"greenhouse", "tropical"}, "Tropical Plants"},
}

// InferSpecialties guesses what a nursery sells from its name.
func InferSpecialties(name string) []string {
	n := strings.ToLower(name)
	var out []string
	for _, r := range specialtyRules {
		for _, k := range r.keywords {
			if strings.Contains(n, k) {
				out = append(out, r.specialty)
				break
			}
		}
	}
	if len(out) == 0 {
		out = []string{"General Plants", "Garden Supplies"}
	}
	return out
}

// RankNurseries sets each nursery's distance from origin, rounded to a
// tenth of a mile, and returns the nearest limit. limit <= 0 means MaxNurseries.
func RankNurseries(originLat, originLon float64, nurseries []Nursery, limit int) []Nursery {
	if limit <= 0 || limit > MaxNurseries {
		limit = MaxNurseries
	}
	out := slices.Clone(nurseries)
	for i := range out {
		d := MilesBetween(originLat, originLon, out[i].Lat, out[i].Lon)
		out[i].Distance = math.Round(d*10) / 10
	}
	slices.SortStableFunc(out, func(a, b Nursery) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

var plantTypeKeywords = map[string][]string{
	"tomatoes":    {"vegetable", "herbs", "organic"},
	"roses":       {"flowers", "roses", "perennial"},
	"succulents":  {"succulent", "cacti", "drought"},
	"herbs":       {"herbs", "vegetable", "organic"},
	"trees":       {"trees", "fruit", "native"},
	"vegetables":  {"vegetable", "herbs", "organic"},
	"flowers":     {"flowers", "perennial", "annual"},
	"native":      {"native", "indigenous", "wildlife"},
	"fruit":       {"fruit", "trees", "organic"},
	"houseplants": {"indoor", "tropical", "houseplant"},
}

// FilterNurseriesByPlantType keeps nurseries whose specialties or name match
// plantType. When none match, the full list is returned.
func FilterNurseriesByPlantType(nurseries []Nursery, plantType string) []Nursery {
	pt := strings.ToLower(strings.TrimSpace(plantType))
	if pt == "" {
		return nurseries
	}
	keywords, ok := plantTypeKeywords[pt]
	if !ok {
		keywords = []string{pt}
	}

	var out []Nursery
	for _, n := range nurseries {
		if strings.Contains(strings.ToLower(n.Name), pt) || specialtyMatches(n.Specialties, keywords) {
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		return nurseries
	}
	return out
}

func specialtyMatches(specialties, keywords []string) bool {
	for _, s := range specialties {
		s = strings.ToLower(s)
		for _, k := range keywords {
			if strings.Contains(s, k) {
				return true
			}
		}
	}
	return false
}

// ShoppingPlan is an estimated shopping trip to one nursery.
type ShoppingPlan struct {
	Nursery        Nursery  `json:"nursery"`
	Plants         []string `json:"plants"`
	EstimatedTotal float64  `json:"estimatedTotal"`
	Notes          []string `json:"notes"`
}

const defaultPlantPrice = 10

var plantPrices = map[string]float64{
	"tomatoes":   8,
	"peppers":    8,
	"herbs":      6,
	"lettuce":    4,
	"roses":      25,
	"trees":      45,
	"succulents": 12,
	"flowers":    8,
}

// ShoppingList estimates the cost of buying plants at nursery.
func ShoppingList(plants []string, nursery Nursery) ShoppingPlan {
	total := 0.0
	for _, p := range plants {
		price, ok := plantPrices[strings.ToLower(p)]
		if !ok {
			price = defaultPlantPrice
		}
		total += price
	}

	notes := []string{
		"Call ahead to check availability",
		"Ask about planting tips and care instructions",
		"Consider soil amendments and fertilizers",
	}
	if slices.Contains(nursery.Specialties, "Organic") {
		notes = append(notes, "Ask about organic soil and pest control options")
	}

	return ShoppingPlan{
		Nursery:        nursery,
		Plants:         plants,
		EstimatedTotal: total,
		Notes:          notes,
	}
}

// DirectionsURL links to driving directions for a destination.
func DirectionsURL(destination string) string {
	return "https://www.google.com/maps/dir/?api=1&destination=" + url.QueryEscape(destination)
}
