package domain

import (
	"context"
	"math"
	"slices"
	"strings"
)

// Weather is a current-conditions reading from a weather provider.
type Weather struct {
	Temperature   float64 `json:"temperature"` // °F
	Humidity      float64 `json:"humidity"`    // percent
	Conditions    string  `json:"conditions"`
	UVIndex       float64 `json:"uvIndex"`
	WindSpeed     float64 `json:"windSpeed"`     // mph
	Precipitation float64 `json:"precipitation"` // inches in the last hour
}

// WeatherProvider fetches current conditions at a coordinate.
type WeatherProvider interface {
	CurrentWeather(ctx context.Context, lat, lon float64) (Weather, error)
}

// FallbackWeather is the reading used when the provider is unavailable.
func FallbackWeather() Weather {
	return Weather{
		Temperature: 72,
		Humidity:    60,
		Conditions:  "Clear",
		UVIndex:     5,
		WindSpeed:   10,
	}
}

// SoilMoisture estimates soil moisture percent from humidity and recent
// precipitation.
func SoilMoisture(humidity, precipitation float64) float64 {
	v := 30 + (humidity-50)*0.4 + precipitation*10
	return math.Max(0, math.Min(100, v))
}

// PlantingRecommendations turns a reading, zone and season into short tips.
func PlantingRecommendations(w Weather, zone string, season Season) []string {
	var recs []string

	switch t := w.Temperature; {
	case t >= 60 && t <= 75:
		recs = append(recs, "Perfect temperature for most vegetables and herbs")
	case t > 75 && t <= 85:
		recs = append(recs, "Great for heat-loving plants like tomatoes, peppers, and basil")
	case t > 85:
		recs = append(recs, "Very hot - focus on heat-tolerant plants and provide shade")
	case t >= 45:
		recs = append(recs, "Cool weather ideal for lettuce, spinach, and peas")
	default:
		recs = append(recs, "Too cold for most planting - consider indoor growing")
	}

	switch {
	case w.Humidity > 80:
		recs = append(recs, "High humidity - ensure good air circulation to prevent disease")
	case w.Humidity < 30:
		recs = append(recs, "Low humidity - increase watering and consider mulching")
	default:
		recs = append(recs, "Good humidity levels for most plants")
	}

	switch c := strings.ToLower(w.Conditions); {
	case strings.Contains(c, "rain"):
		recs = append(recs, "Rainy conditions - postpone planting and ensure drainage")
	case strings.Contains(c, "clear"), strings.Contains(c, "sunny"):
		recs = append(recs, "Clear skies - excellent for planting and outdoor work")
	case strings.Contains(c, "cloud"):
		recs = append(recs, "Overcast conditions - good for transplanting seedlings")
	}

	switch season {
	case Spring:
		recs = append(recs, "Spring planting season - start cool-season crops")
	case Summer:
		recs = append(recs, "Summer growing season - focus on warm-season plants")
	case Fall:
		recs = append(recs, "Fall planting - good for root vegetables and cover crops")
	default:
		recs = append(recs, "Winter season - consider cold frames or indoor growing")
	}

	n, _ := ZoneNumber(zone)
	switch {
	case n >= 9:
		recs = append(recs, "Warm zone - try tropical plants and year-round growing")
	case n == 3 || n == 4:
		recs = append(recs, "Cold zone - focus on hardy perennials and short-season crops")
	default:
		recs = append(recs, "Moderate zone - wide variety of plants suitable")
	}
	return recs
}

// Range is an inclusive numeric range with the current reading.
type Range struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Current  float64 `json:"current"`
	Suitable bool    `json:"suitable"`
}

// PlantingConditions compares a reading to a crop's optimal conditions.
type PlantingConditions struct {
	PlantType      string   `json:"plantType"`
	Ideal          bool     `json:"ideal"`
	Temperature    Range    `json:"temperature"`
	Humidity       Range    `json:"humidity"`
	Season         Season   `json:"season"`
	SuitableSeason []Season `json:"suitableSeasons"`
}

type optimalRange struct {
	tempMin, tempMax         float64
	humidityMin, humidityMax float64
	seasons                  []Season
}

const defaultCrop = "default"

var optimalConditions = map[string]optimalRange{
	"tomatoes":  {65, 85, 40, 70, []Season{Spring, Summer}},
	"lettuce":   {45, 70, 50, 80, []Season{Spring, Fall}},
	"peppers":   {70, 90, 30, 60, []Season{Spring, Summer}},
	"herbs":     {60, 80, 40, 65, []Season{Spring, Summer, Fall}},
	"carrots":   {50, 75, 45, 70, []Season{Spring, Fall}},
	"beans":     {60, 80, 50, 70, []Season{Spring, Summer}},
	"spinach":   {35, 70, 50, 80, []Season{Spring, Fall, Winter}},
	defaultCrop: {60, 75, 40, 70, []Season{Spring, Summer}},
}

// AnalyzePlantingConditions checks w against the optimal ranges for
// plantType. Unknown crops use general garden ranges.
func AnalyzePlantingConditions(w Weather, season Season, plantType string) PlantingConditions {
	key := strings.ToLower(strings.TrimSpace(plantType))
	opt, ok := optimalConditions[key]
	if !ok {
		key = defaultCrop
		opt = optimalConditions[defaultCrop]
	}

	temp := Range{Min: opt.tempMin, Max: opt.tempMax, Current: w.Temperature}
	temp.Suitable = temp.Current >= temp.Min && temp.Current <= temp.Max
	hum := Range{Min: opt.humidityMin, Max: opt.humidityMax, Current: w.Humidity}
	hum.Suitable = hum.Current >= hum.Min && hum.Current <= hum.Max
	inSeason := slices.Contains(opt.seasons, season)

	return PlantingConditions{
		PlantType:      key,
		Ideal:          temp.Suitable && hum.Suitable && inSeason,
		Temperature:    temp,
		Humidity:       hum,
		Season:         season,
		SuitableSeason: slices.Clone(opt.seasons),
	}
}

var plantingCalendars = map[string]map[Season][]string{
	"3a": {
		Spring: {"peas", "lettuce", "spinach", "radishes"},
		Summer: {"beans", "corn", "tomatoes", "peppers"},
		Fall:   {"carrots", "beets", "kale", "cabbage"},
		Winter: {"indoor herbs", "microgreens"},
	},
	"6a": {
		Spring: {"lettuce", "peas", "carrots", "onions", "herbs"},
		Summer: {"tomatoes", "peppers", "beans", "corn", "squash"},
		Fall:   {"broccoli", "cauliflower", "spinach", "garlic"},
		Winter: {"cover crops", "indoor growing"},
	},
	"8b": {
		Spring: {"all vegetables", "herbs", "flowers"},
		Summer: {"heat-loving plants", "tropical herbs"},
		Fall:   {"cool-season crops", "root vegetables"},
		Winter: {"leafy greens", "cool-season herbs"},
	},
	"10a": {
		Spring: {"tropical plants", "all vegetables"},
		Summer: {"heat-tolerant varieties"},
		Fall:   {"year-round growing"},
		Winter: {"continued growing season"},
	},
}

// PlantingCalendar returns what to plant each season in zone, using the
// FallbackFrostZone calendar for zones without one.
func PlantingCalendar(zone string) map[Season][]string {
	cal, ok := plantingCalendars[zone]
	if !ok {
		cal = plantingCalendars[FallbackFrostZone]
	}
	out := make(map[Season][]string, len(cal))
	for s, crops := range cal {
		out[s] = slices.Clone(crops)
	}
	return out
}
