// Command catalogcheck validates a plant catalog file before it replaces the
// embedded one. It checks structure, zone data, scoring bounds across every
// preference profile, and that each profile gets a full recommendation list.
//
// Usage:
//
//	go run ./cmd/catalogcheck -catalog internal/domain/data/plants.json
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/powerplant/plant-advisor/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	path := flag.String("catalog", "", "catalog JSON file (default: embedded catalog)")
	flag.Parse()

	os.Exit(run(*path, os.Stdout))
}

func run(path string, out io.Writer) int {
	fmt.Fprintln(out, "=== Plant Catalog Validation ===")

	catalog := domain.DefaultCatalog()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(out, "FATAL: read catalog: %v\n", err)
			return 1
		}
		catalog, err = domain.ParseCatalog(data)
		if err != nil {
			fmt.Fprintf(out, "FATAL: parse catalog: %v\n", err)
			return 1
		}
	}

	profiles := allProfiles()
	phases := []*phase{
		validateFields(catalog),
		validateZones(catalog),
		validateScoreBounds(catalog, profiles),
		validateCoverage(catalog, profiles),
	}

	fmt.Fprintln(out)
	allPassed := true
	for _, p := range phases {
		status := "PASS"
		if !p.passed() {
			status = fmt.Sprintf("FAIL (%d errors)", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-32s %s\n", p.name, status)
	}
	fmt.Fprintf(out, "\nPlants: %d, profiles: %d\n", len(catalog), len(profiles))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			if i == 20 {
				fmt.Fprintf(out, "  ... and %d more\n", len(p.errors)-i)
				break
			}
			fmt.Fprintf(out, "  %s\n", e)
		}
	}

	if !allPassed {
		return 1
	}
	return 0
}

// allProfiles enumerates every sun, experience and goal combination with a
// fixed plant type and interest.
func allProfiles() []domain.UserPreferences {
	var out []domain.UserPreferences
	for _, sun := range []domain.SunExposure{domain.FullSun, domain.PartialSun, domain.PartialShade, domain.FullShade} {
		for _, lvl := range []domain.ExperienceLevel{domain.Beginner, domain.Intermediate, domain.Advanced} {
			for _, goal := range []domain.Goal{domain.GoalFood, domain.GoalBeauty, domain.GoalWildlife, domain.GoalRelaxation} {
				out = append(out, domain.UserPreferences{
					PlantTypes:       []string{"Herbs"},
					SunExposure:      sun,
					ExperienceLevel:  lvl,
					PrimaryGoal:      goal,
					SpecialInterests: []string{"pollinators"},
				})
			}
		}
	}
	return out
}

func validateFields(catalog []domain.PlantCandidate) *phase {
	p := &phase{name: "Required fields"}
	known := []domain.Difficulty{domain.Easy, domain.Medium, domain.Hard}
	sun := []string{domain.SunFull, domain.SunPartial, domain.SunPartialShade}
	for _, c := range catalog {
		if c.Category == "" {
			p.errorf("plant %s: missing category", c.ID)
		}
		if !slices.Contains(known, c.Difficulty) {
			p.errorf("plant %s: unknown difficulty %q", c.ID, c.Difficulty)
		}
		if !slices.Contains(sun, c.SunRequirement) {
			p.errorf("plant %s: unknown sun requirement %q", c.ID, c.SunRequirement)
		}
		if len(c.Tags) == 0 {
			p.errorf("plant %s: no tags", c.ID)
		}
	}
	return p
}

func validateZones(catalog []domain.PlantCandidate) *phase {
	p := &phase{name: "Hardiness zones"}
	for _, c := range catalog {
		if len(c.HardinessZones) == 0 {
			p.errorf("plant %s: no hardiness zones", c.ID)
		}
		for _, z := range c.HardinessZones {
			if !domain.ValidZone(z) {
				p.errorf("plant %s: invalid zone %q", c.ID, z)
			}
		}
	}
	return p
}

func validateScoreBounds(catalog []domain.PlantCandidate, profiles []domain.UserPreferences) *phase {
	p := &phase{name: "Score bounds"}
	for _, prefs := range profiles {
		for _, c := range catalog {
			s := domain.ScorePlant(c, prefs)
			if s < domain.MinScore || s > domain.MaxScore {
				p.errorf("plant %s: score %d out of range for %s/%s/%s", c.ID, s, prefs.SunExposure, prefs.ExperienceLevel, prefs.PrimaryGoal)
			}
		}
	}
	return p
}

func validateCoverage(catalog []domain.PlantCandidate, profiles []domain.UserPreferences) *phase {
	p := &phase{name: "Recommendation coverage"}
	want := min(domain.DefaultTopN, len(catalog))
	for _, prefs := range profiles {
		if got := len(domain.Recommend(catalog, prefs, 0)); got != want {
			p.errorf("%s/%s/%s: %d recommendations, want %d", prefs.SunExposure, prefs.ExperienceLevel, prefs.PrimaryGoal, got, want)
		}
	}
	return p
}
