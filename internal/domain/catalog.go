package domain

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
)

//go:embed data/plants.json
var catalogJSON []byte

var (
	catalogOnce sync.Once
	catalog     []PlantCandidate
	catalogErr  error
)

// DefaultCatalog returns the built-in plant catalog. The slice is shared;
// callers must not modify it.
func DefaultCatalog() []PlantCandidate {
	catalogOnce.Do(func() {
		catalog, catalogErr = ParseCatalog(catalogJSON)
	})
	if catalogErr != nil {
		panic(fmt.Sprintf("embedded plant catalog: %v", catalogErr))
	}
	return catalog
}

// ParseCatalog decodes a JSON array of plants and rejects entries without an
// ID or name, duplicate IDs and unknown hardiness zones.
func ParseCatalog(data []byte) ([]PlantCandidate, error) {
	var plants []PlantCandidate
	if err := json.Unmarshal(data, &plants); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	seen := make(map[string]bool, len(plants))
	for i, p := range plants {
		if p.ID == "" || p.Name == "" {
			return nil, fmt.Errorf("catalog entry %d: missing id or name", i)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("catalog entry %d: duplicate id %q", i, p.ID)
		}
		seen[p.ID] = true
		if bad := slices.IndexFunc(p.HardinessZones, func(z string) bool { return !ValidZone(z) }); bad >= 0 {
			return nil, fmt.Errorf("catalog entry %q: unknown zone %q", p.ID, p.HardinessZones[bad])
		}
	}
	return plants, nil
}

// PlantByID finds a plant in candidates.
func PlantByID(candidates []PlantCandidate, id string) (PlantCandidate, bool) {
	i := slices.IndexFunc(candidates, func(p PlantCandidate) bool { return p.ID == id })
	if i < 0 {
		return PlantCandidate{}, false
	}
	return candidates[i], true
}
