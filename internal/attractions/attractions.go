// Package attractions ships a built-in catalog of well-known sights per
// destination. The planner uses it to enrich generated itinerary items with
// real names, visit lengths, admission costs and coordinates instead of
// inventing placeholders.
package attractions

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zaccharietardy-dotcom/voyage-planner/internal/domain"
)

// catalogYAML contains the raw bytes of catalog.yaml, embedded at compile
// time so the binary needs no data files next to it.
//
//go:embed catalog.yaml
var catalogYAML []byte

// File-shape types, kept separate from domain.Attraction so the YAML layout
// can evolve without touching the domain.
type catalogFile struct {
	Destinations []destinationEntry `yaml:"destinations"`
}

type destinationEntry struct {
	Name        string            `yaml:"name"`
	Attractions []attractionEntry `yaml:"attractions"`
}

type attractionEntry struct {
	Name            string   `yaml:"name"`
	Category        string   `yaml:"category"`
	Description     string   `yaml:"description"`
	DurationMinutes int      `yaml:"duration"`
	EstimatedCost   float64  `yaml:"cost"`
	Latitude        *float64 `yaml:"lat"`
	Longitude       *float64 `yaml:"lng"`
}

// Catalog answers pool lookups by destination. Lookups are case-insensitive
// and tolerate qualified destinations like "Paris, France".
type Catalog struct {
	pools map[string][]domain.Attraction
}

// Load parses the embedded catalog. An unparseable embedded catalog is a
// packaging bug, so callers normally treat an error here as fatal.
func Load() (*Catalog, error) {
	return Parse(catalogYAML)
}

// Parse builds a Catalog from raw catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("attractions.Parse: %w", err)
	}

	pools := make(map[string][]domain.Attraction, len(f.Destinations))
	for _, d := range f.Destinations {
		key := normalizeDestination(d.Name)
		if key == "" {
			return nil, fmt.Errorf("attractions.Parse: destination with empty name")
		}
		pool := make([]domain.Attraction, 0, len(d.Attractions))
		for _, a := range d.Attractions {
			if strings.TrimSpace(a.Name) == "" {
				return nil, fmt.Errorf("attractions.Parse: attraction with empty name under %q", d.Name)
			}
			pool = append(pool, domain.Attraction{
				Name:            a.Name,
				Category:        a.Category,
				Description:     a.Description,
				DurationMinutes: a.DurationMinutes,
				EstimatedCost:   a.EstimatedCost,
				Latitude:        a.Latitude,
				Longitude:       a.Longitude,
			})
		}
		pools[key] = pool
	}
	return &Catalog{pools: pools}, nil
}

// PoolFor returns the attraction pool for a destination, or nil when the
// catalog does not know it. The returned slice is shared; callers must not
// mutate it.
func (c *Catalog) PoolFor(destination string) []domain.Attraction {
	dest := normalizeDestination(destination)
	if dest == "" {
		return nil
	}
	if pool, ok := c.pools[dest]; ok {
		return pool
	}
	// "Paris, France" or "central Paris" should still hit the Paris pool.
	for key, pool := range c.pools {
		if strings.Contains(dest, key) {
			return pool
		}
	}
	return nil
}

func normalizeDestination(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
