// Initial population: places statics first, then agents, on terrain each
// species favors.
package engine

import (
	"log/slog"
	"math/rand"

	"github.com/talgya/mini-colony/internal/agents"
	"github.com/talgya/mini-colony/internal/catalog"
	"github.com/talgya/mini-colony/internal/world"
)

// PopulationConfig is how many of each species to seed.
type PopulationConfig struct {
	Peons   int `yaml:"peons"`
	Sheep   int `yaml:"sheep"`
	Bears   int `yaml:"bears"`
	Bushes  int `yaml:"bushes"`
	Trees   int `yaml:"trees"`
	Spacing int `yaml:"spacing"` // Minimum Chebyshev distance between spawns of one species
}

// DefaultPopulationConfig returns a small balanced starting population.
func DefaultPopulationConfig() PopulationConfig {
	return PopulationConfig{
		Peons:   8,
		Sheep:   24,
		Bears:   3,
		Bushes:  60,
		Trees:   80,
		Spacing: 2,
	}
}

func (c PopulationConfig) count(s catalog.Species) int {
	switch s {
	case catalog.SpeciesPeon:
		return c.Peons
	case catalog.SpeciesSheep:
		return c.Sheep
	case catalog.SpeciesBear:
		return c.Bears
	case catalog.SpeciesBush:
		return c.Bushes
	case catalog.SpeciesTree:
		return c.Trees
	}
	return 0
}

// Populate seeds the world and returns how many of each species were
// placed. A crowded map may yield fewer than requested.
func (s *Simulation) Populate(g *world.Grid, sp *agents.Spawner, cfg PopulationConfig, rng *rand.Rand) map[catalog.Species]int {
	order := []catalog.Species{
		catalog.SpeciesTree, catalog.SpeciesBush,
		catalog.SpeciesPeon, catalog.SpeciesSheep, catalog.SpeciesBear,
	}
	taken := make(map[world.Coord]bool)
	placed := make(map[catalog.Species]int)

	for _, species := range order {
		want := cfg.count(species)
		if want <= 0 {
			continue
		}
		spots := world.PlaceSpawns(g, species, want, cfg.Spacing, taken, rng)
		for _, c := range spots {
			s.World.AddEntity(sp.Spawn(species, c))
		}
		placed[species] = len(spots)
		if len(spots) < want {
			slog.Warn("population short", "species", species.String(), "wanted", want, "placed", len(spots))
		}
		s.record(CategorySpawn, "seeded %d %s", len(spots), species)
	}

	slog.Info("population seeded",
		"peons", placed[catalog.SpeciesPeon],
		"sheep", placed[catalog.SpeciesSheep],
		"bears", placed[catalog.SpeciesBear],
		"bushes", placed[catalog.SpeciesBush],
		"trees", placed[catalog.SpeciesTree],
	)
	return placed
}
