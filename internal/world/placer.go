// Spawn placement. Scores land tiles per species and picks spaced spawn points.
package world

import (
	"math/rand"
	"sort"

	"github.com/talgya/mini-colony/internal/catalog"
)

// PlaceSpawns returns up to count tiles suitable for species s, highest
// scoring first, each at least minDist (Chebyshev) from the others and from
// every tile in taken. Chosen tiles are added to taken.
func PlaceSpawns(g *Grid, s catalog.Species, count, minDist int, taken map[Coord]bool, rng *rand.Rand) []Coord {
	type scored struct {
		coord Coord
		score float64
	}
	var candidates []scored

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := Coord{X: x, Y: y}
			if taken[c] {
				continue
			}
			sc := spawnScore(g, s, c)
			if sc <= 0 {
				continue
			}
			// Jitter keeps equal-score tiles from clustering in scan order.
			candidates = append(candidates, scored{c, sc + rng.Float64()*0.5})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	var out []Coord
	for _, c := range candidates {
		if len(out) >= count {
			break
		}
		if tooClose(c.coord, out, minDist) || tooCloseTaken(c.coord, taken, minDist) {
			continue
		}
		out = append(out, c.coord)
		taken[c.coord] = true
	}
	return out
}

// spawnScore evaluates how fitting a tile is as a home for species s.
// Zero means unusable.
func spawnScore(g *Grid, s catalog.Species, c Coord) float64 {
	tile := g.At(c)
	if tile == nil || tile.Terrain == TerrainOcean {
		return 0
	}
	if s.IsAgent() && !g.MovementRules(s, c.X, c.Y, tile.Elevation).CanPass {
		return 0
	}

	switch s {
	case catalog.SpeciesPeon:
		switch tile.Terrain {
		case TerrainPlains:
			return 3
		case TerrainCoast:
			return 2.5
		case TerrainForest:
			return 1
		}
	case catalog.SpeciesSheep:
		switch tile.Terrain {
		case TerrainPlains:
			return 3
		case TerrainTundra, TerrainCoast:
			return 1
		}
	case catalog.SpeciesBear:
		switch tile.Terrain {
		case TerrainForest:
			return 3
		case TerrainTundra, TerrainMountain:
			return 2
		}
	case catalog.SpeciesBush:
		switch tile.Terrain {
		case TerrainPlains:
			return 1 + tile.Moisture*2
		case TerrainForest, TerrainSwamp:
			return 1
		}
	case catalog.SpeciesTree:
		switch tile.Terrain {
		case TerrainForest:
			return 3
		case TerrainPlains:
			return 0.5
		}
	}
	return 0
}

func tooClose(c Coord, existing []Coord, minDist int) bool {
	for _, e := range existing {
		if Chebyshev(c, e) < minDist {
			return true
		}
	}
	return false
}

func tooCloseTaken(c Coord, taken map[Coord]bool, minDist int) bool {
	if minDist <= 1 {
		return false
	}
	for dy := -(minDist - 1); dy <= minDist-1; dy++ {
		for dx := -(minDist - 1); dx <= minDist-1; dx++ {
			if taken[c.Add(dx, dy)] {
				return true
			}
		}
	}
	return false
}
