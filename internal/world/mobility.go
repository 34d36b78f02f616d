package world

import (
	"math"

	"github.com/talgya/mini-colony/internal/catalog"
)

// MoveRules is the answer to "may this species enter this tile, and how fast".
type MoveRules struct {
	CanPass       bool    `json:"can_pass"`
	SpeedModifier float64 `json:"speed_modifier"` // 1.0 = full speed
}

// Mobility describes how one species copes with terrain. A zero speed marks
// the terrain impassable.
type Mobility struct {
	Speed    [NumTerrains]float64
	MaxClimb float64 // Largest elevation gain allowed in one step
}

// MobilityTable is indexed by species.
type MobilityTable [catalog.NumSpecies]Mobility

// DefaultMobility returns the built-in terrain speeds. Static species have
// no entries and can never pass anything.
func DefaultMobility() MobilityTable {
	var t MobilityTable
	t[catalog.SpeciesPeon] = Mobility{
		Speed: speeds(map[Terrain]float64{
			TerrainPlains: 1, TerrainForest: 0.5, TerrainMountain: 0.34, TerrainCoast: 1,
			TerrainDesert: 0.5, TerrainSwamp: 0.34, TerrainTundra: 0.5,
		}),
		MaxClimb: 0.25,
	}
	t[catalog.SpeciesSheep] = Mobility{
		Speed: speeds(map[Terrain]float64{
			TerrainPlains: 1, TerrainForest: 0.5, TerrainCoast: 1,
			TerrainDesert: 0.5, TerrainSwamp: 0.25, TerrainTundra: 0.5,
		}),
		MaxClimb: 0.15,
	}
	t[catalog.SpeciesBear] = Mobility{
		Speed: speeds(map[Terrain]float64{
			TerrainPlains: 1, TerrainForest: 1, TerrainMountain: 0.5, TerrainCoast: 1,
			TerrainRiver: 0.34, TerrainDesert: 0.5, TerrainSwamp: 0.5, TerrainTundra: 1,
		}),
		MaxClimb: 0.4,
	}
	return t
}

func speeds(m map[Terrain]float64) [NumTerrains]float64 {
	var out [NumTerrains]float64
	for t, v := range m {
		out[t] = v
	}
	return out
}

// MovementRules reports whether species s may step onto (x, y) coming from
// a tile at elevation heightHint, and the speed modifier of that tile.
func (g *Grid) MovementRules(s catalog.Species, x, y int, heightHint float64) MoveRules {
	tile := g.At(Coord{X: x, Y: y})
	if tile == nil || int(s) >= catalog.NumSpecies {
		return MoveRules{}
	}
	m := g.Mobility[s]
	speed := m.Speed[tile.Terrain]
	if speed <= 0 {
		return MoveRules{}
	}
	if tile.Elevation-heightHint > m.MaxClimb {
		return MoveRules{}
	}
	return MoveRules{CanPass: true, SpeedModifier: speed}
}

// StepCooldown converts a speed modifier into the number of ticks an agent
// must wait after stepping: round(1/speed - 1), zero at full speed.
func StepCooldown(speed float64) int {
	if speed <= 0 || speed >= 1 {
		return 0
	}
	return int(math.Round(1/speed - 1))
}
