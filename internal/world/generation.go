// World generation using layered simplex noise.
// Generates elevation and moisture fields, then derives terrain and rivers.
package world

import (
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// GenConfig holds world generation parameters.
type GenConfig struct {
	Width       int     // Tiles across
	Height      int     // Tiles down
	Seed        int64   // Random seed (0 = random)
	SeaLevel    float64 // Elevation threshold for ocean (0.0–1.0)
	MountainLvl float64 // Elevation threshold for mountains (0.0–1.0)
	Rivers      int     // Maximum number of rivers to trace
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Width:       96,
		Height:      64,
		Seed:        0,
		SeaLevel:    0.22,
		MountainLvl: 0.74,
		Rivers:      4,
	}
}

// SmallTestConfig returns a tiny world for rapid iteration.
func SmallTestConfig() GenConfig {
	return GenConfig{
		Width:       24,
		Height:      16,
		Seed:        42,
		SeaLevel:    0.20,
		MountainLvl: 0.80,
		Rivers:      1,
	}
}

// Generate creates a complete grid with terrain.
func Generate(cfg GenConfig) *Grid {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	elevNoise := opensimplex.NewNormalized(seed)
	moistNoise := opensimplex.NewNormalized(seed + 1)
	tempNoise := opensimplex.NewNormalized(seed + 2)

	g := NewGrid(cfg.Width, cfg.Height, TerrainPlains, 0)

	cx := float64(cfg.Width-1) / 2
	cy := float64(cfg.Height-1) / 2

	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			fx, fy := float64(x), float64(y)

			elev := octaveNoise(elevNoise, fx, fy, 4, 0.06, 0.5)
			moist := octaveNoise(moistNoise, fx, fy, 3, 0.05, 0.5)
			temp := octaveNoise(tempNoise, fx, fy, 3, 0.04, 0.5)

			// Island shaping: pull elevation down toward the border.
			nx := (fx - cx) / cx
			ny := (fy - cy) / cy
			edge := 1.0 - math.Pow(math.Max(math.Abs(nx), math.Abs(ny)), 4)
			if edge < 0 {
				edge = 0
			}
			elev *= edge

			tile := g.At(Coord{X: x, Y: y})
			tile.Elevation = elev
			tile.Moisture = moist
			tile.Terrain = deriveTerrain(elev, moist, temp, cfg)
		}
	}

	markCoast(g)
	placeRivers(g, seed, cfg.Rivers)

	return g
}

// deriveTerrain determines terrain type from environmental parameters.
func deriveTerrain(elev, moist, temp float64, cfg GenConfig) Terrain {
	if elev < cfg.SeaLevel {
		return TerrainOcean
	}
	if elev > cfg.MountainLvl {
		return TerrainMountain
	}
	if temp < 0.2 {
		return TerrainTundra
	}
	if moist < 0.25 && temp > 0.55 {
		return TerrainDesert
	}
	if moist > 0.7 && elev < 0.4 {
		return TerrainSwamp
	}
	if moist > 0.5 && elev > 0.4 {
		return TerrainForest
	}
	return TerrainPlains
}

// markCoast converts low land tiles touching ocean into coast.
func markCoast(g *Grid) {
	var toMark []Coord
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := Coord{X: x, Y: y}
			tile := g.At(c)
			if tile.Terrain != TerrainPlains && tile.Terrain != TerrainForest {
				continue
			}
			if tile.Elevation >= 0.45 {
				continue
			}
			for _, off := range NeighborOffsets {
				n := g.At(c.Add(off.X, off.Y))
				if n != nil && n.Terrain == TerrainOcean {
					toMark = append(toMark, c)
					break
				}
			}
		}
	}
	for _, c := range toMark {
		g.SetTerrain(c, TerrainCoast)
	}
}

// placeRivers traces rivers from high ground down to the sea.
func placeRivers(g *Grid, seed int64, maxRivers int) {
	rng := rand.New(rand.NewSource(seed + 100))

	var sources []Coord
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := Coord{X: x, Y: y}
			tile := g.At(c)
			if tile.Elevation > 0.6 && tile.Terrain != TerrainOcean {
				sources = append(sources, c)
			}
		}
	}

	rng.Shuffle(len(sources), func(i, j int) {
		sources[i], sources[j] = sources[j], sources[i]
	})
	if len(sources) > maxRivers {
		sources = sources[:maxRivers]
	}

	for _, start := range sources {
		traceRiver(g, start)
	}
}

// traceRiver follows the steepest descent from a source tile until reaching
// ocean or running out of downhill path.
func traceRiver(g *Grid, start Coord) {
	current := start
	visited := make(map[Coord]bool)
	maxSteps := g.Width + g.Height

	for step := 0; step < maxSteps; step++ {
		visited[current] = true
		tile := g.At(current)
		if tile == nil || tile.Terrain == TerrainOcean {
			break
		}
		if tile.Terrain != TerrainMountain && tile.Terrain != TerrainCoast {
			tile.Terrain = TerrainRiver
		}

		best := current
		bestElev := tile.Elevation
		// Only orthogonal moves so a river is always a connected barrier.
		for _, off := range [4]Coord{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} {
			nc := current.Add(off.X, off.Y)
			if visited[nc] {
				continue
			}
			n := g.At(nc)
			if n != nil && n.Elevation < bestElev {
				bestElev = n.Elevation
				best = nc
			}
		}
		if best == current {
			break
		}
		current = best
	}
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

// TerrainCounts returns a summary of terrain type distribution.
func TerrainCounts(g *Grid) map[Terrain]int {
	counts := make(map[Terrain]int)
	for _, tile := range g.Tiles {
		counts[tile.Terrain]++
	}
	return counts
}

// TerrainName returns a human-readable name for a terrain type.
func TerrainName(t Terrain) string {
	switch t {
	case TerrainPlains:
		return "Plains"
	case TerrainForest:
		return "Forest"
	case TerrainMountain:
		return "Mountain"
	case TerrainCoast:
		return "Coast"
	case TerrainRiver:
		return "River"
	case TerrainDesert:
		return "Desert"
	case TerrainSwamp:
		return "Swamp"
	case TerrainTundra:
		return "Tundra"
	case TerrainOcean:
		return "Ocean"
	default:
		return "Unknown"
	}
}
