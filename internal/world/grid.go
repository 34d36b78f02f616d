// Package world provides the square tile grid, terrain, and the movement
// rules that agents query before every step.
package world

import "fmt"

// Coord is a tile position on the grid.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns c offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Chebyshev returns max(|dx|, |dy|) between two coordinates.
func Chebyshev(a, b Coord) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// Adjacent reports Chebyshev adjacency (same tile counts as adjacent).
func Adjacent(a, b Coord) bool {
	return Chebyshev(a, b) <= 1
}

// DistSq returns the squared Euclidean distance between two coordinates.
func DistSq(a, b Coord) int {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// NeighborOffsets lists the eight surrounding tile offsets, clockwise from north.
var NeighborOffsets = [8]Coord{
	{X: 0, Y: -1},
	{X: 1, Y: -1},
	{X: 1, Y: 0},
	{X: 1, Y: 1},
	{X: 0, Y: 1},
	{X: -1, Y: 1},
	{X: -1, Y: 0},
	{X: -1, Y: -1},
}

// Terrain types for grid tiles.
type Terrain uint8

const (
	TerrainPlains   Terrain = iota // Open grazing land
	TerrainForest                  // Slows colonists, shelters bears
	TerrainMountain                // Steep; sheep cannot climb
	TerrainCoast                   // Sand along the water line
	TerrainRiver                   // Fordable for bears only
	TerrainDesert                  // Slow going
	TerrainSwamp                   // Very slow going
	TerrainTundra                  // Cold, open
	TerrainOcean                   // Impassable
)

// NumTerrains is the number of terrain types.
const NumTerrains = 9

// Tile is a single grid cell.
type Tile struct {
	Terrain   Terrain `json:"terrain"`
	Elevation float64 `json:"elevation"` // 0.0 (sea level) to 1.0 (peak)
	Moisture  float64 `json:"moisture"`
}

// Grid holds the complete tile map plus per-species mobility.
type Grid struct {
	Width    int
	Height   int
	Tiles    []Tile
	Mobility MobilityTable
}

// NewGrid creates a width×height grid filled with one terrain at the given
// elevation, using the default mobility table.
func NewGrid(width, height int, fill Terrain, elevation float64) *Grid {
	g := &Grid{
		Width:    width,
		Height:   height,
		Tiles:    make([]Tile, width*height),
		Mobility: DefaultMobility(),
	}
	for i := range g.Tiles {
		g.Tiles[i] = Tile{Terrain: fill, Elevation: elevation}
	}
	return g
}

// InBounds returns true if the coordinate lies on the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < g.Width && c.Y < g.Height
}

// At returns the tile at c, or nil if out of bounds.
func (g *Grid) At(c Coord) *Tile {
	if !g.InBounds(c) {
		return nil
	}
	return &g.Tiles[c.Y*g.Width+c.X]
}

// SetTerrain overwrites the terrain at c. Out-of-bounds writes are ignored.
func (g *Grid) SetTerrain(c Coord, t Terrain) {
	if tile := g.At(c); tile != nil {
		tile.Terrain = t
	}
}

// HeightAt returns the elevation at (x, y), or 0 off the grid.
func (g *Grid) HeightAt(x, y int) float64 {
	if tile := g.At(Coord{X: x, Y: y}); tile != nil {
		return tile.Elevation
	}
	return 0
}

// IsLand reports whether c is on the grid and not open water.
func (g *Grid) IsLand(c Coord) bool {
	tile := g.At(c)
	return tile != nil && tile.Terrain != TerrainOcean
}

// TileCount returns the total number of tiles.
func (g *Grid) TileCount() int {
	return len(g.Tiles)
}

// String returns a summary of the grid.
func (g *Grid) String() string {
	return fmt.Sprintf("Grid(%dx%d)", g.Width, g.Height)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
