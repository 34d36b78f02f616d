// World state: the entity and ground-item collections plus the terrain
// surface agents move over.
package engine

import (
	"errors"
	"math/rand"

	"github.com/talgya/mini-colony/internal/agents"
	"github.com/talgya/mini-colony/internal/arena"
	"github.com/talgya/mini-colony/internal/catalog"
	"github.com/talgya/mini-colony/internal/tuning"
	"github.com/talgya/mini-colony/internal/world"
)

// ErrItemCapacity is returned when the ground-item collection is full.
var ErrItemCapacity = errors.New("ground item capacity reached")

// Terrain is the read surface the simulation needs from the terrain
// collaborator. *world.Grid implements it.
type Terrain interface {
	MovementRules(s catalog.Species, x, y int, heightHint float64) world.MoveRules
	HeightAt(x, y int) float64
	IsLand(c world.Coord) bool
}

// Item is something lying on the ground. Each ground item is one unit.
type Item struct {
	Type       catalog.ItemType `json:"type"`
	Pos        world.Coord      `json:"pos"`
	HP         int              `json:"hp"` // Durability; removed at zero
	DecayTimer int              `json:"decay_timer"`
}

// World owns every entity and ground item. Only the simulation goroutine
// touches it.
type World struct {
	Terrain  Terrain
	Entities *arena.Arena[agents.Entity]
	Items    *arena.Arena[*Item]

	rules   *tuning.Rules
	statics map[world.Coord]int // Blocking static resources per tile
	itemsAt map[world.Coord]int // Ground items per tile
}

// NewWorld creates an empty world over the given terrain.
func NewWorld(t Terrain, rules *tuning.Rules) *World {
	return &World{
		Terrain:  t,
		Entities: arena.New[agents.Entity](256),
		Items:    arena.New[*Item](256),
		rules:    rules,
		statics:  make(map[world.Coord]int),
		itemsAt:  make(map[world.Coord]int),
	}
}

// AddEntity inserts an entity and returns its handle.
func (w *World) AddEntity(e agents.Entity) arena.Handle {
	if w.blocks(e) {
		w.statics[e.Base().Pos]++
	}
	return w.Entities.Insert(e)
}

// RemoveEntity drops an entity from the live collection.
func (w *World) RemoveEntity(h arena.Handle) bool {
	e, ok := w.Entities.Remove(h)
	if !ok {
		return false
	}
	if w.blocks(e) {
		decrement(w.statics, e.Base().Pos)
	}
	return true
}

func (w *World) blocks(e agents.Entity) bool {
	_, static := e.(*agents.Resource)
	return static && w.rules.Species[e.Base().Species].Blocks
}

// Entity resolves a handle. Dead entities still resolve until swept.
func (w *World) Entity(h arena.Handle) (agents.Entity, bool) {
	e, ok := w.Entities.Get(h)
	if !ok {
		return nil, false
	}
	return *e, true
}

// Item resolves a ground item handle. Depleted items still resolve until swept.
func (w *World) Item(h arena.Handle) (*Item, bool) {
	it, ok := w.Items.Get(h)
	if !ok {
		return nil, false
	}
	return *it, true
}

// SpawnItem places a fresh unit of t at pos.
func (w *World) SpawnItem(t catalog.ItemType, pos world.Coord) (arena.Handle, error) {
	if w.Items.Len() >= w.rules.MaxGroundItems {
		return arena.Handle{}, ErrItemCapacity
	}
	ir := w.rules.Items[t]
	w.itemsAt[pos]++
	return w.Items.Insert(&Item{
		Type:       t,
		Pos:        pos,
		HP:         ir.Durability,
		DecayTimer: ir.DecayInterval,
	}), nil
}

// RemoveItem takes an item off the ground.
func (w *World) RemoveItem(h arena.Handle) bool {
	it, ok := w.Items.Remove(h)
	if !ok {
		return false
	}
	decrement(w.itemsAt, it.Pos)
	return true
}

// IsTileOccupiedByStatic reports whether a blocking static resource stands on (x, y).
func (w *World) IsTileOccupiedByStatic(x, y int) bool {
	return w.statics[world.Coord{X: x, Y: y}] > 0
}

// FindRandomAdjacentEmptyTile samples up to maxAttempts random neighbors of
// (x, y) and returns the first that is land, free of blocking statics and
// free of ground items.
func (w *World) FindRandomAdjacentEmptyTile(x, y, maxAttempts int, rng *rand.Rand) (world.Coord, bool) {
	origin := world.Coord{X: x, Y: y}
	for i := 0; i < maxAttempts; i++ {
		off := world.NeighborOffsets[rng.Intn(len(world.NeighborOffsets))]
		c := origin.Add(off.X, off.Y)
		if w.Terrain.IsLand(c) && w.statics[c] == 0 && w.itemsAt[c] == 0 {
			return c, true
		}
	}
	return world.Coord{}, false
}

// ItemsAt returns the number of ground items on c.
func (w *World) ItemsAt(c world.Coord) int {
	return w.itemsAt[c]
}

func decrement(m map[world.Coord]int, c world.Coord) {
	if m[c] <= 1 {
		delete(m, c)
		return
	}
	m[c]--
}
