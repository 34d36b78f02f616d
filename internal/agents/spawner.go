// Entity spawning: builds agents and static resources with the initial
// stats their species calls for.
package agents

import (
	"math/rand"

	"github.com/talgya/mini-colony/internal/catalog"
	"github.com/talgya/mini-colony/internal/tuning"
	"github.com/talgya/mini-colony/internal/world"
)

// Spawner creates entities for the simulation.
type Spawner struct {
	rules *tuning.Rules
	rng   *rand.Rand
}

// NewSpawner creates an entity spawner with its own seeded stream.
func NewSpawner(rules *tuning.Rules, seed int64) *Spawner {
	return &Spawner{
		rules: rules,
		rng:   rand.New(rand.NewSource(seed + 300)),
	}
}

// Spawn builds an entity of species s at pos: an *Agent for behavioral
// species, a *Resource otherwise.
func (s *Spawner) Spawn(species catalog.Species, pos world.Coord) Entity {
	if species.IsAgent() {
		return s.SpawnAgent(species, pos)
	}
	return NewResource(s.rules, species, pos)
}

// SpawnAgent builds an agent at full health. Decay timers start staggered so
// a freshly seeded population does not lose HP in lockstep.
func (s *Spawner) SpawnAgent(species catalog.Species, pos world.Coord) *Agent {
	a := NewAgent(s.rules, species, pos)
	if s.rules.Decay.Interval > 1 {
		a.DecayTimer = 1 + s.rng.Intn(s.rules.Decay.Interval)
	}
	return a
}

// NewAgent builds an idle agent at full health with a full decay timer.
func NewAgent(rules *tuning.Rules, species catalog.Species, pos world.Coord) *Agent {
	sr := &rules.Species[species]
	return &Agent{
		Body: Body{
			Species: species,
			Pos:     pos,
			HP:      sr.MaxHP,
			MaxHP:   sr.MaxHP,
		},
		Action:     ActionIdle,
		EatSlot:    -1,
		DecayTimer: rules.Decay.Interval,
		WanderDest: pos,
		Inventory:  NewInventory(sr.InventorySlots),
	}
}

// NewResource builds a static resource at full durability.
func NewResource(rules *tuning.Rules, species catalog.Species, pos world.Coord) *Resource {
	sr := &rules.Species[species]
	return &Resource{Body: Body{
		Species: species,
		Pos:     pos,
		HP:      sr.MaxHP,
		MaxHP:   sr.MaxHP,
	}}
}
