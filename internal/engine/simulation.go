// Simulation ties together world state, tuning and randomness and runs the
// per-tick update.
package engine

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/talgya/mini-colony/internal/agents"
	"github.com/talgya/mini-colony/internal/catalog"
	"github.com/talgya/mini-colony/internal/tuning"
	"github.com/talgya/mini-colony/internal/world"
)

// Event categories.
const (
	CategoryDeath   = "death"
	CategoryKill    = "kill"
	CategoryHarvest = "harvest"
	CategoryPickup  = "pickup"
	CategoryEat     = "eat"
	CategoryBlocked = "blocked"
	CategorySpawn   = "spawn"
)

// Event is a notable occurrence in the world.
type Event struct {
	Tick        uint64 `json:"tick" db:"tick"`
	Category    string `json:"category" db:"category"`
	Description string `json:"description" db:"description"`
}

// SimStats tracks cumulative counters for the run.
type SimStats struct {
	Deaths        [catalog.NumSpecies]int `json:"deaths"`
	Kills         int                     `json:"kills"`
	Harvests      int                     `json:"harvests"`
	Meals         int                     `json:"meals"`
	Pickups       int                     `json:"pickups"`
	Blocks        int                     `json:"blocks"`
	SpawnFailures int                     `json:"spawn_failures"`
}

// Simulation holds the complete world state and the context every update
// runs under. Nothing here is global: two simulations never share state.
type Simulation struct {
	World    *World
	Rules    *tuning.Rules
	Rng      *rand.Rand
	Events   []Event
	LastTick uint64
	Stats    SimStats
}

// NewSimulation wires a world, its rules and a random stream together.
func NewSimulation(w *World, rules *tuning.Rules, rng *rand.Rand) *Simulation {
	return &Simulation{
		World: w,
		Rules: rules,
		Rng:   rng,
	}
}

// CurrentTick returns the most recently processed tick number.
func (s *Simulation) CurrentTick() uint64 {
	return s.LastTick
}

// Step advances the world by one tick: every live agent updates once, in
// collection order, each seeing the mutations of those before it. Items
// decay afterwards, then dead entities and depleted items are swept.
func (s *Simulation) Step(tick uint64) {
	s.LastTick = tick

	for h, e := range s.World.Entities.All() {
		a, ok := (*e).(*agents.Agent)
		if !ok || a.DeathProcessed {
			continue
		}
		s.updateAgent(h, a)
	}

	s.decayItems()
	s.sweepItems()
	s.sweepEntities()
}

// DrainEvents returns buffered events and empties the buffer.
func (s *Simulation) DrainEvents() []Event {
	out := s.Events
	s.Events = nil
	return out
}

func (s *Simulation) record(category, format string, args ...any) {
	s.Events = append(s.Events, Event{
		Tick:        s.LastTick,
		Category:    category,
		Description: fmt.Sprintf(format, args...),
	})
}

// spawnItem is the fire-and-forget spawn interface: a refused spawn is
// logged and the item simply does not exist.
func (s *Simulation) spawnItem(t catalog.ItemType, pos world.Coord) {
	if _, err := s.World.SpawnItem(t, pos); err != nil {
		s.Stats.SpawnFailures++
		slog.Warn("item spawn skipped", "item", t.String(), "pos", pos.String(), "error", err)
	}
}

// SpeciesCensus is one species' share of a census.
type SpeciesCensus struct {
	Species string  `json:"species" db:"species"`
	Count   int     `json:"count" db:"count"`
	MeanHP  float64 `json:"mean_hp" db:"mean_hp"` // Mean HP as a fraction of max
}

// Census is a snapshot of population and ground items.
type Census struct {
	Tick        uint64          `json:"tick"`
	Species     []SpeciesCensus `json:"species"`
	GroundItems int             `json:"ground_items"`
	Events      int             `json:"events"`
}

// Census counts live entities per species and ground items.
func (s *Simulation) Census() Census {
	var counts [catalog.NumSpecies]int
	var hp [catalog.NumSpecies]float64

	for _, e := range s.World.Entities.All() {
		b := (*e).Base()
		if !b.Alive() {
			continue
		}
		counts[b.Species]++
		if b.MaxHP > 0 {
			hp[b.Species] += float64(b.HP) / float64(b.MaxHP)
		}
	}

	c := Census{
		Tick:        s.LastTick,
		GroundItems: s.World.Items.Len(),
		Events:      len(s.Events),
	}
	for _, sp := range catalog.AllSpecies() {
		sc := SpeciesCensus{Species: sp.String(), Count: counts[sp]}
		if counts[sp] > 0 {
			sc.MeanHP = hp[sp] / float64(counts[sp])
		}
		c.Species = append(c.Species, sc)
	}
	return c
}

// Report logs a census and recent notable events.
func (s *Simulation) Report(tick uint64) {
	c := s.Census()
	attrs := []any{
		"tick", tick,
		"time", SimTime(tick),
		"ground_items", c.GroundItems,
		"kills", s.Stats.Kills,
		"harvests", s.Stats.Harvests,
		"meals", s.Stats.Meals,
		"blocked", s.Stats.Blocks,
	}
	for _, sc := range c.Species {
		attrs = append(attrs, sc.Species, sc.Count)
	}
	slog.Info("census", attrs...)

	recentStart := 0
	if len(s.Events) > 10 {
		recentStart = len(s.Events) - 10
	}
	for _, e := range s.Events[recentStart:] {
		if e.Category == CategoryDeath || e.Category == CategoryKill {
			slog.Info("event", "category", e.Category, "description", e.Description)
		}
	}
}
