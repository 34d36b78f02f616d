package engine

import (
	"github.com/talgya/mini-colony/internal/agents"
	"github.com/talgya/mini-colony/internal/catalog"
	"github.com/talgya/mini-colony/internal/world"
)

// ProcessDeath runs the drop cascade for a dead entity: the species corpse
// and resource burst first, then every inventory unit. The processed flag is
// set before anything spawns, so a second call is a no-op. It reports
// whether this call did the processing.
func (s *Simulation) ProcessDeath(e agents.Entity) bool {
	b := e.Base()
	if b.DeathProcessed || b.Alive() {
		return false
	}
	b.DeathProcessed = true

	d := s.Rules.Drops[b.Species]
	if d.Corpse != catalog.ItemNone {
		s.dropNear(d.Corpse, b.Pos)
	}
	for i := 0; i < d.Count; i++ {
		s.dropNear(d.Resource, b.Pos)
	}

	if a, ok := e.(*agents.Agent); ok {
		for i := range a.Inventory.Slots {
			slot := &a.Inventory.Slots[i]
			for q := 0; q < slot.Qty; q++ {
				s.dropNear(slot.Item, b.Pos)
			}
		}
		a.Inventory.Clear()
		a.ClearTargets()
	}

	s.Stats.Deaths[b.Species]++
	s.record(CategoryDeath, "%s died at %s", b.Species, b.Pos)
	return true
}

// dropNear spawns one unit on a random empty neighbor of pos, or on pos
// itself when no neighbor turns up within the configured attempts.
func (s *Simulation) dropNear(t catalog.ItemType, pos world.Coord) {
	c, ok := s.World.FindRandomAdjacentEmptyTile(pos.X, pos.Y, s.Rules.Pathing.DropAttempts, s.Rng)
	if !ok {
		c = pos
	}
	s.spawnItem(t, c)
}

// decayItems ticks durability loss on every perishable ground item.
func (s *Simulation) decayItems() {
	for _, it := range s.World.Items.All() {
		item := *it
		interval := s.Rules.Items[item.Type].DecayInterval
		if interval <= 0 || item.HP <= 0 {
			continue
		}
		item.DecayTimer--
		if item.DecayTimer > 0 {
			continue
		}
		item.DecayTimer = interval
		item.HP--
	}
}

// sweepItems removes ground items whose durability has run out.
func (s *Simulation) sweepItems() {
	for _, h := range s.World.Items.Handles() {
		if it, ok := s.World.Item(h); ok && it.HP <= 0 {
			s.World.RemoveItem(h)
		}
	}
}

// sweepEntities removes dead entities. An entity is only removed once its
// death has been processed; anything that reached zero HP outside its own
// update (a harvested bush, a killed sheep) is processed here first.
func (s *Simulation) sweepEntities() {
	for _, h := range s.World.Entities.Handles() {
		e, ok := s.World.Entity(h)
		if !ok || e.Base().Alive() {
			continue
		}
		s.ProcessDeath(e)
		if e.Base().DeathProcessed {
			s.World.RemoveEntity(h)
		}
	}
}
