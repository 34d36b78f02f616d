package engine

import (
	"github.com/talgya/mini-colony/internal/agents"
	"github.com/talgya/mini-colony/internal/arena"
	"github.com/talgya/mini-colony/internal/catalog"
	"github.com/talgya/mini-colony/internal/tuning"
	"github.com/talgya/mini-colony/internal/world"
)

// Acquire walks a priority list and returns the nearest match for the
// first entry that has any candidate within radius. Entries are tried in
// order: a lower-priority target is only considered when every earlier
// entry found nothing. Ties on distance keep the first candidate in
// collection order.
func (s *Simulation) Acquire(self arena.Handle, a *agents.Agent, list []tuning.Target, radius int) (tuning.Target, arena.Handle, bool) {
	for _, tg := range list {
		var h arena.Handle
		var ok bool
		switch tg.Kind {
		case tuning.TargetItem:
			h, ok = s.nearestItem(a, tg.Item, radius)
		case tuning.TargetEntity:
			h, ok = s.nearestEntity(self, a, radius, func(b *agents.Body) bool {
				return b.Species == tg.Species
			})
		}
		if ok {
			return tg, h, true
		}
	}
	return tuning.Target{}, arena.Handle{}, false
}

func (s *Simulation) nearestItem(a *agents.Agent, t catalog.ItemType, radius int) (arena.Handle, bool) {
	r2 := radius * radius
	best := -1
	var found arena.Handle
	for h, it := range s.World.Items.All() {
		item := *it
		if item.Type != t || item.HP <= 0 || a.Blocked.Excludes(h, true) {
			continue
		}
		d := world.DistSq(a.Pos, item.Pos)
		if d > r2 {
			continue
		}
		if best < 0 || d < best {
			best = d
			found = h
		}
	}
	return found, best >= 0
}

// nearestEntity finds the closest live entity other than self that
// satisfies match and is not on the agent's blocked list.
func (s *Simulation) nearestEntity(self arena.Handle, a *agents.Agent, radius int, match func(*agents.Body) bool) (arena.Handle, bool) {
	r2 := radius * radius
	best := -1
	var found arena.Handle
	for h, e := range s.World.Entities.All() {
		if h == self {
			continue
		}
		b := (*e).Base()
		if !b.Alive() || b.DeathProcessed || !match(b) || a.Blocked.Excludes(h, false) {
			continue
		}
		d := world.DistSq(a.Pos, b.Pos)
		if d > r2 {
			continue
		}
		if best < 0 || d < best {
			best = d
			found = h
		}
	}
	return found, best >= 0
}

// nearestThreat returns the closest live threat within the species'
// threat radius.
func (s *Simulation) nearestThreat(self arena.Handle, a *agents.Agent, sr *tuning.SpeciesRules) (world.Coord, bool) {
	if len(sr.Threats) == 0 || sr.ThreatRadius <= 0 {
		return world.Coord{}, false
	}
	h, ok := s.nearestEntity(self, a, sr.ThreatRadius, func(b *agents.Body) bool {
		for _, t := range sr.Threats {
			if b.Species == t {
				return true
			}
		}
		return false
	})
	if !ok {
		return world.Coord{}, false
	}
	e, _ := s.World.Entity(h)
	return e.Base().Pos, true
}

// tryTargets acquires from list and commits the agent to the pursuit.
func (s *Simulation) tryTargets(self arena.Handle, a *agents.Agent, list []tuning.Target, radius int, errand agents.Errand) bool {
	tg, h, ok := s.Acquire(self, a, list, radius)
	if !ok {
		return false
	}
	if tg.Kind == tuning.TargetItem {
		a.SetTargetItem(h, errand)
		a.Action = agents.ActionPickingUpItem
		return true
	}
	a.SetTarget(h, errand)
	a.Action = agents.ActionHunting
	return true
}

// liveTarget resolves the agent's entity target, failing for stale handles
// and for targets that are dead or already processed.
func (s *Simulation) liveTarget(a *agents.Agent) (*agents.Body, bool) {
	if a.Target.IsZero() {
		return nil, false
	}
	e, ok := s.World.Entity(a.Target)
	if !ok {
		return nil, false
	}
	b := e.Base()
	if !b.Alive() || b.DeathProcessed {
		return nil, false
	}
	return b, true
}

// liveItem resolves the agent's item target.
func (s *Simulation) liveItem(a *agents.Agent) (*Item, bool) {
	if a.TargetItem.IsZero() {
		return nil, false
	}
	it, ok := s.World.Item(a.TargetItem)
	if !ok || it.HP <= 0 {
		return nil, false
	}
	return it, true
}
