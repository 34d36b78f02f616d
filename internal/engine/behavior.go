package engine

import (
	"log/slog"

	"github.com/talgya/mini-colony/internal/agents"
	"github.com/talgya/mini-colony/internal/arena"
	"github.com/talgya/mini-colony/internal/tuning"
	"github.com/talgya/mini-colony/internal/world"
)

// updateAgent runs one behavior update. Timers tick and HP decays first; a
// dead agent is processed and goes no further. Otherwise the current state
// makes at most one transition.
func (s *Simulation) updateAgent(self arena.Handle, a *agents.Agent) {
	sr := &s.Rules.Species[a.Species]

	a.TickTimers()
	a.DecayHP(s.Rules.Decay.Interval, s.Rules.DecayAmount(a.Species))
	if !a.Alive() {
		s.ProcessDeath(a)
		return
	}

	switch a.Action {
	case agents.ActionIdle:
		s.updateIdle(self, a, sr)
	case agents.ActionWandering:
		s.updateWandering(self, a, sr)
	case agents.ActionSeekingFood:
		s.updateSeekingFood(self, a, sr)
	case agents.ActionHunting:
		s.updateHunting(a, sr)
	case agents.ActionPickingUpItem:
		s.updatePickingUp(a, sr)
	case agents.ActionAttacking:
		s.updateAttacking(a, sr)
	case agents.ActionEating:
		s.updateEating(a, sr)
	case agents.ActionFleeing:
		s.updateFleeing(self, a, sr)
	default:
		a.ClearTargets()
		a.Action = agents.ActionIdle
	}

	s.enforceTargetInvariant(a)
}

func (s *Simulation) updateIdle(self arena.Handle, a *agents.Agent, sr *tuning.SpeciesRules) {
	if a.Stranded {
		if a.PostActionCooldown > 0 {
			return
		}
		a.Stranded = false
	}
	if a.ActivelyHungry(sr) {
		a.ClearTargets()
		a.Action = agents.ActionSeekingFood
		return
	}
	if _, ok := s.nearestThreat(self, a, sr); ok {
		a.Action = agents.ActionFleeing
		return
	}
	if a.PostActionCooldown > 0 {
		return
	}

	if a.Peckish(sr) {
		if s.startEating(a, sr) {
			return
		}
		if s.tryTargets(self, a, sr.Seek, sr.NoticeRadius, agents.ErrandFood) {
			return
		}
	} else if len(sr.Gather) > 0 && s.Rng.Float64() < sr.GatherChance {
		if s.tryTargets(self, a, sr.Gather, sr.SightRadius, agents.ErrandGather) {
			return
		}
	}

	if s.Rng.Float64() < sr.MoveChance {
		s.startWander(a, sr)
	}
}

func (s *Simulation) updateWandering(self arena.Handle, a *agents.Agent, sr *tuning.SpeciesRules) {
	if a.MustCompleteWanderStep {
		s.completeEscapeStep(a, sr)
		return
	}
	if a.ActivelyHungry(sr) {
		a.ClearTargets()
		a.Action = agents.ActionSeekingFood
		return
	}
	if a.Errand != agents.ErrandFlight {
		if _, ok := s.nearestThreat(self, a, sr); ok {
			a.Action = agents.ActionFleeing
			return
		}
	}
	if a.Peckish(sr) && a.PostActionCooldown == 0 {
		if s.startEating(a, sr) {
			return
		}
		if s.tryTargets(self, a, sr.Seek, sr.NoticeRadius, agents.ErrandFood) {
			return
		}
	}

	if a.Pos == a.WanderDest || a.WanderStepsLeft <= 0 {
		s.stopWandering(a)
		return
	}
	switch s.step(a, sr, a.WanderDest) {
	case stepMoved:
		a.WanderStepsLeft--
	case stepBlocked:
		s.rejectStep(a)
	case stepArrived:
		s.stopWandering(a)
	}
}

func (s *Simulation) stopWandering(a *agents.Agent) {
	a.ClearTargets()
	a.WanderStepsLeft = 0
	a.Action = agents.ActionIdle
}

func (s *Simulation) updateSeekingFood(self arena.Handle, a *agents.Agent, sr *tuning.SpeciesRules) {
	if !a.Peckish(sr) {
		a.ClearTargets()
		a.Action = agents.ActionIdle
		return
	}
	if s.startEating(a, sr) {
		return
	}
	if s.tryTargets(self, a, sr.Seek, sr.SightRadius, agents.ErrandFood) {
		return
	}
	s.escapeWander(a)
}

func (s *Simulation) updateHunting(a *agents.Agent, sr *tuning.SpeciesRules) {
	tb, ok := s.liveTarget(a)
	if !ok {
		s.dropStaleTarget(a)
		return
	}
	if s.abandonGathering(a, sr) {
		return
	}
	if world.Adjacent(a.Pos, tb.Pos) {
		a.Action = agents.ActionAttacking
		return
	}
	s.pursue(a, sr, tb.Pos, false)
}

func (s *Simulation) updatePickingUp(a *agents.Agent, sr *tuning.SpeciesRules) {
	it, ok := s.liveItem(a)
	if !ok {
		s.dropStaleTarget(a)
		return
	}
	if s.abandonGathering(a, sr) {
		return
	}
	if !world.Adjacent(a.Pos, it.Pos) {
		s.pursue(a, sr, it.Pos, true)
		return
	}
	s.collect(a, sr, it)
}

// collect handles an adjacent target item: food is eaten on the spot when
// the agent is peckish, anything else goes to the inventory. An item that
// does not fit is put back on the ground under the agent.
func (s *Simulation) collect(a *agents.Agent, sr *tuning.SpeciesRules, it *Item) {
	if s.Rules.IsFood(it.Type) && a.Peckish(sr) {
		a.EatSlot = -1
		a.PathAttempts = 0
		a.ActionTimer = sr.EatTicks
		a.Action = agents.ActionEating
		return
	}

	t := it.Type
	s.World.RemoveItem(a.TargetItem)
	if a.Inventory.Add(t, 1, s.Rules.StackLimit(t)) {
		s.Stats.Pickups++
		s.record(CategoryPickup, "%s picked up %s at %s", a.Species, t, a.Pos)
	} else {
		s.spawnItem(t, a.Pos)
	}
	a.ClearTargets()
	a.PostActionCooldown = sr.PostActionCooldown
	a.Action = agents.ActionIdle
}

func (s *Simulation) updateAttacking(a *agents.Agent, sr *tuning.SpeciesRules) {
	tb, ok := s.liveTarget(a)
	if !ok {
		s.dropStaleTarget(a)
		return
	}
	if s.abandonGathering(a, sr) {
		return
	}
	if !world.Adjacent(a.Pos, tb.Pos) {
		a.Action = agents.ActionHunting
		return
	}
	if a.AttackCooldown > 0 {
		return
	}

	res := ResolveAttack(s.Rules, a, tb)
	switch res.Outcome {
	case OutcomeUnmapped, OutcomeNoDamage:
		a.BlockTarget(a.Target, false, s.Rules.Pathing.BlockedCooldown)
		a.ClearTargets()
		a.PostActionCooldown = sr.PostActionCooldown
		a.Action = agents.ActionIdle
		return
	case OutcomeHit:
	default:
		return
	}

	if res.Interaction.Kind == tuning.InteractionHarvest {
		s.Stats.Harvests++
		if sr.HarvestCooldown > 0 {
			a.AttackCooldown = sr.HarvestCooldown
		}
		s.record(CategoryHarvest, "%s harvested %s for %d", a.Species, tb.Species, res.Damage)
	}
	if !res.Killed {
		return
	}
	if res.Interaction.Kind == tuning.InteractionAttack {
		s.Stats.Kills++
		s.record(CategoryKill, "%s killed %s at %s", a.Species, tb.Species, tb.Pos)
	}

	errand := a.Errand
	a.ClearTargets()
	if errand == agents.ErrandGather {
		a.Action = agents.ActionIdle
		return
	}
	a.Action = agents.ActionSeekingFood
}

func (s *Simulation) updateEating(a *agents.Agent, sr *tuning.SpeciesRules) {
	if a.ActionTimer > 0 {
		a.ActionTimer--
	}
	if a.ActionTimer > 0 {
		return
	}

	gain := 0
	var what string
	if a.EatSlot >= 0 && a.EatSlot < len(a.Inventory.Slots) {
		t := a.Inventory.Slots[a.EatSlot].Item
		if s.Rules.IsFood(t) && a.Inventory.Remove(a.EatSlot, 1) == 1 {
			gain = s.Rules.Items[t].Food
			what = t.String()
		}
	} else if it, ok := s.liveItem(a); ok && world.Adjacent(a.Pos, it.Pos) && s.Rules.IsFood(it.Type) {
		gain = s.Rules.Items[it.Type].Food
		what = it.Type.String()
		it.HP = 0
	}

	if gain > 0 {
		healed := a.Heal(gain)
		s.Stats.Meals++
		s.record(CategoryEat, "%s ate %s (+%d hp)", a.Species, what, healed)
	}
	a.ClearTargets()
	a.PostActionCooldown = sr.PostActionCooldown
	a.Action = agents.ActionIdle
}

func (s *Simulation) updateFleeing(self arena.Handle, a *agents.Agent, sr *tuning.SpeciesRules) {
	dest := s.randomOffset(a.Pos, sr.WanderRadius)
	if threat, ok := s.nearestThreat(self, a, sr); ok {
		dest = s.fleeFrom(a, sr, threat)
	}
	a.ClearTargets()
	a.Errand = agents.ErrandFlight
	a.WanderDest = dest
	a.WanderStepsLeft = sr.WanderSteps
	a.MustCompleteWanderStep = false
	a.EscapeRetries = 0
	a.Action = agents.ActionWandering
}

// startEating begins a meal from the first food slot in the inventory.
func (s *Simulation) startEating(a *agents.Agent, sr *tuning.SpeciesRules) bool {
	slot := a.Inventory.FindFunc(s.Rules.IsFood)
	if slot < 0 {
		return false
	}
	a.ClearTargets()
	a.EatSlot = slot
	a.ActionTimer = sr.EatTicks
	a.Action = agents.ActionEating
	return true
}

// abandonGathering drops a gathering pursuit once hunger turns active.
func (s *Simulation) abandonGathering(a *agents.Agent, sr *tuning.SpeciesRules) bool {
	if a.Errand != agents.ErrandGather || !a.ActivelyHungry(sr) {
		return false
	}
	a.ClearTargets()
	a.Action = agents.ActionSeekingFood
	return true
}

// dropStaleTarget forgets a target that died, was consumed or was removed.
// A food errand resumes searching; anything else idles.
func (s *Simulation) dropStaleTarget(a *agents.Agent) {
	slog.Debug("stale target cleared", "species", a.Species.String(), "action", a.Action.String())
	errand := a.Errand
	a.ClearTargets()
	if errand == agents.ErrandFood {
		a.Action = agents.ActionSeekingFood
		return
	}
	a.Action = agents.ActionIdle
}

// enforceTargetInvariant guarantees that an agent left in a targeted state
// holds a live target.
func (s *Simulation) enforceTargetInvariant(a *agents.Agent) {
	ok := true
	switch {
	case a.Action.NeedsEntityTarget():
		_, ok = s.liveTarget(a)
	case a.Action.NeedsItemTarget():
		_, ok = s.liveItem(a)
	}
	if !ok {
		a.ClearTargets()
		a.Action = agents.ActionIdle
	}
}
