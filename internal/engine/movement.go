package engine

import (
	"log/slog"

	"github.com/talgya/mini-colony/internal/agents"
	"github.com/talgya/mini-colony/internal/tuning"
	"github.com/talgya/mini-colony/internal/world"
)

// stepResult is the outcome of a single movement attempt.
type stepResult uint8

const (
	stepMoved   stepResult = iota
	stepWaiting            // Movement cooldown still running
	stepBlocked            // No candidate tile could be entered
	stepArrived            // Already on the destination
)

// step moves the agent one tile toward dest. A pending movement cooldown
// burns one tick instead of moving, so a cooldown of N allows one step
// every N+1 ticks. The greedy diagonal is tried
// first, then the x-only and y-only slides. A tile is enterable when the
// terrain lets this species pass from the current elevation and, for
// species blocked by statics, no blocking resource stands on it.
func (s *Simulation) step(a *agents.Agent, sr *tuning.SpeciesRules, dest world.Coord) stepResult {
	if a.Pos == dest {
		return stepArrived
	}
	if a.MoveCooldown > 0 {
		a.MoveCooldown--
		return stepWaiting
	}

	dx := sign(dest.X - a.Pos.X)
	dy := sign(dest.Y - a.Pos.Y)
	candidates := [3]world.Coord{
		a.Pos.Add(dx, dy),
		a.Pos.Add(dx, 0),
		a.Pos.Add(0, dy),
	}

	height := s.World.Terrain.HeightAt(a.Pos.X, a.Pos.Y)
	for _, c := range candidates {
		if c == a.Pos {
			continue
		}
		mr := s.World.Terrain.MovementRules(a.Species, c.X, c.Y, height)
		if !mr.CanPass {
			continue
		}
		if sr.BlockedByStatic && s.World.IsTileOccupiedByStatic(c.X, c.Y) {
			continue
		}
		a.Pos = c
		a.MoveCooldown = world.StepCooldown(mr.SpeedModifier)
		return stepMoved
	}
	return stepBlocked
}

// pursue steps toward a target position and runs stuck detection. It
// reports whether the agent gave up on the target.
func (s *Simulation) pursue(a *agents.Agent, sr *tuning.SpeciesRules, dest world.Coord, isItem bool) bool {
	switch s.step(a, sr, dest) {
	case stepMoved:
		return false
	case stepBlocked:
		a.PathAttempts++
		if a.PathAttempts < s.Rules.Pathing.StuckThreshold {
			return false
		}
	default:
		return false
	}

	h := a.Target
	if isItem {
		h = a.TargetItem
	}
	a.BlockTarget(h, isItem, s.Rules.Pathing.BlockedCooldown)
	s.Stats.Blocks++
	slog.Debug("target blocked", "species", a.Species.String(), "pos", a.Pos.String(), "item", isItem, "attempts", a.PathAttempts)
	s.record(CategoryBlocked, "%s at %s gave up on an unreachable target", a.Species, a.Pos)
	a.ClearTargets()
	s.escapeWander(a)
	return true
}

// startWander picks a random destination within the species' wander radius.
func (s *Simulation) startWander(a *agents.Agent, sr *tuning.SpeciesRules) {
	a.WanderDest = s.randomOffset(a.Pos, sr.WanderRadius)
	a.WanderStepsLeft = sr.WanderSteps
	a.MustCompleteWanderStep = false
	a.EscapeRetries = 0
	a.Stranded = false
	a.Action = agents.ActionWandering
}

// escapeWander issues a forced relocation whose first step must complete
// before the agent may re-evaluate anything. An agent with no enterable
// neighbour cannot honor that; after EscapeRetries rerolls it is stranded
// and idles out its reject cooldown before hunger is checked again.
func (s *Simulation) escapeWander(a *agents.Agent) {
	r := s.Rules.Pathing.EscapeRadius
	a.WanderDest = s.randomOffset(a.Pos, r)
	a.WanderStepsLeft = 2 * r
	a.MustCompleteWanderStep = true
	a.EscapeRetries = 0
	a.Action = agents.ActionWandering
}

// completeEscapeStep advances a pending must-complete step. A blocked
// escape step rerolls the destination; after too many rerolls the agent
// gives up and idles.
func (s *Simulation) completeEscapeStep(a *agents.Agent, sr *tuning.SpeciesRules) {
	switch s.step(a, sr, a.WanderDest) {
	case stepMoved:
		a.MustCompleteWanderStep = false
		a.EscapeRetries = 0
		if a.WanderStepsLeft > 0 {
			a.WanderStepsLeft--
		}
	case stepWaiting:
	default:
		a.EscapeRetries++
		if a.EscapeRetries >= s.Rules.Pathing.EscapeRetries {
			s.rejectStep(a)
			a.Stranded = true
			return
		}
		a.WanderDest = s.randomOffset(a.Pos, s.Rules.Pathing.EscapeRadius)
	}
}

// rejectStep sends the agent to Idle with a short randomized cooldown.
func (s *Simulation) rejectStep(a *agents.Agent) {
	p := s.Rules.Pathing
	a.ClearTargets()
	a.MustCompleteWanderStep = false
	a.EscapeRetries = 0
	a.WanderStepsLeft = 0
	a.PostActionCooldown = p.RejectCooldownMin + s.Rng.Intn(p.RejectCooldownMax-p.RejectCooldownMin+1)
	a.Action = agents.ActionIdle
}

// randomOffset returns a coordinate within r of c, never c itself.
func (s *Simulation) randomOffset(c world.Coord, r int) world.Coord {
	if r < 1 {
		r = 1
	}
	for {
		dx := s.Rng.Intn(2*r+1) - r
		dy := s.Rng.Intn(2*r+1) - r
		if dx != 0 || dy != 0 {
			return c.Add(dx, dy)
		}
	}
}

// fleeFrom picks a destination on the far side of the agent from threat,
// jittered so herds do not stack on one tile.
func (s *Simulation) fleeFrom(a *agents.Agent, sr *tuning.SpeciesRules, threat world.Coord) world.Coord {
	r := sr.WanderRadius
	dx := sign(a.Pos.X - threat.X)
	dy := sign(a.Pos.Y - threat.Y)
	if dx == 0 && dy == 0 {
		return s.randomOffset(a.Pos, r)
	}
	jx := s.Rng.Intn(3) - 1
	jy := s.Rng.Intn(3) - 1
	return a.Pos.Add(dx*r+jx, dy*r+jy)
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
