package engine

import (
	"github.com/talgya/mini-colony/internal/agents"
	"github.com/talgya/mini-colony/internal/tuning"
)

// AttackOutcome classifies a call to ResolveAttack.
type AttackOutcome uint8

const (
	OutcomeHit          AttackOutcome = iota
	OutcomeCooldown                   // Attacker not ready; nothing happened
	OutcomeDefenderDown               // Defender already at zero HP
	OutcomeUnmapped                   // No interaction defined for the pair
	OutcomeNoDamage                   // Interaction defined with zero damage
)

func (o AttackOutcome) String() string {
	switch o {
	case OutcomeHit:
		return "hit"
	case OutcomeCooldown:
		return "cooldown"
	case OutcomeDefenderDown:
		return "defender_down"
	case OutcomeUnmapped:
		return "unmapped"
	case OutcomeNoDamage:
		return "no_damage"
	}
	return "unknown"
}

// AttackResult reports what an attack did.
type AttackResult struct {
	Outcome     AttackOutcome
	Interaction tuning.Interaction
	Damage      int  // HP actually removed
	Killed      bool // Defender reached zero on this hit
}

// ResolveAttack applies the interaction table to one (attacker, defender)
// pair. On a hit the defender loses the table damage (floored at zero) and
// the attacker's cooldown is set to its species attack cooldown. Unmapped
// and zero-damage pairs change nothing and consume no cooldown. Adjacency
// is the caller's concern.
func ResolveAttack(rules *tuning.Rules, attacker *agents.Agent, defender *agents.Body) AttackResult {
	in := rules.Interaction(attacker.Species, defender.Species)
	res := AttackResult{Interaction: in}
	switch {
	case attacker.AttackCooldown > 0:
		res.Outcome = OutcomeCooldown
		return res
	case !defender.Alive():
		res.Outcome = OutcomeDefenderDown
		return res
	case in.Kind == tuning.InteractionUnmapped:
		res.Outcome = OutcomeUnmapped
		return res
	case in.Damage <= 0:
		res.Outcome = OutcomeNoDamage
		return res
	}

	res.Outcome = OutcomeHit
	res.Damage = defender.Damage(in.Damage)
	res.Killed = !defender.Alive()
	attacker.AttackCooldown = rules.Species[attacker.Species].AttackCooldown
	return res
}
