package agents

import "github.com/talgya/mini-colony/internal/tuning"

// BelowThreshold reports whether hp has dropped under pct percent of maxHP.
func BelowThreshold(hp, maxHP, pct int) bool {
	return hp*100 < maxHP*pct
}

// ActivelyHungry reports whether the agent must drop what it is doing and
// go find food.
func (a *Agent) ActivelyHungry(sr *tuning.SpeciesRules) bool {
	return BelowThreshold(a.HP, a.MaxHP, sr.ActiveHunger)
}

// Peckish reports whether the agent would take food it notices nearby.
func (a *Agent) Peckish(sr *tuning.SpeciesRules) bool {
	return BelowThreshold(a.HP, a.MaxHP, sr.OpportunisticHunger)
}

// DecayHP counts the decay timer down and, when it runs out, removes amount
// HP (floored at zero) and rearms the timer. It reports whether HP was lost.
func (a *Agent) DecayHP(interval, amount int) bool {
	if interval <= 0 || amount <= 0 {
		return false
	}
	a.DecayTimer--
	if a.DecayTimer > 0 {
		return false
	}
	a.DecayTimer = interval
	return a.Damage(amount) > 0
}
