// Package agents provides the entity data model: the shared Body, the
// behavioral Agent record, the static Resource record, inventories and the
// hunger/decay rules that act on a single entity.
package agents

import (
	"github.com/talgya/mini-colony/internal/arena"
	"github.com/talgya/mini-colony/internal/catalog"
	"github.com/talgya/mini-colony/internal/world"
)

// Entity is anything that occupies the entity collection. *Agent and
// *Resource implement it through their embedded Body.
type Entity interface {
	Base() *Body
}

// Body is the state every entity shares.
type Body struct {
	Species catalog.Species `json:"species"`
	Pos     world.Coord     `json:"pos"`
	HP      int             `json:"hp"`
	MaxHP   int             `json:"max_hp"`

	// DeathProcessed is set once the drop cascade has run. It is the only
	// guard against running it twice.
	DeathProcessed bool `json:"death_processed"`
}

// Base returns the body itself.
func (b *Body) Base() *Body { return b }

// Alive reports whether HP is above zero.
func (b *Body) Alive() bool { return b.HP > 0 }

// Damage subtracts n HP, flooring at zero, and returns the HP actually lost.
func (b *Body) Damage(n int) int {
	if n <= 0 {
		return 0
	}
	if n > b.HP {
		n = b.HP
	}
	b.HP -= n
	return n
}

// Heal adds n HP, capped at MaxHP, and returns the HP actually gained.
func (b *Body) Heal(n int) int {
	if n <= 0 {
		return 0
	}
	if b.HP+n > b.MaxHP {
		n = b.MaxHP - b.HP
	}
	b.HP += n
	return n
}

// Resource is static world decor that can be harvested: bushes, trees.
type Resource struct {
	Body
}

// Errand records why an agent is pursuing its current target.
type Errand uint8

const (
	ErrandNone   Errand = iota
	ErrandFood          // Pursuit started from hunger
	ErrandGather        // Pursuit started from idle gathering
	ErrandFlight        // Wandering away from a threat
)

// BlockedTarget remembers a target that repeatedly defeated pathing.
type BlockedTarget struct {
	Handle   arena.Handle `json:"handle"`
	IsItem   bool         `json:"is_item"`
	Cooldown int          `json:"cooldown"`
}

// Excludes reports whether h (an item handle when isItem) is currently blocked.
func (b BlockedTarget) Excludes(h arena.Handle, isItem bool) bool {
	return b.Cooldown > 0 && b.IsItem == isItem && b.Handle == h
}

// Agent is an entity with behavioral state: colonists, herbivores, predators.
type Agent struct {
	Body

	Action      Action `json:"action"`
	ActionTimer int    `json:"action_timer"`
	Errand      Errand `json:"errand"`

	AttackCooldown     int `json:"attack_cooldown"`
	MoveCooldown       int `json:"move_cooldown"`
	PostActionCooldown int `json:"post_action_cooldown"`
	DecayTimer         int `json:"decay_timer"`

	Target     arena.Handle `json:"target"`      // Entity being hunted or attacked
	TargetItem arena.Handle `json:"target_item"` // Ground item being fetched or eaten
	EatSlot    int          `json:"eat_slot"`    // Inventory slot being eaten from, -1 for ground

	WanderDest             world.Coord `json:"wander_dest"`
	WanderStepsLeft        int         `json:"wander_steps_left"`
	MustCompleteWanderStep bool        `json:"must_complete_wander_step"`
	EscapeRetries          int         `json:"escape_retries"`
	Stranded               bool        `json:"stranded"` // Escape gave up; sits out PostActionCooldown

	PathAttempts int           `json:"path_attempts"`
	Blocked      BlockedTarget `json:"blocked"`

	Inventory Inventory `json:"inventory"`
}

// ClearTargets drops every transient target reference and the pathing
// counter tied to them.
func (a *Agent) ClearTargets() {
	a.Target = arena.Handle{}
	a.TargetItem = arena.Handle{}
	a.EatSlot = -1
	a.PathAttempts = 0
	a.Errand = ErrandNone
}

// SetTarget points the agent at an entity and resets the pathing counter.
func (a *Agent) SetTarget(h arena.Handle, errand Errand) {
	a.ClearTargets()
	a.Target = h
	a.Errand = errand
}

// SetTargetItem points the agent at a ground item and resets the pathing counter.
func (a *Agent) SetTargetItem(h arena.Handle, errand Errand) {
	a.ClearTargets()
	a.TargetItem = h
	a.Errand = errand
}

// BlockTarget records the current target as blocked for cooldown ticks.
func (a *Agent) BlockTarget(h arena.Handle, isItem bool, cooldown int) {
	a.Blocked = BlockedTarget{Handle: h, IsItem: isItem, Cooldown: cooldown}
}

// TickTimers counts the attack, post-action and blocked-target cooldowns
// down by one tick. The movement cooldown runs down only while stepping.
func (a *Agent) TickTimers() {
	if a.AttackCooldown > 0 {
		a.AttackCooldown--
	}
	if a.PostActionCooldown > 0 {
		a.PostActionCooldown--
	}
	if a.Blocked.Cooldown > 0 {
		a.Blocked.Cooldown--
		if a.Blocked.Cooldown == 0 {
			a.Blocked = BlockedTarget{}
		}
	}
}
