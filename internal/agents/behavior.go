package agents

// Action is the state an agent's behavior machine is in.
type Action uint8

const (
	ActionIdle Action = iota
	ActionWandering
	ActionSeekingFood
	ActionHunting
	ActionAttacking
	ActionEating
	ActionPickingUpItem
	ActionFleeing
)

var actionNames = [...]string{
	ActionIdle:          "idle",
	ActionWandering:     "wandering",
	ActionSeekingFood:   "seeking_food",
	ActionHunting:       "hunting",
	ActionAttacking:     "attacking",
	ActionEating:        "eating",
	ActionPickingUpItem: "picking_up_item",
	ActionFleeing:       "fleeing",
}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// NeedsEntityTarget reports whether the action is only valid while holding
// a live entity target.
func (a Action) NeedsEntityTarget() bool {
	return a == ActionHunting || a == ActionAttacking
}

// NeedsItemTarget reports whether the action is only valid while holding a
// live ground item target.
func (a Action) NeedsItemTarget() bool {
	return a == ActionPickingUpItem
}
