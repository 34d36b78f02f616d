package tuning

import (
	"errors"
	"fmt"

	"github.com/talgya/mini-colony/internal/catalog"
)

var (
	ErrUnknownSpecies = errors.New("unknown species")
	ErrUnknownItem    = errors.New("unknown item")
	ErrInvalid        = errors.New("invalid tuning")
)

// TargetKind says which collection a pursuit target lives in.
type TargetKind uint8

const (
	TargetItem   TargetKind = iota // Ground item of a given type
	TargetEntity                   // Entity of a given species
)

// Target is one entry of a priority table.
type Target struct {
	Kind    TargetKind
	Item    catalog.ItemType
	Species catalog.Species
}

func (t Target) String() string {
	if t.Kind == TargetItem {
		return "item:" + t.Item.String()
	}
	return "entity:" + t.Species.String()
}

// InteractionKind classifies a (attacker, defender) pair.
type InteractionKind uint8

const (
	InteractionUnmapped InteractionKind = iota // Pair absent from the table
	InteractionAttack
	InteractionHarvest
)

// Interaction is one cell of the damage table.
type Interaction struct {
	Kind   InteractionKind
	Damage int
}

type SpeciesRules struct {
	MaxHP  int
	Blocks bool

	OpportunisticHunger int
	ActiveHunger        int

	SightRadius  int
	NoticeRadius int
	ThreatRadius int

	MoveChance   float64
	GatherChance float64
	WanderRadius int
	WanderSteps  int

	AttackCooldown     int
	HarvestCooldown    int
	EatTicks           int
	PostActionCooldown int

	InventorySlots  int
	BlockedByStatic bool

	Seek    []Target
	Gather  []Target
	Threats []catalog.Species
}

type ItemRules struct {
	StackLimit    int
	Durability    int
	DecayInterval int
	Food          int
}

// Drop is what an entity leaves behind on death.
type Drop struct {
	Corpse   catalog.ItemType // ItemNone for no corpse
	Resource catalog.ItemType
	Count    int
}

// Rules is the compiled, validated form of Tuning.
type Rules struct {
	MaxGroundItems int
	Pathing        Pathing
	Decay          Decay

	Species      [catalog.NumSpecies]SpeciesRules
	Items        [catalog.NumItems]ItemRules
	Interactions [catalog.NumSpecies][catalog.NumSpecies]Interaction
	Drops        [catalog.NumSpecies]Drop
}

// MustDefault compiles Default and panics on failure. The built-in table is
// covered by tests, so failure here is a programming error.
func MustDefault() *Rules {
	r, err := Default().Rules()
	if err != nil {
		panic(err)
	}
	return r
}

// Rules validates t and compiles it into typed tables.
func (t Tuning) Rules() (*Rules, error) {
	r := &Rules{
		MaxGroundItems: t.MaxGroundItems,
		Pathing:        t.Pathing,
		Decay:          t.Decay,
	}
	if r.MaxGroundItems <= 0 {
		return nil, fmt.Errorf("%w: max_ground_items must be positive", ErrInvalid)
	}
	if err := validatePathing(t.Pathing); err != nil {
		return nil, err
	}
	if t.Decay.Interval <= 0 || t.Decay.ColonistAmount < 0 || t.Decay.AnimalAmount < 0 {
		return nil, fmt.Errorf("%w: decay interval must be positive and amounts non-negative", ErrInvalid)
	}

	for name, it := range t.Items {
		item, ok := catalog.ParseItem(name)
		if !ok {
			return nil, fmt.Errorf("items.%s: %w", name, ErrUnknownItem)
		}
		if it.StackLimit < 1 || it.Durability < 1 || it.DecayInterval < 0 || it.Food < 0 {
			return nil, fmt.Errorf("%w: items.%s needs stack_limit>=1, durability>=1", ErrInvalid, name)
		}
		r.Items[item] = ItemRules(it)
	}
	for i := 1; i < catalog.NumItems; i++ {
		if r.Items[i].StackLimit == 0 {
			return nil, fmt.Errorf("%w: no entry for item %s", ErrInvalid, catalog.ItemType(i))
		}
	}

	for _, in := range t.Interactions {
		a, ok := catalog.ParseSpecies(in.Attacker)
		if !ok {
			return nil, fmt.Errorf("interaction attacker %q: %w", in.Attacker, ErrUnknownSpecies)
		}
		d, ok := catalog.ParseSpecies(in.Defender)
		if !ok {
			return nil, fmt.Errorf("interaction defender %q: %w", in.Defender, ErrUnknownSpecies)
		}
		var kind InteractionKind
		switch in.Kind {
		case "attack":
			kind = InteractionAttack
		case "harvest":
			kind = InteractionHarvest
		default:
			return nil, fmt.Errorf("%w: interaction %s->%s has kind %q", ErrInvalid, in.Attacker, in.Defender, in.Kind)
		}
		if in.Damage < 0 {
			return nil, fmt.Errorf("%w: interaction %s->%s has negative damage", ErrInvalid, in.Attacker, in.Defender)
		}
		r.Interactions[a][d] = Interaction{Kind: kind, Damage: in.Damage}
	}

	for name, st := range t.Species {
		s, ok := catalog.ParseSpecies(name)
		if !ok {
			return nil, fmt.Errorf("species.%s: %w", name, ErrUnknownSpecies)
		}
		sr, err := compileSpecies(s, st)
		if err != nil {
			return nil, err
		}
		r.Species[s] = sr
	}
	for _, s := range catalog.AllSpecies() {
		if r.Species[s].MaxHP <= 0 {
			return nil, fmt.Errorf("%w: species %s needs max_hp", ErrInvalid, s)
		}
		for _, list := range [][]Target{r.Species[s].Seek, r.Species[s].Gather} {
			for _, tg := range list {
				if tg.Kind == TargetEntity && r.Interactions[s][tg.Species].Kind == InteractionUnmapped {
					return nil, fmt.Errorf("%w: %s pursues %s but no interaction is defined", ErrInvalid, s, tg.Species)
				}
			}
		}
	}

	for name, dt := range t.Drops {
		s, ok := catalog.ParseSpecies(name)
		if !ok {
			return nil, fmt.Errorf("drops.%s: %w", name, ErrUnknownSpecies)
		}
		var d Drop
		if dt.Corpse != "" {
			if d.Corpse, ok = catalog.ParseItem(dt.Corpse); !ok {
				return nil, fmt.Errorf("drops.%s.corpse %q: %w", name, dt.Corpse, ErrUnknownItem)
			}
		}
		if d.Resource, ok = catalog.ParseItem(dt.Resource); !ok {
			return nil, fmt.Errorf("drops.%s.resource %q: %w", name, dt.Resource, ErrUnknownItem)
		}
		if dt.Count < 0 {
			return nil, fmt.Errorf("%w: drops.%s.count is negative", ErrInvalid, name)
		}
		d.Count = dt.Count
		r.Drops[s] = d
	}

	return r, nil
}

func validatePathing(p Pathing) error {
	switch {
	case p.StuckThreshold < 1:
		return fmt.Errorf("%w: pathing.stuck_threshold must be at least 1", ErrInvalid)
	case p.BlockedCooldown < 1:
		return fmt.Errorf("%w: pathing.blocked_cooldown must be at least 1", ErrInvalid)
	case p.EscapeRadius < 1:
		return fmt.Errorf("%w: pathing.escape_radius must be at least 1", ErrInvalid)
	case p.RejectCooldownMin < 0 || p.RejectCooldownMax < p.RejectCooldownMin:
		return fmt.Errorf("%w: pathing reject cooldown range is empty", ErrInvalid)
	case p.DropAttempts < 0:
		return fmt.Errorf("%w: pathing.drop_attempts is negative", ErrInvalid)
	}
	return nil
}

func compileSpecies(s catalog.Species, st SpeciesTuning) (SpeciesRules, error) {
	sr := SpeciesRules{
		MaxHP:               st.MaxHP,
		Blocks:              st.Blocks,
		OpportunisticHunger: st.OpportunisticHunger,
		ActiveHunger:        st.ActiveHunger,
		SightRadius:         st.SightRadius,
		NoticeRadius:        st.NoticeRadius,
		ThreatRadius:        st.ThreatRadius,
		MoveChance:          st.MoveChance,
		GatherChance:        st.GatherChance,
		WanderRadius:        st.WanderRadius,
		WanderSteps:         st.WanderSteps,
		AttackCooldown:      st.AttackCooldown,
		HarvestCooldown:     st.HarvestCooldown,
		EatTicks:            st.EatTicks,
		PostActionCooldown:  st.PostActionCooldown,
		InventorySlots:      st.InventorySlots,
		BlockedByStatic:     st.BlockedByStatic,
	}
	if !s.IsAgent() {
		return sr, nil
	}

	if st.ActiveHunger < 0 || st.OpportunisticHunger > 100 || st.ActiveHunger > st.OpportunisticHunger {
		return sr, fmt.Errorf("%w: species.%s needs 0 <= active_hunger <= opportunistic_hunger <= 100", ErrInvalid, s)
	}
	if st.InventorySlots < 1 || st.EatTicks < 1 || st.WanderRadius < 1 {
		return sr, fmt.Errorf("%w: species.%s needs inventory_slots, eat_ticks and wander_radius of at least 1", ErrInvalid, s)
	}
	if st.MoveChance < 0 || st.MoveChance > 1 || st.GatherChance < 0 || st.GatherChance > 1 {
		return sr, fmt.Errorf("%w: species.%s chances must be within [0,1]", ErrInvalid, s)
	}

	var err error
	if sr.Seek, err = compileTargets(s, "seek", st.Seek); err != nil {
		return sr, err
	}
	if sr.Gather, err = compileTargets(s, "gather", st.Gather); err != nil {
		return sr, err
	}
	for _, name := range st.Threats {
		th, ok := catalog.ParseSpecies(name)
		if !ok {
			return sr, fmt.Errorf("species.%s.threats %q: %w", s, name, ErrUnknownSpecies)
		}
		sr.Threats = append(sr.Threats, th)
	}
	return sr, nil
}

func compileTargets(s catalog.Species, field string, in []TargetTuning) ([]Target, error) {
	out := make([]Target, 0, len(in))
	for _, tt := range in {
		switch {
		case tt.Item != "" && tt.Species == "":
			item, ok := catalog.ParseItem(tt.Item)
			if !ok {
				return nil, fmt.Errorf("species.%s.%s %q: %w", s, field, tt.Item, ErrUnknownItem)
			}
			out = append(out, Target{Kind: TargetItem, Item: item})
		case tt.Species != "" && tt.Item == "":
			sp, ok := catalog.ParseSpecies(tt.Species)
			if !ok {
				return nil, fmt.Errorf("species.%s.%s %q: %w", s, field, tt.Species, ErrUnknownSpecies)
			}
			if sp == s {
				return nil, fmt.Errorf("%w: species.%s.%s targets its own species", ErrInvalid, s, field)
			}
			out = append(out, Target{Kind: TargetEntity, Species: sp})
		default:
			return nil, fmt.Errorf("%w: species.%s.%s entries need exactly one of item or species", ErrInvalid, s, field)
		}
	}
	return out, nil
}

// Interaction looks up the damage table.
func (r *Rules) Interaction(attacker, defender catalog.Species) Interaction {
	if int(attacker) >= catalog.NumSpecies || int(defender) >= catalog.NumSpecies {
		return Interaction{}
	}
	return r.Interactions[attacker][defender]
}

// DecayAmount returns the HP lost per decay interval for species s.
// Static species never decay.
func (r *Rules) DecayAmount(s catalog.Species) int {
	switch {
	case s == catalog.SpeciesPeon:
		return r.Decay.ColonistAmount
	case s.IsAgent():
		return r.Decay.AnimalAmount
	default:
		return 0
	}
}

// IsFood reports whether an item restores HP when eaten.
func (r *Rules) IsFood(t catalog.ItemType) bool {
	return int(t) < catalog.NumItems && r.Items[t].Food > 0
}

// StackLimit returns the per-slot cap for an item type.
func (r *Rules) StackLimit(t catalog.ItemType) int {
	if int(t) >= catalog.NumItems {
		return 0
	}
	return r.Items[t].StackLimit
}
