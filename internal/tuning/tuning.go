// Package tuning loads the species, item and interaction tables that drive
// the simulation. The YAML form is keyed by names; Rules compiles it into
// array-indexed tables the engine reads every tick.
package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Tuning struct {
	MaxGroundItems int `yaml:"max_ground_items"`

	Pathing Pathing `yaml:"pathing"`
	Decay   Decay   `yaml:"decay"`

	Species      map[string]SpeciesTuning `yaml:"species"`
	Items        map[string]ItemTuning    `yaml:"items"`
	Interactions []InteractionTuning      `yaml:"interactions"`
	Drops        map[string]DropTuning    `yaml:"drops"`
}

// Pathing holds the stuck-detection and relocation constants.
type Pathing struct {
	StuckThreshold    int `yaml:"stuck_threshold"`     // Failed steps against one target before it is blocked
	BlockedCooldown   int `yaml:"blocked_cooldown"`    // Ticks a blocked target stays excluded
	EscapeRadius      int `yaml:"escape_radius"`       // Max offset of an escape wander
	EscapeRetries     int `yaml:"escape_retries"`      // Rejected escape steps before giving up
	RejectCooldownMin int `yaml:"reject_cooldown_min"` // Idle ticks after a rejected wander step
	RejectCooldownMax int `yaml:"reject_cooldown_max"`
	DropAttempts      int `yaml:"drop_attempts"` // Tries to find an empty tile for a drop
}

// Decay holds the HP decay cadence for living agents.
type Decay struct {
	Interval       int `yaml:"interval"`
	ColonistAmount int `yaml:"colonist_amount"`
	AnimalAmount   int `yaml:"animal_amount"`
}

type SpeciesTuning struct {
	MaxHP  int  `yaml:"max_hp"`
	Blocks bool `yaml:"blocks,omitempty"` // Static resources only: occupies its tile

	OpportunisticHunger int `yaml:"opportunistic_hunger,omitempty"` // Percent of max HP
	ActiveHunger        int `yaml:"active_hunger,omitempty"`        // Percent of max HP

	SightRadius  int `yaml:"sight_radius,omitempty"`
	NoticeRadius int `yaml:"notice_radius,omitempty"`
	ThreatRadius int `yaml:"threat_radius,omitempty"`

	MoveChance   float64 `yaml:"move_chance,omitempty"`
	GatherChance float64 `yaml:"gather_chance,omitempty"`
	WanderRadius int     `yaml:"wander_radius,omitempty"`
	WanderSteps  int     `yaml:"wander_steps,omitempty"`

	AttackCooldown     int `yaml:"attack_cooldown,omitempty"`
	HarvestCooldown    int `yaml:"harvest_cooldown,omitempty"`
	EatTicks           int `yaml:"eat_ticks,omitempty"`
	PostActionCooldown int `yaml:"post_action_cooldown,omitempty"`

	InventorySlots  int  `yaml:"inventory_slots,omitempty"`
	BlockedByStatic bool `yaml:"blocked_by_static,omitempty"`

	Seek    []TargetTuning `yaml:"seek,omitempty"`
	Gather  []TargetTuning `yaml:"gather,omitempty"`
	Threats []string       `yaml:"threats,omitempty"`
}

// TargetTuning names either an item type or a species to pursue.
type TargetTuning struct {
	Item    string `yaml:"item,omitempty"`
	Species string `yaml:"species,omitempty"`
}

type ItemTuning struct {
	StackLimit    int `yaml:"stack_limit"`
	Durability    int `yaml:"durability"`
	DecayInterval int `yaml:"decay_interval"` // 0 = never decays
	Food          int `yaml:"food,omitempty"` // HP restored when eaten
}

type InteractionTuning struct {
	Attacker string `yaml:"attacker"`
	Defender string `yaml:"defender"`
	Kind     string `yaml:"kind"` // "attack" or "harvest"
	Damage   int    `yaml:"damage"`
}

type DropTuning struct {
	Corpse   string `yaml:"corpse,omitempty"`
	Resource string `yaml:"resource"`
	Count    int    `yaml:"count"`
}

// Load reads a tuning file on top of Default. Top-level tables are merged by
// key; a species, item or drop entry present in the file replaces the
// default entry wholesale. A file that lists interactions replaces the
// whole interaction table.
func Load(path string) (Tuning, error) {
	t := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Default returns the built-in tuning.
func Default() Tuning {
	return Tuning{
		MaxGroundItems: 4096,
		Pathing: Pathing{
			StuckThreshold:    5,
			BlockedCooldown:   60,
			EscapeRadius:      5,
			EscapeRetries:     8,
			RejectCooldownMin: 2,
			RejectCooldownMax: 6,
			DropAttempts:      8,
		},
		Decay: Decay{
			Interval:       30,
			ColonistAmount: 1,
			AnimalAmount:   2,
		},
		Species: map[string]SpeciesTuning{
			"peon": {
				MaxHP:               100,
				OpportunisticHunger: 85,
				ActiveHunger:        60,
				SightRadius:         12,
				NoticeRadius:        5,
				ThreatRadius:        5,
				MoveChance:          0.2,
				GatherChance:        0.1,
				WanderRadius:        6,
				WanderSteps:         10,
				AttackCooldown:      3,
				HarvestCooldown:     6,
				EatTicks:            3,
				PostActionCooldown:  10,
				InventorySlots:      6,
				BlockedByStatic:     true,
				Seek: []TargetTuning{
					{Item: "berries"},
					{Item: "meat"},
					{Species: "sheep"},
					{Species: "bush"},
				},
				Gather: []TargetTuning{
					{Item: "wood"},
					{Species: "tree"},
				},
				Threats: []string{"bear"},
			},
			"sheep": {
				MaxHP:               60,
				OpportunisticHunger: 90,
				ActiveHunger:        80,
				SightRadius:         8,
				NoticeRadius:        3,
				ThreatRadius:        6,
				MoveChance:          0.3,
				WanderRadius:        4,
				WanderSteps:         6,
				AttackCooldown:      4,
				HarvestCooldown:     8,
				EatTicks:            4,
				PostActionCooldown:  8,
				InventorySlots:      1,
				BlockedByStatic:     true,
				Seek: []TargetTuning{
					{Item: "berries"},
					{Species: "bush"},
				},
				Threats: []string{"bear"},
			},
			"bear": {
				MaxHP:               150,
				OpportunisticHunger: 80,
				ActiveHunger:        55,
				SightRadius:         14,
				NoticeRadius:        6,
				MoveChance:          0.15,
				WanderRadius:        8,
				WanderSteps:         12,
				AttackCooldown:      5,
				EatTicks:            5,
				PostActionCooldown:  15,
				InventorySlots:      2,
				BlockedByStatic:     true,
				Seek: []TargetTuning{
					{Species: "peon"},
					{Species: "sheep"},
					{Item: "meat"},
				},
			},
			"bush": {MaxHP: 40},
			"tree": {MaxHP: 60, Blocks: true},
		},
		Items: map[string]ItemTuning{
			"meat":          {StackLimit: 5, Durability: 5, DecayInterval: 120, Food: 30},
			"berries":       {StackLimit: 10, Durability: 3, DecayInterval: 200, Food: 15},
			"wood":          {StackLimit: 20, Durability: 1},
			"sheep_carcass": {StackLimit: 1, Durability: 4, DecayInterval: 150},
			"bear_carcass":  {StackLimit: 1, Durability: 6, DecayInterval: 150},
			"peon_remains":  {StackLimit: 1, Durability: 10, DecayInterval: 300},
		},
		Interactions: []InteractionTuning{
			{Attacker: "bear", Defender: "peon", Kind: "attack", Damage: 20},
			{Attacker: "bear", Defender: "sheep", Kind: "attack", Damage: 25},
			{Attacker: "peon", Defender: "sheep", Kind: "attack", Damage: 10},
			{Attacker: "peon", Defender: "bush", Kind: "harvest", Damage: 25},
			{Attacker: "peon", Defender: "tree", Kind: "harvest", Damage: 15},
			{Attacker: "sheep", Defender: "bush", Kind: "harvest", Damage: 20},
		},
		Drops: map[string]DropTuning{
			"peon":  {Corpse: "peon_remains", Resource: "meat", Count: 1},
			"sheep": {Corpse: "sheep_carcass", Resource: "meat", Count: 2},
			"bear":  {Corpse: "bear_carcass", Resource: "meat", Count: 4},
			"bush":  {Resource: "berries", Count: 3},
			"tree":  {Resource: "wood", Count: 4},
		},
	}
}
