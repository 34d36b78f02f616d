package engine

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/talgya/mini-colony/internal/agents"
	"github.com/talgya/mini-colony/internal/arena"
	"github.com/talgya/mini-colony/internal/catalog"
	"github.com/talgya/mini-colony/internal/tuning"
	"github.com/talgya/mini-colony/internal/world"
)

func newTestSim(t *testing.T, width, height int) (*Simulation, *world.Grid) {
	t.Helper()
	rules := tuning.MustDefault()
	g := world.NewGrid(width, height, world.TerrainPlains, 0)
	return NewSimulation(NewWorld(g, rules), rules, rand.New(rand.NewSource(1))), g
}

// addAgent places an agent whose HP never decays during a test.
func addAgent(s *Simulation, species catalog.Species, x, y int) (arena.Handle, *agents.Agent) {
	a := agents.NewAgent(s.Rules, species, world.Coord{X: x, Y: y})
	a.DecayTimer = 1 << 20
	return s.World.AddEntity(a), a
}

func addResource(s *Simulation, species catalog.Species, x, y int) (arena.Handle, *agents.Resource) {
	r := agents.NewResource(s.Rules, species, world.Coord{X: x, Y: y})
	return s.World.AddEntity(r), r
}

func addItem(t *testing.T, s *Simulation, it catalog.ItemType, x, y int) arena.Handle {
	t.Helper()
	h, err := s.World.SpawnItem(it, world.Coord{X: x, Y: y})
	if err != nil {
		t.Fatalf("spawn %s: %v", it, err)
	}
	return h
}

func countItems(s *Simulation, t catalog.ItemType) int {
	n := 0
	for _, it := range s.World.Items.All() {
		if (*it).Type == t {
			n++
		}
	}
	return n
}

func TestHungerCrossingStartsSeekingFood(t *testing.T) {
	for _, start := range []agents.Action{agents.ActionIdle, agents.ActionWandering} {
		t.Run(start.String(), func(t *testing.T) {
			s, _ := newTestSim(t, 10, 10)
			_, sheep := addAgent(s, catalog.SpeciesSheep, 5, 5)
			sheep.MaxHP = 100
			sheep.HP = 79
			sheep.Action = start
			sheep.WanderDest = world.Coord{X: 9, Y: 9}
			sheep.WanderStepsLeft = 5

			s.Step(1)

			if sheep.Action != agents.ActionSeekingFood {
				t.Fatalf("expected seeking_food, got %s", sheep.Action)
			}
		})
	}
}

func TestHungerAtThresholdDoesNotSeek(t *testing.T) {
	s, _ := newTestSim(t, 10, 10)
	_, sheep := addAgent(s, catalog.SpeciesSheep, 5, 5)
	sheep.MaxHP = 100
	sheep.HP = 80

	s.Step(1)

	if sheep.Action == agents.ActionSeekingFood {
		t.Fatalf("expected 80/100 to stay out of seeking_food")
	}
}

func TestHarvestToZeroDropsOneBurst(t *testing.T) {
	s, _ := newTestSim(t, 10, 10)
	_, sheep := addAgent(s, catalog.SpeciesSheep, 4, 4)
	bushH, bush := addResource(s, catalog.SpeciesBush, 5, 4)
	bush.HP = 20
	sheep.SetTarget(bushH, agents.ErrandFood)
	sheep.Action = agents.ActionAttacking

	s.Step(1)

	if bush.HP != 0 || !bush.DeathProcessed {
		t.Fatalf("expected processed dead bush, got hp=%d processed=%v", bush.HP, bush.DeathProcessed)
	}
	if _, ok := s.World.Entity(bushH); ok {
		t.Fatalf("expected bush to be removed after processing")
	}
	want := s.Rules.Drops[catalog.SpeciesBush].Count
	if got := countItems(s, catalog.ItemBerries); got != want || s.World.Items.Len() != want {
		t.Fatalf("expected exactly %d berries, got %d of %d items", want, got, s.World.Items.Len())
	}
	for _, it := range s.World.Items.All() {
		if !world.Adjacent((*it).Pos, bush.Pos) {
			t.Fatalf("expected drop adjacent to %s, got %s", bush.Pos, (*it).Pos)
		}
	}
	if s.Stats.Deaths[catalog.SpeciesBush] != 1 || s.Stats.Harvests != 1 {
		t.Fatalf("unexpected stats: %+v", s.Stats)
	}
	if sheep.Action != agents.ActionSeekingFood || !sheep.Target.IsZero() {
		t.Fatalf("expected sheep to go back to seeking food, got %s target=%v", sheep.Action, sheep.Target)
	}
}

func TestDropFallsBackToDeathTile(t *testing.T) {
	s, _ := newTestSim(t, 1, 1)
	_, bush := addResource(s, catalog.SpeciesBush, 0, 0)
	bush.HP = 0

	if !s.ProcessDeath(bush) {
		t.Fatalf("expected first call to process")
	}
	for _, it := range s.World.Items.All() {
		if (*it).Pos != bush.Pos {
			t.Fatalf("expected fallback to death tile, got %s", (*it).Pos)
		}
	}
	if s.World.Items.Len() != s.Rules.Drops[catalog.SpeciesBush].Count {
		t.Fatalf("expected %d items, got %d", s.Rules.Drops[catalog.SpeciesBush].Count, s.World.Items.Len())
	}
}

func TestProcessDeathRunsOnce(t *testing.T) {
	s, _ := newTestSim(t, 10, 10)
	_, peon := addAgent(s, catalog.SpeciesPeon, 5, 5)
	peon.Inventory.Add(catalog.ItemWood, 2, 20)
	peon.Inventory.Add(catalog.ItemMeat, 1, 5)

	if s.ProcessDeath(peon) {
		t.Fatalf("expected a living entity not to be processed")
	}
	peon.HP = 0
	if !s.ProcessDeath(peon) {
		t.Fatalf("expected first call to process")
	}
	if s.ProcessDeath(peon) {
		t.Fatalf("expected second call to be a no-op")
	}

	// Remains plus one meat from the drop table, then three inventory units.
	if got := s.World.Items.Len(); got != 5 {
		t.Fatalf("expected 5 items, got %d", got)
	}
	if countItems(s, catalog.ItemPeonRemains) != 1 || countItems(s, catalog.ItemMeat) != 2 || countItems(s, catalog.ItemWood) != 2 {
		t.Fatalf("unexpected drop mix")
	}
	if !peon.Inventory.IsEmpty() {
		t.Fatalf("expected inventory drained")
	}
	if s.Stats.Deaths[catalog.SpeciesPeon] != 1 {
		t.Fatalf("expected one recorded death, got %d", s.Stats.Deaths[catalog.SpeciesPeon])
	}
}

func TestDeadEntityResolvesUntilSwept(t *testing.T) {
	s, _ := newTestSim(t, 10, 10)
	h, bush := addResource(s, catalog.SpeciesBush, 3, 3)
	bush.HP = 0

	if _, ok := s.World.Entity(h); !ok {
		t.Fatalf("expected dead entity to resolve before the sweep")
	}
	s.sweepEntities()
	if _, ok := s.World.Entity(h); ok {
		t.Fatalf("expected entity gone after the sweep")
	}
	if !bush.DeathProcessed {
		t.Fatalf("expected sweep to process before removing")
	}
}

func TestAgentDiesFromDecay(t *testing.T) {
	s, _ := newTestSim(t, 10, 10)
	_, sheep := addAgent(s, catalog.SpeciesSheep, 5, 5)
	sheep.HP = 1
	sheep.DecayTimer = 1

	s.Step(1)

	if s.World.Entities.Len() != 0 {
		t.Fatalf("expected sheep removed, %d entities remain", s.World.Entities.Len())
	}
	if countItems(s, catalog.ItemSheepCarcass) != 1 || countItems(s, catalog.ItemMeat) != 2 {
		t.Fatalf("expected carcass and two meat")
	}
}

func TestItemDecayAndSweep(t *testing.T) {
	s, _ := newTestSim(t, 10, 10)
	h := addItem(t, s, catalog.ItemMeat, 2, 2)
	it, _ := s.World.Item(h)
	it.HP = 1
	it.DecayTimer = 1
	wood := addItem(t, s, catalog.ItemWood, 3, 3)

	s.Step(1)

	if _, ok := s.World.Item(h); ok {
		t.Fatalf("expected depleted meat to be swept")
	}
	if _, ok := s.World.Item(wood); !ok {
		t.Fatalf("expected non-perishable wood to remain")
	}
	if s.World.ItemsAt(world.Coord{X: 2, Y: 2}) != 0 {
		t.Fatalf("expected tile index cleared")
	}
}

func TestItemCapacity(t *testing.T) {
	s, _ := newTestSim(t, 10, 10)
	s.Rules.MaxGroundItems = 2
	addItem(t, s, catalog.ItemWood, 1, 1)
	addItem(t, s, catalog.ItemWood, 1, 2)

	if _, err := s.World.SpawnItem(catalog.ItemWood, world.Coord{X: 1, Y: 3}); !errors.Is(err, ErrItemCapacity) {
		t.Fatalf("expected ErrItemCapacity, got %v", err)
	}
	s.spawnItem(catalog.ItemWood, world.Coord{X: 1, Y: 3})
	if s.Stats.SpawnFailures != 1 || s.World.Items.Len() != 2 {
		t.Fatalf("expected refused spawn to be counted and skipped, got %+v", s.Stats)
	}
}

func TestKillCascade(t *testing.T) {
	s, _ := newTestSim(t, 8, 8)
	_, bear := addAgent(s, catalog.SpeciesBear, 2, 2)
	sheepH, sheep := addAgent(s, catalog.SpeciesSheep, 3, 2)
	sheep.HP = 20
	bear.SetTarget(sheepH, agents.ErrandFood)
	bear.Action = agents.ActionAttacking

	s.Step(1)

	if s.Stats.Kills != 1 {
		t.Fatalf("expected one kill, got %d", s.Stats.Kills)
	}
	if _, ok := s.World.Entity(sheepH); ok {
		t.Fatalf("expected sheep removed")
	}
	if countItems(s, catalog.ItemSheepCarcass) != 1 || countItems(s, catalog.ItemMeat) != 2 {
		t.Fatalf("expected carcass and two meat, got %d items", s.World.Items.Len())
	}
	if bear.Action != agents.ActionSeekingFood || !bear.Target.IsZero() {
		t.Fatalf("expected bear back to seeking food, got %s", bear.Action)
	}
}

func TestHarvestUsesHarvestCooldown(t *testing.T) {
	s, _ := newTestSim(t, 8, 8)
	_, peon := addAgent(s, catalog.SpeciesPeon, 2, 2)
	bushH, bush := addResource(s, catalog.SpeciesBush, 3, 3)
	peon.SetTarget(bushH, agents.ErrandFood)
	peon.Action = agents.ActionAttacking

	s.Step(1)

	if bush.HP != bush.MaxHP-25 {
		t.Fatalf("expected bush hp %d, got %d", bush.MaxHP-25, bush.HP)
	}
	if peon.AttackCooldown != s.Rules.Species[catalog.SpeciesPeon].HarvestCooldown {
		t.Fatalf("expected harvest cooldown, got %d", peon.AttackCooldown)
	}
	if peon.Action != agents.ActionAttacking {
		t.Fatalf("expected to keep attacking, got %s", peon.Action)
	}
}

func TestUnmappedPairBlocksTarget(t *testing.T) {
	s, _ := newTestSim(t, 8, 8)
	_, peon := addAgent(s, catalog.SpeciesPeon, 2, 2)
	bearH, bear := addAgent(s, catalog.SpeciesBear, 3, 2)
	peon.SetTarget(bearH, agents.ErrandFood)
	peon.Action = agents.ActionAttacking

	s.Step(1)

	if bear.HP != bear.MaxHP {
		t.Fatalf("expected bear untouched, got hp=%d", bear.HP)
	}
	if peon.Action != agents.ActionIdle || !peon.Target.IsZero() {
		t.Fatalf("expected peon idle without target, got %s", peon.Action)
	}
	if !peon.Blocked.Excludes(bearH, false) {
		t.Fatalf("expected bear recorded as blocked")
	}
	if peon.AttackCooldown != 0 {
		t.Fatalf("expected no cooldown consumed, got %d", peon.AttackCooldown)
	}
}

func TestStuckPursuitBlocksAndEscapes(t *testing.T) {
	s, g := newTestSim(t, 10, 3)
	for y := 0; y < 3; y++ {
		g.SetTerrain(world.Coord{X: 5, Y: y}, world.TerrainOcean)
	}
	s.Rules.Species[catalog.SpeciesSheep].MoveChance = 0

	peonH, peon := addAgent(s, catalog.SpeciesPeon, 3, 1)
	sheepH, _ := addAgent(s, catalog.SpeciesSheep, 7, 1)
	peon.SetTarget(sheepH, agents.ErrandFood)
	peon.Action = agents.ActionHunting

	tick := uint64(0)
	for peon.Blocked.Cooldown == 0 && tick < 20 {
		tick++
		s.Step(tick)
	}

	if !peon.Blocked.Excludes(sheepH, false) {
		t.Fatalf("expected sheep blocked after %d ticks", tick)
	}
	if peon.Action != agents.ActionWandering || !peon.MustCompleteWanderStep {
		t.Fatalf("expected forced escape wander, got %s must=%v", peon.Action, peon.MustCompleteWanderStep)
	}
	if !peon.Target.IsZero() || peon.PathAttempts != 0 {
		t.Fatalf("expected targets cleared")
	}
	if s.Stats.Blocks != 1 {
		t.Fatalf("expected one block recorded, got %d", s.Stats.Blocks)
	}

	prey := []tuning.Target{{Kind: tuning.TargetEntity, Species: catalog.SpeciesSheep}}
	if _, _, ok := s.Acquire(peonH, peon, prey, 50); ok {
		t.Fatalf("expected blocked sheep to be skipped by acquisition")
	}

	for i := 0; i < s.Rules.Pathing.EscapeRetries && peon.MustCompleteWanderStep; i++ {
		tick++
		s.Step(tick)
	}
	if peon.MustCompleteWanderStep {
		t.Fatalf("expected the forced step to resolve within %d ticks", s.Rules.Pathing.EscapeRetries)
	}
}

func TestStaleTargetIsCleared(t *testing.T) {
	tests := []struct {
		name   string
		errand agents.Errand
		want   agents.Action
	}{
		{"food errand", agents.ErrandFood, agents.ActionSeekingFood},
		{"gather errand", agents.ErrandGather, agents.ActionIdle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSim(t, 10, 10)
			_, peon := addAgent(s, catalog.SpeciesPeon, 1, 1)
			sheepH, _ := addAgent(s, catalog.SpeciesSheep, 8, 8)
			peon.SetTarget(sheepH, tt.errand)
			peon.Action = agents.ActionHunting

			s.World.RemoveEntity(sheepH)
			newH, _ := addAgent(s, catalog.SpeciesSheep, 8, 8)
			if newH.Index != sheepH.Index || newH == sheepH {
				t.Fatalf("expected slot reuse with a new generation")
			}

			s.Step(1)

			if peon.Action != tt.want || !peon.Target.IsZero() {
				t.Fatalf("expected %s with no target, got %s target=%v", tt.want, peon.Action, peon.Target)
			}
		})
	}
}

// forestBand turns the first columns of g into forest so every species has
// somewhere it likes to spawn.
func forestBand(g *world.Grid, cols int) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < cols; x++ {
			g.SetTerrain(world.Coord{X: x, Y: y}, world.TerrainForest)
		}
	}
}

func TestTargetInvariantHolds(t *testing.T) {
	s, g := newTestSim(t, 16, 16)
	forestBand(g, 4)
	cfg := PopulationConfig{Peons: 4, Sheep: 8, Bears: 2, Bushes: 10, Trees: 10, Spacing: 1}
	s.Populate(g, agents.NewSpawner(s.Rules, 7), cfg, rand.New(rand.NewSource(7)))

	// Same order as Step, checking each agent as its own update returns.
	for tick := uint64(1); tick <= 600; tick++ {
		s.LastTick = tick
		for h, e := range s.World.Entities.All() {
			a, ok := (*e).(*agents.Agent)
			if !ok || a.DeathProcessed {
				continue
			}
			s.updateAgent(h, a)
			if a.HP < 0 || a.HP > a.MaxHP {
				t.Fatalf("tick %d: hp %d out of [0,%d]", tick, a.HP, a.MaxHP)
			}
			if !a.Alive() {
				continue
			}
			switch {
			case a.Action.NeedsEntityTarget():
				if _, ok := s.liveTarget(a); !ok {
					t.Fatalf("tick %d: %s %s without live target", tick, a.Species, a.Action)
				}
			case a.Action.NeedsItemTarget():
				if _, ok := s.liveItem(a); !ok {
					t.Fatalf("tick %d: %s picking up without live item", tick, a.Species)
				}
			}
		}
		s.decayItems()
		s.sweepItems()
		s.sweepEntities()

		for _, e := range s.World.Entities.All() {
			if b := (*e).Base(); !b.Alive() {
				t.Fatalf("tick %d: dead %s survived the sweep", tick, b.Species)
			}
		}
	}
}

func TestPickupFallbackRespawnsUnderAgent(t *testing.T) {
	s, _ := newTestSim(t, 8, 8)
	_, peon := addAgent(s, catalog.SpeciesPeon, 3, 3)
	for i := range peon.Inventory.Slots {
		peon.Inventory.Slots[i] = agents.Slot{Item: catalog.ItemWood, Qty: 20}
	}
	h := addItem(t, s, catalog.ItemMeat, 4, 3)
	peon.SetTargetItem(h, agents.ErrandGather)
	peon.Action = agents.ActionPickingUpItem

	s.Step(1)

	if _, ok := s.World.Item(h); ok {
		t.Fatalf("expected original item taken off the ground")
	}
	if countItems(s, catalog.ItemMeat) != 1 || s.World.ItemsAt(peon.Pos) != 1 {
		t.Fatalf("expected meat respawned under the peon")
	}
	if peon.Action != agents.ActionIdle || peon.PostActionCooldown != s.Rules.Species[catalog.SpeciesPeon].PostActionCooldown {
		t.Fatalf("expected idle with post-action cooldown, got %s/%d", peon.Action, peon.PostActionCooldown)
	}
}

func TestPickupIntoInventory(t *testing.T) {
	s, _ := newTestSim(t, 8, 8)
	_, peon := addAgent(s, catalog.SpeciesPeon, 3, 3)
	h := addItem(t, s, catalog.ItemWood, 6, 3)
	peon.SetTargetItem(h, agents.ErrandGather)
	peon.Action = agents.ActionPickingUpItem

	for tick := uint64(1); tick <= 10 && peon.Action == agents.ActionPickingUpItem; tick++ {
		s.Step(tick)
	}

	if peon.Inventory.Count(catalog.ItemWood) != 1 {
		t.Fatalf("expected one wood carried, got %d", peon.Inventory.Count(catalog.ItemWood))
	}
	if s.World.Items.Len() != 0 || s.Stats.Pickups != 1 {
		t.Fatalf("expected ground empty and one pickup, got items=%d pickups=%d", s.World.Items.Len(), s.Stats.Pickups)
	}
}

func TestEatFromGroundWaitsForTimer(t *testing.T) {
	s, _ := newTestSim(t, 8, 8)
	_, sheep := addAgent(s, catalog.SpeciesSheep, 3, 3)
	sheep.MaxHP = 100
	sheep.HP = 50
	h := addItem(t, s, catalog.ItemBerries, 4, 4)
	sheep.SetTargetItem(h, agents.ErrandFood)
	sheep.Action = agents.ActionPickingUpItem

	eatTicks := s.Rules.Species[catalog.SpeciesSheep].EatTicks
	for tick := uint64(1); tick <= uint64(eatTicks); tick++ {
		s.Step(tick)
		if sheep.Action != agents.ActionEating || sheep.HP != 50 {
			t.Fatalf("tick %d: expected eating with no gain yet, got %s hp=%d", tick, sheep.Action, sheep.HP)
		}
	}
	s.Step(uint64(eatTicks + 1))

	if sheep.HP != 50+s.Rules.Items[catalog.ItemBerries].Food {
		t.Fatalf("expected hp gain applied, got %d", sheep.HP)
	}
	if _, ok := s.World.Item(h); ok {
		t.Fatalf("expected eaten berries swept")
	}
	if sheep.Action != agents.ActionIdle {
		t.Fatalf("expected idle after eating, got %s", sheep.Action)
	}
}

func TestEatFromInventoryClampsHP(t *testing.T) {
	s, _ := newTestSim(t, 8, 8)
	_, peon := addAgent(s, catalog.SpeciesPeon, 3, 3)
	peon.MaxHP = 70
	peon.HP = 50
	peon.Inventory.Add(catalog.ItemMeat, 2, 5)

	eatTicks := s.Rules.Species[catalog.SpeciesPeon].EatTicks
	for tick := uint64(1); tick <= uint64(eatTicks+1); tick++ {
		s.Step(tick)
	}

	if peon.HP != 70 {
		t.Fatalf("expected hp clamped at 70, got %d", peon.HP)
	}
	if peon.Inventory.Count(catalog.ItemMeat) != 1 {
		t.Fatalf("expected one meat consumed, got %d left", peon.Inventory.Count(catalog.ItemMeat))
	}
	if s.Stats.Meals != 1 {
		t.Fatalf("expected one meal, got %d", s.Stats.Meals)
	}
}

func TestAcquirePriorityAndTies(t *testing.T) {
	s, _ := newTestSim(t, 20, 20)
	peonH, peon := addAgent(s, catalog.SpeciesPeon, 10, 10)
	addItem(t, s, catalog.ItemMeat, 11, 10)
	first := addItem(t, s, catalog.ItemBerries, 13, 10)
	second := addItem(t, s, catalog.ItemBerries, 7, 10)

	seek := s.Rules.Species[catalog.SpeciesPeon].Seek
	tg, h, ok := s.Acquire(peonH, peon, seek, 5)
	if !ok || tg.Item != catalog.ItemBerries {
		t.Fatalf("expected berries to win on priority, got %v ok=%v", tg, ok)
	}
	if h != first {
		t.Fatalf("expected first berries on a distance tie")
	}

	peon.BlockTarget(first, true, 10)
	if _, h, _ = s.Acquire(peonH, peon, seek, 5); h != second {
		t.Fatalf("expected blocked berries skipped")
	}

	if _, _, ok := s.Acquire(peonH, peon, seek, 0); ok {
		t.Fatalf("expected nothing within radius 0")
	}
}

func TestSeekingFoodWithNothingEscapes(t *testing.T) {
	s, _ := newTestSim(t, 20, 20)
	_, bear := addAgent(s, catalog.SpeciesBear, 10, 10)
	bear.HP = 10
	bear.Action = agents.ActionSeekingFood

	s.Step(1)

	if bear.Action != agents.ActionWandering || !bear.MustCompleteWanderStep {
		t.Fatalf("expected escape wander, got %s must=%v", bear.Action, bear.MustCompleteWanderStep)
	}
	if bear.WanderDest == bear.Pos {
		t.Fatalf("expected a non-zero escape offset")
	}
}

func TestThreatTriggersFlight(t *testing.T) {
	s, _ := newTestSim(t, 20, 20)
	_, sheep := addAgent(s, catalog.SpeciesSheep, 10, 10)
	_, bear := addAgent(s, catalog.SpeciesBear, 13, 10)
	bear.Action = agents.ActionEating
	bear.ActionTimer = 100

	s.Step(1)
	if sheep.Action != agents.ActionFleeing {
		t.Fatalf("expected fleeing, got %s", sheep.Action)
	}
	s.Step(2)
	if sheep.Action != agents.ActionWandering || sheep.Errand != agents.ErrandFlight {
		t.Fatalf("expected flight wander, got %s", sheep.Action)
	}
	if sheep.WanderDest.X >= 10 {
		t.Fatalf("expected to run away from the bear, dest %s", sheep.WanderDest)
	}
}

func TestCensus(t *testing.T) {
	s, _ := newTestSim(t, 10, 10)
	_, a := addAgent(s, catalog.SpeciesSheep, 1, 1)
	addAgent(s, catalog.SpeciesSheep, 2, 2)
	addResource(s, catalog.SpeciesBush, 3, 3)
	addItem(t, s, catalog.ItemWood, 4, 4)
	a.HP = a.MaxHP / 2

	c := s.Census()
	if c.GroundItems != 1 {
		t.Fatalf("expected 1 ground item, got %d", c.GroundItems)
	}
	for _, sc := range c.Species {
		switch sc.Species {
		case "sheep":
			if sc.Count != 2 || sc.MeanHP != 0.75 {
				t.Fatalf("unexpected sheep census: %+v", sc)
			}
		case "bush":
			if sc.Count != 1 {
				t.Fatalf("unexpected bush census: %+v", sc)
			}
		case "bear":
			if sc.Count != 0 || sc.MeanHP != 0 {
				t.Fatalf("unexpected bear census: %+v", sc)
			}
		}
	}
}

func TestPopulateIndexesStatics(t *testing.T) {
	s, g := newTestSim(t, 20, 20)
	forestBand(g, 5)
	cfg := PopulationConfig{Peons: 2, Sheep: 3, Bears: 1, Bushes: 4, Trees: 5, Spacing: 2}
	placed := s.Populate(g, agents.NewSpawner(s.Rules, 3), cfg, rand.New(rand.NewSource(3)))

	total := 0
	for _, n := range placed {
		total += n
	}
	if total != 15 || s.World.Entities.Len() != 15 {
		t.Fatalf("expected 15 entities, placed=%v len=%d", placed, s.World.Entities.Len())
	}
	for _, e := range s.World.Entities.All() {
		b := (*e).Base()
		occupied := s.World.IsTileOccupiedByStatic(b.Pos.X, b.Pos.Y)
		if want := b.Species == catalog.SpeciesTree; occupied != want {
			t.Fatalf("%s at %s: expected static occupancy %v", b.Species, b.Pos, want)
		}
	}
}
