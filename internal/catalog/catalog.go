// Package catalog enumerates the species and item types that exist in the
// colony world, with their names and fixed classifications.
package catalog

import "strings"

// Species identifies what kind of entity something is.
type Species uint8

const (
	SpeciesPeon  Species = iota // Colonist
	SpeciesSheep                // Herbivore
	SpeciesBear                 // Predator
	SpeciesBush                 // Static resource: berries
	SpeciesTree                 // Static resource: wood
)

// NumSpecies is the total number of species.
const NumSpecies = 5

var speciesNames = [NumSpecies]string{"peon", "sheep", "bear", "bush", "tree"}

// String returns the lower-case species name used in tuning files and logs.
func (s Species) String() string {
	if int(s) < NumSpecies {
		return speciesNames[s]
	}
	return "unknown"
}

// IsAgent reports whether the species has behavioral state. Bushes and
// trees are world decor: they never decide, move, eat or decay.
func (s Species) IsAgent() bool {
	switch s {
	case SpeciesPeon, SpeciesSheep, SpeciesBear:
		return true
	default:
		return false
	}
}

// ParseSpecies resolves a species name (case-insensitive).
func ParseSpecies(name string) (Species, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range speciesNames {
		if n == name {
			return Species(i), true
		}
	}
	return 0, false
}

// AllSpecies returns every species in declaration order.
func AllSpecies() []Species {
	out := make([]Species, NumSpecies)
	for i := range out {
		out[i] = Species(i)
	}
	return out
}

// ItemType enumerates things that can lie on the ground or sit in an inventory.
// ItemNone marks an empty inventory slot.
type ItemType uint8

const (
	ItemNone ItemType = iota
	ItemMeat
	ItemBerries
	ItemWood
	ItemSheepCarcass
	ItemBearCarcass
	ItemPeonRemains
)

// NumItems is the number of item types including ItemNone.
const NumItems = 7

var itemNames = [NumItems]string{"none", "meat", "berries", "wood", "sheep_carcass", "bear_carcass", "peon_remains"}

func (t ItemType) String() string {
	if int(t) < NumItems {
		return itemNames[t]
	}
	return "unknown"
}

// ParseItem resolves an item name (case-insensitive). "none" is rejected.
func ParseItem(name string) (ItemType, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range itemNames {
		if i == int(ItemNone) {
			continue
		}
		if n == name {
			return ItemType(i), true
		}
	}
	return ItemNone, false
}
