package agents

import "github.com/talgya/mini-colony/internal/catalog"

// Slot holds one stack. Item is catalog.ItemNone when the slot is empty.
type Slot struct {
	Item catalog.ItemType `json:"item"`
	Qty  int              `json:"qty"`
}

// IsEmpty reports whether the slot holds nothing.
func (s Slot) IsEmpty() bool {
	return s.Item == catalog.ItemNone || s.Qty <= 0
}

// Inventory is a fixed-length slot array. Its length never changes after
// NewInventory.
type Inventory struct {
	Slots []Slot `json:"slots"`
}

// NewInventory creates an inventory with n empty slots.
func NewInventory(n int) Inventory {
	if n < 0 {
		n = 0
	}
	return Inventory{Slots: make([]Slot, n)}
}

// Add places qty units of item, topping up existing stacks of the same type
// left to right before opening empty slots, never exceeding limit per slot.
// It reports whether every unit was placed. Units placed before running out
// of room stay placed.
func (inv *Inventory) Add(item catalog.ItemType, qty, limit int) bool {
	if item == catalog.ItemNone || qty <= 0 {
		return qty <= 0
	}
	if limit < 1 {
		return false
	}

	remaining := qty
	for i := range inv.Slots {
		if remaining == 0 {
			break
		}
		s := &inv.Slots[i]
		if s.Item != item || s.Qty >= limit {
			continue
		}
		n := min(limit-s.Qty, remaining)
		s.Qty += n
		remaining -= n
	}
	for i := range inv.Slots {
		if remaining == 0 {
			break
		}
		s := &inv.Slots[i]
		if !s.IsEmpty() {
			continue
		}
		n := min(limit, remaining)
		*s = Slot{Item: item, Qty: n}
		remaining -= n
	}
	return remaining == 0
}

// Remove takes up to qty units from slot and returns how many were taken.
// A slot that reaches zero is cleared. Out-of-range slots yield zero.
func (inv *Inventory) Remove(slot, qty int) int {
	if slot < 0 || slot >= len(inv.Slots) || qty <= 0 {
		return 0
	}
	s := &inv.Slots[slot]
	if s.IsEmpty() {
		*s = Slot{}
		return 0
	}
	n := min(qty, s.Qty)
	s.Qty -= n
	if s.Qty == 0 {
		*s = Slot{}
	}
	return n
}

// Find returns the first slot holding item, or -1.
func (inv *Inventory) Find(item catalog.ItemType) int {
	return inv.FindFunc(func(t catalog.ItemType) bool { return t == item })
}

// FindFunc returns the first occupied slot whose item satisfies match, or -1.
func (inv *Inventory) FindFunc(match func(catalog.ItemType) bool) int {
	for i, s := range inv.Slots {
		if !s.IsEmpty() && match(s.Item) {
			return i
		}
	}
	return -1
}

// Count returns the total units of item across all slots.
func (inv *Inventory) Count(item catalog.ItemType) int {
	total := 0
	for _, s := range inv.Slots {
		if s.Item == item {
			total += s.Qty
		}
	}
	return total
}

// IsEmpty returns true if every slot is empty.
func (inv *Inventory) IsEmpty() bool {
	for _, s := range inv.Slots {
		if !s.IsEmpty() {
			return false
		}
	}
	return true
}

// Clear empties every slot.
func (inv *Inventory) Clear() {
	for i := range inv.Slots {
		inv.Slots[i] = Slot{}
	}
}
