// Package arena provides a generation-tagged slot map. Values are addressed
// by Handle; removing a value bumps its slot's generation so every handle
// still pointing at the old occupant stops resolving instead of silently
// aliasing whatever is stored there next.
package arena

import "iter"

// Handle is a weak reference into an Arena. The zero Handle never resolves.
type Handle struct {
	Index uint32 `json:"index"`
	Gen   uint32 `json:"gen"`
}

// IsZero reports whether h is the empty handle.
func (h Handle) IsZero() bool { return h.Gen == 0 }

type slot[T any] struct {
	value T
	gen   uint32
	live  bool
}

// Arena stores values of type T in stable slots with a free list.
// Slot generations start at 1 so the zero Handle is always stale.
type Arena[T any] struct {
	slots []slot[T]
	free  []uint32
	count int
}

// New returns an empty arena with room for capacity values before growing.
func New[T any](capacity int) *Arena[T] {
	return &Arena[T]{slots: make([]slot[T], 0, capacity)}
}

// Insert stores v and returns its handle. Freed slots are reused, lowest
// index last-freed first.
func (a *Arena[T]) Insert(v T) Handle {
	a.count++
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[idx]
		s.value = v
		s.live = true
		return Handle{Index: idx, Gen: s.gen}
	}
	a.slots = append(a.slots, slot[T]{value: v, gen: 1, live: true})
	return Handle{Index: uint32(len(a.slots) - 1), Gen: 1}
}

// Get returns a pointer to the value behind h, or false if h is stale,
// zero or out of range. The pointer is invalidated by the next Insert.
func (a *Arena[T]) Get(h Handle) (*T, bool) {
	if h.Gen == 0 || int(h.Index) >= len(a.slots) {
		return nil, false
	}
	s := &a.slots[h.Index]
	if !s.live || s.gen != h.Gen {
		return nil, false
	}
	return &s.value, true
}

// Contains reports whether h currently resolves.
func (a *Arena[T]) Contains(h Handle) bool {
	_, ok := a.Get(h)
	return ok
}

// Remove frees the slot behind h and returns the value it held.
func (a *Arena[T]) Remove(h Handle) (T, bool) {
	var zero T
	if _, ok := a.Get(h); !ok {
		return zero, false
	}
	s := &a.slots[h.Index]
	v := s.value
	s.value = zero
	s.live = false
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	a.free = append(a.free, h.Index)
	a.count--
	return v, true
}

// Len returns the number of live values.
func (a *Arena[T]) Len() int { return a.count }

// All iterates live values in slot order. The order is deterministic for a
// given history of inserts and removes. Inserting during iteration is safe;
// values inserted into new slots are visited, values reusing freed slots
// behind the cursor are not.
func (a *Arena[T]) All() iter.Seq2[Handle, *T] {
	return func(yield func(Handle, *T) bool) {
		for i := 0; i < len(a.slots); i++ {
			s := &a.slots[i]
			if !s.live {
				continue
			}
			if !yield(Handle{Index: uint32(i), Gen: s.gen}, &s.value) {
				return
			}
		}
	}
}

// Handles returns a snapshot of live handles in slot order.
func (a *Arena[T]) Handles() []Handle {
	out := make([]Handle, 0, a.count)
	for h := range a.All() {
		out = append(out, h)
	}
	return out
}
