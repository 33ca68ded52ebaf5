package stock

import "github.com/google/uuid"

// PickingSet is an ordered set of pickings. Every core operation accepts a
// set of 1..N documents and applies itself per element, with set-level
// precondition checks performed up front. Membership is by ID; insertion
// order is preserved so batch results stay deterministic.
type PickingSet struct {
	ids   map[uuid.UUID]struct{}
	items []*Picking
}

// NewPickingSet creates a set from the given pickings, dropping duplicates
func NewPickingSet(pickings ...*Picking) *PickingSet {
	s := &PickingSet{ids: make(map[uuid.UUID]struct{}, len(pickings))}
	for _, p := range pickings {
		s.Add(p)
	}
	return s
}

// Add inserts a picking if not already present; returns true when inserted
func (s *PickingSet) Add(p *Picking) bool {
	if p == nil {
		return false
	}
	if _, ok := s.ids[p.ID]; ok {
		return false
	}
	s.ids[p.ID] = struct{}{}
	s.items = append(s.items, p)
	return true
}

// Contains reports whether a picking with the given ID is in the set
func (s *PickingSet) Contains(id uuid.UUID) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of pickings in the set
func (s *PickingSet) Len() int {
	return len(s.items)
}

// Items returns the pickings in insertion order. The returned slice is
// shared; callers must not mutate it.
func (s *PickingSet) Items() []*Picking {
	return s.items
}

// IDs returns the picking IDs in insertion order
func (s *PickingSet) IDs() []uuid.UUID {
	out := make([]uuid.UUID, len(s.items))
	for i, p := range s.items {
		out[i] = p.ID
	}
	return out
}

// Moves collects all moves owned by pickings in the set, in set order
func (s *PickingSet) Moves() []*Move {
	var moves []*Move
	for _, p := range s.items {
		moves = append(moves, p.Moves...)
	}
	return moves
}

// Filter returns a new set with the pickings matching pred, keeping order
func (s *PickingSet) Filter(pred func(*Picking) bool) *PickingSet {
	out := NewPickingSet()
	for _, p := range s.items {
		if pred(p) {
			out.Add(p)
		}
	}
	return out
}
