package model

import "math"

// The methods below let a Snapshot serve as the engine's world accessor.
// Placement checks are an approximation of the host rules (buildable tile,
// not occupied by a non-neutral entity); the host still has the last word
// when the command arrives.

func (s *Snapshot) index() {
	if s.byID != nil {
		return
	}
	s.byID = make(map[uint32]int, len(s.Entities))
	for i, e := range s.Entities {
		s.byID[e.ID] = i
	}
}

func (s *Snapshot) AllEntities() []Entity { return s.Entities }

// Entity looks up an entity by id in this tick's snapshot.
func (s *Snapshot) Entity(id uint32) (Entity, bool) {
	s.index()
	i, ok := s.byID[id]
	if !ok {
		return Entity{}, false
	}
	return s.Entities[i], true
}

func (s *Snapshot) Catalog() []Prototype { return s.Prototypes }

func (s *Snapshot) DistanceEstimate(a, b int) float64 {
	if s.Map == nil {
		return math.Inf(1)
	}
	return s.Map.Distance(a, b)
}

func (s *Snapshot) Neighbors(pos int) []int {
	return s.Map.NeighborsOf(pos)
}

// TestPlacement reports whether pos is a buildable, unoccupied tile.
func (s *Snapshot) TestPlacement(proto uint32, pos int) bool {
	t, ok := s.Map.At(pos)
	if !ok || !t.Buildable {
		return false
	}
	for _, e := range s.Entities {
		if e.Policy == PolicyNeutral {
			continue
		}
		if p, ok := e.Tile(); ok && p == pos {
			return false
		}
	}
	return true
}

// FindPlacement returns the nearest position to anchor that passes TestPlacement.
func (s *Snapshot) FindPlacement(proto uint32, anchor int) (int, bool) {
	return s.Map.Nearest(anchor, func(pos int) bool {
		return s.TestPlacement(proto, pos)
	})
}
