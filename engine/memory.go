package engine

import (
	"github.com/gdg-garage/uwapi-eve-david/config"
	"github.com/gdg-garage/uwapi-eve-david/model"
)

type orderKey struct {
	id, generation uint32
}

// OrderMemory remembers the combat mode each unit was last ordered under.
// Keys include the host's generation marker when it sends one, and
// entries of ids missing from a snapshot are dropped, so a reused id
// never inherits another unit's history.
type OrderMemory struct {
	last map[orderKey]config.CombatMode
}

func NewOrderMemory() OrderMemory {
	return OrderMemory{last: make(map[orderKey]config.CombatMode)}
}

func keyOf(e model.Entity) orderKey { return orderKey{id: e.ID, generation: e.Generation} }

// Last returns the mode the unit was last ordered under.
func (m OrderMemory) Last(e model.Entity) (config.CombatMode, bool) {
	mode, ok := m.last[keyOf(e)]
	return mode, ok
}

func (m OrderMemory) Record(e model.Entity, mode config.CombatMode) {
	m.last[keyOf(e)] = mode
}

// NeedsOrder reports whether a unit should be ordered under mode: it is
// idle, or it was last ordered under a different mode.
func (m OrderMemory) NeedsOrder(e model.Entity, mode config.CombatMode, queued int) bool {
	if queued == 0 {
		return true
	}
	last, ok := m.Last(e)
	return ok && last != mode
}

// Prune drops entries whose id is absent from the snapshot.
func (m OrderMemory) Prune(entities []model.Entity) int {
	if len(m.last) == 0 {
		return 0
	}
	alive := make(map[orderKey]bool, len(entities))
	for _, e := range entities {
		alive[keyOf(e)] = true
	}
	n := 0
	for k := range m.last {
		if !alive[k] {
			delete(m.last, k)
			n++
		}
	}
	return n
}

func (m OrderMemory) Len() int { return len(m.last) }
