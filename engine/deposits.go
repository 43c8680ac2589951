package engine

import (
	"cmp"
	"log/slog"
	"slices"
	"strings"
)

const depositSuffix = " deposit"

// Deposit is a resource location. Only the id and position are kept;
// deposits do not move.
type Deposit struct {
	ID       uint32
	Position int
}

// DepositIndex groups deposits by resource, nearest to the main base first.
// It is a cache: it stays as built until Invalidate is called.
type DepositIndex struct {
	groups map[string][]Deposit
	built  bool
	sorted bool
}

// Valid reports whether the index has been built since the last Invalidate.
func (d *DepositIndex) Valid() bool { return d.built }

// Sorted reports whether the groups are ordered by distance to the base.
func (d *DepositIndex) Sorted() bool { return d.sorted }

func (d *DepositIndex) Invalidate() {
	d.groups = nil
	d.built = false
	d.sorted = false
}

// ResourceOf returns the resource of a deposit name ("metal deposit" is
// "metal"), or false for names that are not deposits.
func ResourceOf(name string) (string, bool) {
	res, ok := strings.CutSuffix(name, depositSuffix)
	if !ok || res == "" {
		return "", false
	}
	return res, true
}

// Build scans every entity regardless of owner. With a known base position
// each group is sorted by estimated distance from it; without one the
// groups are left in snapshot order.
func (d *DepositIndex) Build(w World, protos *PrototypeIndex, basePos int, hasBase bool) {
	groups := make(map[string][]Deposit)
	for _, e := range w.AllEntities() {
		pid, ok := e.ProtoID()
		if !ok {
			continue
		}
		res, ok := ResourceOf(protos.Name(pid))
		if !ok {
			continue
		}
		pos, ok := e.Tile()
		if !ok {
			continue
		}
		groups[res] = append(groups[res], Deposit{ID: e.ID, Position: pos})
	}

	if hasBase {
		for _, g := range groups {
			slices.SortStableFunc(g, func(a, b Deposit) int {
				return cmp.Compare(w.DistanceEstimate(basePos, a.Position), w.DistanceEstimate(basePos, b.Position))
			})
		}
	}

	d.groups = groups
	d.built = true
	d.sorted = hasBase
	slog.Info("deposit index built", "resources", len(groups), "sorted", hasBase)
}

// Nearest returns the deposits of a resource, nearest first when Sorted.
func (d *DepositIndex) Nearest(resource string) []Deposit {
	return d.groups[resource]
}

// Counts returns the number of deposits per resource.
func (d *DepositIndex) Counts() map[string]int {
	out := make(map[string]int, len(d.groups))
	for res, g := range d.groups {
		out[res] = len(g)
	}
	return out
}

// Neighbors reports whether pos is on or next to a deposit of resource.
func (d *DepositIndex) Neighbors(w World, resource string, pos int) bool {
	group := d.groups[resource]
	if len(group) == 0 {
		return false
	}
	adjacent := w.Neighbors(pos)
	for _, dep := range group {
		if dep.Position == pos || slices.Contains(adjacent, dep.Position) {
			return true
		}
	}
	return false
}
