package engine

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/gdg-garage/uwapi-eve-david/model"
	"github.com/gdg-garage/uwapi-eve-david/rules"
)

// plan runs one build planning pass over the strategy's goals in priority
// order and returns the number of placements sent.
func (e *Engine) plan(w World, c Commander) int {
	if !e.protos.Built() {
		return 0
	}
	guard := e.cfg.SingleConstruction
	if guard {
		if pending := e.OwnConstructions(w); len(pending) > 0 {
			slog.Debug("construction outstanding, skipping build pass", "pending", len(pending))
			return 0
		}
	}

	_, hasBase := e.base(w)
	env := rules.NewEnv(e.step, hasBase, len(e.CombatUnits(w)), e.ownCounts(w), e.deposits.Counts(), e.OwnStock(w))

	placed := 0
	for _, g := range e.strategy.Goals {
		if placed > 0 && !e.cfg.ContinueAfterPlacement {
			break
		}
		ok, err := g.Allowed(env)
		if err != nil {
			slog.Warn("goal condition error", "goal", g.String(), "error", err)
			continue
		}
		if !ok {
			continue
		}
		if g.Recipe != "" {
			e.assignRecipe(w, c, g.Recipe)
		}
		if g.Target == "" || (guard && placed > 0) {
			continue
		}
		if e.advance(w, c, g) {
			placed++
		}
	}
	return placed
}

// advance tries to start one more building for g. It reports whether a
// placement command was accepted.
func (e *Engine) advance(w World, c Commander, g *rules.BuildGoal) bool {
	proto, ok := e.protos.NameToID(model.PrototypeConstruction, g.Target)
	if !ok {
		slog.Debug("no construction prototype", "goal", g.String())
		return false
	}
	limit := e.cfg.LimitFor(g.Target, g.LimitResource())
	if count := e.countFor(w, g); count >= limit {
		return false
	}

	var anchor int
	switch g.Adjacency.Kind {
	case rules.OnDeposit:
		return e.placeOnDeposit(w, c, g, proto)
	case rules.NearBase:
		anchor, ok = e.basePosition(w)
	case rules.NearBuilding:
		anchor, ok = e.anchorBuilding(w, g.Adjacency)
	default:
		return false
	}
	if !ok {
		slog.Debug("no anchor for goal", "goal", g.String(), "adjacency", g.Adjacency.Kind)
		return false
	}
	pos, ok := w.FindPlacement(proto, anchor)
	if !ok {
		slog.Debug("no placement near anchor", "goal", g.String(), "anchor", anchor)
		return false
	}
	return e.place(c, g, proto, pos)
}

// countFor counts the buildings that count against g's limit. Extractors
// only count when they stand on or next to a deposit of their resource.
func (e *Engine) countFor(w World, g *rules.BuildGoal) int {
	existing := e.OwnNamed(w, g.Target)
	res := g.LimitResource()
	if res == "" {
		return len(existing)
	}
	n := 0
	for _, b := range existing {
		if pos, ok := b.Tile(); ok && e.deposits.Neighbors(w, res, pos) {
			n++
		}
	}
	return n
}

// placeOnDeposit tries the deposits of the goal's resource nearest first
// and places on the first one the host would accept.
func (e *Engine) placeOnDeposit(w World, c Commander, g *rules.BuildGoal, proto uint32) bool {
	if !e.deposits.Valid() {
		return false
	}
	for _, d := range e.deposits.Nearest(g.Adjacency.Resource) {
		if !w.TestPlacement(proto, d.Position) {
			continue
		}
		if e.place(c, g, proto, d.Position) {
			return true
		}
	}
	return false
}

// anchorBuilding picks the own building of the required type nearest to
// the base, restricted to those next to a deposit when a resource is set.
func (e *Engine) anchorBuilding(w World, adj rules.Adjacency) (int, bool) {
	if adj.Resource != "" && !e.deposits.Valid() {
		return 0, false
	}
	var candidates []int
	for _, b := range e.OwnNamed(w, adj.Building) {
		pos, ok := b.Tile()
		if !ok {
			continue
		}
		if adj.Resource != "" && !e.deposits.Neighbors(w, adj.Resource, pos) {
			continue
		}
		candidates = append(candidates, pos)
	}
	if len(candidates) == 0 {
		return 0, false
	}
	if basePos, ok := e.basePosition(w); ok {
		slices.SortStableFunc(candidates, func(a, b int) int {
			return cmp.Compare(w.DistanceEstimate(basePos, a), w.DistanceEstimate(basePos, b))
		})
	}
	return candidates[0], true
}

func (e *Engine) place(c Commander, g *rules.BuildGoal, proto uint32, pos int) bool {
	if err := c.PlaceConstruction(proto, pos); err != nil {
		slog.Debug("placement rejected", "goal", g.String(), "position", pos, "error", err)
		return false
	}
	slog.Info("construction placed", "goal", g.String(), "position", pos, "step", e.step)
	return true
}

// assignRecipe sets the named recipe on every own unit that offers it and
// is not already producing it.
func (e *Engine) assignRecipe(w World, c Commander, name string) {
	for _, u := range e.OwnUnits(w) {
		pid, _ := u.ProtoID()
		proto, ok := e.protos.Prototype(pid)
		if !ok {
			continue
		}
		r, ok := proto.RecipeNamed(name)
		if !ok || u.CurrentRecipe() == r.ID {
			continue
		}
		if err := c.SetRecipe(u.ID, r.ID); err != nil {
			slog.Debug("recipe rejected", "unit", u.ID, "recipe", name, "error", err)
			continue
		}
		slog.Info("recipe assigned", "unit", u.ID, "recipe", name)
	}
}
