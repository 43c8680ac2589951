package engine

import (
	"log/slog"

	"github.com/gdg-garage/uwapi-eve-david/config"
	"github.com/gdg-garage/uwapi-eve-david/model"
)

// EffectiveMode resolves the automatic mode from the size of the force.
// Attack and defend are returned unchanged.
func EffectiveMode(mode config.CombatMode, combatUnits, threshold int) config.CombatMode {
	switch mode {
	case config.CombatAttack, config.CombatDefend:
		return mode
	}
	if combatUnits >= threshold {
		return config.CombatAttack
	}
	return config.CombatDefend
}

// combat drives the combat force for one evaluation and returns the number
// of orders issued.
func (e *Engine) combat(w World, c Commander) int {
	units := e.CombatUnits(w)
	if len(units) == 0 {
		return 0
	}
	mode := EffectiveMode(e.cfg.Mode(), len(units), e.cfg.AttackThreshold)
	slog.Debug("combat evaluation", "step", e.step, "mode", mode, "configured", e.cfg.Mode(), "units", len(units))

	if mode == config.CombatAttack {
		return e.attack(w, c, units)
	}
	return e.defend(w, c, units)
}

func (e *Engine) attack(w World, c Commander, units []model.Entity) int {
	enemies := e.EnemyUnits(w)
	if len(enemies) == 0 {
		return 0
	}
	issued := 0
	for _, u := range units {
		if !e.orders.NeedsOrder(u, config.CombatAttack, c.OrderCount(u.ID)) {
			continue
		}
		pos, ok := u.Tile()
		if !ok {
			continue
		}
		target := nearest(w, pos, enemies)
		if err := c.FightToEntity(u.ID, target.ID); err != nil {
			slog.Debug("fight order rejected", "unit", u.ID, "target", target.ID, "error", err)
			continue
		}
		e.orders.Record(u, config.CombatAttack)
		issued++
	}
	if issued > 0 {
		slog.Debug("units attacking", "orders", issued, "enemies", len(enemies))
	}
	return issued
}

func (e *Engine) defend(w World, c Commander, units []model.Entity) int {
	base, ok := e.base(w)
	if !ok {
		return 0
	}
	issued := 0
	for _, u := range units {
		if !e.orders.NeedsOrder(u, config.CombatDefend, c.OrderCount(u.ID)) {
			continue
		}
		if err := c.RunToEntity(u.ID, base.ID); err != nil {
			slog.Debug("move order rejected", "unit", u.ID, "error", err)
			continue
		}
		e.orders.Record(u, config.CombatDefend)
		issued++
	}
	if issued > 0 {
		slog.Debug("units defending", "orders", issued)
	}
	return issued
}

// nearest returns the candidate closest to pos. candidates must be
// non-empty and positioned; ties go to the earlier candidate.
func nearest(w World, pos int, candidates []model.Entity) model.Entity {
	best := candidates[0]
	bestPos, _ := best.Tile()
	bestDist := w.DistanceEstimate(pos, bestPos)
	for _, cand := range candidates[1:] {
		p, _ := cand.Tile()
		if d := w.DistanceEstimate(pos, p); d < bestDist {
			best, bestDist = cand, d
		}
	}
	return best
}
