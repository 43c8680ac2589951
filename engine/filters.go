package engine

import (
	"github.com/gdg-garage/uwapi-eve-david/model"
)

// The filters below rescan the snapshot on every call.

func (e *Engine) ownOfType(w World, t model.PrototypeType) []model.Entity {
	var out []model.Entity
	for _, ent := range w.AllEntities() {
		if !ent.Own() {
			continue
		}
		if pid, ok := ent.ProtoID(); ok && e.protos.Is(t, pid) {
			out = append(out, ent)
		}
	}
	return out
}

// OwnConstructions returns own entities that are still construction sites.
func (e *Engine) OwnConstructions(w World) []model.Entity {
	return e.ownOfType(w, model.PrototypeConstruction)
}

// OwnUnits returns own entities with a unit prototype.
func (e *Engine) OwnUnits(w World) []model.Entity {
	return e.ownOfType(w, model.PrototypeUnit)
}

// OwnNamed returns own constructions and units whose prototype is named name.
func (e *Engine) OwnNamed(w World, name string) []model.Entity {
	var out []model.Entity
	for _, ent := range w.AllEntities() {
		if !ent.Own() {
			continue
		}
		pid, ok := ent.ProtoID()
		if !ok {
			continue
		}
		if n, ok := e.protos.IDToName(model.PrototypeConstruction, pid); ok && n == name {
			out = append(out, ent)
			continue
		}
		if n, ok := e.protos.IDToName(model.PrototypeUnit, pid); ok && n == name {
			out = append(out, ent)
		}
	}
	return out
}

// ownCounts counts own constructions and units per display name.
func (e *Engine) ownCounts(w World) map[string]int {
	counts := make(map[string]int)
	for _, ent := range w.AllEntities() {
		if !ent.Own() {
			continue
		}
		pid, ok := ent.ProtoID()
		if !ok {
			continue
		}
		if n, ok := e.protos.IDToName(model.PrototypeConstruction, pid); ok {
			counts[n]++
		} else if n, ok := e.protos.IDToName(model.PrototypeUnit, pid); ok {
			counts[n]++
		}
	}
	return counts
}

// OwnStock sums the amount carried by own entities per resource name.
func (e *Engine) OwnStock(w World) map[string]int {
	stock := make(map[string]int)
	for _, ent := range w.AllEntities() {
		if !ent.Own() || ent.Amount == nil {
			continue
		}
		pid, ok := ent.ProtoID()
		if !ok {
			continue
		}
		if name, ok := e.protos.IDToName(model.PrototypeResource, pid); ok {
			stock[name] += ent.Amount.Amount
		}
	}
	return stock
}

// CombatUnits returns own units that can deal damage, excluding the main base.
func (e *Engine) CombatUnits(w World) []model.Entity {
	var out []model.Entity
	for _, ent := range e.OwnUnits(w) {
		if !ent.IsUnit() || (e.hasBase && ent.ID == e.baseID) {
			continue
		}
		pid, _ := ent.ProtoID()
		proto, ok := e.protos.Prototype(pid)
		if !ok || proto.Dps <= 0 || proto.Name == e.cfg.BaseName {
			continue
		}
		out = append(out, ent)
	}
	return out
}

// EnemyUnits returns positioned enemy units.
func (e *Engine) EnemyUnits(w World) []model.Entity {
	var out []model.Entity
	for _, ent := range w.AllEntities() {
		if !ent.Enemy() || !ent.IsUnit() {
			continue
		}
		if _, ok := ent.Tile(); ok {
			out = append(out, ent)
		}
	}
	return out
}
