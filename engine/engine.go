package engine

import (
	"log/slog"

	"github.com/gdg-garage/uwapi-eve-david/config"
	"github.com/gdg-garage/uwapi-eve-david/model"
	"github.com/gdg-garage/uwapi-eve-david/rules"
)

// World is the read side of the match host, valid for one tick.
type World interface {
	AllEntities() []model.Entity
	Entity(id uint32) (model.Entity, bool)
	Catalog() []model.Prototype
	DistanceEstimate(a, b int) float64
	Neighbors(pos int) []int
	FindPlacement(proto uint32, anchor int) (int, bool)
	TestPlacement(proto uint32, pos int) bool
}

// Commander is the write side of the match host. Commands are fire and
// forget; an error only means the host did not accept the call.
type Commander interface {
	PlaceConstruction(proto uint32, pos int) error
	SetRecipe(unit, recipe uint32) error
	FightToEntity(unit, target uint32) error
	RunToEntity(unit, target uint32) error
	OrderCount(unit uint32) int
}

// Reloader supplies a new config document when its source changed.
type Reloader interface {
	Reload() (*config.Config, bool, error)
}

// Engine owns the decision state of one match connection. It is driven by
// Tick from a single goroutine and is not safe for concurrent use.
type Engine struct {
	cfg      *config.Config
	reloader Reloader
	strategy *rules.Strategy
	cadences Cadences

	step     int
	baseID   uint32
	baseGen  uint32
	hasBase  bool
	protos   PrototypeIndex
	deposits DepositIndex
	orders   OrderMemory
}

// Report summarizes what one tick did.
type Report struct {
	Step       int
	Combat     bool
	Planned    bool
	Orders     int
	Placements int
}

// New creates an engine for cfg. reloader may be nil. An unknown strategy
// name falls back to the default strategy.
func New(cfg *config.Config, reloader Reloader) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	strategy, err := rules.Lookup(cfg.Strategy)
	if err != nil {
		fallback := config.Default().Strategy
		slog.Warn("using default strategy", "strategy", fallback, "error", err)
		if strategy, err = rules.Lookup(fallback); err != nil {
			return nil, err
		}
	}
	e := &Engine{
		cfg:      cfg,
		reloader: reloader,
		strategy: strategy,
		cadences: DefaultCadences().Merge(cfg.Cadences),
		orders:   NewOrderMemory(),
	}
	return e, nil
}

// Reset drops all match state. Called when the host connection is
// re-established; config and strategy are kept.
func (e *Engine) Reset() {
	e.step = 0
	e.baseID = 0
	e.baseGen = 0
	e.hasBase = false
	e.protos = PrototypeIndex{}
	e.deposits.Invalidate()
	e.orders = NewOrderMemory()
	slog.Info("engine reset")
}

// SetConfig swaps the config document without touching any index. An
// unknown strategy name keeps the current strategy.
func (e *Engine) SetConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	if cfg.Strategy != e.strategy.Name {
		s, err := rules.Lookup(cfg.Strategy)
		if err != nil {
			slog.Warn("keeping current strategy", "strategy", e.strategy.Name, "error", err)
		} else {
			e.strategy = s
			slog.Info("strategy changed", "strategy", s.Name)
		}
	}
	e.cfg = cfg
	e.cadences = DefaultCadences().Merge(cfg.Cadences)
}

// Step returns the number of ticks seen since construction or Reset.
func (e *Engine) Step() int { return e.step }

// Config returns the active config document.
func (e *Engine) Config() *config.Config { return e.cfg }

// Tick runs one simulation step. Subsystems run in a fixed order so later
// ones see indices refreshed earlier in the same tick.
func (e *Engine) Tick(w World, c Commander) Report {
	e.step++
	r := Report{Step: e.step}

	e.findBase(w)
	e.protos.Build(w.Catalog())
	e.orders.Prune(w.AllEntities())

	if e.reloader != nil && e.cadences.Due(CadenceConfig, e.step) {
		e.reload()
	}

	e.maintainDeposits(w)

	if e.cadences.Due(CadenceCombat, e.step) {
		r.Combat = true
		r.Orders = e.combat(w, c)
	}
	if e.cadences.Due(CadenceBuild, e.step) {
		r.Planned = true
		r.Placements = e.plan(w, c)
	}
	return r
}

func (e *Engine) reload() {
	cfg, changed, err := e.reloader.Reload()
	if err != nil {
		slog.Warn("config reload failed", "error", err)
		return
	}
	if changed {
		e.SetConfig(cfg)
	}
}

// findBase locates the main base by name. Only its id and generation are
// kept; the entity is looked up again every tick and rediscovered if it
// disappears or its id now belongs to another entity.
func (e *Engine) findBase(w World) {
	if e.hasBase {
		if b, ok := w.Entity(e.baseID); ok && b.Generation == e.baseGen {
			return
		}
		slog.Warn("main base lost", "id", e.baseID, "generation", e.baseGen)
		e.hasBase = false
	}

	baseProtos := make(map[uint32]bool)
	for _, p := range w.Catalog() {
		if p.Type == model.PrototypeUnit && p.Name == e.cfg.BaseName {
			baseProtos[p.ID] = true
		}
	}
	if len(baseProtos) == 0 {
		return
	}
	for _, ent := range w.AllEntities() {
		pid, ok := ent.ProtoID()
		if !ok || !ent.Own() || !ent.IsUnit() || !baseProtos[pid] {
			continue
		}
		e.baseID = ent.ID
		e.baseGen = ent.Generation
		e.hasBase = true
		pos, _ := ent.Tile()
		slog.Info("main base found", "id", ent.ID, "position", pos)
		// A deposit index built without a base is unsorted; rebuild it.
		if e.deposits.Valid() && !e.deposits.Sorted() {
			e.deposits.Invalidate()
		}
		return
	}
}

// base returns this tick's view of the main base.
func (e *Engine) base(w World) (model.Entity, bool) {
	if !e.hasBase {
		return model.Entity{}, false
	}
	b, ok := w.Entity(e.baseID)
	if !ok || b.Generation != e.baseGen {
		return model.Entity{}, false
	}
	return b, true
}

func (e *Engine) basePosition(w World) (int, bool) {
	b, ok := e.base(w)
	if !ok {
		return 0, false
	}
	return b.Tile()
}

func (e *Engine) maintainDeposits(w World) {
	if e.cadences.Due(CadenceDeposits, e.step) && e.deposits.Valid() {
		e.deposits.Invalidate()
	}
	if e.deposits.Valid() || !e.protos.Built() {
		return
	}
	pos, ok := e.basePosition(w)
	e.deposits.Build(w, &e.protos, pos, ok)
}
