package engine

import (
	"errors"
	"testing"

	"github.com/gdg-garage/uwapi-eve-david/config"
	"github.com/gdg-garage/uwapi-eve-david/model"
	"github.com/gdg-garage/uwapi-eve-david/rules"
)

// Prototype ids of the test catalog.
const (
	protoNucleus        uint32 = 1
	protoDrillSite      uint32 = 2
	protoDrill          uint32 = 3
	protoMetalDeposit   uint32 = 4
	protoOilDeposit     uint32 = 5
	protoConcreteSite   uint32 = 6
	protoConcretePlant  uint32 = 7
	protoTank           uint32 = 8
	protoFactorySite    uint32 = 9
	protoFactory        uint32 = 10
	protoGenerator      uint32 = 12
	protoSmelterSite    uint32 = 13
	protoForgepressSite uint32 = 14
	protoMetal          uint32 = 16
	recipeEagle         uint32 = 100
	recipeKitsune       uint32 = 101
)

func testCatalog() []model.Prototype {
	return []model.Prototype{
		{ID: protoNucleus, Name: "nucleus", Type: model.PrototypeUnit, Dps: 5},
		{ID: protoDrillSite, Name: "drill", Type: model.PrototypeConstruction},
		{ID: protoDrill, Name: "drill", Type: model.PrototypeUnit},
		{ID: protoMetalDeposit, Name: "metal deposit", Type: model.PrototypeUnit},
		{ID: protoOilDeposit, Name: "oil deposit", Type: model.PrototypeUnit},
		{ID: protoConcreteSite, Name: "concrete plant", Type: model.PrototypeConstruction},
		{ID: protoConcretePlant, Name: "concrete plant", Type: model.PrototypeUnit},
		{ID: protoTank, Name: "tank", Type: model.PrototypeUnit, Dps: 12},
		{ID: protoFactorySite, Name: "factory", Type: model.PrototypeConstruction},
		{ID: protoFactory, Name: "factory", Type: model.PrototypeUnit, Recipes: []model.Recipe{
			{ID: recipeEagle, Name: "eagle"},
			{ID: recipeKitsune, Name: "kitsune"},
		}},
		{ID: protoGenerator, Name: "generator", Type: model.PrototypeUnit},
		{ID: protoSmelterSite, Name: "smelter", Type: model.PrototypeConstruction},
		{ID: protoForgepressSite, Name: "forgepress", Type: model.PrototypeConstruction},
		{ID: protoMetal, Name: "metal", Type: model.PrototypeResource},
		{ID: recipeEagle, Name: "eagle", Type: model.PrototypeRecipe},
	}
}

// fakeWorld is a one-dimensional map: position p neighbors p-1 and p+1
// and distance is the absolute difference.
type fakeWorld struct {
	entities []model.Entity
	catalog  []model.Prototype
	blocked  map[int]bool
}

func newWorld(entities ...model.Entity) *fakeWorld {
	return &fakeWorld{entities: entities, catalog: testCatalog(), blocked: map[int]bool{}}
}

func (w *fakeWorld) AllEntities() []model.Entity { return w.entities }

func (w *fakeWorld) Entity(id uint32) (model.Entity, bool) {
	for _, e := range w.entities {
		if e.ID == id {
			return e, true
		}
	}
	return model.Entity{}, false
}

func (w *fakeWorld) Catalog() []model.Prototype { return w.catalog }

func (w *fakeWorld) DistanceEstimate(a, b int) float64 {
	if a > b {
		return float64(a - b)
	}
	return float64(b - a)
}

func (w *fakeWorld) Neighbors(pos int) []int { return []int{pos - 1, pos + 1} }

func (w *fakeWorld) TestPlacement(proto uint32, pos int) bool { return !w.blocked[pos] }

func (w *fakeWorld) FindPlacement(proto uint32, anchor int) (int, bool) {
	for d := 0; d <= 20; d++ {
		for _, p := range []int{anchor - d, anchor + d} {
			if !w.blocked[p] {
				return p, true
			}
		}
	}
	return 0, false
}

type placement struct {
	proto uint32
	pos   int
}

type fakeCommander struct {
	placements []placement
	recipes    map[uint32]uint32
	fights     map[uint32]uint32
	runs       map[uint32]uint32
	queued     map[uint32]int
	rejectAt   map[int]bool
}

func newCommander() *fakeCommander {
	return &fakeCommander{
		recipes:  map[uint32]uint32{},
		fights:   map[uint32]uint32{},
		runs:     map[uint32]uint32{},
		queued:   map[uint32]int{},
		rejectAt: map[int]bool{},
	}
}

var errRejected = errors.New("rejected")

func (c *fakeCommander) PlaceConstruction(proto uint32, pos int) error {
	if c.rejectAt[pos] {
		return errRejected
	}
	c.placements = append(c.placements, placement{proto, pos})
	return nil
}

func (c *fakeCommander) SetRecipe(unit, recipe uint32) error {
	c.recipes[unit] = recipe
	return nil
}

func (c *fakeCommander) FightToEntity(unit, target uint32) error {
	c.fights[unit] = target
	return nil
}

func (c *fakeCommander) RunToEntity(unit, target uint32) error {
	c.runs[unit] = target
	return nil
}

func (c *fakeCommander) OrderCount(unit uint32) int { return c.queued[unit] }

func (c *fakeCommander) orders() int { return len(c.fights) + len(c.runs) }

// entity builds a positioned entity; unit adds the unit component.
func entity(id uint32, policy model.Policy, proto uint32, pos int) model.Entity {
	return model.Entity{
		ID:       id,
		Policy:   policy,
		Proto:    &model.ProtoComponent{Proto: proto},
		Position: &model.PositionComponent{Position: pos},
	}
}

func unit(id uint32, policy model.Policy, proto uint32, pos int) model.Entity {
	e := entity(id, policy, proto, pos)
	e.Unit = &model.UnitComponent{}
	return e
}

func base(pos int) model.Entity { return unit(1000, model.PolicyOwn, protoNucleus, pos) }

// newTestEngine returns an engine whose prototype index is built from the
// test catalog. goals replaces the configured strategy when given; cfg is
// left untouched so subtests may share it.
func newTestEngine(t *testing.T, cfg *config.Config, goals ...*rules.BuildGoal) *Engine {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	e, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(goals) > 0 {
		s, err := rules.New("test", goals)
		if err != nil {
			t.Fatalf("rules.New: %v", err)
		}
		e.strategy = s
	}
	e.protos.Build(testCatalog())
	return e
}

// prime runs the per-tick index maintenance without any scheduled work.
func (e *Engine) prime(w World) {
	e.findBase(w)
	e.protos.Build(w.Catalog())
	e.maintainDeposits(w)
}
