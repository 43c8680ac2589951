package engine

import (
	"testing"

	"github.com/gdg-garage/uwapi-eve-david/config"
	"github.com/gdg-garage/uwapi-eve-david/model"
)

func army(n int, startID uint32, pos int) []model.Entity {
	out := make([]model.Entity, n)
	for i := range out {
		out[i] = unit(startID+uint32(i), model.PolicyOwn, protoTank, pos)
	}
	return out
}

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		mode  config.CombatMode
		units int
		want  config.CombatMode
	}{
		{config.CombatAutomatic, 9, config.CombatDefend},
		{config.CombatAutomatic, 10, config.CombatAttack},
		{config.CombatAutomatic, 0, config.CombatDefend},
		{config.CombatAttack, 1, config.CombatAttack},
		{config.CombatDefend, 50, config.CombatDefend},
		{"", 12, config.CombatAttack},
	}
	for _, tc := range tests {
		if got := EffectiveMode(tc.mode, tc.units, 10); got != tc.want {
			t.Errorf("EffectiveMode(%q, %d) = %q, want %q", tc.mode, tc.units, got, tc.want)
		}
	}
}

func TestCombatAutomaticThreshold(t *testing.T) {
	for _, n := range []int{9, 10} {
		e := newTestEngine(t, nil)
		w := newWorld(append(army(n, 1, 0), base(0), unit(500, model.PolicyEnemy, protoTank, 40))...)
		c := newCommander()
		e.prime(w)
		e.combat(w, c)

		if n == 9 && (len(c.runs) != 9 || len(c.fights) != 0) {
			t.Errorf("9 units: runs=%d fights=%d, want defend", len(c.runs), len(c.fights))
		}
		if n == 10 && (len(c.fights) != 10 || len(c.runs) != 0) {
			t.Errorf("10 units: runs=%d fights=%d, want attack", len(c.runs), len(c.fights))
		}
	}
}

func TestCombatAttacksNearestEnemy(t *testing.T) {
	e := newTestEngine(t, nil)
	own := army(12, 1, 0)
	enemies := []model.Entity{
		unit(501, model.PolicyEnemy, protoTank, 50),
		unit(502, model.PolicyEnemy, protoTank, 10),
		unit(503, model.PolicyEnemy, protoTank, 30),
	}
	w := newWorld(append(append(own, base(0)), enemies...)...)
	c := newCommander()
	e.prime(w)
	e.combat(w, c)

	if got := c.fights[1]; got != 502 {
		t.Errorf("unit 1 fights %d, want 502 (distance 10)", got)
	}
	if len(c.fights) != 12 {
		t.Errorf("fights = %d, want 12", len(c.fights))
	}
}

func TestCombatHysteresis(t *testing.T) {
	for _, mode := range []config.CombatMode{config.CombatAttack, config.CombatDefend} {
		cfg := config.Default()
		cfg.CombatMode = mode
		e := newTestEngine(t, cfg)
		w := newWorld(unit(1, model.PolicyOwn, protoTank, 0), base(5), unit(500, model.PolicyEnemy, protoTank, 9))

		c := newCommander()
		e.prime(w)
		if n := e.combat(w, c); n != 1 {
			t.Errorf("%s: first evaluation issued %d orders, want 1", mode, n)
		}

		c = newCommander()
		c.queued[1] = 1
		if n := e.combat(w, c); n != 0 {
			t.Errorf("%s: busy unit under same mode got %d orders, want 0", mode, n)
		}

		c = newCommander()
		if n := e.combat(w, c); n != 1 {
			t.Errorf("%s: idle unit got %d orders, want 1", mode, n)
		}
	}
}

func TestCombatModeFlipReissues(t *testing.T) {
	cfg := config.Default()
	cfg.CombatMode = config.CombatAttack
	e := newTestEngine(t, cfg)
	w := newWorld(unit(1, model.PolicyOwn, protoTank, 0), base(5), unit(500, model.PolicyEnemy, protoTank, 9))
	c := newCommander()
	e.prime(w)
	e.combat(w, c)

	cfg.CombatMode = config.CombatDefend
	c = newCommander()
	c.queued[1] = 3
	if n := e.combat(w, c); n != 1 || c.runs[1] != 1000 {
		t.Errorf("mode flip: orders=%d runs=%v, want run to base", n, c.runs)
	}
	if last, _ := e.orders.Last(w.entities[0]); last != config.CombatDefend {
		t.Errorf("order memory = %q, want defend", last)
	}
}

func TestCombatNoOps(t *testing.T) {
	t.Run("no combat units", func(t *testing.T) {
		e := newTestEngine(t, nil)
		// The base has dps but is never part of the force.
		w := newWorld(base(0), unit(500, model.PolicyEnemy, protoTank, 9), unit(2, model.PolicyOwn, protoFactory, 3))
		c := newCommander()
		e.prime(w)
		if n := e.combat(w, c); n != 0 || c.orders() != 0 {
			t.Errorf("orders = %d, want 0", c.orders())
		}
	})

	t.Run("attack without enemies", func(t *testing.T) {
		cfg := config.Default()
		cfg.CombatMode = config.CombatAttack
		e := newTestEngine(t, cfg)
		w := newWorld(append(army(3, 1, 0), base(0))...)
		c := newCommander()
		e.prime(w)
		if n := e.combat(w, c); n != 0 {
			t.Errorf("orders = %d, want 0", n)
		}
	})

	t.Run("defend without base", func(t *testing.T) {
		cfg := config.Default()
		cfg.CombatMode = config.CombatDefend
		e := newTestEngine(t, cfg)
		w := newWorld(army(3, 1, 0)...)
		c := newCommander()
		e.prime(w)
		if n := e.combat(w, c); n != 0 {
			t.Errorf("orders = %d, want 0", n)
		}
	})
}

func TestOrderMemoryPrune(t *testing.T) {
	m := NewOrderMemory()
	a := unit(1, model.PolicyOwn, protoTank, 0)
	b := unit(2, model.PolicyOwn, protoTank, 0)
	m.Record(a, config.CombatAttack)
	m.Record(b, config.CombatDefend)

	if n := m.Prune([]model.Entity{a}); n != 1 || m.Len() != 1 {
		t.Errorf("Prune removed %d, %d left, want 1 removed 1 left", n, m.Len())
	}
	if _, ok := m.Last(b); ok {
		t.Error("entry of missing unit should be gone")
	}

	// Same id, new generation: a different unit.
	reborn := a
	reborn.Generation = 7
	if _, ok := m.Last(reborn); ok {
		t.Error("reused id with a new generation should have no history")
	}
	m.Prune([]model.Entity{reborn})
	if m.Len() != 0 {
		t.Errorf("old generation entry should be pruned, %d left", m.Len())
	}
}

func TestOrderMemoryNeedsOrder(t *testing.T) {
	m := NewOrderMemory()
	u := unit(1, model.PolicyOwn, protoTank, 0)
	tests := []struct {
		name   string
		record config.CombatMode
		mode   config.CombatMode
		queued int
		want   bool
	}{
		{"unknown idle", "", config.CombatAttack, 0, true},
		{"unknown busy", "", config.CombatAttack, 2, false},
		{"same mode busy", config.CombatAttack, config.CombatAttack, 2, false},
		{"other mode busy", config.CombatDefend, config.CombatAttack, 2, true},
		{"same mode idle", config.CombatDefend, config.CombatDefend, 0, true},
	}
	for _, tc := range tests {
		m = NewOrderMemory()
		if tc.record != "" {
			m.Record(u, tc.record)
		}
		if got := m.NeedsOrder(u, tc.mode, tc.queued); got != tc.want {
			t.Errorf("%s: NeedsOrder = %v, want %v", tc.name, got, tc.want)
		}
	}
}
