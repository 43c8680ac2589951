package rules

// Env is the read-only view goal preconditions are evaluated against.
// The planner builds one per pass.
type Env struct {
	Step     int
	base     bool
	combat   int
	counts   map[string]int
	deposits map[string]int
	stock    map[string]int
}

// NewEnv captures a planning pass. counts maps display names to the number
// of own units and constructions; deposits maps resource names to the
// number of known deposits; stock maps resource names to the amount held.
func NewEnv(step int, hasBase bool, combatUnits int, counts, deposits, stock map[string]int) Env {
	return Env{Step: step, base: hasBase, combat: combatUnits, counts: counts, deposits: deposits, stock: stock}
}

// Count returns how many own units and constructions carry the name.
func (e Env) Count(name string) int { return e.counts[name] }

func (e Env) HasBase() bool { return e.base }

func (e Env) CombatUnits() int { return e.combat }

func (e Env) Deposits(resource string) int { return e.deposits[resource] }

// Stock returns the amount of resource held by own entities.
func (e Env) Stock(resource string) int { return e.stock[resource] }
