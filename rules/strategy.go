package rules

import (
	"fmt"
	"sort"
)

// Strategy is an ordered list of goals; earlier goals have priority.
type Strategy struct {
	Name  string
	Goals []*BuildGoal
}

// Building and unit names used by the strategies below.
const (
	Drill           = "drill"
	Pump            = "pump"
	ConcretePlant   = "concrete plant"
	Laboratory      = "laboratory"
	Arsenal         = "arsenal"
	BotAssembler    = "bot assembler"
	Forgepress      = "forgepress"
	Smelter         = "smelter"
	Generator       = "generator"
	Factory         = "factory"
	ResourceMetal   = "metal"
	ResourceCrystal = "crystals"
	ResourceOil     = "oil"
)

var strategies = map[string]func() []*BuildGoal{
	"eagle":      eagleGoals,
	"juggernaut": juggernautGoals,
	"kitsune":    kitsuneGoals,
}

// Names lists the known strategies in sorted order.
func Names() []string {
	names := make([]string, 0, len(strategies))
	for n := range strategies {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Lookup returns a freshly compiled copy of the named strategy.
func Lookup(name string) (*Strategy, error) {
	build, ok := strategies[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
	return New(name, build())
}

// New compiles an arbitrary goal list into a strategy.
func New(name string, goals []*BuildGoal) (*Strategy, error) {
	if err := compileGoals(goals); err != nil {
		return nil, fmt.Errorf("strategy %s: %w", name, err)
	}
	return &Strategy{Name: name, Goals: goals}, nil
}

// eagleGoals: metal economy, armor plates from a forgepress, then eagles
// out of factories next to the metal drills.
func eagleGoals() []*BuildGoal {
	return []*BuildGoal{
		{Target: Drill, Adjacency: Deposit(ResourceMetal)},
		{Target: ConcretePlant, Adjacency: Building(Drill, ResourceMetal)},
		{Target: Pump, Adjacency: Deposit(ResourceOil)},
		{Target: Forgepress, Adjacency: Base(), Recipe: "armor plates"},
		{Target: Smelter, Adjacency: Building(Drill, ResourceMetal), RequiresSrc: `Count("generator") > 0`},
		{Target: Generator, Adjacency: Building(Drill, ResourceMetal)},
		{Target: Factory, Adjacency: Building(Drill, ResourceMetal), Recipe: "eagle"},
	}
}

// juggernautGoals: crystals for a laboratory with shield projectors, an
// arsenal with plasma emitters, and a bot assembler producing juggernauts.
func juggernautGoals() []*BuildGoal {
	return []*BuildGoal{
		{Target: Drill, Adjacency: Deposit(ResourceMetal)},
		{Target: ConcretePlant, Adjacency: Building(Drill, ResourceMetal)},
		{Target: Drill, Adjacency: Deposit(ResourceCrystal)},
		{Target: Laboratory, Adjacency: Building(Drill, ResourceCrystal), Recipe: "shield projector"},
		{Target: Pump, Adjacency: Deposit(ResourceOil)},
		{Target: Arsenal, Adjacency: Building(Drill, ResourceMetal), Recipe: "plasma emitter"},
		{Target: BotAssembler, Adjacency: Building(Laboratory, ""), Recipe: "juggernaut"},
	}
}

// kitsuneGoals is the short tree: one metal line and factories.
func kitsuneGoals() []*BuildGoal {
	return []*BuildGoal{
		{Target: Drill, Adjacency: Deposit(ResourceMetal)},
		{Target: ConcretePlant, Adjacency: Building(Drill, ResourceMetal)},
		{Target: Factory, Adjacency: Building(Drill, ""), RequiresSrc: `Count("concrete plant") > 0`},
		{Recipe: "kitsune"},
	}
}
