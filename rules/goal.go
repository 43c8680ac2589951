package rules

import (
	"fmt"

	"github.com/expr-lang/expr/vm"
)

// AdjacencyKind says where a goal's building has to go.
type AdjacencyKind int

const (
	// NearBase anchors the placement search on the main base.
	NearBase AdjacencyKind = iota
	// OnDeposit places the building directly on a deposit of a resource.
	OnDeposit
	// NearBuilding anchors the placement search on an existing own building.
	NearBuilding
)

func (k AdjacencyKind) String() string {
	switch k {
	case NearBase:
		return "near-base"
	case OnDeposit:
		return "on-deposit"
	case NearBuilding:
		return "near-building"
	}
	return fmt.Sprintf("adjacency(%d)", int(k))
}

// Adjacency is the spatial requirement of a goal. Resource narrows
// OnDeposit to a deposit type, and NearBuilding to buildings that stand
// next to a deposit of that type.
type Adjacency struct {
	Kind     AdjacencyKind
	Building string
	Resource string
}

func Base() Adjacency { return Adjacency{Kind: NearBase} }

func Deposit(resource string) Adjacency {
	return Adjacency{Kind: OnDeposit, Resource: resource}
}

func Building(name, resource string) Adjacency {
	return Adjacency{Kind: NearBuilding, Building: name, Resource: resource}
}

// BuildGoal is one step of a strategy: keep building Target until its
// configured limit is reached, then keep its units on Recipe.
// A goal with an empty Target only assigns the recipe.
type BuildGoal struct {
	Target      string
	Adjacency   Adjacency
	Recipe      string // optional recipe for units offering it
	RequiresSrc string // optional expr precondition over Env
	program     *vm.Program
}

// LimitResource is the resource the goal's limit is keyed by: the deposit
// resource for extractors placed on deposits, empty otherwise.
func (g *BuildGoal) LimitResource() string {
	if g.Adjacency.Kind == OnDeposit {
		return g.Adjacency.Resource
	}
	return ""
}

func (g *BuildGoal) String() string {
	if g.Target == "" {
		return "recipe:" + g.Recipe
	}
	if r := g.LimitResource(); r != "" {
		return g.Target + "@" + r
	}
	return g.Target
}
