package rules

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// compileGoals compiles every precondition into expr bytecode. A goal with
// no precondition is always allowed.
func compileGoals(goals []*BuildGoal) error {
	for _, g := range goals {
		if g.RequiresSrc == "" {
			g.program = nil
			continue
		}
		prog, err := expr.Compile(g.RequiresSrc, expr.Env(Env{}), expr.AsBool())
		if err != nil {
			return fmt.Errorf("compile goal %q: %w", g, err)
		}
		g.program = prog
	}
	return nil
}

// Allowed evaluates the goal's precondition against env.
func (g *BuildGoal) Allowed(env Env) (bool, error) {
	if g.program == nil {
		return true, nil
	}
	out, err := vm.Run(g.program, env)
	if err != nil {
		return false, fmt.Errorf("goal %q: %w", g, err)
	}
	ok, _ := out.(bool)
	return ok, nil
}
