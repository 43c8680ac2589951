package engine

import (
	"log/slog"
	"maps"

	"github.com/gdg-garage/uwapi-eve-david/config"
)

// Scheduled subsystems.
const (
	CadenceCombat   = "combat"
	CadenceBuild    = "build"
	CadenceConfig   = "config"
	CadenceDeposits = "deposits"
)

// Cadences maps a subsystem to the steps it runs on. A subsystem without
// an entry never runs.
type Cadences map[string]config.Cadence

// DefaultCadences staggers combat and build planning so they never share
// a tick. Deposit refresh is off.
func DefaultCadences() Cadences {
	return Cadences{
		CadenceCombat: {Period: 10, Phase: 1},
		CadenceBuild:  {Period: 10, Phase: 5},
		CadenceConfig: {Period: 20, Phase: 1},
	}
}

// Merge returns a copy of c with overrides applied. Overrides with a
// non-positive period are ignored, and a result where combat and build
// would share a tick keeps c's combat and build entries.
func (c Cadences) Merge(overrides map[string]config.Cadence) Cadences {
	out := maps.Clone(c)
	for name, cd := range overrides {
		if cd.Period <= 0 {
			slog.Warn("ignoring cadence override", "subsystem", name, "period", cd.Period)
			continue
		}
		out[name] = cd
	}
	if out[CadenceCombat].Overlaps(out[CadenceBuild]) {
		slog.Warn("combat and build cadences overlap, keeping defaults",
			"combat", out[CadenceCombat], "build", out[CadenceBuild])
		out[CadenceCombat] = c[CadenceCombat]
		out[CadenceBuild] = c[CadenceBuild]
	}
	return out
}

// Due reports whether subsystem runs on step.
func (c Cadences) Due(subsystem string, step int) bool {
	cd, ok := c[subsystem]
	return ok && cd.Due(step)
}
