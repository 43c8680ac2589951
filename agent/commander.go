package agent

import (
	"github.com/gdg-garage/uwapi-eve-david/ipc"
	"github.com/gdg-garage/uwapi-eve-david/model"
)

// hostCommander sends engine commands over the connection. Queued order
// counts come from the snapshot being processed.
type hostCommander struct {
	conn *ipc.Connection
	snap *model.Snapshot
}

func (h *hostCommander) PlaceConstruction(proto uint32, pos int) error {
	return h.conn.Send(ipc.TypePlaceConstruction, ipc.PlaceConstructionCommand{Proto: proto, Position: pos})
}

func (h *hostCommander) SetRecipe(unit, recipe uint32) error {
	return h.conn.Send(ipc.TypeSetRecipe, ipc.SetRecipeCommand{UnitID: unit, Recipe: recipe})
}

func (h *hostCommander) FightToEntity(unit, target uint32) error {
	return h.conn.Send(ipc.TypeFightToEntity, ipc.OrderCommand{UnitID: unit, TargetID: target})
}

func (h *hostCommander) RunToEntity(unit, target uint32) error {
	return h.conn.Send(ipc.TypeRunToEntity, ipc.OrderCommand{UnitID: unit, TargetID: target})
}

func (h *hostCommander) OrderCount(unit uint32) int {
	e, ok := h.snap.Entity(unit)
	if !ok {
		return 0
	}
	return e.Orders
}
