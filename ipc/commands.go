package ipc

// Command type constants, one per host command.
const (
	TypePlaceConstruction = "place_construction"
	TypeSetRecipe         = "set_recipe"
	TypeFightToEntity     = "fight_to_entity"
	TypeRunToEntity       = "run_to_entity"
)

type PlaceConstructionCommand struct {
	Proto    uint32 `json:"proto"`
	Position int    `json:"position"`
}

type SetRecipeCommand struct {
	UnitID uint32 `json:"unit_id"`
	Recipe uint32 `json:"recipe"`
}

// OrderCommand targets another entity; used for fight and run orders.
type OrderCommand struct {
	UnitID   uint32 `json:"unit_id"`
	TargetID uint32 `json:"target_id"`
}
