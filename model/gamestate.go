package model

// Policy is the relation of an entity's owner to us.
type Policy string

const (
	PolicyOwn     Policy = "own"
	PolicyAlly    Policy = "ally"
	PolicyNeutral Policy = "neutral"
	PolicyEnemy   Policy = "enemy"
)

// Snapshot is one tick's view of the match as delivered by the host.
// It is decoded fresh every tick; nothing in it outlives the tick.
type Snapshot struct {
	Tick       int         `json:"tick"`
	Entities   []Entity    `json:"entities"`
	Prototypes []Prototype `json:"prototypes,omitempty"`
	Map        *Map        `json:"map,omitempty"`

	byID map[uint32]int
}

// Entity is a read-only view of a host entity. Components are optional;
// a nil component means the entity does not carry it.
type Entity struct {
	ID         uint32             `json:"id"`
	Generation uint32             `json:"generation,omitempty"`
	Policy     Policy             `json:"policy"`
	Orders     int                `json:"orders"`
	Proto      *ProtoComponent    `json:"proto,omitempty"`
	Position   *PositionComponent `json:"position,omitempty"`
	Unit       *UnitComponent     `json:"unit,omitempty"`
	Amount     *AmountComponent   `json:"amount,omitempty"`
	Recipe     *RecipeComponent   `json:"recipe,omitempty"`
}

type ProtoComponent struct {
	Proto uint32 `json:"proto"`
}

type PositionComponent struct {
	Position int `json:"position"`
}

type UnitComponent struct {
	State int `json:"state"`
}

type AmountComponent struct {
	Amount int `json:"amount"`
}

type RecipeComponent struct {
	Recipe uint32 `json:"recipe"`
}

func (e Entity) Own() bool { return e.Policy == PolicyOwn }

func (e Entity) Enemy() bool { return e.Policy == PolicyEnemy }

func (e Entity) IsUnit() bool { return e.Unit != nil }

// ProtoID returns the prototype id, or false for entities without one.
func (e Entity) ProtoID() (uint32, bool) {
	if e.Proto == nil {
		return 0, false
	}
	return e.Proto.Proto, true
}

// Tile returns the map position, or false for entities that are not on the map.
func (e Entity) Tile() (int, bool) {
	if e.Position == nil {
		return 0, false
	}
	return e.Position.Position, true
}

// CurrentRecipe returns the active recipe id, 0 if none is set.
func (e Entity) CurrentRecipe() uint32 {
	if e.Recipe == nil {
		return 0
	}
	return e.Recipe.Recipe
}
