package model

// PrototypeType is the catalog category of a prototype.
type PrototypeType string

const (
	PrototypeConstruction PrototypeType = "construction"
	PrototypeUnit         PrototypeType = "unit"
	PrototypeResource     PrototypeType = "resource"
	PrototypeRecipe       PrototypeType = "recipe"
)

// Prototype is an immutable template from the host catalog.
type Prototype struct {
	ID      uint32        `json:"id"`
	Name    string        `json:"name"`
	Type    PrototypeType `json:"type"`
	Dps     float64       `json:"dps,omitempty"`
	Recipes []Recipe      `json:"recipes,omitempty"`
}

type Recipe struct {
	ID   uint32 `json:"id"`
	Name string `json:"name"`
}

// RecipeNamed returns the recipe of this prototype with the given name.
func (p Prototype) RecipeNamed(name string) (Recipe, bool) {
	for _, r := range p.Recipes {
		if r.Name == name {
			return r, true
		}
	}
	return Recipe{}, false
}
