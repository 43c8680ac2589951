package engine

import (
	"log/slog"

	"github.com/gdg-garage/uwapi-eve-david/model"
)

// ProtoInfo is one row of the flat prototype listing.
type ProtoInfo struct {
	ID   uint32
	Name string
	Type model.PrototypeType
}

// PrototypeIndex maps prototype names and ids in both directions for the
// construction, unit and resource categories. It is built once per
// connection and never changes afterwards.
type PrototypeIndex struct {
	byName map[model.PrototypeType]map[string]uint32
	byID   map[model.PrototypeType]map[uint32]string
	protos map[uint32]model.Prototype
	all    []ProtoInfo
}

var indexedTypes = []model.PrototypeType{
	model.PrototypeConstruction,
	model.PrototypeUnit,
	model.PrototypeResource,
}

// Built reports whether the index holds a catalog.
func (p *PrototypeIndex) Built() bool { return len(p.all) > 0 }

// Build indexes the catalog. It is a no-op once the index is built, and an
// empty catalog leaves it unbuilt so the caller retries later. When two
// prototypes of one category share a name the first keeps it.
func (p *PrototypeIndex) Build(catalog []model.Prototype) bool {
	if p.Built() || len(catalog) == 0 {
		return false
	}
	p.byName = make(map[model.PrototypeType]map[string]uint32, len(indexedTypes))
	p.byID = make(map[model.PrototypeType]map[uint32]string, len(indexedTypes))
	for _, t := range indexedTypes {
		p.byName[t] = make(map[string]uint32)
		p.byID[t] = make(map[uint32]string)
	}
	p.protos = make(map[uint32]model.Prototype, len(catalog))
	p.all = make([]ProtoInfo, 0, len(catalog))

	for _, proto := range catalog {
		p.protos[proto.ID] = proto
		p.all = append(p.all, ProtoInfo{ID: proto.ID, Name: proto.Name, Type: proto.Type})

		names, ok := p.byName[proto.Type]
		if !ok {
			continue
		}
		p.byID[proto.Type][proto.ID] = proto.Name
		if first, dup := names[proto.Name]; dup {
			slog.Warn("duplicate prototype name", "name", proto.Name, "type", proto.Type, "kept", first, "dropped", proto.ID)
			continue
		}
		names[proto.Name] = proto.ID
	}
	slog.Info("prototype index built",
		"prototypes", len(p.all),
		"constructions", len(p.byID[model.PrototypeConstruction]),
		"units", len(p.byID[model.PrototypeUnit]),
		"resources", len(p.byID[model.PrototypeResource]),
	)
	return true
}

// NameToID looks up a prototype id by category and name.
func (p *PrototypeIndex) NameToID(t model.PrototypeType, name string) (uint32, bool) {
	id, ok := p.byName[t][name]
	return id, ok
}

// IDToName looks up a prototype name by category and id.
func (p *PrototypeIndex) IDToName(t model.PrototypeType, id uint32) (string, bool) {
	name, ok := p.byID[t][id]
	return name, ok
}

// Is reports whether id belongs to category t.
func (p *PrototypeIndex) Is(t model.PrototypeType, id uint32) bool {
	_, ok := p.byID[t][id]
	return ok
}

// Prototype returns the full catalog entry for id.
func (p *PrototypeIndex) Prototype(id uint32) (model.Prototype, bool) {
	proto, ok := p.protos[id]
	return proto, ok
}

// Name returns the display name of id in any category, "" if unknown.
func (p *PrototypeIndex) Name(id uint32) string {
	return p.protos[id].Name
}

// All returns the flat listing in catalog order.
func (p *PrototypeIndex) All() []ProtoInfo { return p.all }
