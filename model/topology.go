package model

import "math"

// Tile is one map position. Positions are indices into Map.Tiles.
type Tile struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	Neighbors []int   `json:"neighbors"`
	Buildable bool    `json:"buildable"`
}

// Map is the tile graph of the planet. The host sends it once, with the hello.
type Map struct {
	Tiles []Tile `json:"tiles"`
}

// maxPlacementDepth bounds the breadth-first search in FindPlacement.
const maxPlacementDepth = 12

// At returns the tile at pos. Returns false for out-of-range positions.
func (m *Map) At(pos int) (Tile, bool) {
	if m == nil || pos < 0 || pos >= len(m.Tiles) {
		return Tile{}, false
	}
	return m.Tiles[pos], true
}

// Distance is the straight-line distance between two tiles, +Inf when
// either position is off the map.
func (m *Map) Distance(a, b int) float64 {
	ta, ok := m.At(a)
	if !ok {
		return math.Inf(1)
	}
	tb, ok := m.At(b)
	if !ok {
		return math.Inf(1)
	}
	dx, dy, dz := ta.X-tb.X, ta.Y-tb.Y, ta.Z-tb.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// NeighborsOf returns the tiles adjacent to pos.
func (m *Map) NeighborsOf(pos int) []int {
	t, ok := m.At(pos)
	if !ok {
		return nil
	}
	return t.Neighbors
}

// Nearest walks the tile graph breadth-first from anchor and returns the
// first position accepted by ok. The anchor itself is tried first.
func (m *Map) Nearest(anchor int, ok func(pos int) bool) (int, bool) {
	if _, inside := m.At(anchor); !inside {
		return 0, false
	}
	seen := map[int]bool{anchor: true}
	frontier := []int{anchor}
	for depth := 0; depth <= maxPlacementDepth && len(frontier) > 0; depth++ {
		var next []int
		for _, p := range frontier {
			if ok(p) {
				return p, true
			}
			for _, n := range m.NeighborsOf(p) {
				if !seen[n] {
					seen[n] = true
					next = append(next, n)
				}
			}
		}
		frontier = next
	}
	return 0, false
}
