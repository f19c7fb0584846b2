// Package collision turns a level descriptor into an immutable occupancy grid
// and answers "is this world point blocked?" against it.
package collision

import "github.com/automoto/tilecollide/shared/leveldata"

// PropCollideable is the tile property that marks a tile as solid.
const PropCollideable = "collideable"

// RefSet is a set of layer tile references.
type RefSet map[uint32]struct{}

// Has reports whether ref is in the set.
func (s RefSet) Has(ref uint32) bool {
	_, ok := s[ref]
	return ok
}

// ResolveCollideable returns the layer references of every tile in ts that
// carries collideable=true. Local ids are 0-based and layer references are
// 1-based, so each id is shifted by one. A nil tileset or one without tile
// metadata yields an empty set.
func ResolveCollideable(ts *leveldata.Tileset) RefSet {
	refs := make(RefSet)
	if ts == nil {
		return refs
	}
	for _, tile := range ts.Tiles {
		if isCollideable(tile.Properties) {
			refs[tile.ID+1] = struct{}{}
		}
	}
	return refs
}

func isCollideable(props []leveldata.Property) bool {
	for _, p := range props {
		if p.Name == PropCollideable && p.Bool() {
			return true
		}
	}
	return false
}
