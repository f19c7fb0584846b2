package collision

import (
	"fmt"

	"github.com/automoto/tilecollide/shared/leveldata"
)

// Build derives the collision grid of a level. The collideable references
// come from the first tileset only; every tile layer is then OR-ed into the
// grid so a cell marked solid by any layer stays solid. Invalid dimensions or
// a tile layer of the wrong length fail with leveldata.ErrInvalidLevelData.
func Build(level *leveldata.LevelDescriptor) (*Grid, error) {
	if err := level.Validate(); err != nil {
		return nil, fmt.Errorf("build collision grid: %w", err)
	}

	grid := &Grid{
		rows:  level.Height,
		cols:  level.Width,
		cells: make([]bool, level.Width*level.Height),
	}

	solid := ResolveCollideable(level.FirstTileset())
	if len(solid) == 0 {
		return grid, nil
	}

	for i := range level.Layers {
		layer := &level.Layers[i]
		if !layer.IsTileLayer() {
			continue
		}
		// Row-major data lines up with the flat cell slice index for index.
		for idx, ref := range layer.Data {
			if solid.Has(ref) {
				grid.cells[idx] = true
			}
		}
	}

	return grid, nil
}
