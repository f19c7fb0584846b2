package leveldata

import (
	"errors"
	"fmt"
)

// ErrInvalidLevelData is returned when a level cannot be safely loaded:
// missing or non-positive dimensions, or tile layer data whose length does
// not match width*height.
var ErrInvalidLevelData = errors.New("invalid level data")

// MaxCells caps width*height so the cell count can never overflow int.
const MaxCells = 1 << 26

// Validate checks the descriptor's dimensions and tile layer sizes. Missing
// tilesets, tile metadata or properties are not errors.
func (d *LevelDescriptor) Validate() error {
	if d == nil {
		return fmt.Errorf("%w: nil descriptor", ErrInvalidLevelData)
	}

	dims := []struct {
		name  string
		value int
	}{
		{"width", d.Width},
		{"height", d.Height},
		{"tilewidth", d.TileWidth},
		{"tileheight", d.TileHeight},
	}
	for _, dim := range dims {
		if dim.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidLevelData, dim.name, dim.value)
		}
	}

	if d.Width > MaxCells/d.Height {
		return fmt.Errorf("%w: %dx%d tiles exceeds %d cells", ErrInvalidLevelData, d.Width, d.Height, MaxCells)
	}

	cells := d.Width * d.Height
	for i := range d.Layers {
		layer := &d.Layers[i]
		if !layer.IsTileLayer() {
			continue
		}
		if len(layer.Data) != cells {
			return fmt.Errorf("%w: layer %d (%q) has %d cells, want %dx%d=%d",
				ErrInvalidLevelData, i, layer.Name, len(layer.Data), d.Width, d.Height, cells)
		}
	}

	return nil
}
