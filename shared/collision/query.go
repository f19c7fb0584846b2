package collision

import (
	"fmt"
	"math"

	"github.com/automoto/tilecollide/shared/leveldata"
)

// DefaultAnchorOffset is the vertical distance in pixels between an entity's
// logical origin and its feet.
const DefaultAnchorOffset = 24.0

// Map answers collision queries in world space against a built Grid. It holds
// no mutable state and is safe for concurrent use.
type Map struct {
	grid         *Grid
	tileWidth    float64
	tileHeight   float64
	anchorOffset float64
}

// Option configures a Map.
type Option func(*Map)

// WithAnchorOffset overrides DefaultAnchorOffset.
func WithAnchorOffset(px float64) Option {
	return func(m *Map) {
		m.anchorOffset = px
	}
}

// NewMap builds the collision grid for level and wraps it for world-space
// queries.
func NewMap(level *leveldata.LevelDescriptor, opts ...Option) (*Map, error) {
	grid, err := Build(level)
	if err != nil {
		return nil, err
	}
	return NewMapFromGrid(grid, level.TileWidth, level.TileHeight, opts...)
}

// NewMapFromGrid wraps an already built grid.
func NewMapFromGrid(grid *Grid, tileWidth, tileHeight int, opts ...Option) (*Map, error) {
	if grid == nil {
		return nil, fmt.Errorf("%w: nil grid", leveldata.ErrInvalidLevelData)
	}
	if tileWidth <= 0 || tileHeight <= 0 {
		return nil, fmt.Errorf("%w: tile size must be positive, got %dx%d",
			leveldata.ErrInvalidLevelData, tileWidth, tileHeight)
	}
	m := &Map{
		grid:         grid,
		tileWidth:    float64(tileWidth),
		tileHeight:   float64(tileHeight),
		anchorOffset: DefaultAnchorOffset,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Grid returns the underlying occupancy grid.
func (m *Map) Grid() *Grid { return m.grid }

// TileSize returns the tile size in pixels.
func (m *Map) TileSize() (w, h float64) { return m.tileWidth, m.tileHeight }

// AnchorOffset returns the vertical anchor offset in pixels.
func (m *Map) AnchorOffset() float64 { return m.anchorOffset }

// TileAt converts a world point to tile coordinates, applying the vertical
// anchor offset. ok is false when the tile lies outside the level; the
// returned coordinates are then only meaningful for finite inputs.
func (m *Map) TileAt(x, y float64) (tileX, tileY int, ok bool) {
	fx := math.Floor(x / m.tileWidth)
	fy := math.Floor((y + m.anchorOffset) / m.tileHeight)

	ok = fx >= 0 && fx < float64(m.grid.cols) && fy >= 0 && fy < float64(m.grid.rows)
	return toTile(fx), toTile(fy), ok
}

// IsColliding reports whether the world point is blocked. Points outside the
// level are always solid.
func (m *Map) IsColliding(x, y float64) bool {
	tileX, tileY, ok := m.TileAt(x, y)
	if !ok {
		return true
	}
	return m.grid.cells[tileY*m.grid.cols+tileX]
}

// toTile narrows a floored coordinate to int. NaN and values beyond the int32
// range map to -1.
func toTile(f float64) int {
	if math.IsNaN(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return -1
	}
	return int(f)
}
