// Package leveldata provides level descriptor parsing shared between the
// dedicated server and tooling. It has no dependencies on donburi or resolv,
// pure data only.
package leveldata

// LayerTypeTile is the only layer type that takes part in collision.
const LayerTypeTile = "tilelayer"

// LevelDescriptor is a parsed level: dimensions in tiles, tile pixel size,
// tilesets and layers in declaration order. It is treated as immutable once
// loaded.
type LevelDescriptor struct {
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	TileWidth  int       `json:"tilewidth"`
	TileHeight int       `json:"tileheight"`
	Tilesets   []Tileset `json:"tilesets"`
	Layers     []Layer   `json:"layers"`

	// SpawnPoints is filled from a "PlayerSpawn" object group when present.
	SpawnPoints []SpawnPoint `json:"-"`
}

// Tileset holds per-tile metadata keyed by local (0-based) tile id.
type Tileset struct {
	Name     string        `json:"name,omitempty"`
	FirstGID uint32        `json:"firstgid,omitempty"`
	Tiles    []TilesetTile `json:"tiles,omitempty"`
}

// TilesetTile is the metadata of one tile in a tileset.
type TilesetTile struct {
	ID         uint32     `json:"id"`
	Properties []Property `json:"properties,omitempty"`
}

// Property is a named custom property. Value keeps the decoded type: JSON
// booleans and TMX properties of type "bool" are Go bools.
type Property struct {
	Name  string `json:"name"`
	Type  string `json:"type,omitempty"`
	Value any    `json:"value"`
}

// Layer is one sheet of tile references, row-major, 0 meaning empty.
type Layer struct {
	Name string   `json:"name,omitempty"`
	Type string   `json:"type"`
	Data []uint32 `json:"-"`
}

// SpawnPoint represents a player spawn location.
type SpawnPoint struct {
	X, Y  float64
	Index int
}

// IsTileLayer reports whether the layer participates in collision.
func (l *Layer) IsTileLayer() bool {
	return l.Type == LayerTypeTile
}

// Bool returns the property value as a bool. Only a real boolean true counts;
// the string "true" does not.
func (p Property) Bool() bool {
	v, ok := p.Value.(bool)
	return ok && v
}

// FirstTileset returns the first declared tileset, or nil if there is none.
func (d *LevelDescriptor) FirstTileset() *Tileset {
	if len(d.Tilesets) == 0 {
		return nil
	}
	return &d.Tilesets[0]
}

// PixelSize returns the level size in pixels.
func (d *LevelDescriptor) PixelSize() (w, h int) {
	return d.Width * d.TileWidth, d.Height * d.TileHeight
}
