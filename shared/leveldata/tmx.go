package leveldata

import (
	"fmt"
	"io/fs"
	"sort"

	"github.com/lafriks/go-tiled"
)

const spawnGroupName = "PlayerSpawn"

// LoadTMX parses a TMX file and converts it into a validated descriptor. It
// takes an fs.FS so callers can pass embed.FS or os.DirFS.
func LoadTMX(fsys fs.FS, tmxPath string) (*LevelDescriptor, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	desc := FromTiled(levelMap)
	if err := desc.Validate(); err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}
	return desc, nil
}

// FromTiled converts a parsed TMX map. Every TMX tile layer becomes a
// "tilelayer" whose references are tileset.FirstGID + local id, 0 when empty.
func FromTiled(levelMap *tiled.Map) *LevelDescriptor {
	desc := &LevelDescriptor{
		Width:      levelMap.Width,
		Height:     levelMap.Height,
		TileWidth:  levelMap.TileWidth,
		TileHeight: levelMap.TileHeight,
		Tilesets:   make([]Tileset, 0, len(levelMap.Tilesets)),
		Layers:     make([]Layer, 0, len(levelMap.Layers)),
	}

	for _, ts := range levelMap.Tilesets {
		tileset := Tileset{
			Name:     ts.Name,
			FirstGID: ts.FirstGID,
		}
		for _, t := range ts.Tiles {
			tileset.Tiles = append(tileset.Tiles, TilesetTile{
				ID:         t.ID,
				Properties: convertProperties(t.Properties),
			})
		}
		desc.Tilesets = append(desc.Tilesets, tileset)
	}

	for _, l := range levelMap.Layers {
		layer := Layer{
			Name: l.Name,
			Type: LayerTypeTile,
			Data: make([]uint32, len(l.Tiles)),
		}
		for i, tile := range l.Tiles {
			if tile == nil || tile.IsNil() || tile.Tileset == nil {
				continue
			}
			layer.Data[i] = tile.Tileset.FirstGID + tile.ID
		}
		desc.Layers = append(desc.Layers, layer)
	}

	for _, og := range levelMap.ObjectGroups {
		if og.Name != spawnGroupName {
			continue
		}
		for _, o := range og.Objects {
			desc.SpawnPoints = append(desc.SpawnPoints, SpawnPoint{
				X:     o.X,
				Y:     o.Y,
				Index: o.Properties.GetInt("spawnIndex"),
			})
		}
	}

	// Sort spawns left-to-right for consistent assignment
	sort.Slice(desc.SpawnPoints, func(i, j int) bool {
		return desc.SpawnPoints[i].X < desc.SpawnPoints[j].X
	})

	return desc
}

func convertProperties(props tiled.Properties) []Property {
	if len(props) == 0 {
		return nil
	}
	out := make([]Property, 0, len(props))
	for _, p := range props {
		prop := Property{Name: p.Name, Type: p.Type, Value: p.Value}
		if p.Type == "bool" {
			prop.Value = p.Value == "true"
		}
		out = append(out, prop)
	}
	return out
}
