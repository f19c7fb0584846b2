package leveldata

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"testing"
	"testing/fstest"
)

const sampleJSON = `{
  "width": 3,
  "height": 2,
  "tilewidth": 16,
  "tileheight": 16,
  "tilesets": [{
    "firstgid": 1,
    "name": "terrain",
    "tiles": [
      {"id": 1, "properties": [{"name": "collideable", "type": "bool", "value": true}]},
      {"id": 2, "properties": [{"name": "collideable", "type": "string", "value": "true"}]},
      {"id": 3}
    ]
  }],
  "layers": [
    {"name": "ground", "type": "tilelayer", "data": [0, 2, 0, 1, 0, 2]},
    {"name": "PlayerSpawn", "type": "objectgroup", "objects": [
      {"id": 1, "x": 30, "y": 4, "properties": [{"name": "spawnIndex", "type": "int", "value": 1}]},
      {"id": 2, "x": 2, "y": 4, "properties": [{"name": "spawnIndex", "type": "int", "value": 0}]}
    ]},
    {"name": "deco", "type": "tilelayer", "data": [3, 0, 0, 0, 2147483650, 0]}
  ]
}`

func TestDecodeJSON(t *testing.T) {
	desc, err := DecodeJSON(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if desc.Width != 3 || desc.Height != 2 || desc.TileWidth != 16 || desc.TileHeight != 16 {
		t.Errorf("Unexpected dimensions: %+v", desc)
	}
	if len(desc.Tilesets) != 1 || len(desc.Tilesets[0].Tiles) != 3 {
		t.Fatalf("Expected 1 tileset with 3 tiles, got %+v", desc.Tilesets)
	}

	props := desc.Tilesets[0].Tiles[0].Properties
	if len(props) != 1 || !props[0].Bool() {
		t.Errorf("Expected JSON true to decode as bool, got %#v", props)
	}
	if strProps := desc.Tilesets[0].Tiles[1].Properties; strProps[0].Bool() {
		t.Error("String \"true\" must not count as a boolean")
	}
	if desc.Tilesets[0].Tiles[2].Properties != nil {
		t.Error("Expected tile without properties to keep nil properties")
	}

	if len(desc.Layers) != 3 {
		t.Fatalf("Expected 3 layers, got %d", len(desc.Layers))
	}
	if desc.Layers[1].IsTileLayer() || desc.Layers[1].Data != nil {
		t.Errorf("Object group should carry no tile data: %+v", desc.Layers[1])
	}

	if len(desc.SpawnPoints) != 2 || desc.SpawnPoints[0].X != 2 || desc.SpawnPoints[1].Index != 1 {
		t.Errorf("Expected 2 spawns sorted left to right, got %+v", desc.SpawnPoints)
	}

	// 2147483650 is reference 2 with the horizontal flip bit set.
	if got := desc.Layers[2].Data[4]; got != 2 {
		t.Errorf("Expected flip flags masked to 2, got %d", got)
	}
}

func TestDecodeJSON_Invalid(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"malformed", `{"width": 3,`},
		{"missing dimensions", `{"layers": []}`},
		{"missing tile size", `{"width": 1, "height": 1, "layers": []}`},
		{"short data", `{"width": 2, "height": 2, "tilewidth": 8, "tileheight": 8,
			"layers": [{"type": "tilelayer", "data": [0, 0, 0]}]}`},
		{"no data", `{"width": 1, "height": 1, "tilewidth": 8, "tileheight": 8,
			"layers": [{"type": "tilelayer"}]}`},
		{"unknown encoding", `{"width": 1, "height": 1, "tilewidth": 8, "tileheight": 8,
			"layers": [{"type": "tilelayer", "encoding": "hex", "data": "00"}]}`},
		{"bad base64", `{"width": 1, "height": 1, "tilewidth": 8, "tileheight": 8,
			"layers": [{"type": "tilelayer", "encoding": "base64", "data": "***"}]}`},
		{"zstd", `{"width": 1, "height": 1, "tilewidth": 8, "tileheight": 8,
			"layers": [{"type": "tilelayer", "encoding": "base64", "compression": "zstd", "data": "AAAAAA=="}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeJSON(strings.NewReader(tt.json))
			if !errors.Is(err, ErrInvalidLevelData) {
				t.Errorf("Expected ErrInvalidLevelData, got %v", err)
			}
		})
	}
}

func TestDecodeJSON_Base64(t *testing.T) {
	refs := []uint32{0, 5, 0x40000005, 0, 7, 1}

	raw := make([]byte, len(refs)*4)
	for i, r := range refs {
		binary.LittleEndian.PutUint32(raw[i*4:], r)
	}

	var zbuf bytes.Buffer
	zw := zlib.NewWriter(&zbuf)
	zw.Write(raw)
	zw.Close()

	var gbuf bytes.Buffer
	gw := gzip.NewWriter(&gbuf)
	gw.Write(raw)
	gw.Close()

	tests := []struct {
		compression string
		payload     []byte
	}{
		{"", raw},
		{"zlib", zbuf.Bytes()},
		{"gzip", gbuf.Bytes()},
	}

	want := []uint32{0, 5, 5, 0, 7, 1}
	for _, tt := range tests {
		t.Run("compression="+tt.compression, func(t *testing.T) {
			doc := fmt.Sprintf(`{"width": 3, "height": 2, "tilewidth": 16, "tileheight": 16,
				"layers": [{"type": "tilelayer", "encoding": "base64", "compression": %q, "data": %q}]}`,
				tt.compression, base64.StdEncoding.EncodeToString(tt.payload))

			desc, err := DecodeJSON(strings.NewReader(doc))
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			got := desc.Layers[0].Data
			if len(got) != len(want) {
				t.Fatalf("Expected %d refs, got %d", len(want), len(got))
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("Ref %d: expected %d, got %d", i, want[i], got[i])
				}
			}
		})
	}
}

func TestLoadJSON(t *testing.T) {
	fsys := fstest.MapFS{
		"levels/arena.json": {Data: []byte(sampleJSON)},
	}

	desc, err := LoadJSON(fsys, "levels/arena.json")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if desc.FirstTileset().Name != "terrain" {
		t.Errorf("Expected first tileset 'terrain', got %q", desc.FirstTileset().Name)
	}

	if _, err := LoadJSON(fsys, "levels/missing.json"); err == nil {
		t.Error("Expected error for missing file")
	}
}
