package leveldata

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"sort"
)

// Tiled stores flip and rotation flags in the top four bits of a reference.
const gidFlagMask = 0x0FFFFFFF

type jsonLayer struct {
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Data        json.RawMessage `json:"data"`
	Encoding    string          `json:"encoding"`
	Compression string          `json:"compression"`
	Objects     []jsonObject    `json:"objects"`
}

type jsonObject struct {
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	Properties []Property `json:"properties"`
}

type jsonLevel struct {
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	TileWidth  int         `json:"tilewidth"`
	TileHeight int         `json:"tileheight"`
	Tilesets   []Tileset   `json:"tilesets"`
	Layers     []jsonLayer `json:"layers"`
}

// DecodeJSON reads a Tiled JSON map export and validates it.
func DecodeJSON(r io.Reader) (*LevelDescriptor, error) {
	var raw jsonLevel
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: decode json: %v", ErrInvalidLevelData, err)
	}

	desc := &LevelDescriptor{
		Width:      raw.Width,
		Height:     raw.Height,
		TileWidth:  raw.TileWidth,
		TileHeight: raw.TileHeight,
		Tilesets:   raw.Tilesets,
		Layers:     make([]Layer, 0, len(raw.Layers)),
	}

	for i, l := range raw.Layers {
		layer := Layer{Name: l.Name, Type: l.Type}
		if layer.IsTileLayer() {
			data, err := decodeLayerData(l)
			if err != nil {
				return nil, fmt.Errorf("%w: layer %d (%q): %v", ErrInvalidLevelData, i, l.Name, err)
			}
			layer.Data = data
		}
		if l.Type == "objectgroup" && l.Name == spawnGroupName {
			for _, o := range l.Objects {
				desc.SpawnPoints = append(desc.SpawnPoints, SpawnPoint{
					X:     o.X,
					Y:     o.Y,
					Index: intProperty(o.Properties, "spawnIndex"),
				})
			}
		}
		desc.Layers = append(desc.Layers, layer)
	}

	sort.Slice(desc.SpawnPoints, func(i, j int) bool {
		return desc.SpawnPoints[i].X < desc.SpawnPoints[j].X
	})

	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return desc, nil
}

// LoadJSON reads and decodes a Tiled JSON map from fsys.
func LoadJSON(fsys fs.FS, path string) (*LevelDescriptor, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	desc, err := DecodeJSON(f)
	if err != nil {
		return nil, fmt.Errorf("load JSON %s: %w", path, err)
	}
	return desc, nil
}

// intProperty returns the named property as an int. JSON numbers decode as
// float64.
func intProperty(props []Property, name string) int {
	for _, p := range props {
		if p.Name != name {
			continue
		}
		if v, ok := p.Value.(float64); ok {
			return int(v)
		}
	}
	return 0
}

func decodeLayerData(l jsonLayer) ([]uint32, error) {
	if len(l.Data) == 0 || string(l.Data) == "null" {
		return nil, nil
	}

	switch l.Encoding {
	case "", "csv":
		var data []uint32
		if err := json.Unmarshal(l.Data, &data); err != nil {
			return nil, fmt.Errorf("decode data array: %w", err)
		}
		for i := range data {
			data[i] &= gidFlagMask
		}
		return data, nil
	case "base64":
		var s string
		if err := json.Unmarshal(l.Data, &s); err != nil {
			return nil, fmt.Errorf("decode data string: %w", err)
		}
		return decodeBase64Data(s, l.Compression)
	default:
		return nil, fmt.Errorf("unsupported encoding %q", l.Encoding)
	}
}

func decodeBase64Data(s, compression string) ([]uint32, error) {
	buf, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("base64: %w", err)
	}

	var r io.Reader = bytes.NewReader(buf)
	switch compression {
	case "":
	case "zlib":
		zr, err := zlib.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zlib: %w", err)
		}
		defer zr.Close()
		r = zr
	case "gzip":
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer gr.Close()
		r = gr
	default:
		return nil, fmt.Errorf("unsupported compression %q", compression)
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("data length %d is not a multiple of 4", len(raw))
	}

	data := make([]uint32, len(raw)/4)
	for i := range data {
		data[i] = binary.LittleEndian.Uint32(raw[i*4:]) & gidFlagMask
	}
	return data, nil
}
