package core

import (
	"fmt"
	"io/fs"
	"log"

	"github.com/automoto/tilecollide/config"
	"github.com/automoto/tilecollide/shared/collision"
	"github.com/automoto/tilecollide/shared/leveldata"
	"github.com/google/uuid"
	"github.com/solarlune/resolv"
)

// ServerLevel holds the server's collision map, body space and spawn data
// for a level. It lives for as long as the level stays loaded.
type ServerLevel struct {
	ID          string
	Name        string
	Collision   *collision.Map
	Space       *resolv.Space
	SpawnPoints []leveldata.SpawnPoint
	MapWidth    int
	MapHeight   int
}

// NewServerLevel builds the collision map and an empty resolv.Space from a
// parsed level. A level that fails validation is not loaded.
func NewServerLevel(name string, desc *leveldata.LevelDescriptor, opts ...collision.Option) (*ServerLevel, error) {
	m, err := collision.NewMap(desc, opts...)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", name, err)
	}

	mapW, mapH := desc.PixelSize()
	space := resolv.NewSpace(mapW, mapH, config.Space.CellWidth, config.Space.CellHeight)

	grid := m.Grid()
	log.Printf("Loaded level %s: %d/%d solid tiles, %d spawn points, %dx%d map",
		name, grid.SolidCount(), grid.Rows()*grid.Cols(), len(desc.SpawnPoints), mapW, mapH)

	return &ServerLevel{
		ID:          uuid.New().String(),
		Name:        name,
		Collision:   m,
		Space:       space,
		SpawnPoints: desc.SpawnPoints,
		MapWidth:    mapW,
		MapHeight:   mapH,
	}, nil
}

// LoadAllServerLevels loads all levels in levelsDir within fsys, returning a
// map of ServerLevel keyed by stem name plus a sorted name list. Any level
// that fails to load aborts the whole load.
func LoadAllServerLevels(fsys fs.FS, levelsDir string, opts ...collision.Option) (map[string]*ServerLevel, []string, error) {
	descs, names, err := leveldata.LoadAll(fsys, levelsDir)
	if err != nil {
		return nil, nil, fmt.Errorf("load all levels: %w", err)
	}

	levels := make(map[string]*ServerLevel, len(names))
	for _, name := range names {
		level, err := NewServerLevel(name, descs[name], opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("load all levels: %w", err)
		}
		levels[name] = level
	}

	return levels, names, nil
}
