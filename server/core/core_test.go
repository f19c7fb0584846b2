package core

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/automoto/tilecollide/assets"
	"github.com/automoto/tilecollide/components"
	"github.com/automoto/tilecollide/config"
	"github.com/automoto/tilecollide/shared/collision"
	"github.com/automoto/tilecollide/shared/leveldata"
	"github.com/automoto/tilecollide/tags"
	"github.com/yohamta/donburi"
)

// corridor returns a w x 3 level whose middle row is free between two
// walls. Reference 1 is collideable.
func corridor(w int) *leveldata.LevelDescriptor {
	data := make([]uint32, w*3)
	for i := range data {
		row, col := i/w, i%w
		if row != 1 || col == 0 || col == w-1 {
			data[i] = 1
		}
	}
	return &leveldata.LevelDescriptor{
		Width:      w,
		Height:     3,
		TileWidth:  16,
		TileHeight: 16,
		Tilesets: []leveldata.Tileset{{
			FirstGID: 1,
			Tiles: []leveldata.TilesetTile{{
				ID:         0,
				Properties: []leveldata.Property{{Name: collision.PropCollideable, Type: "bool", Value: true}},
			}},
		}},
		Layers: []leveldata.Layer{{Name: "ground", Type: leveldata.LayerTypeTile, Data: data}},
	}
}

func newCorridorServer(t *testing.T, w int) *Server {
	t.Helper()
	level, err := NewServerLevel("corridor", corridor(w), collision.WithAnchorOffset(0))
	if err != nil {
		t.Fatalf("Failed to create level: %v", err)
	}
	return NewServer(level, 20)
}

func setSpeed(s *Server, index int, dx, dy float64) {
	tags.Walker.Each(s.ecs.World, func(e *donburi.Entry) {
		if components.Walker.Get(e).Index == index {
			phys := components.Physics.Get(e)
			phys.SpeedX, phys.SpeedY = dx, dy
		}
	})
}

func TestNewServerLevel(t *testing.T) {
	a, err := NewServerLevel("a", corridor(6))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	b, err := NewServerLevel("b", corridor(6))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if a.MapWidth != 96 || a.MapHeight != 48 {
		t.Errorf("Expected 96x48 map, got %dx%d", a.MapWidth, a.MapHeight)
	}
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("Expected distinct non-empty ids, got %q and %q", a.ID, b.ID)
	}
	if a.Collision.Grid().SolidCount() != 14 {
		t.Errorf("Expected 14 solid tiles, got %d", a.Collision.Grid().SolidCount())
	}
	if a.Space == nil {
		t.Error("Expected a body space")
	}
}

func TestNewServerLevel_Invalid(t *testing.T) {
	desc := corridor(6)
	desc.Layers[0].Data = desc.Layers[0].Data[:10]

	level, err := NewServerLevel("broken", desc)
	if !errors.Is(err, leveldata.ErrInvalidLevelData) {
		t.Fatalf("Expected ErrInvalidLevelData, got %v", err)
	}
	if level != nil {
		t.Error("Expected no level on error")
	}
}

func TestLoadAllServerLevels(t *testing.T) {
	levels, names, err := LoadAllServerLevels(assets.Levels(), assets.LevelsDir)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(names) != len(levels) || len(names) == 0 {
		t.Fatalf("Expected matching non-empty names and levels, got %v / %d", names, len(levels))
	}
	for _, name := range names {
		if levels[name].Name != name {
			t.Errorf("Level %s has name %q", name, levels[name].Name)
		}
	}

	if _, _, err := LoadAllServerLevels(assets.Levels(), "missing"); err == nil {
		t.Error("Expected error for missing directory")
	}
}

func TestWalkerTurnsAtWall(t *testing.T) {
	s := newCorridorServer(t, 6)
	if n := s.SpawnWalkers(1, 4); n != 1 {
		t.Fatalf("Expected 1 walker, got %d", n)
	}

	w := s.Walkers()[0]
	if w.X != 24 || w.Y != 24 || w.SpeedX != 4 || w.SpeedY != 0 {
		t.Fatalf("Unexpected initial walker: %+v", w)
	}

	for i := 0; i < 13; i++ {
		s.Step()
	}
	w = s.Walkers()[0]
	if w.X != 76 || w.Turns != 0 {
		t.Fatalf("Expected walker at x=76 without turns, got %+v", w)
	}

	// x=80 is the right wall.
	s.Step()
	w = s.Walkers()[0]
	if w.X != 76 || w.Turns != 1 {
		t.Errorf("Expected walker blocked at x=76, got %+v", w)
	}
	if w.SpeedX != 0 || w.SpeedY != 4 {
		t.Errorf("Expected walker to turn clockwise to (0,4), got (%v,%v)", w.SpeedX, w.SpeedY)
	}
}

func TestWalkersBlockEachOther(t *testing.T) {
	s := newCorridorServer(t, 12)
	if n := s.SpawnWalkers(2, 4); n != 2 {
		t.Fatalf("Expected 2 walkers, got %d", n)
	}

	ws := s.Walkers()
	if ws[0].X != 24 || ws[1].X != 40 {
		t.Fatalf("Expected walkers side by side at x=24 and x=40, got %+v", ws)
	}

	setSpeed(s, 0, 4, 0)
	setSpeed(s, 1, -4, 0)
	s.Step()

	ws = s.Walkers()
	if ws[0].X != 24 || ws[1].X != 40 {
		t.Errorf("Expected both walkers to stay put, got %+v", ws)
	}
	if ws[0].Turns != 1 || ws[1].Turns != 1 {
		t.Errorf("Expected both walkers to turn, got %+v", ws)
	}
}

func TestWalkersStayOutOfWalls(t *testing.T) {
	level, err := NewServerLevel("arena", mustLoad(t, "arena.json"))
	if err != nil {
		t.Fatalf("Failed to create level: %v", err)
	}
	s := NewServer(level, 20)
	if n := s.SpawnWalkers(6, config.Walker.Speed); n != 6 {
		t.Fatalf("Expected 6 walkers, got %d", n)
	}

	for tick := 0; tick < 500; tick++ {
		s.Step()
		ws := s.Walkers()
		for _, w := range ws {
			if w.Colliding {
				t.Fatalf("Tick %d: walker %d inside a wall at (%v,%v)", tick, w.Index, w.X, w.Y)
			}
		}
		for i := 0; i < len(ws); i++ {
			for j := i + 1; j < len(ws); j++ {
				if bodiesOverlap(ws[i], ws[j]) {
					t.Fatalf("Tick %d: walkers %d and %d overlap", tick, i, j)
				}
			}
		}
	}
}

func bodiesOverlap(a, b WalkerSnapshot) bool {
	w := float64(config.Walker.CollisionWidth)
	h := float64(config.Walker.CollisionHeight)
	return a.X-w/2 < b.X+w/2 && b.X-w/2 < a.X+w/2 && a.Y-h/2 < b.Y+h/2 && b.Y-h/2 < a.Y+h/2
}

func mustLoad(t *testing.T, name string) *leveldata.LevelDescriptor {
	t.Helper()
	desc, err := leveldata.Load(assets.Levels(), assets.LevelsDir+"/"+name)
	if err != nil {
		t.Fatalf("Failed to load %s: %v", name, err)
	}
	return desc
}

func TestSpawnWalkers_NoRoom(t *testing.T) {
	desc := corridor(4)
	for i := range desc.Layers[0].Data {
		desc.Layers[0].Data[i] = 1
	}
	level, err := NewServerLevel("solid", desc)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	s := NewServer(level, 20)

	if n := s.SpawnWalkers(3, 2); n != 0 {
		t.Errorf("Expected no walkers on a solid level, got %d", n)
	}
	if s.WalkerCount() != 0 {
		t.Errorf("Expected empty world, got %d walkers", s.WalkerCount())
	}
}

func TestGameLoop_StartStop(t *testing.T) {
	s := newCorridorServer(t, 6)
	s.SpawnWalkers(1, 1)
	s.loop = NewGameLoop(s, 200)

	s.Start()
	deadline := time.Now().Add(2 * time.Second)
	for s.Ticks() < 3 {
		if time.Now().After(deadline) {
			t.Fatal("Game loop did not tick")
		}
		time.Sleep(5 * time.Millisecond)
	}
	s.Stop()
	s.Stop()
}

func TestServer_ConcurrentReads(t *testing.T) {
	s := newCorridorServer(t, 12)
	s.SpawnWalkers(2, 1)

	var wg sync.WaitGroup
	stop := make(chan struct{})

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					for _, w := range s.Walkers() {
						if w.Colliding {
							t.Errorf("Walker %d inside a wall", w.Index)
							return
						}
					}
				}
			}
		}()
	}

	for i := 0; i < 200; i++ {
		s.Step()
	}
	close(stop)
	wg.Wait()
}
