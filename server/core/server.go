package core

import (
	"log"
	"sync"

	"github.com/automoto/tilecollide/archetypes"
	"github.com/automoto/tilecollide/components"
	"github.com/automoto/tilecollide/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/filter"
)

var walkerQuery = donburi.NewQuery(filter.Contains(tags.Walker))

// Server runs the walker simulation for one loaded level.
type Server struct {
	ecs   *ecs.ECS
	level *ServerLevel
	loop  *GameLoop

	// Guards the world: the loop writes under the lock, readers take RLock.
	mu sync.RWMutex
}

// WalkerSnapshot is a copy of one walker's state.
type WalkerSnapshot struct {
	Index     int     `json:"index"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	SpeedX    float64 `json:"speedX"`
	SpeedY    float64 `json:"speedY"`
	Turns     int     `json:"turns"`
	Colliding bool    `json:"colliding"`
}

// NewServer creates a server simulating level at tickRate updates per second.
func NewServer(level *ServerLevel, tickRate int) *Server {
	s := &Server{
		ecs:   ecs.NewECS(donburi.NewWorld()),
		level: level,
	}
	s.loop = NewGameLoop(s, tickRate)

	levelEntry := archetypes.Level.Spawn(s.ecs.World)
	components.Level.Set(levelEntry, &components.LevelData{
		Name:      level.Name,
		Collision: level.Collision,
	})

	s.ecs.AddSystem(UpdateWalkers)

	return s
}

// Start runs the game loop in its own goroutine.
func (s *Server) Start() {
	go s.loop.Run()
}

// Stop gracefully shuts down the game loop.
func (s *Server) Stop() {
	s.loop.Stop()
}

// Step advances the simulation by one tick.
func (s *Server) Step() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ecs.Update()
}

// Level returns the simulated level.
func (s *Server) Level() *ServerLevel {
	return s.level
}

// Ticks returns the number of loop ticks run so far.
func (s *Server) Ticks() uint64 {
	return s.loop.Ticks()
}

// Walkers returns a snapshot of every walker, ordered by spawn index.
func (s *Server) Walkers() []WalkerSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]WalkerSnapshot, s.walkerCount())
	tags.Walker.Each(s.ecs.World, func(entry *donburi.Entry) {
		obj := components.Object.Get(entry)
		phys := components.Physics.Get(entry)
		walker := components.Walker.Get(entry)
		x, y := obj.Center()
		out[walker.Index] = WalkerSnapshot{
			Index:     walker.Index,
			X:         x,
			Y:         y,
			SpeedX:    phys.SpeedX,
			SpeedY:    phys.SpeedY,
			Turns:     walker.Turns,
			Colliding: s.level.Collision.IsColliding(x, y),
		}
	})
	return out
}

// WalkerCount returns the number of walkers in the world.
func (s *Server) WalkerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.walkerCount()
}

func (s *Server) walkerCount() int {
	return walkerQuery.Count(s.ecs.World)
}

// SpawnWalkers adds up to n walkers moving at speed pixels per tick and
// returns how many were placed. Walkers start on spawn points when free, else
// on the first free tile, each heading in the next compass direction.
func (s *Server) SpawnWalkers(n int, speed float64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	spawned := 0
	for i := 0; i < n; i++ {
		index := s.walkerCount()
		obj, ok := s.placeBody(index)
		if !ok {
			log.Printf("[server] no free position for walker %d", index)
			break
		}

		entry := archetypes.Walker.Spawn(s.ecs.World)
		components.Object.Set(entry, &components.ObjectData{Object: obj})
		dx, dy := headings[index%len(headings)][0], headings[index%len(headings)][1]
		components.Physics.Set(entry, &components.PhysicsData{
			SpeedX: dx * speed,
			SpeedY: dy * speed,
		})
		components.Walker.Set(entry, &components.WalkerData{Index: index})
		spawned++
	}

	if spawned > 0 {
		log.Printf("[server] spawned %d walkers on level %s", spawned, s.level.Name)
	}
	return spawned
}
