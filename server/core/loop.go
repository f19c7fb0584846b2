package core

import (
	"log"
	"sync/atomic"
	"time"
)

// GameLoop steps a Server at a fixed tick rate until stopped.
type GameLoop struct {
	server   *Server
	tickRate int
	ticks    atomic.Uint64
	stopChan chan struct{}
	stopped  atomic.Bool
}

// NewGameLoop creates a loop stepping server tickRate times per second.
func NewGameLoop(server *Server, tickRate int) *GameLoop {
	return &GameLoop{
		server:   server,
		tickRate: tickRate,
		stopChan: make(chan struct{}),
	}
}

// Run blocks, stepping the server on every tick until Stop is called.
func (g *GameLoop) Run() {
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	log.Printf("Game loop started at %d ticks/second", g.tickRate)

	for {
		select {
		case <-g.stopChan:
			log.Println("Game loop stopped")
			return
		case <-ticker.C:
			g.tick()
		}
	}
}

// Stop ends Run. It is safe to call more than once.
func (g *GameLoop) Stop() {
	if g.stopped.CompareAndSwap(false, true) {
		close(g.stopChan)
	}
}

// Ticks returns the number of ticks run so far.
func (g *GameLoop) Ticks() uint64 {
	return g.ticks.Load()
}

func (g *GameLoop) tick() {
	g.server.Step()
	g.ticks.Add(1)
}
