package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/automoto/tilecollide/assets"
	"github.com/automoto/tilecollide/config"
	"github.com/automoto/tilecollide/server/api"
	"github.com/automoto/tilecollide/server/core"
	"github.com/automoto/tilecollide/shared/collision"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Flags override environment values.
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	flag.StringVar(&cfg.LevelsDir, "levels", cfg.LevelsDir, "Levels directory (empty = embedded levels)")
	flag.StringVar(&cfg.Level, "level", cfg.Level, "Level to simulate (empty = first)")
	flag.IntVar(&cfg.TickRate, "tickrate", cfg.TickRate, "Server tick rate (updates per second)")
	flag.IntVar(&cfg.Walkers, "walkers", cfg.Walkers, "Number of simulated walkers")
	flag.Float64Var(&cfg.WalkerSpeed, "speed", cfg.WalkerSpeed, "Walker speed in pixels per tick")
	flag.Float64Var(&cfg.AnchorOffset, "anchor", cfg.AnchorOffset, "Vertical anchor offset in pixels")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	levelsFS, levelsDir := assets.Levels(), assets.LevelsDir
	if cfg.LevelsDir != "" {
		levelsFS, levelsDir = os.DirFS(cfg.LevelsDir), "."
	}
	levels, names, err := loadLevels(levelsFS, levelsDir, cfg.AnchorOffset)
	if err != nil {
		log.Fatalf("Failed to load levels: %v", err)
	}

	name := cfg.Level
	if name == "" {
		name = names[0]
	}
	level, ok := levels[name]
	if !ok {
		log.Fatalf("Unknown level %q (available: %v)", name, names)
	}

	server := core.NewServer(level, cfg.TickRate)
	server.SpawnWalkers(cfg.Walkers, cfg.WalkerSpeed)
	server.Start()

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      api.NewRouter(api.NewLevelHandler(levels, names), api.NewSimHandler(server)),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down server...")
		server.Stop()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			log.Printf("HTTP shutdown error: %v", err)
		}
	}()

	log.Printf("Starting tilecollide server on %s (level: %s, tick rate: %d/s, walkers: %d)",
		cfg.Addr, name, cfg.TickRate, server.WalkerCount())
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server error: %v", err)
	}
}

func loadLevels(fsys fs.FS, dir string, anchor float64) (map[string]*core.ServerLevel, []string, error) {
	return core.LoadAllServerLevels(fsys, dir, collision.WithAnchorOffset(anchor))
}
