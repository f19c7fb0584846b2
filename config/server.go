package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/automoto/tilecollide/shared/collision"
	"github.com/joho/godotenv"
)

// Environment keys read by Load.
const (
	EnvAddr         = "TILECOLLIDE_ADDR"
	EnvLevelsDir    = "TILECOLLIDE_LEVELS_DIR"
	EnvLevel        = "TILECOLLIDE_LEVEL"
	EnvTickRate     = "TILECOLLIDE_TICK_RATE"
	EnvWalkers      = "TILECOLLIDE_WALKERS"
	EnvWalkerSpeed  = "TILECOLLIDE_WALKER_SPEED"
	EnvAnchorOffset = "TILECOLLIDE_ANCHOR_OFFSET"
	EnvReadTimeout  = "TILECOLLIDE_READ_TIMEOUT"
	EnvWriteTimeout = "TILECOLLIDE_WRITE_TIMEOUT"
)

// ServerConfig holds the dedicated server options. Values come from the
// environment (optionally a .env file) and can be overridden by flags.
type ServerConfig struct {
	Addr         string
	LevelsDir    string // Empty means the embedded levels
	Level        string // Level simulated by the game loop; empty picks the first
	TickRate     int
	Walkers      int
	WalkerSpeed  float64
	AnchorOffset float64
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultServer returns the built-in defaults.
func DefaultServer() ServerConfig {
	return ServerConfig{
		Addr:         ":7373",
		TickRate:     20,
		Walkers:      4,
		WalkerSpeed:  Walker.Speed,
		AnchorOffset: collision.DefaultAnchorOffset,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
}

// Load reads envFile (if it exists) into the process environment and builds
// a ServerConfig from defaults overlaid with environment values. A missing
// env file is not an error; a malformed value is.
func Load(envFile string) (ServerConfig, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return ServerConfig{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := DefaultServer()
	cfg.Addr = getEnv(EnvAddr, cfg.Addr)
	cfg.LevelsDir = getEnv(EnvLevelsDir, cfg.LevelsDir)
	cfg.Level = getEnv(EnvLevel, cfg.Level)

	var err error
	if cfg.TickRate, err = envInt(EnvTickRate, cfg.TickRate); err != nil {
		return ServerConfig{}, err
	}
	if cfg.Walkers, err = envInt(EnvWalkers, cfg.Walkers); err != nil {
		return ServerConfig{}, err
	}
	if cfg.WalkerSpeed, err = envFloat(EnvWalkerSpeed, cfg.WalkerSpeed); err != nil {
		return ServerConfig{}, err
	}
	if cfg.AnchorOffset, err = envFloat(EnvAnchorOffset, cfg.AnchorOffset); err != nil {
		return ServerConfig{}, err
	}
	if cfg.ReadTimeout, err = envDuration(EnvReadTimeout, cfg.ReadTimeout); err != nil {
		return ServerConfig{}, err
	}
	if cfg.WriteTimeout, err = envDuration(EnvWriteTimeout, cfg.WriteTimeout); err != nil {
		return ServerConfig{}, err
	}

	return cfg, cfg.Validate()
}

// Validate rejects option values the server cannot run with.
func (c ServerConfig) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("tick rate must be positive, got %d", c.TickRate)
	}
	if c.Walkers < 0 {
		return fmt.Errorf("walker count must not be negative, got %d", c.Walkers)
	}
	if c.WalkerSpeed < 0 {
		return fmt.Errorf("walker speed must not be negative, got %v", c.WalkerSpeed)
	}
	if math.IsNaN(c.AnchorOffset) || math.IsInf(c.AnchorOffset, 0) {
		return fmt.Errorf("anchor offset must be finite, got %v", c.AnchorOffset)
	}
	if c.TickRate > 60 {
		log.Printf("[config] tick rate %d is above 60/s", c.TickRate)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}

func envFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return f, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}
