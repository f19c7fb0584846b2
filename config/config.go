package config

// WalkerConfig contains the simulated walker body and movement values.
type WalkerConfig struct {
	// Dimensions. The body's vertical centre sits DefaultAnchorOffset pixels
	// above its feet, so the centre is the collision probe point.
	CollisionWidth  int
	CollisionHeight int

	// Movement
	Speed float64 // Pixels per tick
}

// SpaceConfig contains the resolv broadphase cell size.
type SpaceConfig struct {
	CellWidth  int
	CellHeight int
}

// Global configuration instances
var Walker WalkerConfig
var Space SpaceConfig

func init() {
	Walker = WalkerConfig{
		CollisionWidth:  16,
		CollisionHeight: 48,
		Speed:           2.0,
	}

	Space = SpaceConfig{
		CellWidth:  16,
		CellHeight: 16,
	}
}
