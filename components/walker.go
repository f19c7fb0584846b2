package components

import "github.com/yohamta/donburi"

// WalkerData tracks a simulated walker that turns clockwise whenever its
// move is blocked.
type WalkerData struct {
	Index   int // Spawn order
	Turns   int // Blocked moves so far
	Blocked bool
}

var Walker = donburi.NewComponentType[WalkerData]()
