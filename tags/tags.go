package tags

import "github.com/yohamta/donburi"

var (
	Walker = donburi.NewTag().SetName("Walker")
	Level  = donburi.NewTag().SetName("Level")
)

// Resolv tags for body collision
const (
	ResolvWalker = "walker"
)
