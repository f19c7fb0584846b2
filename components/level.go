package components

import (
	"github.com/automoto/tilecollide/shared/collision"
	"github.com/yohamta/donburi"
)

// LevelData points systems at the collision map of the loaded level.
type LevelData struct {
	Name      string
	Collision *collision.Map
}

var Level = donburi.NewComponentType[LevelData]()
