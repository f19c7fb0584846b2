package archetypes

import (
	"github.com/automoto/tilecollide/components"
	"github.com/automoto/tilecollide/tags"
	"github.com/yohamta/donburi"
)

var (
	Walker = newArchetype(
		tags.Walker,
		components.Walker,
		components.Object,
		components.Physics,
	)
	Level = newArchetype(
		tags.Level,
		components.Level,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	return w.Entry(w.Create(append(a.components, cs...)...))
}
