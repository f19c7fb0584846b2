package core

import (
	"github.com/automoto/tilecollide/components"
	"github.com/automoto/tilecollide/shared/collision"
	"github.com/automoto/tilecollide/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateWalkers moves every walker one tick, one axis at a time. An axis
// move is rejected when the destination probe point is solid or the body
// would overlap another walker. A walker blocked on either axis turns 90°
// clockwise.
func UpdateWalkers(e *ecs.ECS) {
	levelEntry, ok := components.Level.First(e.World)
	if !ok {
		return
	}
	level := components.Level.Get(levelEntry)

	tags.Walker.Each(e.World, func(entry *donburi.Entry) {
		obj := components.Object.Get(entry)
		phys := components.Physics.Get(entry)
		walker := components.Walker.Get(entry)

		walker.Blocked = false

		// --- Horizontal ---
		if dx := phys.SpeedX; dx != 0 {
			if canMove(level.Collision, obj, dx, 0) {
				obj.X += dx
				obj.Update()
			} else {
				walker.Blocked = true
			}
		}

		// --- Vertical ---
		if dy := phys.SpeedY; dy != 0 {
			if canMove(level.Collision, obj, 0, dy) {
				obj.Y += dy
				obj.Update()
			} else {
				walker.Blocked = true
			}
		}

		if walker.Blocked {
			// Screen space has y pointing down: right -> down -> left -> up.
			phys.SpeedX, phys.SpeedY = -phys.SpeedY, phys.SpeedX
			walker.Turns++
		}
	})
}

func canMove(m *collision.Map, obj *components.ObjectData, dx, dy float64) bool {
	cx, cy := obj.Center()
	if m.IsColliding(cx+dx, cy+dy) {
		return false
	}
	return !bodyBlocked(obj.Object, dx, dy)
}

// bodyBlocked reports whether obj moved by dx, dy would overlap another
// walker. resolv's Check is a cell broadphase, so candidates are confirmed
// with an exact bounds test.
func bodyBlocked(obj *resolv.Object, dx, dy float64) bool {
	check := obj.Check(dx, dy, tags.ResolvWalker)
	if check == nil {
		return false
	}
	for _, other := range check.Objects {
		if other != obj && overlaps(obj, other, dx, dy) {
			return true
		}
	}
	return false
}

func overlaps(a, b *resolv.Object, dx, dy float64) bool {
	ax, ay := a.X+dx, a.Y+dy
	return ax < b.X+b.W && b.X < ax+a.W && ay < b.Y+b.H && b.Y < ay+a.H
}
