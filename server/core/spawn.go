package core

import (
	"github.com/automoto/tilecollide/config"
	"github.com/automoto/tilecollide/tags"
	"github.com/solarlune/resolv"
)

// Right, down, left, up.
var headings = [][2]float64{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}

// placeBody adds a walker body to the level space at the first free
// candidate position. Candidates are the spawn points, starting at index,
// followed by every tile in row-major order.
func (s *Server) placeBody(index int) (*resolv.Object, bool) {
	w := float64(config.Walker.CollisionWidth)
	h := float64(config.Walker.CollisionHeight)

	obj := resolv.NewObject(0, 0, w, h, tags.ResolvWalker)
	obj.SetShape(resolv.NewRectangle(0, 0, w, h))
	s.level.Space.Add(obj)

	for _, c := range s.spawnCandidates(index) {
		obj.X = c[0] - w/2
		obj.Y = c[1] - h/2
		obj.Update()
		if s.level.Collision.IsColliding(c[0], c[1]) || bodyBlocked(obj, 0, 0) {
			continue
		}
		return obj, true
	}

	s.level.Space.Remove(obj)
	return nil, false
}

// spawnCandidates returns body centres to try, in order.
func (s *Server) spawnCandidates(index int) [][2]float64 {
	m := s.level.Collision
	grid := m.Grid()
	tw, th := m.TileSize()

	out := make([][2]float64, 0, len(s.level.SpawnPoints)+grid.Rows()*grid.Cols())
	if n := len(s.level.SpawnPoints); n > 0 {
		for i := 0; i < n; i++ {
			sp := s.level.SpawnPoints[(index+i)%n]
			out = append(out, [2]float64{sp.X, sp.Y})
		}
	}

	// Tile centres, shifted up so the probe point lands in the tile.
	for row := 0; row < grid.Rows(); row++ {
		for col := 0; col < grid.Cols(); col++ {
			out = append(out, [2]float64{
				float64(col)*tw + tw/2,
				float64(row)*th + th/2 - m.AnchorOffset(),
			})
		}
	}
	return out
}
