package collision

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

var (
	solidColor = color.RGBA{R: 100, G: 100, B: 100, A: 255}
	freeColor  = color.RGBA{A: 0}
)

// Image renders the grid for debugging: one tileWidth x tileHeight block per
// cell, grey for solid and transparent for free.
func (g *Grid) Image(tileWidth, tileHeight int) image.Image {
	cells := image.NewRGBA(image.Rect(0, 0, g.cols, g.rows))
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			c := freeColor
			if g.cells[row*g.cols+col] {
				c = solidColor
			}
			cells.SetRGBA(col, row, c)
		}
	}

	if tileWidth <= 1 && tileHeight <= 1 {
		return cells
	}
	tileWidth = max(tileWidth, 1)
	tileHeight = max(tileHeight, 1)

	dst := image.NewRGBA(image.Rect(0, 0, g.cols*tileWidth, g.rows*tileHeight))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), cells, cells.Bounds(), draw.Src, nil)
	return dst
}
