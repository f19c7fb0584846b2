// Command tilecollide checks level files: it builds each level's collision
// grid, prints it, and answers point queries against it.
//
//	tilecollide [-anchor 24] [-png out.png] [-quiet] level.tmx [x,y ...]
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/automoto/tilecollide/shared/collision"
	"github.com/automoto/tilecollide/shared/leveldata"
)

func main() {
	log.SetFlags(0)
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fset := flag.NewFlagSet("tilecollide", flag.ContinueOnError)
	fset.SetOutput(stderr)
	anchor := fset.Float64("anchor", collision.DefaultAnchorOffset, "Vertical anchor offset in pixels")
	pngPath := fset.String("png", "", "Write the collision grid as a PNG to this path")
	quiet := fset.Bool("quiet", false, "Do not print the grid")
	if err := fset.Parse(args); err != nil {
		return 2
	}
	if math.IsNaN(*anchor) || math.IsInf(*anchor, 0) {
		fmt.Fprintf(stderr, "error: anchor offset must be finite, got %v\n", *anchor)
		return 2
	}
	if fset.NArg() < 1 {
		fmt.Fprintln(stderr, "usage: tilecollide [flags] level-file [x,y ...]")
		return 2
	}

	levelPath := fset.Arg(0)
	desc, err := leveldata.Load(os.DirFS(filepath.Dir(levelPath)), filepath.Base(levelPath))
	if err != nil {
		if errors.Is(err, leveldata.ErrInvalidLevelData) {
			fmt.Fprintf(stderr, "invalid level: %v\n", err)
		} else {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return 1
	}

	m, err := collision.NewMap(desc, collision.WithAnchorOffset(*anchor))
	if err != nil {
		fmt.Fprintf(stderr, "invalid level: %v\n", err)
		return 1
	}

	grid := m.Grid()
	fmt.Fprintf(stdout, "%s: %dx%d tiles of %dx%d px, %d solid, %d spawn points\n",
		filepath.Base(levelPath), grid.Cols(), grid.Rows(), desc.TileWidth, desc.TileHeight,
		grid.SolidCount(), len(desc.SpawnPoints))
	if !*quiet {
		fmt.Fprint(stdout, grid.String())
	}

	if *pngPath != "" {
		if err := writePNG(*pngPath, grid, desc.TileWidth, desc.TileHeight); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
	}

	status := 0
	for _, arg := range fset.Args()[1:] {
		x, y, err := parsePoint(arg)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			status = 2
			continue
		}
		tx, ty, inBounds := m.TileAt(x, y)
		where := fmt.Sprintf("tile (%d,%d)", tx, ty)
		if !inBounds {
			where = "out of bounds"
		}
		fmt.Fprintf(stdout, "(%g,%g) %s colliding=%t\n", x, y, where, m.IsColliding(x, y))
	}
	return status
}

func parsePoint(s string) (x, y float64, err error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("point %q: want x,y", s)
	}
	if x, err = strconv.ParseFloat(strings.TrimSpace(xs), 64); err != nil {
		return 0, 0, fmt.Errorf("point %q: %w", s, err)
	}
	if y, err = strconv.ParseFloat(strings.TrimSpace(ys), 64); err != nil {
		return 0, 0, fmt.Errorf("point %q: %w", s, err)
	}
	return x, y, nil
}

func writePNG(path string, grid *collision.Grid, tileW, tileH int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, grid.Image(tileW, tileH)); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
