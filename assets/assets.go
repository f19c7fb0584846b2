// Package assets embeds the bundled levels so the server and tools run
// without an assets directory on disk.
package assets

import (
	"embed"
	"io/fs"
)

// LevelsDir is the directory holding level files inside Levels.
const LevelsDir = "levels"

var (
	//go:embed all:levels
	assetFS embed.FS
)

// Levels returns the embedded level file system. Level paths are rooted at
// LevelsDir.
func Levels() fs.FS {
	return assetFS
}
