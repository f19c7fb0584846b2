package leveldata

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Load reads a level file, choosing the parser by extension: .tmx for TMX,
// .json or .tmj for Tiled JSON exports.
func Load(fsys fs.FS, levelPath string) (*LevelDescriptor, error) {
	switch strings.ToLower(path.Ext(levelPath)) {
	case ".tmx":
		return LoadTMX(fsys, levelPath)
	case ".json", ".tmj":
		return LoadJSON(fsys, levelPath)
	default:
		return nil, fmt.Errorf("load %s: unsupported level format", levelPath)
	}
}

// LoadAll discovers all level files in levelsDir within fsys, loads each one,
// and returns a map keyed by stem name plus a sorted list of names. Two files
// sharing a stem are an error.
func LoadAll(fsys fs.FS, levelsDir string) (map[string]*LevelDescriptor, []string, error) {
	entries, err := fs.ReadDir(fsys, levelsDir)
	if err != nil {
		return nil, nil, fmt.Errorf("read dir %s: %w", levelsDir, err)
	}

	levels := make(map[string]*LevelDescriptor)
	names := make([]string, 0, len(entries))

	for _, e := range entries {
		if e.IsDir() || !isLevelFile(e.Name()) {
			continue
		}
		levelPath := path.Join(levelsDir, e.Name())
		desc, err := Load(fsys, levelPath)
		if err != nil {
			return nil, nil, err
		}
		stem := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		if _, dup := levels[stem]; dup {
			return nil, nil, fmt.Errorf("load %s: duplicate level name %q", levelPath, stem)
		}
		levels[stem] = desc
		names = append(names, stem)
	}

	if len(names) == 0 {
		return nil, nil, fmt.Errorf("no level files found in %s", levelsDir)
	}

	sort.Strings(names)
	return levels, names, nil
}

func isLevelFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".tmx", ".json", ".tmj":
		return true
	}
	return false
}
