package export

import (
	"path/filepath"

	"github.com/Faultbox/goal-levels/pkg/level"
)

// DefaultGame is the goal_src subdirectory used when a descriptor names none.
const DefaultGame = "jak1"

// Layout lists every file an export touches.
type Layout struct {
	LevelDir      string // <root>/<long>
	GD            string
	JSONC         string
	Readme        string
	Geometry      string // <long>.glb
	LevelInfo     string // engine level registry, level-info.gc
	BuildManifest string // game.gp
}

// ProjectRoot returns the OpenGOAL project directory for d. Without an
// explicit root it is the parent of the custom levels directory.
func (d Descriptor) ProjectRoot() string {
	if d.Project != "" {
		return d.Project
	}
	return filepath.Dir(filepath.Clean(d.CustomLevelsRoot))
}

// NewLayout computes the paths for a sanitized level.
func NewLayout(d Descriptor, ids level.Identifiers) Layout {
	game := d.Game
	if game == "" {
		game = DefaultGame
	}
	levelDir := filepath.Join(d.CustomLevelsRoot, ids.Long)
	gameDir := filepath.Join(d.ProjectRoot(), "goal_src", game)

	return Layout{
		LevelDir:      levelDir,
		GD:            filepath.Join(levelDir, ids.Short+".gd"),
		JSONC:         filepath.Join(levelDir, ids.Long+".jsonc"),
		Readme:        filepath.Join(levelDir, "README.MD"),
		Geometry:      filepath.Join(levelDir, ids.Long+".glb"),
		LevelInfo:     filepath.Join(gameDir, "engine", "level", "level-info.gc"),
		BuildManifest: filepath.Join(gameDir, "game.gp"),
	}
}
