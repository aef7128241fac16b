// Package config handles level builder configuration loading and management.
package config

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/goal-levels/internal/export"
)

// FileName is the config file looked up in the working and config directories.
const FileName = "levelbuilder.yaml"

// Config holds all level builder settings.
type Config struct {
	Level    LevelConfig    `yaml:"level"`
	Export   ExportConfig   `yaml:"export"`
	Project  ProjectConfig  `yaml:"project"`
	Playtest PlaytestConfig `yaml:"playtest"`
	Logging  LoggingConfig  `yaml:"logging"`
	Actors   []ActorConfig  `yaml:"actors,omitempty"`
}

// ActorConfig describes a placed actor. Actors are carried to the exporter
// but not yet written to the level descriptor.
type ActorConfig struct {
	Name       string            `yaml:"name"`
	Trans      [3]float32        `yaml:"trans"`
	Quat       [4]float32        `yaml:"quat"` // x, y, z, w
	Properties map[string]string `yaml:"lump,omitempty"`
}

// LevelConfig describes the level being exported.
type LevelConfig struct {
	Title            string `yaml:"title"`              // Letters and dashes
	Nickname         string `yaml:"nickname"`           // Three letters
	Anchor           string `yaml:"anchor"`             // .obj file or directory of .obj files
	CustomLevelsPath string `yaml:"custom_levels_path"` // custom_levels/ of the OpenGOAL distribution
}

// ExportConfig selects the export tasks.
type ExportConfig struct {
	LevelInfo bool `yaml:"level_info"`
	ActorInfo bool `yaml:"actor_info"`
	Geometry  bool `yaml:"geometry"`
	Playtest  bool `yaml:"playtest"`
}

// ProjectConfig locates the engine files patched by an export.
type ProjectConfig struct {
	Root     string `yaml:"root"` // Parent of custom_levels_path when empty
	Game     string `yaml:"game"`
	Sentinel string `yaml:"sentinel"` // game.gp line new levels go after
}

// PlaytestConfig holds the commands started for a playtest.
type PlaytestConfig struct {
	GameBinary     string   `yaml:"game_binary"`
	GameArgs       []string `yaml:"game_args"`
	CompilerBinary string   `yaml:"compiler_binary"`
	StartupCommand string   `yaml:"startup_command"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Level: LevelConfig{
			Title:    "my-level",
			Nickname: "lvl",
		},
		Export: ExportConfig{
			LevelInfo: true,
			ActorInfo: true,
			Geometry:  false,
			Playtest:  false,
		},
		Project: ProjectConfig{
			Game:     export.DefaultGame,
			Sentinel: export.DefaultSentinel,
		},
		Playtest: PlaytestConfig{
			GameBinary:     "gk",
			GameArgs:       []string{"-boot", "-fakeiso", "-debug"},
			CompilerBinary: "goalc",
			StartupCommand: "(mi) (lt)",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Descriptor returns the export descriptor for the configured level.
func (c *Config) Descriptor() export.Descriptor {
	return export.Descriptor{
		Title:            c.Level.Title,
		Nickname:         c.Level.Nickname,
		CustomLevelsRoot: c.Level.CustomLevelsPath,
		Anchor:           c.Level.Anchor,
		Project:          c.Project.Root,
		Game:             c.Project.Game,
		Actors:           c.actors(),
	}
}

func (c *Config) actors() []export.Actor {
	if len(c.Actors) == 0 {
		return nil
	}
	actors := make([]export.Actor, len(c.Actors))
	for i, a := range c.Actors {
		actors[i] = export.Actor{
			Name:       a.Name,
			Trans:      mgl32.Vec3(a.Trans),
			Quat:       mgl32.Quat{W: a.Quat[3], V: mgl32.Vec3{a.Quat[0], a.Quat[1], a.Quat[2]}},
			Properties: a.Properties,
		}
	}
	return actors
}

// Plan returns the configured export plan.
func (c *Config) Plan() export.Plan {
	return export.Plan{
		LevelInfo: c.Export.LevelInfo,
		ActorInfo: c.Export.ActorInfo,
		Geometry:  c.Export.Geometry,
		Playtest:  c.Export.Playtest,
	}
}
