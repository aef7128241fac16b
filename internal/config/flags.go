package config

import "flag"

// Flags is the flag set of the export command.
var Flags = flag.NewFlagSet("export", flag.ExitOnError)

var (
	flagConfig     = Flags.String("config", "", "Path to config file")
	flagDebug      = Flags.Bool("debug", false, "Enable debug logging")
	flagTitle      = Flags.String("title", "", "Level title (letters and dashes)")
	flagNickname   = Flags.String("nickname", "", "Three letter level nickname")
	flagAnchor     = Flags.String("anchor", "", "Geometry source: .obj file or directory")
	flagLevelsPath = Flags.String("levels", "", "Path to custom_levels/ of the OpenGOAL distribution")
	flagProject    = Flags.String("project", "", "OpenGOAL project root (default: parent of -levels)")
	flagGeometry   = Flags.Bool("geometry", false, "Export level geometry")
	flagPlaytest   = Flags.Bool("playtest", false, "Launch the level after export")
	flagNoInfo     = Flags.Bool("no-info", false, "Skip level and actor info files")
)

// ParseFlags parses export command-line flags. Call this early in main().
func ParseFlags(args []string) error {
	return Flags.Parse(args)
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagTitle != "" {
		cfg.Level.Title = *flagTitle
	}
	if *flagNickname != "" {
		cfg.Level.Nickname = *flagNickname
	}
	if *flagAnchor != "" {
		cfg.Level.Anchor = *flagAnchor
	}
	if *flagLevelsPath != "" {
		cfg.Level.CustomLevelsPath = *flagLevelsPath
	}
	if *flagProject != "" {
		cfg.Project.Root = *flagProject
	}
	if *flagGeometry {
		cfg.Export.Geometry = true
	}
	if *flagPlaytest {
		cfg.Export.Playtest = true
	}
	if *flagNoInfo {
		cfg.Export.LevelInfo = false
		cfg.Export.ActorInfo = false
	}
}
