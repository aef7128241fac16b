// levelbuilder is a CLI utility for packaging OpenGOAL custom levels.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/goal-levels/internal/config"
	"github.com/Faultbox/goal-levels/internal/export"
	"github.com/Faultbox/goal-levels/internal/geometry"
	"github.com/Faultbox/goal-levels/internal/logger"
	"github.com/Faultbox/goal-levels/internal/playtest"
	"github.com/Faultbox/goal-levels/pkg/level"
	"github.com/Faultbox/goal-levels/pkg/mesh"
	"github.com/Faultbox/goal-levels/pkg/obj"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "export":
		cmdExport(args)
	case "import":
		cmdImport(args)
	case "meshdump":
		cmdMeshDump(args)
	case "init":
		cmdInit(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`levelbuilder - OpenGOAL custom level packaging utility

Usage:
  levelbuilder <command> [options]

Commands:
  export [flags]                     Export level files, geometry, and playtest
  import <dir|file.obj> <out.glb>    Bulk import .obj files into one .glb
  meshdump [-pkg p] [-o dir] <file>  Dump an .obj mesh as Go literals
  init [path]                        Write a default levelbuilder.yaml

Export flags:
  -config <file>   -title <name>   -nickname <abc>   -levels <dir>
  -anchor <path>   -project <dir>  -geometry  -playtest  -no-info  -debug

Examples:
  levelbuilder init
  levelbuilder export -title my-level -nickname lvl -levels ~/opengoal/custom_levels/
  levelbuilder export -geometry -anchor ./geometry -playtest
  levelbuilder import ./debug_out ./my-level.glb
  levelbuilder meshdump -pkg meshes fuel-cell.obj`)
}

func cmdExport(args []string) {
	if err := config.ParseFlags(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logger.Sugar.Debugf("Config: %+v", cfg)

	launcher := playtest.New(logger.Named("playtest"),
		cfg.Playtest.GameBinary, cfg.Playtest.GameArgs,
		cfg.Playtest.CompilerBinary, cfg.Playtest.StartupCommand)

	exporter := export.New(logger.Named("export"),
		export.WithGeometry(geometry.NewOBJExporter(logger.Named("geometry"))),
		export.WithLauncher(launcher),
		export.WithSentinel(cfg.Project.Sentinel))

	run, err := exporter.Run(cfg.Descriptor(), cfg.Plan())
	if err != nil {
		var verr *level.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintf(os.Stderr, "Error: %s\n", verr.Reason)
		} else {
			logger.Error("export failed", zap.Error(err))
		}
		logger.Sync()
		os.Exit(1)
	}

	for _, step := range run.Steps {
		fmt.Printf("Task (%d/%d) %s\n", step.Index, step.Total, step.Name)
		for _, f := range step.Files {
			fmt.Printf("  %-10s %s\n", f.Action, f.Path)
		}
	}
	fmt.Println("After exporting, be sure to read the README.")
}

func cmdImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	debug := fs.Bool("debug", false, "Enable debug logging")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: levelbuilder import <dir|file.obj> <out.glb>")
		os.Exit(1)
	}

	lvl := "info"
	if *debug {
		lvl = "debug"
	}
	if err := logger.Init(lvl, ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	x := geometry.NewOBJExporter(logger.Named("import"))
	if err := x.ExportGeometry(fs.Arg(0), fs.Arg(1)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func cmdMeshDump(args []string) {
	fs := flag.NewFlagSet("meshdump", flag.ExitOnError)
	pkg := fs.String("pkg", "meshes", "Package name of the generated file")
	outDir := fs.String("o", ".", "Output directory")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: levelbuilder meshdump [-pkg name] [-o dir] <file.obj>")
		os.Exit(1)
	}

	m, err := obj.Load(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(*outDir, mesh.FileName(m.Name))
	f, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := mesh.Dump(f, m, *pkg); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(outPath)
}

func cmdInit(args []string) {
	path := config.FileName
	if len(args) > 0 {
		path = args[0]
	}

	if err := config.Default().SaveTo(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", path)
}
