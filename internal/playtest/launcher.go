// Package playtest starts the game runtime and the compiler REPL so a freshly
// exported level can be tried out.
package playtest

import (
	"io"
	"os"
	"os/exec"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Launcher starts the OpenGOAL processes for a playtest.
type Launcher struct {
	GameBinary     string
	GameArgs       []string
	CompilerBinary string
	StartupCommand string

	// Stdin, Stdout and Stderr are handed to the compiler REPL. Game output
	// goes to Stderr.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	log   *zap.Logger
	start func(*exec.Cmd) error
	wait  func(*exec.Cmd) error
}

// New creates a launcher. Empty binaries fall back to gk and goalc.
func New(log *zap.Logger, gameBinary string, gameArgs []string, compilerBinary, startupCommand string) *Launcher {
	if log == nil {
		log = zap.NewNop()
	}
	if gameBinary == "" {
		gameBinary = "gk"
	}
	if compilerBinary == "" {
		compilerBinary = "goalc"
	}
	return &Launcher{
		GameBinary:     gameBinary,
		GameArgs:       gameArgs,
		CompilerBinary: compilerBinary,
		StartupCommand: startupCommand,
		Stdin:          os.Stdin,
		Stdout:         os.Stdout,
		Stderr:         os.Stderr,
		log:            log,
		start:          (*exec.Cmd).Start,
		wait:           (*exec.Cmd).Wait,
	}
}

// Commands returns the game and compiler commands, both run from projectRoot.
// The compiler is attached to the launcher's terminal streams.
func (l *Launcher) Commands(projectRoot string) (game, compiler *exec.Cmd) {
	game = exec.Command(l.GameBinary, l.GameArgs...)
	game.Dir = projectRoot
	game.Stdout = l.Stderr
	game.Stderr = l.Stderr

	var compilerArgs []string
	if l.StartupCommand != "" {
		compilerArgs = []string{"--startup-cmd", l.StartupCommand}
	}
	compiler = exec.Command(l.CompilerBinary, compilerArgs...)
	compiler.Dir = projectRoot
	compiler.Stdin = l.Stdin
	compiler.Stdout = l.Stdout
	compiler.Stderr = l.Stderr

	return game, compiler
}

// Launch starts the game in the background, then runs the compiler REPL
// until it exits. The game is left running.
func (l *Launcher) Launch(projectRoot, longTitle string) error {
	l.log.Info("beginning playtest", zap.String("project", projectRoot))

	game, compiler := l.Commands(projectRoot)
	for _, cmd := range []*exec.Cmd{game, compiler} {
		if err := l.start(cmd); err != nil {
			return errors.Wrapf(err, "start %s", cmd.Path)
		}
		l.log.Debug("started", zap.Strings("args", cmd.Args))
	}

	l.log.Sugar().Infof("for now run (bg-custom '%s-vis) in goalc manually", longTitle)

	if err := l.wait(compiler); err != nil {
		return errors.Wrapf(err, "%s exited", l.CompilerBinary)
	}
	return nil
}
