// Package export runs a custom level export: it validates the level
// description, writes the generated level files, patches the shared engine
// files and hands off geometry export and playtesting.
package export

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/goal-levels/pkg/level"
	"github.com/Faultbox/goal-levels/pkg/patch"
)

// DefaultSentinel marks the last known-good entry of game.gp.
const DefaultSentinel = `testzone.gd")`

// Descriptor is the user's description of the level being exported.
type Descriptor struct {
	Title            string
	Nickname         string
	CustomLevelsRoot string // the custom_levels directory of the distribution
	Anchor           string // geometry source handed to the GeometryExporter
	Project          string // OpenGOAL project root, derived when empty
	Game             string // goal_src subdirectory, DefaultGame when empty
	Actors           []Actor
}

// Actor is a placed object supplied by the caller.
type Actor struct {
	Name       string
	Trans      mgl32.Vec3
	Quat       mgl32.Quat
	Properties map[string]string
}

// Plan selects which export tasks run.
type Plan struct {
	LevelInfo bool
	ActorInfo bool
	Geometry  bool
	Playtest  bool
}

// TaskCount returns the number of top-level tasks the plan runs. Level info
// and actor info share one task.
func (p Plan) TaskCount() int {
	n := 0
	if p.LevelInfo || p.ActorInfo {
		n++
	}
	if p.Geometry {
		n++
	}
	if p.Playtest {
		n++
	}
	return n
}

// GeometryExporter writes the level geometry of anchor to outPath.
type GeometryExporter interface {
	ExportGeometry(anchor, outPath string) error
}

// Launcher starts a playtest of the exported level.
type Launcher interface {
	Launch(projectRoot, longTitle string) error
}

// FileResult records what happened to one file.
type FileResult struct {
	Path   string
	Action string // created, skipped, backed up, appended, inserted, exported
}

// Step is one completed task of an export.
type Step struct {
	Index int
	Total int
	Name  string
	Files []FileResult
}

// StepLog is the record of an export run.
type StepLog struct {
	Steps []Step
}

// Exporter runs exports.
type Exporter struct {
	log      *zap.Logger
	geometry GeometryExporter
	launcher Launcher
	sentinel string
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithGeometry sets the geometry exporter.
func WithGeometry(g GeometryExporter) Option {
	return func(e *Exporter) { e.geometry = g }
}

// WithLauncher sets the playtest launcher.
func WithLauncher(l Launcher) Option {
	return func(e *Exporter) { e.launcher = l }
}

// WithSentinel overrides the game.gp insertion marker.
func WithSentinel(s string) Option {
	return func(e *Exporter) {
		if s != "" {
			e.sentinel = s
		}
	}
}

// New creates an Exporter.
func New(log *zap.Logger, opts ...Option) *Exporter {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Exporter{log: log, sentinel: DefaultSentinel}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Validate checks d against p and returns the first problem as a
// *level.ValidationError.
func Validate(d Descriptor, p Plan) error {
	if err := level.ValidateTitle(d.Title); err != nil {
		return err
	}
	if err := level.ValidateNickname(d.Nickname); err != nil {
		return err
	}
	if d.Anchor == "" && p.Geometry {
		return &level.ValidationError{Field: "anchor", Reason: "Anchor cannot be empty if exporting geometry"}
	}
	if d.CustomLevelsRoot == "" {
		return &level.ValidationError{Field: "custom_levels_path", Reason: "Custom Levels Path cannot be empty"}
	}
	return nil
}

// Run exports d according to p. Validation failures return before anything
// is written. Later failures stop the run; completed steps are kept.
func (e *Exporter) Run(d Descriptor, p Plan) (*StepLog, error) {
	if err := Validate(d, p); err != nil {
		return nil, err
	}
	ids, err := level.Sanitize(d.Title, d.Nickname)
	if err != nil {
		return nil, err
	}
	layout := NewLayout(d, ids)

	run := &StepLog{}
	total := p.TaskCount()
	e.log.Info("beginning export", zap.String("level", ids.Long), zap.Int("tasks", total))

	next := func(name string) *Step {
		step := Step{Index: len(run.Steps) + 1, Total: total, Name: name}
		e.log.Info(fmt.Sprintf("Task (%d/%d)", step.Index, step.Total), zap.String("task", name))
		run.Steps = append(run.Steps, step)
		return &run.Steps[len(run.Steps)-1]
	}

	if p.LevelInfo || p.ActorInfo {
		step := next("update files")
		if err := e.updateFiles(step, d, p, ids, layout); err != nil {
			return run, err
		}
	}

	if p.Geometry {
		step := next("export geometry")
		if err := e.exportGeometry(step, d, layout); err != nil {
			return run, err
		}
	}

	if p.Playtest {
		next("playtest")
		if e.launcher == nil {
			return run, errors.New("playtest requested but no launcher configured")
		}
		if err := e.launcher.Launch(d.ProjectRoot(), ids.Long); err != nil {
			return run, errors.Wrap(err, "playtest")
		}
	}

	e.log.Info("export done", zap.String("level", ids.Long))
	return run, nil
}

func (e *Exporter) updateFiles(step *Step, d Descriptor, p Plan, ids level.Identifiers, layout Layout) error {
	if p.ActorInfo || len(d.Actors) > 0 {
		e.log.Warn("actor info does not currently export, the descriptor keeps its sample actors",
			zap.Int("actors", len(d.Actors)))
	}

	artifacts := level.Render(ids)

	if _, err := os.Stat(layout.LevelDir); os.IsNotExist(err) {
		if err := os.MkdirAll(layout.LevelDir, 0755); err != nil {
			return errors.Wrap(err, "create level directory")
		}
		e.log.Info("directory created", zap.String("path", layout.LevelDir))
	}

	for _, f := range []struct{ path, content string }{
		{layout.GD, artifacts.GD},
		{layout.JSONC, artifacts.JSONC},
		{layout.Readme, artifacts.Readme},
	} {
		outcome, err := patch.WriteIfAbsent(f.path, f.content)
		if err != nil {
			return err
		}
		if outcome == patch.Skipped {
			e.log.Info("file already exists, creation skipped", zap.String("path", f.path))
		} else {
			e.log.Info("file created", zap.String("path", f.path))
		}
		step.Files = append(step.Files, FileResult{Path: f.path, Action: outcome.String()})
	}

	if err := patch.BackupAndAppend(layout.LevelInfo, artifacts.LevelInfo); err != nil {
		return err
	}
	e.log.Info("level info updated",
		zap.String("path", layout.LevelInfo),
		zap.String("backup", patch.BackupPath(layout.LevelInfo)))
	step.Files = append(step.Files,
		FileResult{Path: patch.BackupPath(layout.LevelInfo), Action: "backed up"},
		FileResult{Path: layout.LevelInfo, Action: "appended"})

	if err := patch.BackupAndInsertAfterSentinel(layout.BuildManifest, artifacts.BuildManifest, e.sentinel); err != nil {
		return err
	}
	e.log.Info("build manifest updated",
		zap.String("path", layout.BuildManifest),
		zap.String("backup", patch.BackupPath(layout.BuildManifest)))
	step.Files = append(step.Files,
		FileResult{Path: patch.BackupPath(layout.BuildManifest), Action: "backed up"},
		FileResult{Path: layout.BuildManifest, Action: "inserted"})

	return nil
}

func (e *Exporter) exportGeometry(step *Step, d Descriptor, layout Layout) error {
	if _, err := os.Stat(layout.Geometry); err == nil {
		e.log.Info("geometry already exists, creation skipped", zap.String("path", layout.Geometry))
		step.Files = append(step.Files, FileResult{Path: layout.Geometry, Action: patch.Skipped.String()})
		return nil
	}
	if e.geometry == nil {
		return errors.New("geometry requested but no exporter configured")
	}
	if err := e.geometry.ExportGeometry(d.Anchor, layout.Geometry); err != nil {
		return errors.Wrap(err, "export geometry")
	}
	step.Files = append(step.Files, FileResult{Path: layout.Geometry, Action: "exported"})
	return nil
}
