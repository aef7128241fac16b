package level

import (
	"bytes"
	"embed"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(
	template.New("level").
		Funcs(template.FuncMap{"upper": strings.ToUpper}).
		ParseFS(templateFS, "templates/*.tmpl"),
)

// Template names inside templateFS.
const (
	tmplGD            = "level.gd.tmpl"
	tmplJSONC         = "level.jsonc.tmpl"
	tmplReadme        = "README.MD.tmpl"
	tmplLevelInfo     = "level-info.gc.tmpl"
	tmplBuildManifest = "game.gp.tmpl"
)

// ArtifactSet holds the rendered text files for one level.
type ArtifactSet struct {
	GD            string // DGO group file, <short>.gd
	JSONC         string // level descriptor, <long>.jsonc
	Readme        string
	LevelInfo     string // appended to level-info.gc
	BuildManifest string // inserted into game.gp
}

// Render produces the artifact set for ids. Output depends only on ids.
func Render(ids Identifiers) ArtifactSet {
	return ArtifactSet{
		GD:            execute(tmplGD, ids),
		JSONC:         execute(tmplJSONC, ids),
		Readme:        execute(tmplReadme, ids),
		LevelInfo:     execute(tmplLevelInfo, ids),
		BuildManifest: execute(tmplBuildManifest, ids),
	}
}

// execute runs a template that is known to parse and only reads string
// fields, so any failure is a programming error.
func execute(name string, ids Identifiers) string {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, ids); err != nil {
		panic("level: template " + name + ": " + err.Error())
	}
	// Template files end with a newline, the generated files do not.
	return strings.TrimSuffix(buf.String(), "\n")
}
