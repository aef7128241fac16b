// Package mesh turns a polygon mesh into Go source literals so placeholder
// actor meshes can be compiled into the tool.
package mesh

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/Faultbox/goal-levels/pkg/obj"
)

var (
	nonWord = regexp.MustCompile(`[^\w\s]`)
	digits  = regexp.MustCompile(`[0-9]`)
)

// FileName returns the output file name for a mesh: punctuation and digits
// stripped, ".go" appended. "fuel-cell.001" becomes "fuelcell.go".
func FileName(meshName string) string {
	return digits.ReplaceAllString(nonWord.ReplaceAllString(meshName, ""), "") + ".go"
}

// Ident returns the exported Go identifier prefix for a mesh name.
// "fuel-cell.001" becomes "FuelCell".
func Ident(meshName string) string {
	var b strings.Builder
	upper := true
	for _, r := range meshName {
		if !unicode.IsLetter(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		return "Mesh"
	}
	return b.String()
}

// Dump writes gofmt'ed Go source declaring the vertices, edges and faces of
// m in package pkg.
func Dump(w io.Writer, m *obj.Mesh, pkg string) error {
	id := Ident(m.Name)

	var src bytes.Buffer
	fmt.Fprintf(&src, "// Code generated by levelbuilder meshdump from %q. DO NOT EDIT.\n\n", m.Name)
	fmt.Fprintf(&src, "package %s\n\n", pkg)
	src.WriteString("import \"github.com/go-gl/mathgl/mgl32\"\n\n")

	fmt.Fprintf(&src, "var %sVerts = []mgl32.Vec3{\n", id)
	for _, v := range m.Vertices {
		fmt.Fprintf(&src, "{%s, %s, %s},\n", formatFloat(v[0]), formatFloat(v[1]), formatFloat(v[2]))
	}
	src.WriteString("}\n\n")

	fmt.Fprintf(&src, "var %sEdges = [][2]int{", id)
	for i, e := range m.Edges() {
		if i > 0 {
			src.WriteString(", ")
		}
		fmt.Fprintf(&src, "{%d, %d}", e[0], e[1])
	}
	src.WriteString("}\n\n")

	fmt.Fprintf(&src, "var %sFaces = [][]int{", id)
	for i, face := range m.Faces {
		if i > 0 {
			src.WriteString(", ")
		}
		src.WriteByte('{')
		for j, idx := range face {
			if j > 0 {
				src.WriteString(", ")
			}
			src.WriteString(strconv.Itoa(idx))
		}
		src.WriteByte('}')
	}
	src.WriteString("}\n")

	formatted, err := format.Source(src.Bytes())
	if err != nil {
		return errors.Wrap(err, "format mesh source")
	}
	_, err = w.Write(formatted)
	return err
}

func formatFloat(f float32) string {
	s := strconv.FormatFloat(float64(f), 'g', -1, 32)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
