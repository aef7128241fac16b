package mesh

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Faultbox/goal-levels/pkg/obj"
)

func TestFileName(t *testing.T) {
	tests := map[string]string{
		"fuel-cell.001": "fuelcell.go",
		"Orb":           "Orb.go",
		"eco_yellow2":   "eco_yellow.go",
	}
	for in, want := range tests {
		if got := FileName(in); got != want {
			t.Errorf("FileName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIdent(t *testing.T) {
	tests := map[string]string{
		"fuel-cell.001": "FuelCell",
		"orb":           "Orb",
		"123":           "Mesh",
	}
	for in, want := range tests {
		if got := Ident(in); got != want {
			t.Errorf("Ident(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDump(t *testing.T) {
	src := "o fuel-cell\nv 0 0 0\nv 1.5 0 0\nv 0 1 -2\nf 1 2 3\n"
	m, err := obj.Parse(strings.NewReader(src), "")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Dump(&buf, m, "meshes"); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"package meshes",
		`import "github.com/go-gl/mathgl/mgl32"`,
		"var FuelCellVerts = []mgl32.Vec3{",
		"{1.5, 0.0, 0.0},",
		"{0.0, 1.0, -2.0},",
		"var FuelCellEdges = [][2]int{{0, 1}, {1, 2}, {0, 2}}",
		"var FuelCellFaces = [][]int{{0, 1, 2}}",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
