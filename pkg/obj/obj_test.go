package obj

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const quadOBJ = `# exported quad
mtllib quad.mtl
o Floor.001
v 0 0 0
v 1 0 0
v 1 0 1
v 0 0 1
vn 0 1 0
usemtl floor
s off
f 1//1 2//1 3//1 4//1
`

func TestParseQuad(t *testing.T) {
	m, err := Parse(strings.NewReader(quadOBJ), "fallback")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if m.Name != "Floor.001" {
		t.Errorf("expected name Floor.001, got %s", m.Name)
	}
	if len(m.Vertices) != 4 {
		t.Fatalf("expected 4 vertices, got %d", len(m.Vertices))
	}
	if m.Vertices[2][0] != 1 || m.Vertices[2][2] != 1 {
		t.Errorf("unexpected vertex 2: %v", m.Vertices[2])
	}
	if len(m.Faces) != 1 || len(m.Faces[0]) != 4 {
		t.Fatalf("expected one quad face, got %v", m.Faces)
	}
	for i, want := range []int{0, 1, 2, 3} {
		if m.Faces[0][i] != want {
			t.Errorf("face index %d: expected %d, got %d", i, want, m.Faces[0][i])
		}
	}
}

func TestTriangles(t *testing.T) {
	m, _ := Parse(strings.NewReader(quadOBJ), "")
	tris := m.Triangles()
	want := []uint32{0, 1, 2, 0, 2, 3}
	if len(tris) != len(want) {
		t.Fatalf("expected %v, got %v", want, tris)
	}
	for i := range want {
		if tris[i] != want[i] {
			t.Errorf("index %d: expected %d, got %d", i, want[i], tris[i])
		}
	}
}

func TestEdges(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nf 1 2 3\nf 1 3 4\n"
	m, err := Parse(strings.NewReader(src), "tri")
	if err != nil {
		t.Fatal(err)
	}

	edges := m.Edges()
	want := []Edge{{0, 1}, {1, 2}, {0, 2}, {2, 3}, {0, 3}}
	if len(edges) != len(want) {
		t.Fatalf("expected %v, got %v", want, edges)
	}
	for i := range want {
		if edges[i] != want[i] {
			t.Errorf("edge %d: expected %v, got %v", i, want[i], edges[i])
		}
	}
}

func TestParseNegativeAndSlashedIndices(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nf -3/1 -2/1/1 -1\n"
	m, err := Parse(strings.NewReader(src), "neg")
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != "neg" {
		t.Errorf("expected default name, got %s", m.Name)
	}
	if got := m.Faces[0]; got[0] != 0 || got[1] != 1 || got[2] != 2 {
		t.Errorf("unexpected face %v", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"short vertex", "v 1 2\n"},
		{"bad float", "v 1 x 2\n"},
		{"short face", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
		{"out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n"},
		{"unknown statement", "bogus 1 2 3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.src), "x"); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadUsesFileName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crate.obj")
	if err := os.WriteFile(path, []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.Name != "crate" {
		t.Errorf("expected name crate, got %s", m.Name)
	}
}

const twoObjectsOBJ = `o Floor
v 0 0 0
v 1 0 0
v 0 0 1
f 1 2 3
o Ramp
g ignored
v 0 1 0
v 1 1 0
v 0 1 1
f 4 5 6
f 1 4 5
`

func TestParseObjects(t *testing.T) {
	meshes, err := ParseObjects(strings.NewReader(twoObjectsOBJ), "fallback")
	if err != nil {
		t.Fatalf("ParseObjects failed: %v", err)
	}
	if len(meshes) != 2 {
		t.Fatalf("expected 2 meshes, got %d", len(meshes))
	}

	floor, ramp := meshes[0], meshes[1]
	if floor.Name != "Floor" || ramp.Name != "Ramp" {
		t.Errorf("unexpected names %s, %s", floor.Name, ramp.Name)
	}
	if len(floor.Vertices) != 3 || len(floor.Faces) != 1 {
		t.Errorf("unexpected floor %+v", floor)
	}
	// Ramp renumbers its own vertices from zero and borrows vertex 1.
	if len(ramp.Vertices) != 4 {
		t.Fatalf("expected 4 ramp vertices, got %d", len(ramp.Vertices))
	}
	if got := ramp.Faces[0]; got[0] != 0 || got[1] != 1 || got[2] != 2 {
		t.Errorf("unexpected ramp face %v", got)
	}
	if got := ramp.Faces[1]; got[0] != 3 || got[1] != 0 || got[2] != 1 {
		t.Errorf("unexpected borrowed face %v", got)
	}
	if ramp.Vertices[3] != floor.Vertices[0] {
		t.Errorf("borrowed vertex mismatch: %v", ramp.Vertices[3])
	}
}

func TestParseMergesObjects(t *testing.T) {
	m, err := Parse(strings.NewReader(twoObjectsOBJ), "fallback")
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != "Floor" || len(m.Vertices) != 6 || len(m.Faces) != 3 {
		t.Errorf("unexpected merged mesh %s: %d vertices, %d faces", m.Name, len(m.Vertices), len(m.Faces))
	}
}

func TestParseObjectsDefaultName(t *testing.T) {
	meshes, err := ParseObjects(strings.NewReader("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"), "crate")
	if err != nil {
		t.Fatal(err)
	}
	if len(meshes) != 1 || meshes[0].Name != "crate" {
		t.Errorf("expected one mesh named crate, got %d", len(meshes))
	}
}
