// Package obj reads the subset of Wavefront OBJ needed to move level geometry
// and actor meshes around: positions and polygon faces.
package obj

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// Mesh is a polygon mesh with zero-based face indices.
type Mesh struct {
	Name     string
	Vertices []mgl32.Vec3
	Faces    [][]int // polygons, three or more vertex indices each
}

// Edge is an undirected vertex pair with A < B.
type Edge [2]int

// Load parses the OBJ file at path into a single mesh. The mesh is named
// after the first object statement, or the file name when there is none.
func Load(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open obj")
	}
	defer f.Close()

	m, err := Parse(f, baseName(path))
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return m, nil
}

// LoadObjects parses the OBJ file at path into one mesh per object.
func LoadObjects(path string) ([]*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open obj")
	}
	defer f.Close()

	meshes, err := ParseObjects(f, baseName(path))
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return meshes, nil
}

func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// Parse reads OBJ data from r into a single mesh holding every object.
// defaultName is used when the data has no o or g statement.
func Parse(r io.Reader, defaultName string) (*Mesh, error) {
	d, err := read(r, defaultName)
	if err != nil {
		return nil, err
	}

	m := &Mesh{Name: defaultName, Vertices: d.vertices}
	named := false
	for _, o := range d.objects {
		if !named && o.named {
			m.Name = o.name
			named = true
		}
		m.Faces = append(m.Faces, o.faces...)
	}
	return m, nil
}

// ParseObjects reads OBJ data from r and returns a mesh per o statement, in
// file order. Each mesh keeps the vertices declared under its object plus any
// it borrows through faces, with face indices renumbered to match. A g
// statement names an object that has no o name. Objects with no vertices are
// dropped.
func ParseObjects(r io.Reader, defaultName string) ([]*Mesh, error) {
	d, err := read(r, defaultName)
	if err != nil {
		return nil, err
	}

	var meshes []*Mesh
	for _, o := range d.objects {
		m := &Mesh{Name: o.name}
		local := make(map[int]int, len(o.vertices))
		use := func(global int) int {
			if i, ok := local[global]; ok {
				return i
			}
			local[global] = len(m.Vertices)
			m.Vertices = append(m.Vertices, d.vertices[global])
			return local[global]
		}
		for _, v := range o.vertices {
			use(v)
		}
		for _, face := range o.faces {
			f := make([]int, len(face))
			for i, v := range face {
				f[i] = use(v)
			}
			m.Faces = append(m.Faces, f)
		}
		if len(m.Vertices) > 0 {
			meshes = append(meshes, m)
		}
	}
	return meshes, nil
}

// document is an OBJ file as read: file-wide vertices and per-object faces
// indexing into them.
type document struct {
	vertices []mgl32.Vec3
	objects  []*object
}

type object struct {
	name     string
	named    bool
	vertices []int // declared under this object
	faces    [][]int
}

func (o *object) empty() bool {
	return len(o.vertices) == 0 && len(o.faces) == 0
}

func read(r io.Reader, defaultName string) (*document, error) {
	d := &document{}
	cur := &object{name: defaultName}
	d.objects = append(d.objects, cur)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, errors.Errorf("line %d: vertex needs 3 coordinates", lineNo)
			}
			var v mgl32.Vec3
			for i := 0; i < 3; i++ {
				f, err := strconv.ParseFloat(fields[i+1], 32)
				if err != nil {
					return nil, errors.Wrapf(err, "line %d: bad vertex", lineNo)
				}
				v[i] = float32(f)
			}
			cur.vertices = append(cur.vertices, len(d.vertices))
			d.vertices = append(d.vertices, v)

		case "f":
			if len(fields) < 4 {
				return nil, errors.Errorf("line %d: face needs at least 3 vertices", lineNo)
			}
			face := make([]int, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				idx, err := vertexIndex(ref, len(d.vertices))
				if err != nil {
					return nil, errors.Wrapf(err, "line %d", lineNo)
				}
				face = append(face, idx)
			}
			cur.faces = append(cur.faces, face)

		case "o":
			if len(fields) < 2 {
				continue
			}
			name := strings.Join(fields[1:], " ")
			if !cur.empty() {
				cur = &object{}
				d.objects = append(d.objects, cur)
			}
			cur.name, cur.named = name, true

		case "g":
			if !cur.named && len(fields) > 1 {
				cur.name, cur.named = strings.Join(fields[1:], " "), true
			}

		case "vt", "vn", "vp", "s", "l", "usemtl", "mtllib":
			// Not needed for collision/visual geometry export.

		default:
			return nil, errors.Errorf("line %d: unknown statement %q", lineNo, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read obj")
	}
	return d, nil
}

// vertexIndex resolves the position part of a face reference such as
// "3", "3/1", "3//2" or "-1" to a zero-based index.
func vertexIndex(ref string, count int) (int, error) {
	pos := ref
	if i := strings.IndexByte(ref, '/'); i >= 0 {
		pos = ref[:i]
	}
	n, err := strconv.Atoi(pos)
	if err != nil {
		return 0, errors.Errorf("bad face vertex %q", ref)
	}

	var idx int
	switch {
	case n > 0:
		idx = n - 1
	case n < 0:
		idx = count + n
	default:
		return 0, errors.Errorf("face vertex index 0 is invalid")
	}
	if idx < 0 || idx >= count {
		return 0, errors.Errorf("face vertex %d out of range (%d vertices)", n, count)
	}
	return idx, nil
}

// Edges returns the unique undirected edges of all faces in first-seen order.
func (m *Mesh) Edges() []Edge {
	seen := make(map[Edge]struct{})
	var edges []Edge
	for _, face := range m.Faces {
		for i := range face {
			a, b := face[i], face[(i+1)%len(face)]
			if a > b {
				a, b = b, a
			}
			e := Edge{a, b}
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			edges = append(edges, e)
		}
	}
	return edges
}

// Triangles fan-triangulates every face and returns flat index triples.
func (m *Mesh) Triangles() []uint32 {
	var out []uint32
	for _, face := range m.Faces {
		for i := 1; i+1 < len(face); i++ {
			out = append(out, uint32(face[0]), uint32(face[i]), uint32(face[i+1]))
		}
	}
	return out
}
