// Package geometry exports level geometry to the binary glTF file the
// custom level build reads.
package geometry

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/Faultbox/goal-levels/pkg/obj"
)

// ErrNoGeometry is returned when an anchor has no .obj children.
var ErrNoGeometry = errors.New("anchor has no .obj geometry")

// OBJExporter converts the .obj children of an anchor into a single .glb.
type OBJExporter struct {
	log *zap.Logger
}

// NewOBJExporter creates an exporter that logs to log.
func NewOBJExporter(log *zap.Logger) *OBJExporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &OBJExporter{log: log}
}

// ExportGeometry loads the anchor's meshes and writes them to outPath.
// The anchor is either a single .obj file or a directory of .obj files; the
// anchor itself does not become a node.
func (x *OBJExporter) ExportGeometry(anchor, outPath string) error {
	paths, err := AnchorSources(anchor)
	if err != nil {
		return err
	}

	meshes := make([]*obj.Mesh, 0, len(paths))
	for _, p := range paths {
		objects, err := obj.LoadObjects(p)
		if err != nil {
			return err
		}
		for _, m := range objects {
			x.log.Debug("loaded mesh",
				zap.String("file", p),
				zap.String("name", m.Name),
				zap.Int("vertices", len(m.Vertices)),
				zap.Int("faces", len(m.Faces)))
		}
		meshes = append(meshes, objects...)
	}
	if len(meshes) == 0 {
		return errors.Wrap(ErrNoGeometry, anchor)
	}

	doc := BuildDocument(meshes)

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return errors.Wrap(err, "create geometry directory")
	}
	if err := WriteGLB(outPath, doc); err != nil {
		return err
	}

	b := Bounds(meshes)
	center, radius := b.Sphere()
	x.log.Info("geometry exported",
		zap.String("file", outPath),
		zap.Int("meshes", len(meshes)),
		zap.Float32s("bsphere", []float32{center[0], center[1], center[2], radius}))
	return nil
}

// AnchorSources lists the .obj files an anchor refers to, sorted by name.
func AnchorSources(anchor string) ([]string, error) {
	info, err := os.Stat(anchor)
	if err != nil {
		return nil, errors.Wrap(err, "anchor")
	}
	if !info.IsDir() {
		if !isOBJ(anchor) {
			return nil, errors.Errorf("anchor %s is not an .obj file", anchor)
		}
		return []string{anchor}, nil
	}

	entries, err := os.ReadDir(anchor)
	if err != nil {
		return nil, errors.Wrap(err, "read anchor directory")
	}
	var paths []string
	for _, e := range entries {
		if !e.IsDir() && isOBJ(e.Name()) {
			paths = append(paths, filepath.Join(anchor, e.Name()))
		}
	}
	if len(paths) == 0 {
		return nil, errors.Wrap(ErrNoGeometry, anchor)
	}
	sort.Strings(paths)
	return paths, nil
}

func isOBJ(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".obj")
}

// BuildDocument creates a glTF document with one root node per mesh.
func BuildDocument(meshes []*obj.Mesh) *gltf.Document {
	doc := gltf.NewDocument()
	doc.Materials = append(doc.Materials, &gltf.Material{
		Name:        "default",
		DoubleSided: true,
	})

	for _, m := range meshes {
		positions := make([][3]float32, len(m.Vertices))
		for i, v := range m.Vertices {
			positions[i] = v
		}
		normals := VertexNormals(m)
		normalData := make([][3]float32, len(normals))
		for i, n := range normals {
			normalData[i] = n
		}

		attributes := map[string]uint32{
			"POSITION": modeler.WritePosition(doc, positions),
			"NORMAL":   modeler.WriteNormal(doc, normalData),
		}
		indices := modeler.WriteIndices(doc, m.Triangles())

		doc.Meshes = append(doc.Meshes, &gltf.Mesh{
			Name: m.Name,
			Primitives: []*gltf.Primitive{{
				Indices:    gltf.Index(indices),
				Attributes: attributes,
				Material:   gltf.Index(0),
			}},
		})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)))
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name: m.Name,
			Mesh: gltf.Index(uint32(len(doc.Meshes) - 1)),
		})
	}
	return doc
}

// WriteGLB encodes doc as binary glTF into path.
func WriteGLB(path string, doc *gltf.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create glb")
	}
	encoder := gltf.NewEncoder(f)
	encoder.AsBinary = true
	if err := encoder.Encode(doc); err != nil {
		f.Close()
		return errors.Wrap(err, "encode glb")
	}
	return errors.Wrap(f.Close(), "close glb")
}

// VertexNormals returns per-vertex normals averaged from adjacent faces.
// Vertices without faces get the +Y axis.
func VertexNormals(m *obj.Mesh) []mgl32.Vec3 {
	normals := make([]mgl32.Vec3, len(m.Vertices))
	for _, face := range m.Faces {
		for i := 1; i+1 < len(face); i++ {
			a, b, c := m.Vertices[face[0]], m.Vertices[face[i]], m.Vertices[face[i+1]]
			n := b.Sub(a).Cross(c.Sub(a))
			normals[face[0]] = normals[face[0]].Add(n)
			normals[face[i]] = normals[face[i]].Add(n)
			normals[face[i+1]] = normals[face[i+1]].Add(n)
		}
	}
	for i, n := range normals {
		if n.Len() < 1e-12 {
			normals[i] = mgl32.Vec3{0, 1, 0}
			continue
		}
		normals[i] = n.Normalize()
	}
	return normals
}

// Box is an axis-aligned bounding box.
type Box [2]mgl32.Vec3

// ExpandToPoint grows the box to contain pos.
func (b *Box) ExpandToPoint(pos mgl32.Vec3) {
	for i, coord := range pos {
		if coord < b[0][i] {
			b[0][i] = coord
		}
		if coord > b[1][i] {
			b[1][i] = coord
		}
	}
}

// Center returns the middle of the box.
func (b Box) Center() mgl32.Vec3 {
	return b[0].Add(b[1]).Mul(0.5)
}

// Sphere returns the center and radius of the sphere enclosing the box.
func (b Box) Sphere() (mgl32.Vec3, float32) {
	return b.Center(), b[1].Sub(b[0]).Len() * 0.5
}

// Bounds returns the box around every vertex of meshes.
func Bounds(meshes []*obj.Mesh) Box {
	var b Box
	first := true
	for _, m := range meshes {
		for _, v := range m.Vertices {
			if first {
				b = Box{v, v}
				first = false
				continue
			}
			b.ExpandToPoint(v)
		}
	}
	return b
}
