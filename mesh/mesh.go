// Package mesh reads the STL files written by g-stl, checks them for
// corrupt triangles and renders shaded previews.
package mesh

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/hschendel/stl"
	"gonum.org/v1/gonum/spatial/r3"
)

// Triangle is a mesh facet as stored in the file.
type Triangle struct {
	Normal [3]float32
	V      [3][3]float32
}

// Mesh is a loaded STL solid.
type Mesh struct {
	Name      string
	ASCII     bool
	Triangles []Triangle
}

// Load reads an ASCII or binary STL file.
func Load(path string) (*Mesh, error) {
	solid, err := stl.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mesh: reading %s: %w", path, err)
	}
	m := &Mesh{
		Name:      solid.Name,
		ASCII:     solid.IsAscii,
		Triangles: make([]Triangle, len(solid.Triangles)),
	}
	for i, t := range solid.Triangles {
		m.Triangles[i] = Triangle{
			Normal: t.Normal,
			V:      [3][3]float32{t.Vertices[0], t.Vertices[1], t.Vertices[2]},
		}
	}
	return m, nil
}

// Solid converts m back to the STL library's representation.
func (m *Mesh) Solid() *stl.Solid {
	s := &stl.Solid{Name: m.Name, IsAscii: m.ASCII, Triangles: make([]stl.Triangle, len(m.Triangles))}
	for i, t := range m.Triangles {
		s.Triangles[i] = stl.Triangle{
			Normal:   t.Normal,
			Vertices: [3]stl.Vec3{t.V[0], t.V[1], t.V[2]},
		}
	}
	return s
}

// Bounds returns the axis aligned bounding box of the mesh vertices.
func (m *Mesh) Bounds() r3.Box {
	if len(m.Triangles) == 0 {
		return r3.Box{}
	}
	first := r3From3F32(m.Triangles[0].V[0])
	box := r3.Box{Min: first, Max: first}
	for _, t := range m.Triangles {
		for _, v := range t.V {
			p := r3From3F32(v)
			box.Min = r3.Vec{X: min(box.Min.X, p.X), Y: min(box.Min.Y, p.Y), Z: min(box.Min.Z, p.Z)}
			box.Max = r3.Vec{X: max(box.Max.X, p.X), Y: max(box.Max.Y, p.Y), Z: max(box.Max.Z, p.Z)}
		}
	}
	return box
}

// Report summarizes Validate.
type Report struct {
	Triangles int
	// Degenerate counts triangles with coincident vertices.
	Degenerate int
	// NormalMismatches counts triangles whose stored normal disagrees with
	// the vertex winding. Tessellators often emit these on fine models.
	NormalMismatches int
}

// ErrCorrupt is returned by Validate for triangles with NaN or infinite
// components.
var ErrCorrupt = errors.New("mesh: inf/NaN triangle component")

// Validate checks every triangle. Degenerate triangles and normal
// mismatches are counted; NaN or infinite components abort with an error
// wrapping ErrCorrupt.
func (m *Mesh) Validate() (Report, error) {
	const epsilon = 1e-12
	const normTol = 5e-2
	r := Report{Triangles: len(m.Triangles)}
	for i, t := range m.Triangles {
		if bad3F32(t.Normal) || bad3F32(t.V[0]) || bad3F32(t.V[1]) || bad3F32(t.V[2]) {
			return r, fmt.Errorf("triangle %d: %w", i, ErrCorrupt)
		}
		if t.degenerate(epsilon) {
			r.Degenerate++
			continue
		}
		if t.Normal == ([3]float32{}) {
			// Zero normals ask readers to compute them.
			continue
		}
		n := t.normalFromVertices()
		neg := [3]float32{-n[0], -n[1], -n[2]}
		if !equalWithin3F32(n, t.Normal, normTol) && !equalWithin3F32(neg, t.Normal, normTol) {
			r.NormalMismatches++
		}
	}
	return r, nil
}

func bad3F32(f [3]float32) bool {
	return math32.IsNaN(f[0]) || math32.IsInf(f[0], 0) ||
		math32.IsNaN(f[1]) || math32.IsInf(f[1], 0) ||
		math32.IsNaN(f[2]) || math32.IsInf(f[2], 0)
}

func r3From3F32(f [3]float32) r3.Vec {
	return r3.Vec{X: float64(f[0]), Y: float64(f[1]), Z: float64(f[2])}
}

func (t Triangle) normalFromVertices() [3]float32 {
	v1 := r3.Scale(10, r3From3F32(t.V[0]))
	v2 := r3.Scale(10, r3From3F32(t.V[1]))
	v3 := r3.Scale(10, r3From3F32(t.V[2]))
	n := r3.Unit(r3.Cross(r3.Sub(v2, v1), r3.Sub(v3, v1)))
	return [3]float32{float32(n.X), float32(n.Y), float32(n.Z)}
}

func (t Triangle) degenerate(tol float32) bool {
	return equalWithin3F32(t.V[0], t.V[1], tol) ||
		equalWithin3F32(t.V[1], t.V[2], tol) ||
		equalWithin3F32(t.V[2], t.V[0], tol)
}

func equalWithin3F32(a, b [3]float32, tol float32) bool {
	return math32.Abs(a[0]-b[0]) <= tol &&
		math32.Abs(a[1]-b[1]) <= tol &&
		math32.Abs(a[2]-b[2]) <= tol
}
