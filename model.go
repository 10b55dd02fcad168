package brlcad

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/spatial/r3"
)

// CoordAvg returns the midpoint of a and b.
func CoordAvg(a, b float64) float64 { return (a + b) / 2 }

// BoxFaceCenter returns the center of the face of box (a, b) selected by
// face and the outward unit vector of that face. face must have exactly one
// non-zero component; its sign selects the min or max face on that axis.
func BoxFaceCenter(a, b, face r3.Vec) (center, away r3.Vec, err error) {
	sel := [3]float64{face.X, face.Y, face.Z}
	lo := [3]float64{minf(a.X, b.X), minf(a.Y, b.Y), minf(a.Z, b.Z)}
	hi := [3]float64{maxf(a.X, b.X), maxf(a.Y, b.Y), maxf(a.Z, b.Z)}
	var out, dir [3]float64
	nonzero := 0
	for i, bit := range sel {
		switch {
		case bit < 0:
			out[i], dir[i] = lo[i], -1
			nonzero++
		case bit > 0:
			out[i], dir[i] = hi[i], 1
			nonzero++
		default:
			out[i] = CoordAvg(lo[i], hi[i])
		}
	}
	if nonzero != 1 {
		return r3.Vec{}, r3.Vec{}, argErr("face", "face", "need exactly one non-zero axis, got "+vtoa(face))
	}
	return r3.Vec{X: out[0], Y: out[1], Z: out[2]}, r3.Vec{X: dir[0], Y: dir[1], Z: dir[2]}, nil
}

// Connection is a named attachment point of a Model.
type Connection struct {
	Name  string
	Point r3.Vec
	// Away is the direction pointing out of the model at Point.
	Away r3.Vec
}

// Model is a helper for assemblies built on a Session. It records the final
// object name and named connection points other models can attach to.
type Model struct {
	Session     *Session
	FinalName   string
	connections []Connection
}

// NewModel returns a model building into s.
func NewModel(s *Session) *Model {
	return &Model{Session: s}
}

// RegisterConnection adds a named connection point.
func (m *Model) RegisterConnection(name string, point, away r3.Vec) {
	m.connections = append(m.connections, Connection{Name: name, Point: point, Away: away})
}

// Connection returns the first connection point registered under name.
func (m *Model) Connection(name string) (Connection, bool) {
	for _, c := range m.connections {
		if c.Name == name {
			return c, true
		}
	}
	return Connection{}, false
}

// Connections returns the names of registered connection points in
// registration order.
func (m *Model) Connections() []string {
	names := make([]string, len(m.connections))
	for i, c := range m.connections {
		names[i] = c.Name
	}
	return names
}

// OutputArg returns the single command line argument of an example driver:
// the output file base path. It prints usage and exits if it is missing.
func OutputArg() string {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage:\n      %s file_name_for_output\n", filepath.Base(os.Args[0]))
		os.Exit(1)
	}
	return os.Args[1]
}
