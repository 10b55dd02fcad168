package brlcad

import (
	"strconv"

	"gonum.org/v1/gonum/spatial/r3"
)

// ArbKind is the vertex count of an arbitrary convex polyhedron.
type ArbKind int

const (
	Arb4 ArbKind = 4
	Arb5 ArbKind = 5
	Arb6 ArbKind = 6
	Arb7 ArbKind = 7
	Arb8 ArbKind = 8
)

func (k ArbKind) String() string {
	switch k {
	case Arb4, Arb5, Arb6, Arb7, Arb8:
		return "arb" + strconv.Itoa(int(k))
	}
	return "ArbKind(" + strconv.Itoa(int(k)) + ")"
}

// Arb is a validated set of 4 to 8 distinct vertices describing an
// arbitrary convex polyhedron. The zero value is invalid.
type Arb struct {
	kind     ArbKind
	vertices [8]r3.Vec
}

// NewArb validates vertices and returns the polyhedron of matching kind.
func NewArb(vertices ...r3.Vec) (Arb, error) {
	kind := ArbKind(len(vertices))
	c := checker{op: kind.String()}
	switch kind {
	case Arb4, Arb5, Arb6, Arb7, Arb8:
	default:
		c.fail("vertices", "need 4 to 8 vertices, got "+strconv.Itoa(len(vertices)))
		return Arb{}, c.err
	}
	var arb Arb
	arb.kind = kind
	for i, v := range vertices {
		c.vec("vertex "+strconv.Itoa(i+1), v)
		for j := 0; j < i; j++ {
			if vertices[j] == v {
				c.fail("vertex "+strconv.Itoa(i+1), "repeats vertex "+strconv.Itoa(j+1)+" ("+vtoa(v)+")")
			}
		}
		arb.vertices[i] = v
	}
	if c.err != nil {
		return Arb{}, c.err
	}
	return arb, nil
}

// Kind returns the polyhedron kind. It is zero for an invalid Arb.
func (a Arb) Kind() ArbKind { return a.kind }

// Vertices returns a copy of the polyhedron's vertices.
func (a Arb) Vertices() []r3.Vec {
	return append([]r3.Vec(nil), a.vertices[:a.kind]...)
}

// Arb creates an arb4 through arb8 primitive depending on arb's kind.
func (s *Session) Arb(name string, arb Arb) (string, error) {
	var kind string
	switch arb.kind {
	case Arb4:
		kind = "arb4"
	case Arb5:
		kind = "arb5"
	case Arb6:
		kind = "arb6"
	case Arb7:
		kind = "arb7"
	case Arb8:
		kind = "arb8"
	default:
		return "", argErr("arb", "arb", "invalid polyhedron "+arb.kind.String())
	}
	args := make([]any, arb.kind)
	for i := range args {
		args[i] = arb.vertices[i]
	}
	c := checker{op: kind}
	return s.primitive(&c, name, kind, args...)
}

// ArbN validates vertices and creates the matching arb primitive.
func (s *Session) ArbN(name string, vertices ...r3.Vec) (string, error) {
	arb, err := NewArb(vertices...)
	if err != nil {
		return "", err
	}
	return s.Arb(name, arb)
}

// Arb8 creates an arb8 from 8 distinct vertices.
func (s *Session) Arb8(name string, v [8]r3.Vec) (string, error) {
	return s.ArbN(name, v[:]...)
}
