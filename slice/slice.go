// Package slice partitions a box into axis aligned slabs along Z.
package slice

import (
	"errors"
	"fmt"
	"iter"
	"math"

	"github.com/soypat/brlcad/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Slab is a Z bounded sub-volume of a box. Min holds the smaller value of
// every axis.
type Slab struct {
	Index    int
	Min, Max r3.Vec
}

// Thickness returns the slab's Z extent.
func (s Slab) Thickness() float64 { return s.Max.Z - s.Min.Z }

// Planner yields the slabs of a box in increasing Z. Every slab spans
// thickness except the last, which ends at the box's upper Z bound and may
// be thinner. A Planner is not restartable.
type Planner struct {
	thickness float64
	min, max  r3.Vec
	// tol absorbs accumulated rounding so a thickness computed as
	// extent/n yields exactly n slabs.
	tol   float64
	z     float64
	index int
	done  bool
}

// NewPlanner returns a planner for the box with opposite corners a and b.
func NewPlanner(thickness float64, a, b r3.Vec) (*Planner, error) {
	if !(thickness > 0) || math.IsInf(thickness, 1) {
		return nil, fmt.Errorf("slice: thickness must be positive and finite, got %v", thickness)
	}
	if !d3.Finite(a) || !d3.Finite(b) {
		return nil, errors.New("slice: corners must be finite")
	}
	return &Planner{
		thickness: thickness,
		min:       d3.MinElem(a, b),
		max:       d3.MaxElem(a, b),
		tol:       thickness * 1e-9,
		z:         math.Min(a.Z, b.Z),
	}, nil
}

// Uniform returns a planner cutting the box into n slabs of equal thickness.
func Uniform(n int, a, b r3.Vec) (*Planner, error) {
	if n <= 0 {
		return nil, fmt.Errorf("slice: slice count must be positive, got %d", n)
	}
	extent := math.Abs(b.Z - a.Z)
	if extent == 0 {
		return nil, errors.New("slice: box has no Z extent")
	}
	return NewPlanner(extent/float64(n), a, b)
}

// Thickness returns the nominal slab thickness.
func (p *Planner) Thickness() float64 { return p.thickness }

// Len returns the number of slabs a fresh planner yields.
func (p *Planner) Len() int {
	n := 1
	for !p.last(n - 1) {
		n++
	}
	return n
}

// last reports whether slab i reaches the upper bound.
func (p *Planner) last(i int) bool {
	return p.upper(i) >= p.max.Z-p.tol
}

// upper returns the unclamped upper Z of slab i. Computing it from the lower
// bound avoids accumulating rounding error over many slabs.
func (p *Planner) upper(i int) float64 {
	return p.min.Z + float64(i+1)*p.thickness
}

// Next returns the next slab. ok is false once the upper bound is reached.
func (p *Planner) Next() (s Slab, ok bool) {
	if p.done {
		return Slab{}, false
	}
	lo := p.z
	hi := p.upper(p.index)
	if p.last(p.index) {
		hi = p.max.Z
		p.done = true
	}
	p.z = hi
	s = Slab{
		Index: p.index,
		Min:   r3.Vec{X: p.min.X, Y: p.min.Y, Z: lo},
		Max:   r3.Vec{X: p.max.X, Y: p.max.Y, Z: hi},
	}
	p.index++
	return s, true
}

// All returns an iterator over the remaining slabs.
func (p *Planner) All() iter.Seq[Slab] {
	return func(yield func(Slab) bool) {
		for {
			s, ok := p.Next()
			if !ok || !yield(s) {
				return
			}
		}
	}
}

// Plan returns every slab of the box with opposite corners a and b.
func Plan(thickness float64, a, b r3.Vec) ([]Slab, error) {
	p, err := NewPlanner(thickness, a, b)
	if err != nil {
		return nil, err
	}
	slabs := make([]Slab, 0, p.Len())
	for s := range p.All() {
		slabs = append(slabs, s)
	}
	return slabs, nil
}

// DimensionExceededError reports a box whose footprint exceeds a limit.
type DimensionExceededError struct {
	Axis     string
	Measured float64
	Limit    float64
}

func (e *DimensionExceededError) Error() string {
	return fmt.Sprintf("slice: %s dimension %v exceeds maximum %v", e.Axis, e.Measured, e.Limit)
}

// CheckFootprint fails if the X or Y extent of the box with corners a and b
// exceeds maxX or maxY. A non-positive limit disables the check on its axis.
func CheckFootprint(a, b r3.Vec, maxX, maxY float64) error {
	size := r3.Sub(d3.MaxElem(a, b), d3.MinElem(a, b))
	if maxX > 0 && size.X > maxX {
		return &DimensionExceededError{Axis: "X", Measured: size.X, Limit: maxX}
	}
	if maxY > 0 && size.Y > maxY {
		return &DimensionExceededError{Axis: "Y", Measured: size.Y, Limit: maxY}
	}
	return nil
}
