package d3

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// R3 vector helpers missing from gonum.

// MinElem return a vector with the minimum components of two vectors.
func MinElem(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)}
}

// MaxElem return a vector with the maximum components of two vectors.
func MaxElem(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)}
}

// Axis returns the component of v along axis 0 (X), 1 (Y) or 2 (Z).
func Axis(v r3.Vec, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	}
	panic("d3: axis out of range")
}

// Compare orders vectors lexicographically by X, then Y, then Z.
func Compare(a, b r3.Vec) int {
	for axis := 0; axis < 3; axis++ {
		ca, cb := Axis(a, axis), Axis(b, axis)
		switch {
		case ca < cb:
			return -1
		case ca > cb:
			return 1
		}
	}
	return 0
}

// Finite reports whether no component of v is NaN or infinite.
func Finite(v r3.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}
