package d3

import "gonum.org/v1/gonum/spatial/r3"

// Box is an axis aligned 3d bounding box with Min <= Max on every axis.
type Box r3.Box

// BoxFromCorners returns the box spanned by two opposing corners given in
// any order.
func BoxFromCorners(a, b r3.Vec) Box {
	return Box{Min: MinElem(a, b), Max: MaxElem(a, b)}
}

// Contains checks if the 3d box contains the given vector (considering bounds as inside).
func (a Box) Contains(v r3.Vec) bool {
	return a.Min.X <= v.X && a.Min.Y <= v.Y && a.Min.Z <= v.Z &&
		v.X <= a.Max.X && v.Y <= a.Max.Y && v.Z <= a.Max.Z
}
