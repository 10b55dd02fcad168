// Package matter compensates modeled dimensions for the shrinkage of
// printing materials, so parts sliced for printing measure their nominal
// size once cooled.
package matter

import "fmt"

var (
	// PLA (polylactic acid) is the most widely used plastic filament material in 3D printing.
	PLA = ViscousMaterial{shrink: 0.2e-2, pullShrink: .45} // 0.2% shrinkage
)

type ViscousMaterial struct {
	// shrink is the thermal contraction shrinkage of a material once the material
	// cools to room temperature after the heated bed is turned off.
	shrink float64
	// pullShrink takes into account viscoelastic shrinkage of holes, in model units.
	pullShrink float64
}

// Scale returns the uniform factor to apply to outer dimensions.
func (m ViscousMaterial) Scale() float64 {
	return 1 / (1 - m.shrink)
}

// External returns the modeled size of an outer dimension.
func (m ViscousMaterial) External(nominal float64) float64 {
	return nominal * m.Scale()
}

// Internal returns the modeled size of a hole or bore whose printed size
// should be nominal. Holes close up more than outer walls shrink.
func (m ViscousMaterial) Internal(nominal float64) (float64, error) {
	if nominal <= 0 {
		return 0, fmt.Errorf("matter: internal dimension must be positive, got %v", nominal)
	}
	return nominal*(m.shrink+1) + m.pullShrink, nil
}
