package raster

import (
	"fmt"
	"strconv"
	"strings"
)

// Direction is the axis aligned direction rays are fired in. Exactly one
// component is non-zero and it is -1 or 1.
type Direction [3]int

// Down fires rays along -Z, producing a top view.
var Down = Direction{0, 0, -1}

// Validate reports whether d is a unit axis direction.
func (d Direction) Validate() error {
	nonzero := 0
	for _, c := range d {
		switch c {
		case 0:
		case -1, 1:
			nonzero++
		default:
			return fmt.Errorf("raster: direction component %d is not -1, 0 or 1", c)
		}
	}
	if nonzero != 1 {
		return fmt.Errorf("raster: direction %v must have exactly one non-zero component", d)
	}
	return nil
}

func (d Direction) String() string {
	return strconv.Itoa(d[0]) + " " + strconv.Itoa(d[1]) + " " + strconv.Itoa(d[2])
}

// ParseDirection parses three space separated integers such as "0 0 -1".
func ParseDirection(s string) (Direction, error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return Direction{}, fmt.Errorf("raster: direction %q needs three components", s)
	}
	var d Direction
	for i, f := range fields {
		c, err := strconv.Atoi(f)
		if err != nil {
			return Direction{}, fmt.Errorf("raster: direction %q: %w", s, err)
		}
		d[i] = c
	}
	return d, d.Validate()
}
