package brlcad

import (
	"strconv"

	"gonum.org/v1/gonum/spatial/r3"
)

// PipePoint is one control point of a pipe primitive.
type PipePoint struct {
	Point         r3.Vec
	InnerDiameter float64
	OuterDiameter float64
	BendRadius    float64
}

// Pipe creates a pipe running through at least two points.
func (s *Session) Pipe(name string, points []PipePoint) (string, error) {
	c := checker{op: "pipe"}
	if len(points) < 2 {
		c.fail("points", "need at least 2 points, got "+strconv.Itoa(len(points)))
	}
	args := make([]any, 0, 1+4*len(points))
	args = append(args, len(points))
	for i, p := range points {
		arg := "point " + strconv.Itoa(i)
		c.vec(arg, p.Point)
		c.nonNegative(arg+" inner diameter", p.InnerDiameter)
		c.positive(arg+" outer diameter", p.OuterDiameter)
		c.nonNegative(arg+" bend radius", p.BendRadius)
		if p.InnerDiameter >= p.OuterDiameter {
			c.fail(arg, "inner diameter not less than outer diameter")
		}
		args = append(args, p.Point, p.InnerDiameter, p.OuterDiameter, p.BendRadius)
	}
	return s.primitive(&c, name, "pipe", args...)
}
