// Package bounds measures axis aligned bounding boxes of objects in a
// geometry database by asking mged to build a bounding arb8 and list it.
package bounds

import (
	"errors"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/soypat/brlcad/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

const number = `[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`

var tripleRe = regexp.MustCompile(`\(\s*(` + number + `)\s*,\s*(` + number + `)\s*,\s*(` + number + `)\s*\)`)

// ErrNotBox is returned by OpposingCorners when the points are not the
// corner set of an axis aligned box with positive extent on every axis.
var ErrNotBox = errors.New("bounds: points are not the corners of an axis aligned box")

// ReportError is returned for a listing line that holds a parenthesis but
// no coordinate triple. It indicates the kernel's listing format changed.
type ReportError struct {
	Line int // 1 based line number within the report.
	Text string
}

func (e *ReportError) Error() string {
	return "bounds: unexpected listing line " + strconv.Itoa(e.Line) + ": " + strconv.Quote(e.Text)
}

// ParseReport extracts every "(x, y, z)" triple from a listing of the
// temporary box. Lines up to and including the "temp_box:" header are
// skipped, as are lines without a parenthesis. A report with no header is
// read from its first line.
func ParseReport(report string) ([]r3.Vec, error) {
	lines := strings.Split(report, "\n")
	start := 0
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), TempBoxName+":") {
			start = i + 1
			break
		}
	}
	var points []r3.Vec
	for i := start; i < len(lines); i++ {
		line := lines[i]
		if !strings.ContainsRune(line, '(') {
			continue
		}
		matches := tripleRe.FindAllStringSubmatch(line, -1)
		if len(matches) == 0 {
			return nil, &ReportError{Line: i + 1, Text: line}
		}
		for _, m := range matches {
			var xyz [3]float64
			for axis := range xyz {
				f, err := strconv.ParseFloat(m[axis+1], 64)
				if err != nil {
					return nil, &ReportError{Line: i + 1, Text: line}
				}
				xyz[axis] = f
			}
			points = append(points, r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]})
		}
	}
	return points, nil
}

// OpposingCorners returns two diagonally opposed corners of the box whose
// corners are points. The lexicographically greatest point is the first
// corner; the second is the single point left after discarding, axis by
// axis, every point sharing a coordinate with the first. Every point must
// lie inside the box the two corners span.
func OpposingCorners(points []r3.Vec) (a, b r3.Vec, err error) {
	sorted := slices.Clone(points)
	slices.SortFunc(sorted, d3.Compare)
	sorted = slices.Compact(sorted)
	if len(sorted) < 2 {
		return r3.Vec{}, r3.Vec{}, ErrNotBox
	}
	a = sorted[len(sorted)-1]
	candidates := sorted[:len(sorted)-1]
	for axis := 0; axis < 3; axis++ {
		candidates = slices.DeleteFunc(candidates, func(p r3.Vec) bool {
			return d3.Axis(p, axis) == d3.Axis(a, axis)
		})
	}
	if len(candidates) != 1 {
		return r3.Vec{}, r3.Vec{}, ErrNotBox
	}
	b = candidates[0]
	box := d3.BoxFromCorners(a, b)
	for _, p := range sorted {
		if !box.Contains(p) {
			return r3.Vec{}, r3.Vec{}, ErrNotBox
		}
	}
	return a, b, nil
}

// Box returns the axis aligned box with corners a and b.
func Box(a, b r3.Vec) r3.Box {
	return r3.Box(d3.BoxFromCorners(a, b))
}
