package raster

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/soypat/brlcad/slice"
	"gonum.org/v1/gonum/spatial/r3"
)

// Sampling is the regular XY grid of ray origins covering a slab. Origins
// lie on the slab's upper Z face.
type Sampling struct {
	Min, Max r3.Vec
	// Step is the spacing between origins on both axes.
	Step float64
	// Cols and Rows count origins along X and Y.
	Cols, Rows int
}

// NewSampling returns the sampling of slab at a resolution of at most
// width by height. The step is the larger of the per axis steps so neither
// axis exceeds its pixel budget.
func NewSampling(slab slice.Slab, width, height int) (Sampling, error) {
	if width <= 0 || height <= 0 {
		return Sampling{}, fmt.Errorf("raster: resolution %dx%d must be positive", width, height)
	}
	size := r3.Sub(slab.Max, slab.Min)
	step := math.Max(size.X/float64(width), size.Y/float64(height))
	if !(step > 0) || math.IsInf(step, 1) {
		return Sampling{}, errors.New("raster: slab has no XY extent")
	}
	s := Sampling{
		Min:  slab.Min,
		Max:  slab.Max,
		Step: step,
		Cols: count(slab.Min.X, slab.Max.X, step, width),
		Rows: count(slab.Min.Y, slab.Max.Y, step, height),
	}
	if s.Cols == 0 || s.Rows == 0 {
		return Sampling{}, errors.New("raster: slab has no XY extent")
	}
	return s, nil
}

// count returns the number of samples lo+i*step strictly below hi, capped.
func count(lo, hi, step float64, limit int) int {
	n := 0
	for n < limit && lo+float64(n)*step < hi {
		n++
	}
	return n
}

// Origin returns the ray origin of grid cell (col, row).
func (s Sampling) Origin(col, row int) r3.Vec {
	return r3.Vec{
		X: s.Min.X + float64(col)*s.Step,
		Y: s.Min.Y + float64(row)*s.Step,
		Z: s.Max.Z,
	}
}

// Cell returns the grid cell nearest to p's XY projection. ok is false if
// the cell lies outside the grid.
func (s Sampling) Cell(p r3.Vec) (col, row int, ok bool) {
	col = int(math.Round((p.X - s.Min.X) / s.Step))
	row = int(math.Round((p.Y - s.Min.Y) / s.Step))
	ok = col >= 0 && col < s.Cols && row >= 0 && row < s.Rows
	return col, row, ok
}

// WriteBatch writes the nirt commands firing one ray in direction dir from
// every origin of s, X major.
func WriteBatch(w io.Writer, s Sampling, dir Direction, units string) error {
	if err := dir.Validate(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "dir %s\n", dir)
	fmt.Fprintf(bw, "units %s\n", units)
	for col := 0; col < s.Cols; col++ {
		for row := 0; row < s.Rows; row++ {
			o := s.Origin(col, row)
			bw.WriteString("xyz ")
			bw.WriteString(ftoa(o.X))
			bw.WriteByte(' ')
			bw.WriteString(ftoa(o.Y))
			bw.WriteByte(' ')
			bw.WriteString(ftoa(o.Z))
			bw.WriteString("\ns\n")
		}
	}
	return bw.Flush()
}

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
