package raster

import (
	"fmt"
	"image"
	"math"
)

// Grid is the sampled raster of one slab, indexed by column (X) and row
// (Y). Each cell is written at most once.
type Grid struct {
	Cols, Rows int
	// Greyscale cells hold a depth level in [0, 255]; otherwise cells are
	// 1 where a ray hit and 0 elsewhere.
	Greyscale bool
	cells     []uint8
	written   []bool
}

// NewGrid returns a zeroed grid.
func NewGrid(cols, rows int, greyscale bool) *Grid {
	return &Grid{
		Cols:      cols,
		Rows:      rows,
		Greyscale: greyscale,
		cells:     make([]uint8, cols*rows),
		written:   make([]bool, cols*rows),
	}
}

func (g *Grid) index(col, row int) int { return col*g.Rows + row }

// At returns the value of cell (col, row).
func (g *Grid) At(col, row int) uint8 { return g.cells[g.index(col, row)] }

// Set writes v to cell (col, row) unless it was already written, in which
// case it reports false and leaves the cell unchanged.
func (g *Grid) Set(col, row int, v uint8) bool {
	i := g.index(col, row)
	if g.written[i] {
		return false
	}
	g.cells[i] = v
	g.written[i] = true
	return true
}

// Hits returns the number of written cells.
func (g *Grid) Hits() (n int) {
	for _, w := range g.written {
		if w {
			n++
		}
	}
	return n
}

// DepthLevel maps a line of sight depth to a grey level, full white being a
// ray that crossed the whole slab.
func DepthLevel(depth, thickness float64) uint8 {
	v := math.Round(depth / thickness * 255)
	switch {
	case !(v > 0):
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}

// Fill writes every hit of records into g. The first record hitting a cell
// wins.
func (g *Grid) Fill(records []Record, s Sampling, thickness float64) error {
	if g.Greyscale && !(thickness > 0) {
		return fmt.Errorf("raster: greyscale needs a positive slab thickness, got %v", thickness)
	}
	for _, rec := range records {
		if rec.Hit == nil {
			continue
		}
		col, row, ok := s.Cell(rec.Hit.Entry)
		if !ok {
			return fmt.Errorf("raster: hit at %v maps to cell (%d, %d) outside the %dx%d grid",
				rec.Hit.Entry, col, row, g.Cols, g.Rows)
		}
		v := uint8(1)
		if g.Greyscale {
			v = DepthLevel(rec.Hit.Depth, thickness)
		}
		g.Set(col, row, v)
	}
	return nil
}

// Image returns the grid as a grey image viewed from above: X grows to the
// right and Y grows upwards. Occupancy cells are drawn white.
func (g *Grid) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.Cols, g.Rows))
	for col := 0; col < g.Cols; col++ {
		for row := 0; row < g.Rows; row++ {
			v := g.At(col, row)
			if !g.Greyscale && v != 0 {
				v = 255
			}
			img.Pix[img.PixOffset(col, g.Rows-1-row)] = v
		}
	}
	return img
}
