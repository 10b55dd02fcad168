// Package raster projects slabs of a geometry database into depth or
// occupancy images by firing a regular grid of rays with nirt and parsing
// its report.
package raster

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"

	"github.com/soypat/brlcad"
	"github.com/soypat/brlcad/slice"
)

// Caster runs a nirt batch against objects of a database and returns the
// report. *engine.Engine implements it.
type Caster interface {
	Nirt(ctx context.Context, db string, batch io.Reader, objects ...string) ([]byte, error)
}

// Options configures projection.
type Options struct {
	// Width and Height bound the sampling resolution in pixels.
	Width, Height int
	// Greyscale encodes hit depth as grey levels instead of occupancy.
	Greyscale bool
	Direction Direction
	// Units of the batch coordinates. Empty means millimeters.
	Units string
}

// DefaultOptions returns a 1024x1024 greyscale top view. Units are left
// empty for the caller to set to the database's units.
func DefaultOptions() Options {
	return Options{Width: 1024, Height: 1024, Greyscale: true, Direction: Down}
}

// Projector projects slab regions of one database.
type Projector struct {
	caster Caster
	db     string
	opts   Options
}

// NewProjector returns a projector firing rays with c at db.
func NewProjector(c Caster, db string, opts Options) (*Projector, error) {
	if c == nil {
		return nil, errors.New("raster: nil caster")
	}
	if opts.Units == "" {
		opts.Units = brlcad.DefaultUnits
	}
	if opts.Direction == (Direction{}) {
		opts.Direction = Down
	}
	if err := opts.Direction.Validate(); err != nil {
		return nil, err
	}
	return &Projector{caster: c, db: db, opts: opts}, nil
}

// Options returns the projector's effective options.
func (p *Projector) Options() Options { return p.opts }

// Cast is the raw nirt report for one slab.
type Cast struct {
	Region     string
	Slab       slice.Slab
	Sampling   Sampling
	Transcript []byte
}

// Cast fires the sampling grid of slab at region in a single nirt run. If
// batchPath is not empty the batch script is also saved there.
func (p *Projector) Cast(ctx context.Context, region string, slab slice.Slab, batchPath string) (*Cast, error) {
	s, err := NewSampling(slab, p.opts.Width, p.opts.Height)
	if err != nil {
		return nil, err
	}
	var batch bytes.Buffer
	if err := WriteBatch(&batch, s, p.opts.Direction, p.opts.Units); err != nil {
		return nil, err
	}
	if batchPath != "" {
		if err := os.WriteFile(batchPath, batch.Bytes(), 0o644); err != nil {
			return nil, err
		}
	}
	brlcad.Logger().Debug("casting slab", "region", region, "slab", slab.Index,
		"cols", s.Cols, "rows", s.Rows, "step", s.Step)
	out, err := p.caster.Nirt(ctx, p.db, &batch, region)
	if err != nil {
		return nil, err
	}
	return &Cast{Region: region, Slab: slab, Sampling: s, Transcript: out}, nil
}

// Rasterize parses a cast's report into a grid. It does not launch any
// process and is safe to call concurrently.
func (p *Projector) Rasterize(c *Cast) (*Grid, error) {
	records, err := parseBytes(c.Transcript)
	if err != nil {
		return nil, err
	}
	g := NewGrid(c.Sampling.Cols, c.Sampling.Rows, p.opts.Greyscale)
	if err := g.Fill(records, c.Sampling, c.Slab.Thickness()); err != nil {
		return nil, err
	}
	brlcad.Logger().Debug("slab rasterized", "region", c.Region, "records", len(records), "hits", g.Hits())
	return g, nil
}

// Project casts and rasterizes slab in one call.
func (p *Projector) Project(ctx context.Context, region string, slab slice.Slab) (*Grid, error) {
	c, err := p.Cast(ctx, region, slab, "")
	if err != nil {
		return nil, err
	}
	return p.Rasterize(c)
}
