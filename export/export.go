// Package export cuts the model held by a session into Z slabs and writes
// one STL mesh or one raster image per slab.
//
// Every nirt run happens on the calling goroutine, one at a time, since nirt
// corrupts its report when two instances query one database. Parsing and
// encoding of finished reports runs on a small worker pool.
package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/soypat/brlcad"
	"github.com/soypat/brlcad/bounds"
	"github.com/soypat/brlcad/engine"
	"github.com/soypat/brlcad/mesh"
	"github.com/soypat/brlcad/raster"
	"github.com/soypat/brlcad/slice"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"
)

// MaxRasterWorkers caps the goroutines rasterizing nirt reports.
const MaxRasterWorkers = 4

// Format selects the per slab output.
type Format int

const (
	Raster Format = iota
	STL
)

func (f Format) String() string {
	switch f {
	case Raster:
		return "raster"
	case STL:
		return "stl"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat parses "raster" or "stl".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "raster":
		return Raster, nil
	case "stl":
		return STL, nil
	}
	return 0, fmt.Errorf("export: unknown format %q, want raster or stl", s)
}

// Options tunes an export.
type Options struct {
	// PathFormat builds each slab's output path from the script path
	// without extension and the slab index, e.g. "%s%d.png". Empty selects
	// "%s%d.jpg" for rasters and "%s%d.stl" for meshes.
	PathFormat string

	// Raster options. Width and Height bound the sampling resolution.
	// Empty Raster.Units selects the session's units.
	Raster raster.Options
	// Resize scales each image to exactly Raster.Width by Raster.Height.
	Resize bool
	// Workers rasterizing reports, at most MaxRasterWorkers. Zero or
	// negative selects MaxRasterWorkers.
	Workers int
	// SaveBatches keeps each slab's nirt batch next to its image.
	SaveBatches bool

	// STL options.
	STLQuality float64
	BinarySTL  bool
	// Verify loads each STL after export and fails on corrupt triangles.
	Verify bool
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{Raster: raster.DefaultOptions(), Workers: MaxRasterWorkers}
}

// Tools is the set of kernel operations an export needs. *engine.Engine
// implements it.
type Tools interface {
	Materialize(ctx context.Context, scriptPath string) (string, error)
	Tops(ctx context.Context, db string) ([]string, error)
	ExportSTL(ctx context.Context, db string, opts engine.STLOptions, objects ...string) (string, error)
	bounds.Querier
	raster.Caster
}

// Orchestrator exports slices of the model built in a session. An
// Orchestrator must not run two exports at once.
type Orchestrator struct {
	session *brlcad.Session
	tools   Tools
	bounds  *bounds.Resolver
	script  string
}

// New returns an orchestrator persisting the session to scriptPath. The
// database lives next to it with a ".g" extension.
func New(s *brlcad.Session, tools Tools, scriptPath string) *Orchestrator {
	return &Orchestrator{
		session: s,
		tools:   tools,
		bounds:  bounds.NewResolver(tools, false),
		script:  scriptPath,
	}
}

// Slice describes one exported slab.
type Slice struct {
	Slab slice.Slab
	// Box and Region are the temporary objects confining the slab.
	Box, Region string
	Path        string
}

// Result describes a finished export.
type Result struct {
	Database  string
	Tops      []string
	Bounds    r3.Box
	Thickness float64
	Slices    []Slice
}

// Export cuts the model into n slabs of equal thickness and writes one
// output per slab. The footprint of the model must not exceed maxX by maxY;
// a non-positive limit is not checked. The session's script buffer is
// restored and re-persisted once the export ends, so slab objects never
// accumulate in the script.
func (o *Orchestrator) Export(ctx context.Context, n int, maxX, maxY float64, format Format, opts Options) (res *Result, err error) {
	if n <= 0 {
		return nil, fmt.Errorf("export: slice count must be positive, got %d", n)
	}
	pathFormat := opts.PathFormat
	switch format {
	case Raster:
		if pathFormat == "" {
			pathFormat = "%s%d.jpg"
		}
		if opts.Raster.Width <= 0 {
			opts.Raster.Width = raster.DefaultOptions().Width
		}
		if opts.Raster.Height <= 0 {
			opts.Raster.Height = raster.DefaultOptions().Height
		}
		if opts.Raster.Units == "" {
			// Ray origins come from a listing in the database's units.
			opts.Raster.Units = o.session.Units()
		}
	case STL:
		if pathFormat == "" {
			pathFormat = "%s%d.stl"
		}
	default:
		return nil, fmt.Errorf("export: invalid format %v", format)
	}
	base := strings.TrimSuffix(o.script, filepath.Ext(o.script))
	if ext := filepath.Ext(fmt.Sprintf(pathFormat, base, 0)); format == Raster && !raster.Supported(ext) {
		return nil, fmt.Errorf("export: unsupported image format %q in path format %q", ext, pathFormat)
	}
	snap := o.session.Snapshot()
	defer func() {
		o.session.Restore(snap)
		if perr := o.session.Persist(o.script); err == nil && perr != nil {
			res, err = nil, perr
		}
	}()

	if err := o.session.Persist(o.script); err != nil {
		return nil, err
	}
	db, err := o.tools.Materialize(ctx, o.script)
	if err != nil {
		return nil, err
	}
	tops, err := o.tools.Tops(ctx, db)
	if err != nil {
		return nil, err
	}
	if len(tops) == 0 {
		return nil, errors.New("export: database has no top level objects")
	}
	box, err := o.bounds.Box(ctx, db, tops)
	if err != nil {
		return nil, err
	}
	if err := slice.CheckFootprint(box.Min, box.Max, maxX, maxY); err != nil {
		return nil, err
	}
	planner, err := slice.Uniform(n, box.Min, box.Max)
	if err != nil {
		return nil, err
	}
	brlcad.Logger().Info("slicing model", "tops", tops, "min", box.Min, "max", box.Max,
		"slices", n, "thickness", planner.Thickness(), "format", format)

	res = &Result{Database: db, Tops: tops, Bounds: box, Thickness: planner.Thickness()}
	for slab := range planner.All() {
		sl, err := o.slabObjects(slab, tops)
		if err != nil {
			return nil, err
		}
		sl.Path = fmt.Sprintf(pathFormat, base, slab.Index)
		res.Slices = append(res.Slices, sl)
	}
	if err := o.session.Persist(o.script); err != nil {
		return nil, err
	}
	if _, err := o.tools.Materialize(ctx, o.script); err != nil {
		return nil, err
	}

	switch format {
	case STL:
		err = o.exportSTL(ctx, db, res.Slices, opts)
	case Raster:
		err = o.exportRaster(ctx, db, res.Slices, opts)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// slabObjects adds a box covering slab and a region confining every top
// level object to it.
func (o *Orchestrator) slabObjects(slab slice.Slab, tops []string) (Slice, error) {
	box, err := o.session.Cuboid(fmt.Sprintf("slice%d_bb.s", slab.Index), slab.Min, slab.Max)
	if err != nil {
		return Slice{}, err
	}
	var expr strings.Builder
	for _, top := range tops {
		expr.WriteString(brlcad.Intersect(box, top))
	}
	region, err := o.session.Region(fmt.Sprintf("slice%d_num.r", slab.Index), expr.String())
	if err != nil {
		return Slice{}, err
	}
	return Slice{Slab: slab, Box: box, Region: region}, nil
}

func (o *Orchestrator) exportSTL(ctx context.Context, db string, slices []Slice, opts Options) error {
	for i := range slices {
		sl := &slices[i]
		path, err := o.tools.ExportSTL(ctx, db, engine.STLOptions{
			Output:  sl.Path,
			Quality: opts.STLQuality,
			Binary:  opts.BinarySTL,
		}, sl.Region)
		if err != nil {
			return err
		}
		sl.Path = path
		if opts.Verify {
			if err := verifySTL(path); err != nil {
				return err
			}
		}
		brlcad.Logger().Info("slab exported", "index", sl.Slab.Index, "path", path)
	}
	return nil
}

func verifySTL(path string) error {
	m, err := mesh.Load(path)
	if err != nil {
		return err
	}
	report, err := m.Validate()
	if err != nil {
		return fmt.Errorf("export: verifying %s: %w", path, err)
	}
	b := m.Bounds()
	brlcad.Logger().Info("slab mesh verified", "path", path, "triangles", report.Triangles,
		"degenerate", report.Degenerate, "normal_mismatches", report.NormalMismatches,
		"min", b.Min, "max", b.Max)
	return nil
}

func (o *Orchestrator) exportRaster(ctx context.Context, db string, slices []Slice, opts Options) error {
	projector, err := raster.NewProjector(o.tools, db, opts.Raster)
	if err != nil {
		return err
	}
	workers := opts.Workers
	if workers <= 0 || workers > MaxRasterWorkers {
		workers = MaxRasterWorkers
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, sl := range slices {
		var batchPath string
		if opts.SaveBatches {
			batchPath = strings.TrimSuffix(sl.Path, filepath.Ext(sl.Path)) + ".nirt"
		}
		// Sequential: only one nirt process exists at any time.
		cast, err := projector.Cast(gctx, sl.Region, sl.Slab, batchPath)
		if err != nil {
			// A failed worker cancels gctx; report its error instead.
			if werr := g.Wait(); werr != nil {
				return werr
			}
			return err
		}
		path := sl.Path
		g.Go(func() error {
			grid, err := projector.Rasterize(cast)
			if err != nil {
				return fmt.Errorf("export: slab %d: %w", cast.Slab.Index, err)
			}
			img := grid.Image()
			if opts.Resize {
				ro := projector.Options()
				return writeImage(path, raster.Fit(img, ro.Width, ro.Height), cast.Slab.Index)
			}
			return writeImage(path, img, cast.Slab.Index)
		})
	}
	return g.Wait()
}

func writeImage(path string, img image.Image, index int) error {
	if err := raster.WriteFile(path, img); err != nil {
		return err
	}
	brlcad.Logger().Info("slab exported", "index", index, "path", path)
	return nil
}
