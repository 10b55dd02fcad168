package engine

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/soypat/brlcad"
)

// STLOptions configures a g-stl mesh export.
type STLOptions struct {
	// Output is the mesh file path. ".stl" is appended if missing.
	Output string
	// Quality is the maximum surface normal error in degrees (g-stl -n).
	// Zero or negative leaves the kernel's default relative tolerance.
	Quality float64
	// Binary selects binary STL output (g-stl -b).
	Binary bool
}

// ExportSTL tessellates objects of db into an STL file and returns its path.
func (e *Engine) ExportSTL(ctx context.Context, db string, opts STLOptions, objects ...string) (string, error) {
	if len(objects) == 0 {
		return "", errors.New("engine: no objects to export")
	}
	out := opts.Output
	if !strings.HasSuffix(out, ".stl") {
		out += ".stl"
	}
	args := []string{"-o", out}
	if opts.Binary {
		args = append(args, "-b")
	}
	if opts.Quality > 0 {
		args = append(args, "-n", strconv.FormatFloat(opts.Quality, 'f', -1, 64))
	}
	args = append(args, db)
	args = append(args, objects...)
	if _, err := e.run(ctx, e.gstl, nil, args...); err != nil {
		return "", err
	}
	brlcad.Logger().Info("mesh exported", "path", out, "objects", objects)
	return out, nil
}

// View is a simple camera for rt renders.
type View struct {
	Azimuth   float64
	Elevation float64
	Width     int
	Height    int
	Output    string
}

// TopView returns a view looking down the Z axis at the given size.
func TopView(output string, width, height int) View {
	return View{Azimuth: -90, Elevation: -90, Width: width, Height: height, Output: output}
}

// RenderImage renders object from db with rt. A stale output file is
// removed first.
func (e *Engine) RenderImage(ctx context.Context, db, object string, v View) (string, error) {
	if v.Width <= 0 || v.Height <= 0 {
		return "", errors.New("engine: render size must be positive")
	}
	if err := os.Remove(v.Output); err != nil && !errors.Is(err, fs.ErrNotExist) {
		brlcad.Logger().Warn("could not remove stale render", "path", v.Output, "err", err)
	}
	ftoa := func(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
	_, err := e.run(ctx, e.rt, nil,
		"-a", ftoa(v.Azimuth), "-l3", "-e", ftoa(v.Elevation),
		"-w", strconv.Itoa(v.Width), "-n", strconv.Itoa(v.Height),
		"-o", v.Output, db, object)
	if err != nil {
		return "", err
	}
	return v.Output, nil
}

// Nirt fires the rays described by batch at objects of db in a single nirt
// run and returns nirt's standard output. Concurrent calls against the same
// database corrupt nirt's output; callers must serialize them.
func (e *Engine) Nirt(ctx context.Context, db string, batch io.Reader, objects ...string) ([]byte, error) {
	if len(objects) == 0 {
		return nil, errors.New("engine: no objects to query")
	}
	args := append([]string{"-s", db}, objects...)
	out, err := e.run(ctx, e.nirt, batch, args...)
	if err != nil {
		return nil, err
	}
	return out.stdout, nil
}
