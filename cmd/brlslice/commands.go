package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/soypat/brlcad"
	"github.com/soypat/brlcad/bounds"
	"github.com/soypat/brlcad/engine"
	"github.com/soypat/brlcad/export"
	"github.com/soypat/brlcad/mesh"
	"github.com/spf13/cobra"
)

func (a *app) materializeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "materialize <script>",
		Short: "Run a script through mged, replacing its .g database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.engine.Materialize(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), db)
			return nil
		},
	}
}

func (a *app) topsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tops <db>",
		Short: "List the top level objects of a database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tops, err := a.engine.Tops(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, name := range tops {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func (a *app) bboxCommand() *cobra.Command {
	var post726 bool
	cmd := &cobra.Command{
		Use:   "bbox <db> <object>...",
		Short: "Print the axis aligned bounding box of objects",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			box, err := bounds.NewResolver(a.engine, post726).Box(cmd.Context(), args[0], args[1:])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "min %g %g %g\nmax %g %g %g\n",
				box.Min.X, box.Min.Y, box.Min.Z, box.Max.X, box.Max.Y, box.Max.Z)
			return nil
		},
	}
	cmd.Flags().BoolVar(&post726, "bb", false, `try "bb -c" before "make_bb"`)
	return cmd
}

func (a *app) renderCommand() *cobra.Command {
	view := engine.TopView("", 1024, 1024)
	cmd := &cobra.Command{
		Use:   "render <db> <object> <out.png>",
		Short: "Render an object with rt",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			view.Output = args[2]
			out, err := a.engine.RenderImage(cmd.Context(), args[0], args[1], view)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	f := cmd.Flags()
	f.Float64Var(&view.Azimuth, "azimuth", view.Azimuth, "view azimuth in degrees")
	f.Float64Var(&view.Elevation, "elevation", view.Elevation, "view elevation in degrees")
	f.IntVar(&view.Width, "width", view.Width, "image width in pixels")
	f.IntVar(&view.Height, "height", view.Height, "image height in pixels")
	return cmd
}

func (a *app) sliceCommand() *cobra.Command {
	var (
		out        string
		count      int
		format     string
		maxX, maxY float64
		width      int
		height     int
		greyscale  bool
		workers    int
		pathFormat string
		verify     bool
	)
	cmd := &cobra.Command{
		Use:   "slice <script>",
		Short: "Export Z slices of a script's model as STL meshes or images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := &a.cfg.Slice
			f := cmd.Flags()
			if f.Changed("slices") {
				sc.Count = count
			}
			if f.Changed("format") {
				sc.Format = format
			}
			if f.Changed("max-x") {
				sc.MaxX = maxX
			}
			if f.Changed("max-y") {
				sc.MaxY = maxY
			}
			if f.Changed("width") {
				sc.Width = width
			}
			if f.Changed("height") {
				sc.Height = height
			}
			if f.Changed("greyscale") {
				sc.Greyscale = greyscale
			}
			if f.Changed("workers") {
				sc.Workers = workers
			}
			if f.Changed("path-format") {
				sc.PathFormat = pathFormat
			}
			if f.Changed("verify") {
				sc.Verify = verify
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			fmtKind, opts, err := a.cfg.Export()
			if err != nil {
				return err
			}

			fp, err := os.Open(args[0])
			if err != nil {
				return err
			}
			session, err := brlcad.ReadSession(fp)
			fp.Close()
			if err != nil {
				return err
			}
			opts.Raster.Units = session.Units()
			scriptPath := out
			if scriptPath == "" {
				scriptPath = args[0]
			}
			res, err := export.New(session, a.engine, scriptPath).
				Export(cmd.Context(), sc.Count, sc.MaxX, sc.MaxY, fmtKind, opts)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "objects %s, slab thickness %g\n", strings.Join(res.Tops, " "), res.Thickness)
			for _, sl := range res.Slices {
				fmt.Fprintln(w, sl.Path)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&out, "out", "o", "", "script path to persist to, outputs are named after it (default the input script)")
	f.IntVarP(&count, "slices", "n", 0, "number of slices")
	f.StringVar(&format, "format", "", "output format: raster or stl")
	f.Float64Var(&maxX, "max-x", 0, "maximum model X extent, 0 for no limit")
	f.Float64Var(&maxY, "max-y", 0, "maximum model Y extent, 0 for no limit")
	f.IntVar(&width, "width", 0, "raster width in pixels")
	f.IntVar(&height, "height", 0, "raster height in pixels")
	f.BoolVar(&greyscale, "greyscale", true, "encode hit depth as grey levels")
	f.IntVar(&workers, "workers", 0, fmt.Sprintf("raster workers, at most %d", export.MaxRasterWorkers))
	f.StringVar(&pathFormat, "path-format", "", "output path format with a %s base and a %d slice index")
	f.BoolVar(&verify, "verify", false, "load and check every exported STL")
	return cmd
}

func (a *app) previewCommand() *cobra.Command {
	view := mesh.DefaultView()
	cmd := &cobra.Command{
		Use:   "preview <in.stl> <out.png>",
		Short: "Render a shaded preview of an STL file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mesh.Preview(args[0], args[1], view)
		},
	}
	f := cmd.Flags()
	f.IntVar(&view.Width, "width", view.Width, "image width in pixels")
	f.IntVar(&view.Height, "height", view.Height, "image height in pixels")
	f.IntVar(&view.Supersample, "supersample", 2, "render at this multiple of the size for antialiasing")
	return cmd
}
