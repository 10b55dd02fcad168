// Package config loads brlslice settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"github.com/soypat/brlcad"
	"github.com/soypat/brlcad/engine"
	"github.com/soypat/brlcad/export"
	"github.com/soypat/brlcad/raster"
)

// DefaultPath is read when no configuration file is named. It may be
// missing.
const DefaultPath = "~/.brlslice.toml"

// Config is the root of the configuration file.
type Config struct {
	Units   string `toml:"units"`
	Verbose bool   `toml:"verbose"`
	Tools   Tools  `toml:"tools"`
	Slice   Slice  `toml:"slice"`
}

// Tools holds the command line of each kernel tool. Wrappers such as
// "nice -n 10 nirt" are allowed.
type Tools struct {
	MGED string `toml:"mged"`
	GSTL string `toml:"g_stl"`
	RT   string `toml:"rt"`
	NIRT string `toml:"nirt"`
}

// Slice configures slice exports.
type Slice struct {
	Count       int     `toml:"count"`
	MaxX        float64 `toml:"max_x"`
	MaxY        float64 `toml:"max_y"`
	Format      string  `toml:"format"`
	PathFormat  string  `toml:"path_format"`
	Width       int     `toml:"width"`
	Height      int     `toml:"height"`
	Greyscale   bool    `toml:"greyscale"`
	Direction   string  `toml:"direction"`
	Resize      bool    `toml:"resize"`
	Workers     int     `toml:"workers"`
	SaveBatches bool    `toml:"save_batches"`
	STLQuality  float64 `toml:"stl_quality"`
	BinarySTL   bool    `toml:"binary_stl"`
	Verify      bool    `toml:"verify"`
}

// Default returns the built in configuration.
func Default() Config {
	ec := engine.DefaultConfig()
	return Config{
		Units: brlcad.DefaultUnits,
		Tools: Tools{MGED: ec.MGED, GSTL: ec.GSTL, RT: ec.RT, NIRT: ec.NIRT},
		Slice: Slice{
			Count:     10,
			Format:    "raster",
			Width:     1024,
			Height:    1024,
			Greyscale: true,
			Direction: raster.Down.String(),
			Workers:   export.MaxRasterWorkers,
		},
	}
}

// Load reads the file at path over the defaults. An empty path reads
// DefaultPath, whose absence is not an error. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	optional := path == ""
	if optional {
		path = DefaultPath
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	fp, err := os.Open(expanded)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: %w", err)
	}
	defer fp.Close()
	if err := Decode(fp, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", expanded, err)
	}
	return cfg, cfg.Validate()
}

// Decode reads TOML from r into cfg, keeping fields r does not set.
func Decode(r io.Reader, cfg *Config) error {
	return toml.NewDecoder(r).DisallowUnknownFields().Decode(cfg)
}

// Encode writes cfg as TOML.
func Encode(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// Validate checks values that cannot be checked by the TOML decoder.
func (c Config) Validate() error {
	if _, err := export.ParseFormat(c.Slice.Format); err != nil {
		return fmt.Errorf("config: slice.format: %w", err)
	}
	if _, err := raster.ParseDirection(c.Slice.Direction); err != nil {
		return fmt.Errorf("config: slice.direction: %w", err)
	}
	if c.Slice.Count <= 0 {
		return fmt.Errorf("config: slice.count must be positive, got %d", c.Slice.Count)
	}
	if c.Slice.Width <= 0 || c.Slice.Height <= 0 {
		return fmt.Errorf("config: slice resolution %dx%d must be positive", c.Slice.Width, c.Slice.Height)
	}
	return nil
}

// Engine returns the engine configuration.
func (c Config) Engine() engine.Config {
	return engine.Config{
		MGED:    c.Tools.MGED,
		GSTL:    c.Tools.GSTL,
		RT:      c.Tools.RT,
		NIRT:    c.Tools.NIRT,
		Verbose: c.Verbose,
	}
}

// Export returns the export format and options.
func (c Config) Export() (export.Format, export.Options, error) {
	format, err := export.ParseFormat(c.Slice.Format)
	if err != nil {
		return 0, export.Options{}, err
	}
	dir, err := raster.ParseDirection(c.Slice.Direction)
	if err != nil {
		return 0, export.Options{}, err
	}
	return format, export.Options{
		PathFormat: c.Slice.PathFormat,
		Raster: raster.Options{
			Width:     c.Slice.Width,
			Height:    c.Slice.Height,
			Greyscale: c.Slice.Greyscale,
			Direction: dir,
			Units:     c.Units,
		},
		Resize:      c.Slice.Resize,
		Workers:     c.Slice.Workers,
		SaveBatches: c.Slice.SaveBatches,
		STLQuality:  c.Slice.STLQuality,
		BinarySTL:   c.Slice.BinarySTL,
		Verify:      c.Slice.Verify,
	}, nil
}
