package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mitchellh/go-homedir"
	"github.com/soypat/brlcad/config"
	"github.com/soypat/brlcad/export"
	"github.com/soypat/brlcad/raster"
)

func writeConfig(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "brlslice.toml")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
units = "in"

[tools]
nirt = "nice -n 10 nirt"

[slice]
count = 4
format = "stl"
max_x = 200.5
stl_quality = 0.5
greyscale = false
`)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := config.Default()
	want.Units = "in"
	want.Tools.NIRT = "nice -n 10 nirt"
	want.Slice.Count = 4
	want.Slice.Format = "stl"
	want.Slice.MaxX = 200.5
	want.Slice.STLQuality = 0.5
	want.Slice.Greyscale = false
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}
	if got := cfg.Engine().NIRT; got != "nice -n 10 nirt" {
		t.Errorf("engine nirt command: got %q", got)
	}
	format, opts, err := cfg.Export()
	if err != nil {
		t.Fatal(err)
	}
	if format != export.STL || opts.STLQuality != 0.5 || opts.Raster.Units != "in" {
		t.Errorf("got format %v options %+v", format, opts)
	}
}

func TestLoadRejects(t *testing.T) {
	for name, text := range map[string]string{
		"unknown key":   "colour = 1\n",
		"bad format":    "[slice]\nformat = \"gif\"\n",
		"bad direction": "[slice]\ndirection = \"1 1 0\"\n",
		"zero count":    "[slice]\ncount = 0\n",
		"syntax":        "[slice\n",
	} {
		if _, err := config.Load(writeConfig(t, text)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for a named file that does not exist")
	}
	t.Setenv("HOME", t.TempDir())
	homedir.Reset()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("missing default file: %v", err)
	}
	if diff := cmp.Diff(config.Default(), cfg); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	format, opts, err := cfg.Export()
	if err != nil {
		t.Fatal(err)
	}
	if format != export.Raster || opts.Raster.Direction != raster.Down || !opts.Raster.Greyscale ||
		opts.Raster.Width != 1024 || opts.Workers != export.MaxRasterWorkers {
		t.Errorf("unexpected defaults: %v %+v", format, opts)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := config.Default()
	cfg.Slice.PathFormat = "%s_%03d.png"
	var buf bytes.Buffer
	if err := config.Encode(&buf, cfg); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "[slice]") {
		t.Errorf("encoded config lacks slice table:\n%s", buf.String())
	}
	got := config.Config{}
	if err := config.Decode(&buf, &got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}
}
