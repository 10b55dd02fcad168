package raster_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/soypat/brlcad/raster"
	"github.com/soypat/brlcad/slice"
	"golang.org/x/image/bmp"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot/cmpimg"
)

var unitSlab = slice.Slab{Min: r3.Vec{}, Max: r3.Vec{X: 2, Y: 2, Z: 10}}

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestDirection(t *testing.T) {
	d, err := raster.ParseDirection(" 0 0  -1 ")
	if err != nil {
		t.Fatal(err)
	}
	if d != raster.Down {
		t.Errorf("got %v, want %v", d, raster.Down)
	}
	for _, s := range []string{"0 0 0", "1 1 0", "0 2 0", "0 0", "a b c"} {
		if _, err := raster.ParseDirection(s); err == nil {
			t.Errorf("%q: expected error", s)
		}
	}
}

func TestSampling(t *testing.T) {
	// A 10x5 slab at 100x100 pixels is limited by X.
	s, err := raster.NewSampling(slice.Slab{Max: r3.Vec{X: 10, Y: 5, Z: 1}}, 100, 100)
	if err != nil {
		t.Fatal(err)
	}
	if s.Step != 0.1 || s.Cols != 100 || s.Rows != 50 {
		t.Errorf("got step %v cols %d rows %d, want 0.1 100 50", s.Step, s.Cols, s.Rows)
	}
	if _, err := raster.NewSampling(slice.Slab{Max: r3.Vec{Z: 1}}, 10, 10); err == nil {
		t.Error("expected error for slab without XY extent")
	}
	if _, err := raster.NewSampling(unitSlab, 0, 10); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestWriteBatch(t *testing.T) {
	s, err := raster.NewSampling(unitSlab, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := raster.WriteBatch(&buf, s, raster.Down, "mm"); err != nil {
		t.Fatal(err)
	}
	const want = "dir 0 0 -1\nunits mm\n" +
		"xyz 0 0 10\ns\n" +
		"xyz 0 1 10\ns\n" +
		"xyz 1 0 10\ns\n" +
		"xyz 1 1 10\ns\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("batch (-want +got):\n%s", diff)
	}
	if err := raster.WriteBatch(io.Discard, s, raster.Direction{1, 0, -1}, "mm"); err == nil {
		t.Error("expected error for invalid direction")
	}
}

func TestParseTranscript(t *testing.T) {
	records, err := raster.ParseTranscript(bytes.NewReader(readFixture(t, "nirt_2x2.txt")))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 4 {
		t.Fatalf("got %d records, want 4", len(records))
	}
	var hits []*raster.Hit
	for _, r := range records {
		if !strings.HasPrefix(r.Direction, "Direction") {
			t.Errorf("record direction line %q", r.Direction)
		}
		hits = append(hits, r.Hit)
	}
	want := []*raster.Hit{
		nil,
		{Entry: r3.Vec{X: 0, Y: 1, Z: 10}, Depth: 5},
		{Entry: r3.Vec{X: 1, Y: 0, Z: 10}, Depth: 10},
		nil,
	}
	if diff := cmp.Diff(want, hits); diff != "" {
		t.Errorf("hits (-want +got):\n%s", diff)
	}
}

func TestParseTranscriptBadHit(t *testing.T) {
	_, err := raster.ParseTranscript(bytes.NewReader(readFixture(t, "nirt_bad.txt")))
	var herr *raster.HitParseError
	if !errors.As(err, &herr) {
		t.Fatalf("got error %v, want *HitParseError", err)
	}
	if herr.LineNo != 4 || !strings.Contains(herr.Line, "entry unavailable") {
		t.Errorf("got %+v", herr)
	}
}

func TestFillGreyscale(t *testing.T) {
	records, err := raster.ParseTranscript(bytes.NewReader(readFixture(t, "nirt_2x2.txt")))
	if err != nil {
		t.Fatal(err)
	}
	s, err := raster.NewSampling(unitSlab, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	g := raster.NewGrid(s.Cols, s.Rows, true)
	if err := g.Fill(records, s, unitSlab.Thickness()); err != nil {
		t.Fatal(err)
	}
	// Depth 5 in a slab 10 thick.
	if got := g.At(0, 1); got != 128 {
		t.Errorf("cell (0,1): got %d, want 128", got)
	}
	if got := g.At(1, 0); got != 255 {
		t.Errorf("cell (1,0): got %d, want 255", got)
	}
	for _, c := range [][2]int{{0, 0}, {1, 1}} {
		if got := g.At(c[0], c[1]); got != 0 {
			t.Errorf("untouched cell %v: got %d, want 0", c, got)
		}
	}
	if g.Hits() != 2 {
		t.Errorf("got %d hits, want 2", g.Hits())
	}
}

func TestFillFirstHitWins(t *testing.T) {
	s, err := raster.NewSampling(unitSlab, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	records := []raster.Record{
		{Hit: &raster.Hit{Entry: r3.Vec{X: 1, Y: 1}, Depth: 2}},
		{Hit: &raster.Hit{Entry: r3.Vec{X: 1.01, Y: 0.99}, Depth: 8}},
	}
	g := raster.NewGrid(s.Cols, s.Rows, true)
	if err := g.Fill(records, s, 10); err != nil {
		t.Fatal(err)
	}
	if got, want := g.At(1, 1), raster.DepthLevel(2, 10); got != want {
		t.Errorf("got %d, want first hit level %d", got, want)
	}
	outside := []raster.Record{{Hit: &raster.Hit{Entry: r3.Vec{X: 5, Y: 0}}}}
	if err := g.Fill(outside, s, 10); err == nil {
		t.Error("expected error for hit outside the grid")
	}
}

func TestCellRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		min := r3.Vec{X: rng.Float64()*100 - 50, Y: rng.Float64()*100 - 50}
		size := r3.Vec{X: 1 + rng.Float64()*50, Y: 1 + rng.Float64()*50, Z: 1}
		slab := slice.Slab{Min: min, Max: r3.Add(min, size)}
		w, h := 1+rng.Intn(300), 1+rng.Intn(300)
		s, err := raster.NewSampling(slab, w, h)
		if err != nil {
			t.Fatal(err)
		}
		if s.Cols > w || s.Rows > h {
			t.Fatalf("sampling %dx%d exceeds %dx%d", s.Cols, s.Rows, w, h)
		}
		if col, row, ok := s.Cell(min); !ok || col != 0 || row != 0 {
			t.Fatalf("slab minimum maps to (%d, %d, %v)", col, row, ok)
		}
		k := rng.Intn(s.Cols)
		j := rng.Intn(s.Rows)
		col, row, ok := s.Cell(s.Origin(k, j))
		if !ok || col != k || row != j {
			t.Fatalf("origin (%d, %d) maps to (%d, %d, %v)", k, j, col, row, ok)
		}
	}
}

func TestImageOrientation(t *testing.T) {
	g := raster.NewGrid(2, 3, false)
	g.Set(1, 0, 1) // X max, Y min: bottom right.
	img := g.Image()
	if img.Bounds() != image.Rect(0, 0, 2, 3) {
		t.Fatalf("bounds %v", img.Bounds())
	}
	if got := img.GrayAt(1, 2).Y; got != 255 {
		t.Errorf("bottom right pixel: got %d, want 255", got)
	}
	if got := img.GrayAt(1, 0).Y; got != 0 {
		t.Errorf("top right pixel: got %d, want 0", got)
	}
}

type fakeCaster struct {
	db      string
	objects []string
	batch   string
	reply   []byte
}

func (f *fakeCaster) Nirt(ctx context.Context, db string, batch io.Reader, objects ...string) ([]byte, error) {
	b, err := io.ReadAll(batch)
	if err != nil {
		return nil, err
	}
	f.db, f.objects, f.batch = db, objects, string(b)
	return f.reply, nil
}

func TestProjector(t *testing.T) {
	caster := &fakeCaster{reply: readFixture(t, "nirt_2x2.txt")}
	p, err := raster.NewProjector(caster, "part.g", raster.Options{Width: 2, Height: 2, Greyscale: true})
	if err != nil {
		t.Fatal(err)
	}
	batchPath := filepath.Join(t.TempDir(), "part.nirt")
	c, err := p.Cast(context.Background(), "slice0_num.r", unitSlab, batchPath)
	if err != nil {
		t.Fatal(err)
	}
	if caster.db != "part.g" || !cmp.Equal(caster.objects, []string{"slice0_num.r"}) {
		t.Errorf("nirt called with db %q objects %v", caster.db, caster.objects)
	}
	saved, err := os.ReadFile(batchPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(saved) != caster.batch || !strings.HasPrefix(caster.batch, "dir 0 0 -1\nunits mm\n") {
		t.Errorf("batch on stdin %q, saved %q", caster.batch, saved)
	}
	g, err := p.Rasterize(c)
	if err != nil {
		t.Fatal(err)
	}
	if g.At(0, 1) != 128 || g.At(1, 0) != 255 {
		t.Errorf("unexpected grid values %d %d", g.At(0, 1), g.At(1, 0))
	}

	// Project is Cast and Rasterize without a saved batch.
	projected, err := p.Project(context.Background(), "slice0_num.r", unitSlab)
	if err != nil {
		t.Fatal(err)
	}
	if projected.Hits() != g.Hits() || projected.At(0, 1) != 128 || projected.At(1, 0) != 255 {
		t.Errorf("Project grid differs: %d hits, values %d %d", projected.Hits(), projected.At(0, 1), projected.At(1, 0))
	}
	if !strings.HasPrefix(caster.batch, "dir 0 0 -1\nunits mm\n") {
		t.Errorf("Project batch %q", caster.batch)
	}
}

func TestWriteFile(t *testing.T) {
	g := raster.NewGrid(4, 4, true)
	for i := 0; i < 4; i++ {
		g.Set(i, i, uint8(60*i))
	}
	img := g.Image()
	dir := t.TempDir()

	pngPath := filepath.Join(dir, "slice0.png")
	if err := raster.WriteFile(pngPath, img); err != nil {
		t.Fatal(err)
	}
	var want bytes.Buffer
	if err := raster.Encode(&want, ".png", img); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(pngPath)
	if err != nil {
		t.Fatal(err)
	}
	equal, err := cmpimg.Equal("png", want.Bytes(), got)
	if err != nil {
		t.Fatal(err)
	}
	if !equal {
		t.Error("written png differs from encoded image")
	}

	bmpPath := filepath.Join(dir, "slice0.bmp")
	if err := raster.WriteFile(bmpPath, img); err != nil {
		t.Fatal(err)
	}
	fp, err := os.Open(bmpPath)
	if err != nil {
		t.Fatal(err)
	}
	defer fp.Close()
	decoded, err := bmp.Decode(fp)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("bmp bounds %v, want %v", decoded.Bounds(), img.Bounds())
	}

	if err := raster.WriteFile(filepath.Join(dir, "slice0.tga"), img); err == nil {
		t.Error("expected error for unsupported format")
	}
	if _, err := os.Stat(filepath.Join(dir, "slice0.tga")); err == nil {
		t.Error("file created for unsupported format")
	}
}

func TestFit(t *testing.T) {
	g := raster.NewGrid(2, 2, false)
	g.Set(0, 1, 1) // top left once flipped.
	fitted := raster.Fit(g.Image(), 4, 4)
	if fitted.Bounds().Dx() != 4 || fitted.Bounds().Dy() != 4 {
		t.Fatalf("bounds %v", fitted.Bounds())
	}
	r, _, _, _ := fitted.At(0, 0).RGBA()
	if r>>8 != 255 {
		t.Errorf("top left pixel: got %d, want 255", r>>8)
	}
	r, _, _, _ = fitted.At(3, 3).RGBA()
	if r != 0 {
		t.Errorf("bottom right pixel: got %d, want 0", r)
	}
	same := g.Image()
	if raster.Fit(same, 2, 2) != image.Image(same) {
		t.Error("Fit copied an image already at size")
	}
}
