package brlcad

import (
	"errors"
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func lastLine(s *Session) string {
	lines := s.Lines()
	return lines[len(lines)-1]
}

func TestPrimitiveCommands(t *testing.T) {
	s := NewSession("prims", "")
	for _, test := range []struct {
		build func() (string, error)
		want  string
	}{
		{func() (string, error) { return s.RCC("hole.s", vec(0, 0, 0), vec(2, 4, 2.5), 0.75) }, "in hole.s rcc 0 0 0 2 4 2.5 0.75\n"},
		{func() (string, error) { return s.Cone("", vec(1, 1, 1), vec(0, 0, 10), 4, 0) }, "in trc.s trc 1 1 1 0 0 10 4 0\n"},
		{func() (string, error) { return s.Torus("", vec(0, 0, 0), vec(0, 0, 1), 5, 1) }, "in tor.s tor 0 0 0 0 0 1 5 1\n"},
		{func() (string, error) { return s.Half("floor.s", vec(0, 0, 1), -2) }, "in floor.s half 0 0 1 -2\n"},
		{func() (string, error) { return s.Grip("Grip_Example", vec(0, 0, 0), vec(3, 0, 0), 6) }, "in Grip_Example grip 0 0 0 3 0 0 6\n"},
		{func() (string, error) {
			return s.TEC("", vec(0, 0, 0), vec(0, 0, 5), vec(2, 0, 0), vec(0, 1, 0), 0.5)
		}, "in tec.s tec 0 0 0 0 0 5 2 0 0 0 1 0 0.5\n"},
		{func() (string, error) { return s.Particle("", vec(0, 0, 0), vec(0, 0, 4), 1, 0.5) }, "in part.s part 0 0 0 0 0 4 1 0.5\n"},
		{func() (string, error) {
			return s.Ellipsoid("egg.s", vec(0, 0, 0), vec(3, 0, 0), vec(0, 2, 0), vec(0, 0, 1))
		}, "in egg.s ell 0 0 0 3 0 0 0 2 0 0 0 1\n"},
		{func() (string, error) { return s.Cuboid("", vec(1, 5, 3), vec(0, 2, 6)) }, "in rpp.s rpp 0 1 2 5 3 6\n"},
		{func() (string, error) { return s.Cuboid("", vec(0, 0, 0), vec(1, 1, 1)) }, "in rpp_1.s rpp 0 1 0 1 0 1\n"},
	} {
		name, err := test.build()
		if err != nil {
			t.Fatal(err)
		}
		got := lastLine(s)
		if got != test.want {
			t.Errorf("got %q, want %q", got, test.want)
		}
		if !strings.HasPrefix(got, "in "+name+" ") {
			t.Errorf("returned name %q does not match command %q", name, got)
		}
	}
	if err := s.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestPrimitivePreconditions(t *testing.T) {
	s := NewSession("bad", "")
	before := s.Len()
	names := s.Names().Len()
	for _, test := range []struct {
		op    string
		build func() (string, error)
	}{
		{"sph", func() (string, error) { return s.Sphere("", vec(0, 0, 0), 0) }},
		{"sph", func() (string, error) { return s.Sphere("", vec(math.NaN(), 0, 0), 1) }},
		{"rcc", func() (string, error) { return s.RCC("", vec(0, 0, 0), vec(0, 0, 0), 1) }},
		{"rpp", func() (string, error) { return s.RPP("", vec(1, 0, 0), vec(0, 1, 1)) }},
		{"tec", func() (string, error) {
			return s.TEC("", vec(0, 0, 0), vec(0, 0, 1), vec(1, 0, 0), vec(0, 1, 0), -1)
		}},
		{"trc", func() (string, error) { return s.TRC("", vec(0, 0, 0), vec(0, 0, 1), 0, 0) }},
		{"half", func() (string, error) { return s.Half("", vec(0, 0, 1), math.Inf(1)) }},
		{"pipe", func() (string, error) { return s.Pipe("", []PipePoint{{OuterDiameter: 2}}) }},
		{"pipe", func() (string, error) {
			return s.Pipe("", []PipePoint{
				{Point: vec(0, 0, 0), InnerDiameter: 3, OuterDiameter: 2},
				{Point: vec(0, 0, 9), InnerDiameter: 1, OuterDiameter: 2},
			})
		}},
		{"comb", func() (string, error) { return s.Combination("c", "  ") }},
	} {
		_, err := test.build()
		var argErr *ArgumentError
		if !errors.As(err, &argErr) {
			t.Errorf("%s: expected ArgumentError, got %v", test.op, err)
			continue
		}
		if argErr.Op != test.op {
			t.Errorf("error op: got %q, want %q", argErr.Op, test.op)
		}
	}
	if s.Len() != before {
		t.Errorf("rejected builders appended %d lines", s.Len()-before)
	}
	if s.Names().Len() != names {
		t.Errorf("rejected builders reserved %d names", s.Names().Len()-names)
	}
}

func TestArbDispatch(t *testing.T) {
	cube := [8]r3.Vec{
		vec(0, 0, 0), vec(1, 0, 0), vec(1, 1, 0), vec(0, 1, 0),
		vec(0, 0, 1), vec(1, 0, 1), vec(1, 1, 1), vec(0, 1, 1),
	}
	s := NewSession("arb", "")
	for n := 4; n <= 8; n++ {
		arb, err := NewArb(cube[:n]...)
		if err != nil {
			t.Fatal(err)
		}
		if int(arb.Kind()) != n {
			t.Fatalf("kind: got %v, want %d vertices", arb.Kind(), n)
		}
		name, err := s.Arb("", arb)
		if err != nil {
			t.Fatal(err)
		}
		kind := arb.Kind().String()
		if name != kind+".s" {
			t.Errorf("default name: got %q, want %q", name, kind+".s")
		}
		fields := strings.Fields(lastLine(s))
		if fields[2] != kind || len(fields) != 3+3*n {
			t.Errorf("bad %s command %q", kind, lastLine(s))
		}
	}
	if _, err := s.Arb("", Arb{}); err == nil {
		t.Error("zero Arb must be rejected")
	}
	name, err := s.Arb8("block.s", cube)
	if err != nil {
		t.Fatal(err)
	}
	want := "in block.s arb8 0 0 0 1 0 0 1 1 0 0 1 0 0 0 1 1 0 1 1 1 1 0 1 1\n"
	if name != "block.s" || lastLine(s) != want {
		t.Errorf("Arb8: got %q %q, want %q", name, lastLine(s), want)
	}
}

func TestCombinationColor(t *testing.T) {
	s := NewSession("colors", "")
	region, err := s.Region("part.r", Union("a.s", "b.s"))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := lastLine(s), "r part.r u a.s u b.s\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	s.CombinationColor(region, 255, 0, 128)
	if got, want := lastLine(s), "comb_color part.r 255 0 128\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if err := s.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestArbRejects(t *testing.T) {
	_, err := NewArb(vec(0, 0, 0), vec(1, 0, 0), vec(0, 1, 0))
	if err == nil {
		t.Error("3 vertices must be rejected")
	}
	_, err = NewArb(vec(0, 0, 0), vec(1, 0, 0), vec(0, 1, 0), vec(1, 0, 0))
	var argErr *ArgumentError
	if !errors.As(err, &argErr) {
		t.Fatalf("duplicate vertex: expected ArgumentError, got %v", err)
	}
	if argErr.Op != "arb4" || !strings.Contains(argErr.Reason, "repeats vertex 2") {
		t.Errorf("unexpected error %v", err)
	}
}

func TestPipe(t *testing.T) {
	s := NewSession("pipe", "")
	name, err := s.Pipe("spring.s", []PipePoint{
		{Point: vec(-500, -500, 250), InnerDiameter: 10, OuterDiameter: 200, BendRadius: 500},
		{Point: vec(500, -500, 350), InnerDiameter: 100, OuterDiameter: 200, BendRadius: 500},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := "in spring.s pipe 2 -500 -500 250 10 200 500 500 -500 350 100 200 500\n"
	if name != "spring.s" || lastLine(s) != want {
		t.Errorf("got %q %q", name, lastLine(s))
	}
}

func TestBoxFaceCenter(t *testing.T) {
	center, away, err := BoxFaceCenter(vec(0, 0, 0), vec(2, 4, 6), vec(0, 0, -1))
	if err != nil {
		t.Fatal(err)
	}
	if center != vec(1, 2, 0) || away != vec(0, 0, -1) {
		t.Errorf("got center %v away %v", center, away)
	}
	if _, _, err = BoxFaceCenter(vec(0, 0, 0), vec(1, 1, 1), vec(1, 1, 0)); err == nil {
		t.Error("two axes selected must fail")
	}
}

func TestEditCommands(t *testing.T) {
	s := NewSession("edit", "")
	s.RotatePrimitive("box.s", vec(1, 2, 3), 45)
	s.Kill("a.s", "b.s")
	got := strings.Join(s.Lines()[2:], "")
	want := "Z\ndraw box.s\nsed box.s\nkeypoint 1 2 3\narot 1 2 3 45\naccept\nkill a.s\nkill b.s\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}
