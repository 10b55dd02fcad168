package d3

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestBoxFromCorners(t *testing.T) {
	b := BoxFromCorners(r3.Vec{X: 3, Y: -1, Z: 2}, r3.Vec{X: -3, Y: 1, Z: 5})
	want := Box{Min: r3.Vec{X: -3, Y: -1, Z: 2}, Max: r3.Vec{X: 3, Y: 1, Z: 5}}
	if b != want {
		t.Errorf("got %v, want %v", b, want)
	}
	for _, test := range []struct {
		v    r3.Vec
		want bool
	}{
		{want.Min, true},
		{want.Max, true},
		{r3.Vec{X: 0, Y: 0, Z: 3}, true},
		{r3.Vec{X: 0, Y: 0, Z: 5.001}, false},
		{r3.Vec{X: -3.5, Y: 0, Z: 3}, false},
	} {
		if got := b.Contains(test.v); got != test.want {
			t.Errorf("Contains(%v) = %v, want %v", test.v, got, test.want)
		}
	}
}

func TestCompare(t *testing.T) {
	for _, test := range []struct {
		a, b r3.Vec
		want int
	}{
		{r3.Vec{X: 1}, r3.Vec{X: 2}, -1},
		{r3.Vec{X: 1, Y: 3}, r3.Vec{X: 1, Y: 2}, 1},
		{r3.Vec{X: 1, Y: 2, Z: 3}, r3.Vec{X: 1, Y: 2, Z: 3}, 0},
	} {
		if got := Compare(test.a, test.b); got != test.want {
			t.Errorf("Compare(%v, %v) = %d, want %d", test.a, test.b, got, test.want)
		}
	}
}
