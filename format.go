package brlcad

import (
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func vtoa(v r3.Vec) string { return ftoa(v.X) + " " + ftoa(v.Y) + " " + ftoa(v.Z) }

// fields formats vectors and numbers separated by single spaces.
func fields(args ...any) string {
	var sb strings.Builder
	for i, a := range args {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch v := a.(type) {
		case r3.Vec:
			sb.WriteString(vtoa(v))
		case float64:
			sb.WriteString(ftoa(v))
		case int:
			sb.WriteString(strconv.Itoa(v))
		case string:
			sb.WriteString(v)
		default:
			panic("bug: unexpected field type")
		}
	}
	return sb.String()
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// checker accumulates the first precondition failure of a builder call.
type checker struct {
	op  string
	err error
}

func (c *checker) fail(arg, reason string) {
	if c.err == nil {
		c.err = argErr(c.op, arg, reason)
	}
}

func (c *checker) vec(arg string, v r3.Vec) {
	if !finite(v.X) || !finite(v.Y) || !finite(v.Z) {
		c.fail(arg, "non-finite coordinate "+vtoa(v))
	}
}

func (c *checker) nonZero(arg string, v r3.Vec) {
	c.vec(arg, v)
	if v == (r3.Vec{}) {
		c.fail(arg, "zero length vector")
	}
}

func (c *checker) num(arg string, f float64) {
	if !finite(f) {
		c.fail(arg, "non-finite number "+ftoa(f))
	}
}

func (c *checker) positive(arg string, f float64) {
	c.num(arg, f)
	if f <= 0 {
		c.fail(arg, "must be positive, got "+ftoa(f))
	}
}

func (c *checker) nonNegative(arg string, f float64) {
	c.num(arg, f)
	if f < 0 {
		c.fail(arg, "must not be negative, got "+ftoa(f))
	}
}
