package brlcad

import (
	"strconv"
	"strings"
)

// Union returns a boolean expression unioning all operands: " u a u b".
func Union(operands ...string) string {
	return " u " + strings.Join(operands, " u ")
}

// Subtract returns an expression subtracting the remaining operands from
// the first: " u a - b - c".
func Subtract(operands ...string) string {
	return " u " + strings.Join(operands, " - ")
}

// Intersect returns an expression intersecting all operands: " u a + b".
func Intersect(operands ...string) string {
	return " u " + strings.Join(operands, " + ")
}

func (s *Session) combine(cmd, name, fallback, expr string) (string, error) {
	if strings.TrimSpace(expr) == "" {
		return "", argErr(cmd, "expression", "empty boolean expression")
	}
	if strings.ContainsRune(expr, '\n') {
		return "", argErr(cmd, "expression", "contains a newline")
	}
	name = s.name(name, fallback)
	s.command("%s %s %s", cmd, name, strings.TrimSpace(expr))
	return name, nil
}

// Combination creates a named boolean combination (comb).
func (s *Session) Combination(name, expr string) (string, error) {
	return s.combine("comb", name, "comb.c", expr)
}

// Group creates a group (g) of the objects listed in expr.
func (s *Session) Group(name, expr string) (string, error) {
	return s.combine("g", name, "group.g", expr)
}

// Region creates a region (r): a combination marked for rendering.
func (s *Session) Region(name, expr string) (string, error) {
	return s.combine("r", name, "region.r", expr)
}

// CombinationColor sets the RGB color of a combination.
func (s *Session) CombinationColor(name string, r, g, b uint8) {
	s.command("comb_color %s %s %s %s", name,
		strconv.Itoa(int(r)), strconv.Itoa(int(g)), strconv.Itoa(int(b)))
}
