package brlcad

import "gonum.org/v1/gonum/spatial/r3"

// Primitive builders validate their arguments, resolve name through the
// session registry and append one "in" command. An empty name is replaced by
// "<kind>.s" with a numeric suffix when needed. The resolved name is returned.

func (s *Session) primitive(c *checker, name, kind string, args ...any) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	name = s.name(name, kind+".s")
	s.command("in %s %s %s", name, kind, fields(args...))
	return name, nil
}

// RPP creates a right parallelepiped (axis aligned box) from its minimum and
// maximum corners.
func (s *Session) RPP(name string, min, max r3.Vec) (string, error) {
	c := checker{op: "rpp"}
	c.vec("min", min)
	c.vec("max", max)
	switch {
	case min.X > max.X:
		c.fail("min", "x greater than max x")
	case min.Y > max.Y:
		c.fail("min", "y greater than max y")
	case min.Z > max.Z:
		c.fail("min", "z greater than max z")
	}
	return s.primitive(&c, name, "rpp", min.X, max.X, min.Y, max.Y, min.Z, max.Z)
}

// Cuboid creates an axis aligned box from any two opposing corners.
func (s *Session) Cuboid(name string, a, b r3.Vec) (string, error) {
	min := r3.Vec{X: minf(a.X, b.X), Y: minf(a.Y, b.Y), Z: minf(a.Z, b.Z)}
	max := r3.Vec{X: maxf(a.X, b.X), Y: maxf(a.Y, b.Y), Z: maxf(a.Z, b.Z)}
	return s.RPP(name, min, max)
}

// RCC creates a right circular cylinder from its base center, height vector
// and radius.
func (s *Session) RCC(name string, base, height r3.Vec, radius float64) (string, error) {
	c := checker{op: "rcc"}
	c.vec("base", base)
	c.nonZero("height", height)
	c.positive("radius", radius)
	return s.primitive(&c, name, "rcc", base, height, radius)
}

// Cylinder is an alias of RCC.
func (s *Session) Cylinder(name string, base, height r3.Vec, radius float64) (string, error) {
	return s.RCC(name, base, height, radius)
}

// Sphere creates a sphere (sph).
func (s *Session) Sphere(name string, center r3.Vec, radius float64) (string, error) {
	c := checker{op: "sph"}
	c.vec("center", center)
	c.positive("radius", radius)
	return s.primitive(&c, name, "sph", center, radius)
}

// TRC creates a truncated right cone. One of the radii may be zero.
func (s *Session) TRC(name string, vertex, height r3.Vec, baseRadius, topRadius float64) (string, error) {
	c := checker{op: "trc"}
	c.vec("vertex", vertex)
	c.nonZero("height", height)
	c.nonNegative("base radius", baseRadius)
	c.nonNegative("top radius", topRadius)
	if baseRadius == 0 && topRadius == 0 {
		c.fail("radius", "both radii are zero")
	}
	return s.primitive(&c, name, "trc", vertex, height, baseRadius, topRadius)
}

// Cone is an alias of TRC.
func (s *Session) Cone(name string, vertex, height r3.Vec, baseRadius, topRadius float64) (string, error) {
	return s.TRC(name, vertex, height, baseRadius, topRadius)
}

// TEC creates a truncated elliptical cone. ratio is the top to base scale.
func (s *Session) TEC(name string, vertex, height, major, minor r3.Vec, ratio float64) (string, error) {
	c := checker{op: "tec"}
	c.vec("vertex", vertex)
	c.nonZero("height", height)
	c.nonZero("major axis", major)
	c.nonZero("minor axis", minor)
	c.positive("ratio", ratio)
	return s.primitive(&c, name, "tec", vertex, height, major, minor, ratio)
}

// EllipticalCone is an alias of TEC.
func (s *Session) EllipticalCone(name string, vertex, height, major, minor r3.Vec, ratio float64) (string, error) {
	return s.TEC(name, vertex, height, major, minor, ratio)
}

// TGC creates a truncated general cone. a and b are the base ellipse radius
// vectors, topA and topB the top ellipse magnitudes.
func (s *Session) TGC(name string, base, height, a, b r3.Vec, topA, topB float64) (string, error) {
	c := checker{op: "tgc"}
	c.vec("base", base)
	c.nonZero("height", height)
	c.nonZero("a", a)
	c.nonZero("b", b)
	c.nonNegative("top a", topA)
	c.nonNegative("top b", topB)
	return s.primitive(&c, name, "tgc", base, height, a, b, topA, topB)
}

// GeneralCone is an alias of TGC.
func (s *Session) GeneralCone(name string, base, height, a, b r3.Vec, topA, topB float64) (string, error) {
	return s.TGC(name, base, height, a, b, topA, topB)
}

// REC creates a right elliptical cylinder.
func (s *Session) REC(name string, vertex, height, major, minor r3.Vec) (string, error) {
	c := checker{op: "rec"}
	c.vec("vertex", vertex)
	c.nonZero("height", height)
	c.nonZero("major axis", major)
	c.nonZero("minor axis", minor)
	return s.primitive(&c, name, "rec", vertex, height, major, minor)
}

// EllipticalCylinder is an alias of REC.
func (s *Session) EllipticalCylinder(name string, vertex, height, major, minor r3.Vec) (string, error) {
	return s.REC(name, vertex, height, major, minor)
}

// RHC creates a right hyperbolic cylinder.
func (s *Session) RHC(name string, vertex, height, bvec r3.Vec, halfWidth, apexToAsymptote float64) (string, error) {
	c := checker{op: "rhc"}
	c.vec("vertex", vertex)
	c.nonZero("height", height)
	c.nonZero("b", bvec)
	c.positive("half width", halfWidth)
	c.positive("apex to asymptote", apexToAsymptote)
	return s.primitive(&c, name, "rhc", vertex, height, bvec, halfWidth, apexToAsymptote)
}

// HyperbolicCylinder is an alias of RHC.
func (s *Session) HyperbolicCylinder(name string, vertex, height, bvec r3.Vec, halfWidth, apexToAsymptote float64) (string, error) {
	return s.RHC(name, vertex, height, bvec, halfWidth, apexToAsymptote)
}

// RPC creates a right parabolic cylinder.
func (s *Session) RPC(name string, vertex, height, bvec r3.Vec, halfWidth float64) (string, error) {
	c := checker{op: "rpc"}
	c.vec("vertex", vertex)
	c.nonZero("height", height)
	c.nonZero("b", bvec)
	c.positive("half width", halfWidth)
	return s.primitive(&c, name, "rpc", vertex, height, bvec, halfWidth)
}

// ParabolicCylinder is an alias of RPC.
func (s *Session) ParabolicCylinder(name string, vertex, height, bvec r3.Vec, halfWidth float64) (string, error) {
	return s.RPC(name, vertex, height, bvec, halfWidth)
}

// Torus creates a torus (tor) from its center, normal and the two radii.
func (s *Session) Torus(name string, center, normal r3.Vec, r1, r2 float64) (string, error) {
	c := checker{op: "tor"}
	c.vec("center", center)
	c.nonZero("normal", normal)
	c.positive("radius 1", r1)
	c.positive("radius 2", r2)
	return s.primitive(&c, name, "tor", center, normal, r1, r2)
}

// EllipticalTorus creates an elliptical torus (eto).
func (s *Session) EllipticalTorus(name string, center, normal r3.Vec, radius float64, cvec r3.Vec, axis float64) (string, error) {
	c := checker{op: "eto"}
	c.vec("center", center)
	c.nonZero("normal", normal)
	c.positive("radius", radius)
	c.nonZero("c", cvec)
	c.positive("axis", axis)
	return s.primitive(&c, name, "eto", center, normal, radius, cvec, axis)
}

// EPA creates an elliptical paraboloid.
func (s *Session) EPA(name string, vertex, height, avec r3.Vec, b float64) (string, error) {
	c := checker{op: "epa"}
	c.vec("vertex", vertex)
	c.nonZero("height", height)
	c.nonZero("a", avec)
	c.positive("b", b)
	return s.primitive(&c, name, "epa", vertex, height, avec, b)
}

// EHY creates an elliptical hyperboloid.
func (s *Session) EHY(name string, vertex, height, avec r3.Vec, b, apexToAsymptote float64) (string, error) {
	c := checker{op: "ehy"}
	c.vec("vertex", vertex)
	c.nonZero("height", height)
	c.nonZero("a", avec)
	c.positive("b", b)
	c.positive("apex to asymptote", apexToAsymptote)
	return s.primitive(&c, name, "ehy", vertex, height, avec, b, apexToAsymptote)
}

// Ellipsoid creates a general ellipsoid (ell) from its center and three
// semi-axis vectors.
func (s *Session) Ellipsoid(name string, center, a, b, cvec r3.Vec) (string, error) {
	c := checker{op: "ell"}
	c.vec("center", center)
	c.nonZero("a", a)
	c.nonZero("b", b)
	c.nonZero("c", cvec)
	return s.primitive(&c, name, "ell", center, a, b, cvec)
}

// Ell1 creates an ellipsoid of revolution about avec.
func (s *Session) Ell1(name string, center, avec r3.Vec, radius float64) (string, error) {
	c := checker{op: "ell1"}
	c.vec("center", center)
	c.nonZero("a", avec)
	c.positive("radius", radius)
	return s.primitive(&c, name, "ell1", center, avec, radius)
}

// Particle creates a particle (part): a sphere swept along height with
// possibly different radii at each end.
func (s *Session) Particle(name string, vertex, height r3.Vec, vRadius, hRadius float64) (string, error) {
	c := checker{op: "part"}
	c.vec("vertex", vertex)
	c.nonZero("height", height)
	c.positive("v radius", vRadius)
	c.positive("h radius", hRadius)
	return s.primitive(&c, name, "part", vertex, height, vRadius, hRadius)
}

// Half creates a half space bounded by the plane with the given outward
// normal at distance from the origin.
func (s *Session) Half(name string, normal r3.Vec, distance float64) (string, error) {
	c := checker{op: "half"}
	c.nonZero("normal", normal)
	c.num("distance", distance)
	return s.primitive(&c, name, "half", normal, distance)
}

// Grip creates a grip pseudo-solid used as an edit handle.
func (s *Session) Grip(name string, center, normal r3.Vec, magnitude float64) (string, error) {
	c := checker{op: "grip"}
	c.vec("center", center)
	c.nonZero("normal", normal)
	c.num("magnitude", magnitude)
	return s.primitive(&c, name, "grip", center, normal, magnitude)
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
