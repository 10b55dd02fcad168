package brlcad

import (
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// BeginCombinationEdit selects the object edit of path within combination.
// path is expected to name a primitive (".s").
func (s *Session) BeginCombinationEdit(combination, path string) {
	if !strings.HasSuffix(path, ".s") {
		Logger().Warn("combination edit path does not name a primitive",
			"combination", combination, "path", path, "caller", callerOf(1))
	}
	s.command("Z")
	s.command("draw %s", combination)
	s.command("oed / %s/%s", combination, path)
}

// BeginPrimitiveEdit selects the solid edit of a primitive.
func (s *Session) BeginPrimitiveEdit(name string) {
	s.command("Z")
	s.command("draw %s", name)
	s.command("sed %s", name)
}

// EndEdit accepts the edit in progress.
func (s *Session) EndEdit() {
	s.command("accept")
}

// RemoveFromCombination removes object from combination.
func (s *Session) RemoveFromCombination(combination, object string) {
	s.command("rm %s %s", combination, object)
}

// Keypoint sets the edit keypoint.
func (s *Session) Keypoint(p r3.Vec) {
	s.command("keypoint %s", vtoa(p))
}

// Translate moves the edited object to p.
func (s *Session) Translate(p r3.Vec) {
	s.command("translate %s", vtoa(p))
}

// TranslateRelative moves the edited object by d.
func (s *Session) TranslateRelative(d r3.Vec) {
	s.command("tra %s", vtoa(d))
}

// RotateCombination rotates the edited object by the given angles in
// degrees about each axis.
func (s *Session) RotateCombination(angles r3.Vec) {
	s.command("orot %s", vtoa(angles))
}

// RotatePrimitive rotates a primitive about the keypoint p. A zero angle
// issues an absolute rotation (rot) by the components of p; otherwise the
// primitive is rotated angle degrees about the axis p (arot).
func (s *Session) RotatePrimitive(name string, p r3.Vec, angle float64) {
	s.BeginPrimitiveEdit(name)
	s.Keypoint(p)
	if angle != 0 {
		s.command("arot %s %s", vtoa(p), ftoa(angle))
	} else {
		s.command("rot %s", vtoa(p))
	}
	s.EndEdit()
}

// RotateAngle rotates a primitive angle degrees about axis.
func (s *Session) RotateAngle(name string, axis r3.Vec, angle float64) {
	s.BeginPrimitiveEdit(name)
	s.command("arot %s %s", vtoa(axis), ftoa(angle))
	s.EndEdit()
}

// Kill removes objects from the database. Their names stay reserved.
func (s *Session) Kill(names ...string) {
	for _, name := range names {
		s.command("kill %s", name)
	}
}
