package brlcad

import (
	"strconv"
	"strings"
)

// typeSuffixes are the object type extensions kept at the end of
// synthesized names: "wheel.s" becomes "wheel_1.s", not "wheel.s_1".
var typeSuffixes = [...]string{".s", ".r", ".c", ".g"}

// Registry hands out object names that are unique for the lifetime of a
// session. Names are never released since the geometry database requires
// uniqueness within one file. The zero value is not usable; see NewRegistry.
type Registry struct {
	// uses maps every name handed out to the number of times
	// it has been requested as a base name after its first use.
	uses map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{uses: make(map[string]int)}
}

// Allocate returns a name that has not been handed out before. A base name
// never seen is reserved and returned as is. Otherwise the next numeric
// suffix for base is appended before its type suffix (".s", ".r" ...).
// fallback is used in place of an empty base, usually the builder kind.
func (r *Registry) Allocate(base, fallback string) string {
	if base == "" {
		base = fallback
	}
	if _, used := r.uses[base]; !used {
		r.uses[base] = 0
		return base
	}
	stem, ext := splitTypeSuffix(base)
	for {
		r.uses[base]++
		name := stem + "_" + strconv.Itoa(r.uses[base]) + ext
		// An explicit name may already occupy the synthesized one.
		if _, used := r.uses[name]; !used {
			r.uses[name] = 0
			return name
		}
	}
}

// InUse reports whether name has been handed out.
func (r *Registry) InUse(name string) bool {
	_, used := r.uses[name]
	return used
}

// Reserve marks name as used. It reports false if it was already in use.
func (r *Registry) Reserve(name string) bool {
	if r.InUse(name) {
		return false
	}
	r.uses[name] = 0
	return true
}

// Len returns the amount of names handed out.
func (r *Registry) Len() int { return len(r.uses) }

func splitTypeSuffix(name string) (stem, ext string) {
	for _, suffix := range typeSuffixes {
		if len(name) > len(suffix) && strings.HasSuffix(name, suffix) {
			return name[:len(name)-len(suffix)], suffix
		}
	}
	return name, ""
}
