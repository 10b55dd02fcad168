package brlcad

import (
	"fmt"
	"runtime"
	"strconv"
)

// ArgumentError reports a builder argument that violates a precondition.
// No command is appended and no name is reserved when it is returned.
type ArgumentError struct {
	Op     string // builder that rejected the argument, i.e. "rpp".
	Arg    string // argument name.
	Reason string
}

func (e *ArgumentError) Error() string {
	return "brlcad: " + e.Op + ": " + e.Arg + ": " + e.Reason
}

func argErr(op, arg, reason string) error {
	return &ArgumentError{Op: op, Arg: arg, Reason: reason}
}

// DuplicateNameError is returned by [Session.CheckUnused] when a name has
// already been handed out in the session.
type DuplicateNameError struct {
	Name string
	// Caller is the function and line that asserted the name was unused.
	Caller string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("brlcad: name %q already used (%s)", e.Name, e.Caller)
}

// MalformedLineError is returned when persisting a script buffer that holds
// a line without a trailing newline.
type MalformedLineError struct {
	Index int // position in the script buffer.
	Line  string
}

func (e *MalformedLineError) Error() string {
	return "brlcad: script line " + strconv.Itoa(e.Index) + " not newline terminated: " + strconv.Quote(e.Line)
}

// callerOf returns the function name and line number skip frames above
// the caller of callerOf.
func callerOf(skip int) string {
	pc, _, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "?"
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "? line " + strconv.Itoa(line)
	}
	return fn.Name() + " line " + strconv.Itoa(line)
}

// Must panics if err is non-nil and returns name otherwise. It is intended
// for example scripts where every argument is a literal.
func Must(name string, err error) string {
	if err != nil {
		panic(err)
	}
	return name
}
