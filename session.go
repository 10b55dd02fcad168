// Package brlcad generates scene description scripts for the BRL-CAD
// geometry kernel. A Session accumulates commands in order and hands out
// collision free object names; the script it persists is the only input
// consumed by the mged interpreter (see package engine).
package brlcad

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultUnits is the unit system written to new scripts.
const DefaultUnits = "mm"

// Session owns one script buffer and the registry of names handed out while
// building it. It is not safe for concurrent use.
type Session struct {
	units string
	lines []string
	names *Registry
}

// NewSession returns a session whose script starts by setting the database
// title and unit system. An empty units selects [DefaultUnits].
func NewSession(title, units string) *Session {
	if units == "" {
		units = DefaultUnits
	}
	s := &Session{units: units, names: NewRegistry()}
	s.command("title %s", title)
	s.command("units %s", units)
	return s
}

// ReadSession loads an existing script. Every object defined in it is
// registered so new objects do not collide with it.
func ReadSession(r io.Reader) (*Session, error) {
	s := &Session{units: DefaultUnits, names: NewRegistry()}
	scan := bufio.NewScanner(r)
	scan.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scan.Scan() {
		line := scan.Text()
		fields := strings.Fields(line)
		if len(fields) >= 2 {
			switch fields[0] {
			case "in", "comb", "r", "g":
				s.names.Reserve(fields[1])
			case "units":
				s.units = fields[1]
			}
		}
		s.lines = append(s.lines, line+"\n")
	}
	if err := scan.Err(); err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	return s, nil
}

// Units returns the unit system of the script.
func (s *Session) Units() string { return s.units }

// Names returns the session's name registry.
func (s *Session) Names() *Registry { return s.names }

// Append adds a raw line to the script. The line should end in a newline;
// this is checked when the script is written out.
func (s *Session) Append(line string) {
	s.lines = append(s.lines, line)
}

// AddScript appends user supplied text, one buffer entry per line.
func (s *Session) AddScript(text string) {
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		s.lines = append(s.lines, line+"\n")
	}
}

func (s *Session) command(format string, args ...any) {
	s.lines = append(s.lines, fmt.Sprintf(format, args...)+"\n")
}

// name resolves a caller supplied or empty name into a unique one.
func (s *Session) name(requested, fallback string) string {
	return s.names.Allocate(requested, fallback)
}

// CheckUnused returns a [*DuplicateNameError] if name was already handed out.
func (s *Session) CheckUnused(name string) error {
	if s.names.InUse(name) {
		return &DuplicateNameError{Name: name, Caller: callerOf(1)}
	}
	return nil
}

// Lines returns a copy of the script buffer.
func (s *Session) Lines() []string {
	return append([]string(nil), s.lines...)
}

// Len returns the number of entries in the script buffer.
func (s *Session) Len() int { return len(s.lines) }

// Validate checks every buffered line is newline terminated.
func (s *Session) Validate() error {
	for i, line := range s.lines {
		if !strings.HasSuffix(line, "\n") {
			return &MalformedLineError{Index: i, Line: line}
		}
	}
	return nil
}

// WriteTo writes the validated script to w. Nothing is written if the
// buffer holds a malformed line.
func (s *Session) WriteTo(w io.Writer) (int64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	var n int64
	for _, line := range s.lines {
		nw, err := io.WriteString(w, line)
		n += int64(nw)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// Persist writes the script to path, replacing any existing file.
func (s *Session) Persist(path string) error {
	if err := s.Validate(); err != nil {
		return err
	}
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(fp)
	_, err = s.WriteTo(bw)
	if err == nil {
		err = bw.Flush()
	}
	if errClose := fp.Close(); err == nil {
		err = errClose
	}
	if err != nil {
		return fmt.Errorf("persisting script %s: %w", path, err)
	}
	Logger().Debug("script persisted", "path", path, "lines", len(s.lines))
	return nil
}

// Snapshot is a saved copy of a script buffer.
type Snapshot struct {
	lines []string
}

// Snapshot saves the current script buffer.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{lines: s.Lines()}
}

// Restore replaces the script buffer with a saved one. The name registry is
// left untouched: names handed out after the snapshot remain reserved.
func (s *Session) Restore(snap Snapshot) {
	s.lines = append(s.lines[:0:0], snap.lines...)
}
