package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/soypat/brlcad"
)

// DatabasePath returns the geometry database path derived from a script
// path: the extension is replaced by ".g".
func DatabasePath(scriptPath string) string {
	return strings.TrimSuffix(scriptPath, filepath.Ext(scriptPath)) + ".g"
}

// Materialize runs the script at scriptPath through mged to create the
// geometry database at DatabasePath(scriptPath), replacing a stale one. The
// script is fed through mged's standard input.
func (e *Engine) Materialize(ctx context.Context, scriptPath string) (string, error) {
	db := DatabasePath(scriptPath)
	err := os.Remove(db)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("could not remove %s, use a different file name or delete the file manually: %w", db, err)
	}
	if err == nil {
		brlcad.Logger().Debug("removed stale database", "path", db)
	}
	script, err := os.Open(scriptPath)
	if err != nil {
		return "", err
	}
	defer script.Close()
	_, err = e.run(ctx, e.mged, script, db)
	if err != nil {
		return "", err
	}
	brlcad.Logger().Info("database materialized", "script", scriptPath, "db", db)
	return db, nil
}

// MGED runs a single command line against an existing database and returns
// the captured output streams. mged reports most results on stderr.
func (e *Engine) MGED(ctx context.Context, db, command string) (stdout, stderr string, err error) {
	out, err := e.run(ctx, e.mged, nil, db, command)
	return string(out.stdout), string(out.stderr), err
}

// Tops returns the names of the objects not referenced by any combination
// in db, without the "/" and "/R" decorations.
func (e *Engine) Tops(ctx context.Context, db string) ([]string, error) {
	stdout, stderr, err := e.MGED(ctx, db, "tops")
	if err != nil {
		return nil, err
	}
	report := stderr
	if strings.TrimSpace(report) == "" {
		report = stdout
	}
	return parseTops(report), nil
}

func parseTops(report string) []string {
	var names []string
	for _, field := range strings.Fields(report) {
		field = strings.TrimSuffix(field, "/R")
		field = strings.TrimSuffix(field, "/")
		if field != "" {
			names = append(names, field)
		}
	}
	return names
}

// Kill removes objects from db.
func (e *Engine) Kill(ctx context.Context, db string, names ...string) error {
	if len(names) == 0 {
		return nil
	}
	_, _, err := e.MGED(ctx, db, "kill "+strings.Join(names, " "))
	return err
}
