package bounds

import (
	"context"
	"strings"

	"github.com/soypat/brlcad"
	"gonum.org/v1/gonum/spatial/r3"
)

// TempBoxName is the database object created while measuring and killed
// afterwards.
const TempBoxName = "temp_box"

// Querier runs mged commands against a database. *engine.Engine implements it.
type Querier interface {
	MGED(ctx context.Context, db, command string) (stdout, stderr string, err error)
	Kill(ctx context.Context, db string, names ...string) error
}

// spellings of the bounding box command. mged releases after 7.26 replaced
// make_bb with "bb -c".
var spellings = [2]string{"make_bb", "bb -c"}

// Resolver measures bounding boxes. It is not safe for concurrent use.
type Resolver struct {
	q Querier
	// spelling indexes the bounding box command known to work.
	spelling int
}

// NewResolver returns a Resolver issuing commands through q. If post726 is
// set the "bb -c" spelling is tried first.
func NewResolver(q Querier, post726 bool) *Resolver {
	r := &Resolver{q: q}
	if post726 {
		r.spelling = 1
	}
	return r
}

// Points returns the corners of the bounding box of objects as listed by
// mged. If the bounding box command is unknown to the installed mged the
// alternate spelling is tried once. The temporary box is killed whatever
// the outcome.
func (r *Resolver) Points(ctx context.Context, db string, objects []string) ([]r3.Vec, error) {
	defer func() {
		if err := r.q.Kill(ctx, db, TempBoxName); err != nil {
			brlcad.Logger().Warn("could not kill temporary bounding box", "db", db, "err", err)
		}
	}()
	report, err := r.list(ctx, db, objects)
	if err != nil {
		return nil, err
	}
	return ParseReport(report)
}

func (r *Resolver) list(ctx context.Context, db string, objects []string) (string, error) {
	names := strings.Join(objects, " ")
	for attempt := 0; ; attempt++ {
		cmd := spellings[r.spelling]
		stdout, stderr, err := r.q.MGED(ctx, db, cmd+" "+TempBoxName+" "+names+"; l "+TempBoxName)
		unknown := strings.Contains(stderr, `invalid command name "`+strings.Fields(cmd)[0]+`"`)
		if unknown && attempt == 0 {
			brlcad.Logger().Warn("bounding box command unknown, retrying with alternate spelling",
				"command", cmd, "alternate", spellings[1-r.spelling])
			r.spelling = 1 - r.spelling
			continue
		}
		if err != nil {
			return "", err
		}
		if unknown {
			return "", &ReportError{Line: 1, Text: firstLine(stderr)}
		}
		if !strings.ContainsRune(stderr, '(') {
			// Some builds list on stdout.
			return stdout, nil
		}
		return stderr, nil
	}
}

// Box returns the axis aligned bounding box of objects.
func (r *Resolver) Box(ctx context.Context, db string, objects []string) (r3.Box, error) {
	points, err := r.Points(ctx, db, objects)
	if err != nil {
		return r3.Box{}, err
	}
	a, b, err := OpposingCorners(points)
	if err != nil {
		return r3.Box{}, err
	}
	return Box(a, b), nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}
