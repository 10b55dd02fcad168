package raster

import (
	"bufio"
	"bytes"
	"io"
	"regexp"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	number       = `[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`
	originPrefix = "Origin"
	hitHeader    = "Region Name"
	missedTarget = "You missed the target"
)

// hitRe matches the entry point triple and line of sight length of a nirt
// hit line:
//
//	slice0_num.r  (   -5.0000    -5.0000     0.0000)   5.0000   0.0000
var hitRe = regexp.MustCompile(`\(\s*(` + number + `)\s+(` + number + `)\s+(` + number + `)\s*\)\s+(` + number + `)`)

// Hit is the first partition a ray entered.
type Hit struct {
	Entry r3.Vec
	// Depth is the line of sight length through the partition.
	Depth float64
}

// Record is nirt's report for one fired ray.
type Record struct {
	Origin    string
	Direction string
	// Hit is nil when the ray missed.
	Hit *Hit
}

// HitParseError is returned for a hit line that does not match the
// expected layout. It signals a nirt release with a different output format.
type HitParseError struct {
	LineNo int // 1 based.
	Line   string
}

func (e *HitParseError) Error() string {
	return "raster: unexpected nirt hit line " + strconv.Itoa(e.LineNo) + ": " + strconv.Quote(e.Line)
}

type parseState int

const (
	awaitOrigin parseState = iota
	awaitDirection
	awaitHit
	closed
)

// ParseTranscript parses nirt's standard output into one record per fired
// ray. Only the first partition line after a record's header is used;
// further lines up to the next Origin line are ignored.
func ParseTranscript(r io.Reader) ([]Record, error) {
	var (
		records []Record
		state   = awaitOrigin
		lineNo  int
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		switch state {
		case awaitOrigin, closed:
			if strings.HasPrefix(line, originPrefix) {
				records = append(records, Record{Origin: line})
				state = awaitDirection
			}
		case awaitDirection:
			records[len(records)-1].Direction = line
			state = awaitHit
		case awaitHit:
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasPrefix(trimmed, hitHeader) {
				continue
			}
			state = closed
			if strings.Contains(line, missedTarget) {
				continue
			}
			hit, ok := parseHit(line)
			if !ok {
				return records, &HitParseError{LineNo: lineNo, Line: line}
			}
			records[len(records)-1].Hit = &hit
		}
	}
	return records, sc.Err()
}

func parseHit(line string) (Hit, bool) {
	m := hitRe.FindStringSubmatch(line)
	if m == nil {
		return Hit{}, false
	}
	var f [4]float64
	for i := range f {
		v, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return Hit{}, false
		}
		f[i] = v
	}
	return Hit{Entry: r3.Vec{X: f[0], Y: f[1], Z: f[2]}, Depth: f[3]}, true
}

// parseBytes is ParseTranscript over an in memory transcript.
func parseBytes(b []byte) ([]Record, error) {
	return ParseTranscript(bytes.NewReader(b))
}
