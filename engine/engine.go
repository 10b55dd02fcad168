// Package engine drives the command line tools of the BRL-CAD geometry
// kernel: the mged interpreter, the g-stl mesh exporter, the rt renderer and
// the nirt ray query tool. Tools are located through PATH. Every invocation
// blocks until the tool exits and a non-zero exit status is reported as a
// [*ToolInvocationError].
package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/mattn/go-shellwords"
	"github.com/soypat/brlcad"
)

// Config selects the tool command lines and how their output is handled.
type Config struct {
	// Command lines of each tool. They are split shell style so wrappers
	// such as "nice -n 10 nirt" are allowed.
	MGED string
	GSTL string
	RT   string
	NIRT string

	// Verbose echoes tool output to Stdout and Stderr in addition to
	// capturing it.
	Verbose bool
	Stdout  io.Writer // defaults to os.Stdout.
	Stderr  io.Writer // defaults to os.Stderr.

	// Runner launches processes. nil selects os/exec.
	Runner Runner
}

// DefaultConfig returns the configuration using the stock tool names.
func DefaultConfig() Config {
	return Config{
		MGED: "mged",
		GSTL: "g-stl",
		RT:   "rt",
		NIRT: "nirt",
	}
}

// Invocation describes one process launch.
type Invocation struct {
	Args   []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Runner launches a process and waits for it to exit. Implementations
// report a non-zero exit with an error that has an ExitCode() int method,
// as [*exec.ExitError] does.
type Runner interface {
	Run(ctx context.Context, inv *Invocation) error
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, inv *Invocation) error {
	cmd := exec.CommandContext(ctx, inv.Args[0], inv.Args[1:]...)
	cmd.Stdin = inv.Stdin
	cmd.Stdout = inv.Stdout
	cmd.Stderr = inv.Stderr
	return cmd.Run()
}

// Engine launches the kernel's tools. It holds no per-database state and is
// safe for concurrent use, although concurrent nirt runs against one
// database are not supported by the kernel.
type Engine struct {
	mged, gstl, rt, nirt []string

	verbose        bool
	stdout, stderr io.Writer
	runner         Runner
}

// New returns an Engine configured by cfg. Empty command lines fall back to
// the defaults.
func New(cfg Config) (*Engine, error) {
	def := DefaultConfig()
	e := &Engine{
		verbose: cfg.Verbose,
		stdout:  cfg.Stdout,
		stderr:  cfg.Stderr,
		runner:  cfg.Runner,
	}
	if e.stdout == nil {
		e.stdout = os.Stdout
	}
	if e.stderr == nil {
		e.stderr = os.Stderr
	}
	if e.runner == nil {
		e.runner = execRunner{}
	}
	var err error
	for _, tool := range []struct {
		dst      *[]string
		cmd, def string
	}{
		{&e.mged, cfg.MGED, def.MGED},
		{&e.gstl, cfg.GSTL, def.GSTL},
		{&e.rt, cfg.RT, def.RT},
		{&e.nirt, cfg.NIRT, def.NIRT},
	} {
		cmd := tool.cmd
		if strings.TrimSpace(cmd) == "" {
			cmd = tool.def
		}
		*tool.dst, err = shellwords.Parse(cmd)
		if err != nil {
			return nil, fmt.Errorf("engine: parsing command line %q: %w", cmd, err)
		}
		if len(*tool.dst) == 0 {
			return nil, fmt.Errorf("engine: empty command line %q", cmd)
		}
	}
	return e, nil
}

// output is the captured result of an invocation.
type output struct {
	stdout, stderr []byte
}

// run launches argv (tool command line followed by args), feeding stdin and
// capturing both output streams.
func (e *Engine) run(ctx context.Context, tool []string, stdin io.Reader, args ...string) (output, error) {
	argv := make([]string, 0, len(tool)+len(args))
	argv = append(argv, tool...)
	argv = append(argv, args...)
	var stdout, stderr bytes.Buffer
	inv := &Invocation{Args: argv, Stdin: stdin, Stdout: &stdout, Stderr: &stderr}
	if e.verbose {
		inv.Stdout = io.MultiWriter(&stdout, e.stdout)
		inv.Stderr = io.MultiWriter(&stderr, e.stderr)
	}
	brlcad.Logger().Debug("running tool", "args", argv)
	err := e.runner.Run(ctx, inv)
	out := output{stdout: stdout.Bytes(), stderr: stderr.Bytes()}
	if err != nil {
		code := -1
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		return out, &ToolInvocationError{
			Args:     argv,
			ExitCode: code,
			Stderr:   string(out.stderr),
			Err:      err,
		}
	}
	return out, nil
}

// ToolInvocationError reports a tool that could not be started or exited
// with a non-zero status.
type ToolInvocationError struct {
	Args []string
	// ExitCode is -1 if the process could not be started or was killed.
	ExitCode int
	// Stderr holds the tool's captured diagnostic stream.
	Stderr string
	Err    error
}

func (e *ToolInvocationError) Error() string {
	msg := fmt.Sprintf("engine: %s: %v", strings.Join(e.Args, " "), e.Err)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + lastLines(stderr, 5)
	}
	return msg
}

func (e *ToolInvocationError) Unwrap() error { return e.Err }

func lastLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
