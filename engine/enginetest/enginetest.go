// Package enginetest provides a scripted stand-in for the kernel's tools
// so pipelines can be tested without BRL-CAD installed.
package enginetest

import (
	"context"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/soypat/brlcad/engine"
)

// Reply is the scripted outcome of one invocation.
type Reply struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Call records one invocation received by a Runner.
type Call struct {
	Args  []string
	Stdin string
}

// Line returns the call's arguments joined by spaces.
func (c Call) Line() string { return strings.Join(c.Args, " ") }

// Runner implements engine.Runner by handing every invocation to Handle.
// It records all calls and tracks the maximum number of concurrent calls
// per tool.
type Runner struct {
	Handle func(c Call) Reply

	mu            sync.Mutex
	calls         []Call
	active        map[string]int
	maxConcurrent map[string]int
}

var _ engine.Runner = (*Runner)(nil)

// Run implements engine.Runner.
func (r *Runner) Run(ctx context.Context, inv *engine.Invocation) error {
	c := Call{Args: append([]string(nil), inv.Args...)}
	if inv.Stdin != nil {
		b, err := io.ReadAll(inv.Stdin)
		if err != nil {
			return err
		}
		c.Stdin = string(b)
	}
	tool := c.Args[0]
	r.mu.Lock()
	r.calls = append(r.calls, c)
	if r.active == nil {
		r.active = make(map[string]int)
		r.maxConcurrent = make(map[string]int)
	}
	r.active[tool]++
	if r.active[tool] > r.maxConcurrent[tool] {
		r.maxConcurrent[tool] = r.active[tool]
	}
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		r.active[tool]--
		r.mu.Unlock()
	}()

	var reply Reply
	if r.Handle != nil {
		reply = r.Handle(c)
	}
	io.WriteString(inv.Stdout, reply.Stdout)
	io.WriteString(inv.Stderr, reply.Stderr)
	if err := ctx.Err(); err != nil {
		return err
	}
	if reply.ExitCode != 0 {
		return ExitError(reply.ExitCode)
	}
	return nil
}

// Calls returns the invocations received so far.
func (r *Runner) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// MaxConcurrent returns the largest number of simultaneous runs of tool.
func (r *Runner) MaxConcurrent(tool string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.maxConcurrent[tool]
}

// ExitError is a non-zero exit status.
type ExitError int

func (e ExitError) Error() string { return "exit status " + strconv.Itoa(int(e)) }

// ExitCode returns the exit status.
func (e ExitError) ExitCode() int { return int(e) }
