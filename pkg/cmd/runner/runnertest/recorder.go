// Package runnertest provides a recording CommandRunner fake for tests.
package runnertest

import (
	"context"
	"sync"

	"github.com/hostup-sh/hostup/pkg/cmd/runner"
)

// Recorder implements runner.CommandRunner and records every invocation.
// By default every command succeeds with an empty result; set RunFunc to
// control results per call.
type Recorder struct {
	mu    sync.Mutex
	calls []runner.Command

	// RunFunc, when set, determines the result of each call.
	RunFunc func(cmd runner.Command) (runner.CommandResult, error)
}

// Run records the command and returns the configured result.
func (r *Recorder) Run(_ context.Context, cmd runner.Command) (runner.CommandResult, error) {
	r.mu.Lock()
	r.calls = append(r.calls, cmd)
	r.mu.Unlock()

	if r.RunFunc != nil {
		return r.RunFunc(cmd)
	}

	return runner.CommandResult{}, nil
}

// Calls returns the recorded invocations in order.
func (r *Recorder) Calls() []runner.Command {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]runner.Command(nil), r.calls...)
}

// CallStrings returns each recorded invocation rendered via Command.String.
func (r *Recorder) CallStrings() []string {
	calls := r.Calls()
	rendered := make([]string, 0, len(calls))

	for _, call := range calls {
		rendered = append(rendered, call.String())
	}

	return rendered
}
