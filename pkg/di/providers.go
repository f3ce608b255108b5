package di

import (
	"github.com/hostup-sh/hostup/pkg/cmd/runner"
	"github.com/hostup-sh/hostup/pkg/utils/timer"
	"github.com/samber/do/v2"
)

// Dependency providers.

// NewRuntime constructs the shared runtime container used by the root
// command and tests. It registers default implementations for the timer
// and the command runner.
func NewRuntime() *Runtime {
	return New(
		provideTimer,
		provideCommandRunner,
	)
}

// provideTimer registers the timer dependency with the injector.
func provideTimer(i Injector) error {
	do.Provide(i, func(Injector) (timer.Timer, error) {
		return timer.New(), nil
	})

	return nil
}

// provideCommandRunner registers the subprocess runner dependency.
func provideCommandRunner(i Injector) error {
	do.Provide(i, func(Injector) (runner.CommandRunner, error) {
		return runner.NewExecCommandRunner(nil, nil), nil
	})

	return nil
}
