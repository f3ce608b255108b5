// Package di wires the shared runtime container used by the root command
// and tests, built on samber/do.
package di

import "github.com/samber/do/v2"

// Injector aliases the do injector so callers do not import do directly.
type Injector = do.Injector

// Runtime is the shared dependency container.
type Runtime struct {
	injector do.Injector
}

// New constructs a runtime from the given dependency providers.
func New(providers ...func(Injector) error) *Runtime {
	injector := do.New()

	for _, provide := range providers {
		// Provider registration cannot fail at runtime; a failure here is
		// a programming error surfaced at startup.
		if err := provide(injector); err != nil {
			panic(err)
		}
	}

	return &Runtime{injector: injector}
}

// Invoke runs fn against the container's injector.
func (r *Runtime) Invoke(fn func(Injector) error) error {
	return fn(r.injector)
}
