package runner

import (
	"os"
	"strings"
)

// DefaultLocale is exported to subprocesses when the host environment does
// not already carry a UTF-8 locale. The automation CLI is known to crash
// under non-UTF-8 locales.
const DefaultLocale = "en_US.UTF-8"

// ExecutionContext is the ambient environment under which subprocess steps
// run. It is built once per run and only ever widened, never narrowed.
type ExecutionContext struct {
	locale string
	path   string
}

// NewExecutionContext builds an execution context from the current process
// environment. Locale variables are read if set and defaulted to a UTF-8
// locale otherwise.
func NewExecutionContext() ExecutionContext {
	locale := os.Getenv("LC_ALL")
	if locale == "" {
		locale = os.Getenv("LANG")
	}

	if locale == "" || !strings.Contains(strings.ToUpper(locale), "UTF-8") {
		locale = DefaultLocale
	}

	return ExecutionContext{
		locale: locale,
		path:   os.Getenv("PATH"),
	}
}

// WithPathPrepended returns a copy of the context with dir prepended to PATH.
// The receiver is not modified.
func (c ExecutionContext) WithPathPrepended(dir string) ExecutionContext {
	widened := c
	widened.path = dir + string(os.PathListSeparator) + c.path

	return widened
}

// Path returns the PATH value subprocesses will see.
func (c ExecutionContext) Path() string {
	return c.path
}

// Environ renders the full subprocess environment: the current process
// environment with the context's locale and PATH values overriding.
func (c ExecutionContext) Environ() []string {
	env := make([]string, 0, len(os.Environ())+3)

	for _, entry := range os.Environ() {
		key, _, found := strings.Cut(entry, "=")
		if !found || key == "LC_ALL" || key == "LANG" || key == "PATH" {
			continue
		}

		env = append(env, entry)
	}

	return append(env,
		"LC_ALL="+c.locale,
		"LANG="+c.locale,
		"PATH="+c.path,
	)
}
