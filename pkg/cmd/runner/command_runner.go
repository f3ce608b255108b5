// Package runner executes host subprocesses while capturing their output.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/sirupsen/logrus"
)

// Command describes a single subprocess invocation.
type Command struct {
	// Name is the executable to run, resolved via PATH unless absolute.
	Name string
	// Args are the arguments passed to the executable.
	Args []string
	// Env is the complete environment for the subprocess. If nil, the
	// current process environment is inherited.
	Env []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
}

// String renders the invocation for status lines and debug traces.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}

	var buf bytes.Buffer

	buf.WriteString(c.Name)

	for _, arg := range c.Args {
		buf.WriteByte(' ')
		buf.WriteString(arg)
	}

	return buf.String()
}

// CommandResult captures the stdout and stderr collected during a command
// execution. Both fields contain the complete output from the command,
// including any output produced before an error occurred.
type CommandResult struct {
	Stdout string
	Stderr string
}

// CommandRunner executes subprocesses while capturing their output.
// Implementations should display output to stdout/stderr in real-time while
// also capturing it for programmatic access via CommandResult.
type CommandRunner interface {
	Run(ctx context.Context, cmd Command) (CommandResult, error)
}

// ExecCommandRunner executes commands with os/exec and console output.
// This runner displays command output to stdout/stderr in real-time while
// also capturing it for the result.
type ExecCommandRunner struct {
	stdout io.Writer
	stderr io.Writer
}

// NewExecCommandRunner creates a command runner backed by os/exec.
// It displays output to stdout/stderr in real-time (like running the binary
// directly) while also capturing output for programmatic use in the
// CommandResult.
//
// If stdout or stderr are nil, they default to os.Stdout and os.Stderr respectively.
func NewExecCommandRunner(stdout, stderr io.Writer) *ExecCommandRunner {
	if stdout == nil {
		stdout = os.Stdout
	}

	if stderr == nil {
		stderr = os.Stderr
	}

	return &ExecCommandRunner{
		stdout: stdout,
		stderr: stderr,
	}
}

// Run executes a subprocess and displays output in real-time to the console.
// The command's output streams write to both capture buffers and the
// configured stdout/stderr writers, providing the same behavior as running
// the binary directly while also making the output available programmatically.
func (r *ExecCommandRunner) Run(ctx context.Context, cmd Command) (CommandResult, error) {
	var outBuf, errBuf bytes.Buffer

	logrus.WithFields(logrus.Fields{
		"command": cmd.Name,
		"args":    cmd.Args,
	}).Debug("running command")

	execCmd := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	execCmd.Stdout = io.MultiWriter(&outBuf, r.stdout)
	execCmd.Stderr = io.MultiWriter(&errBuf, r.stderr)
	execCmd.Env = cmd.Env
	execCmd.Dir = cmd.Dir

	execErr := execCmd.Run()
	if execErr != nil {
		return CommandResult{
			Stdout: outBuf.String(),
			Stderr: errBuf.String(),
		}, fmt.Errorf("command execution failed: %w", execErr)
	}

	return CommandResult{
		Stdout: outBuf.String(),
		Stderr: errBuf.String(),
	}, nil
}
