package runner_test

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/hostup-sh/hostup/pkg/cmd/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecCommandRunner_RunPropagatesStdout(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer

	execRunner := runner.NewExecCommandRunner(&stdout, &stderr)

	res, err := execRunner.Run(context.Background(), runner.Command{
		Name: "sh",
		Args: []string{"-c", "echo hello world"},
	})
	require.NoError(t, err)

	assert.Contains(t, res.Stdout, "hello world")
	assert.Contains(t, stdout.String(), "hello world")
}

func TestExecCommandRunner_RunReturnsError(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer

	execRunner := runner.NewExecCommandRunner(&stdout, &stderr)

	res, err := execRunner.Run(context.Background(), runner.Command{
		Name: "sh",
		Args: []string{"-c", "echo info output; echo stderr detail >&2; exit 3"},
	})
	require.Error(t, err)

	assert.Contains(t, err.Error(), "command execution failed")
	assert.Contains(t, res.Stdout, "info output")
	assert.Contains(t, res.Stderr, "stderr detail")
}

func TestExecCommandRunner_RunAppliesEnv(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer

	execRunner := runner.NewExecCommandRunner(&stdout, &stderr)

	res, err := execRunner.Run(context.Background(), runner.Command{
		Name: "sh",
		Args: []string{"-c", "echo $HOSTUP_TEST_MARKER"},
		Env:  []string{"PATH=" + os.Getenv("PATH"), "HOSTUP_TEST_MARKER=marker-value"},
	})
	require.NoError(t, err)

	assert.Contains(t, res.Stdout, "marker-value")
}

func TestCommand_String(t *testing.T) {
	t.Parallel()

	cmd := runner.Command{Name: "apt-get", Args: []string{"install", "-y", "git"}}

	assert.Equal(t, "apt-get install -y git", cmd.String())
	assert.Equal(t, "apt-get", runner.Command{Name: "apt-get"}.String())
}

func TestExecutionContext_WithPathPrependedWidensCopy(t *testing.T) {
	t.Parallel()

	execCtx := runner.NewExecutionContext()
	widened := execCtx.WithPathPrepended("/opt/venv/bin")

	require.True(t, strings.HasPrefix(widened.Path(), "/opt/venv/bin"+string(os.PathListSeparator)))
	assert.NotEqual(t, widened.Path(), execCtx.Path(), "original context must not be mutated")
}

func TestExecutionContext_EnvironExportsUTF8Locale(t *testing.T) {
	// Not parallel: manipulates process environment.
	t.Setenv("LC_ALL", "POSIX")
	t.Setenv("LANG", "C")

	execCtx := runner.NewExecutionContext()
	env := execCtx.Environ()

	assert.Contains(t, env, "LC_ALL="+runner.DefaultLocale)
	assert.Contains(t, env, "LANG="+runner.DefaultLocale)
}

func TestExecutionContext_EnvironKeepsExistingUTF8Locale(t *testing.T) {
	t.Setenv("LC_ALL", "da_DK.UTF-8")

	execCtx := runner.NewExecutionContext()
	env := execCtx.Environ()

	assert.Contains(t, env, "LC_ALL=da_DK.UTF-8")
}
