package pkgmgr_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hostup-sh/hostup/pkg/cmd/runner"
	"github.com/hostup-sh/hostup/pkg/cmd/runner/runnertest"
	"github.com/hostup-sh/hostup/pkg/svc/pkgmgr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNotFound = errors.New("executable file not found in $PATH")

// lookPathFor fakes PATH lookup for the given executables.
func lookPathFor(available ...string) pkgmgr.LookPathFunc {
	return func(file string) (string, error) {
		for _, name := range available {
			if name == file {
				return "/usr/bin/" + file, nil
			}
		}

		return "", errNotFound
	}
}

func TestDetect_PriorityOrder(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		available []string
		expected  pkgmgr.Profile
	}{
		{name: "apt wins over dnf and yum", available: []string{"yum", "dnf", "apt-get"}, expected: pkgmgr.Apt},
		{name: "dnf wins over yum", available: []string{"yum", "dnf"}, expected: pkgmgr.Dnf},
		{name: "yum alone", available: []string{"yum"}, expected: pkgmgr.Yum},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			profile, err := pkgmgr.Detect(lookPathFor(testCase.available...))
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, profile)
		})
	}
}

func TestDetect_UnsupportedHost(t *testing.T) {
	t.Parallel()

	_, err := pkgmgr.Detect(lookPathFor("apk", "pacman"))

	require.ErrorIs(t, err, pkgmgr.ErrUnsupportedHost)
}

func TestInstallSystemPackages_AptRefreshesIndexFirst(t *testing.T) {
	t.Parallel()

	recorder := &runnertest.Recorder{}
	execCtx := runner.NewExecutionContext()

	err := pkgmgr.InstallSystemPackages(context.Background(), recorder, execCtx, pkgmgr.Apt)
	require.NoError(t, err)

	calls := recorder.CallStrings()
	require.Len(t, calls, 2)
	assert.Equal(t, "apt-get update", calls[0])
	assert.True(t, strings.HasPrefix(calls[1], "apt-get install -y python3 "))
	assert.Contains(t, calls[1], "python3-venv")
	assert.Contains(t, calls[1], "locales")
}

func TestInstallSystemPackages_DnfSkipsIndexRefresh(t *testing.T) {
	t.Parallel()

	recorder := &runnertest.Recorder{}
	execCtx := runner.NewExecutionContext()

	err := pkgmgr.InstallSystemPackages(context.Background(), recorder, execCtx, pkgmgr.Dnf)
	require.NoError(t, err)

	calls := recorder.CallStrings()
	require.Len(t, calls, 1)
	assert.True(t, strings.HasPrefix(calls[0], "dnf install -y "))
	assert.Contains(t, calls[0], "glibc-langpack-en")
}

func TestInstallSystemPackages_FailureIsFatal(t *testing.T) {
	t.Parallel()

	recorder := &runnertest.Recorder{
		RunFunc: func(runner.Command) (runner.CommandResult, error) {
			return runner.CommandResult{}, assert.AnError
		},
	}

	err := pkgmgr.InstallSystemPackages(
		context.Background(), recorder, runner.NewExecutionContext(), pkgmgr.Yum,
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to install system packages")
}

func TestConfigureLocale_SwallowsFailures(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	recorder := &runnertest.Recorder{
		RunFunc: func(runner.Command) (runner.CommandResult, error) {
			return runner.CommandResult{}, assert.AnError
		},
	}

	pkgmgr.ConfigureLocale(
		context.Background(), recorder, runner.NewExecutionContext(), pkgmgr.Apt, &out,
	)

	// All three apt locale steps attempted despite each one failing.
	assert.Len(t, recorder.Calls(), 3)
	assert.Contains(t, out.String(), "locale step")
	assert.Contains(t, out.String(), "continuing")
}

func TestConfigureLocale_AptSteps(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	recorder := &runnertest.Recorder{}

	pkgmgr.ConfigureLocale(
		context.Background(), recorder, runner.NewExecutionContext(), pkgmgr.Apt, &out,
	)

	calls := recorder.CallStrings()
	require.Len(t, calls, 3)
	assert.Contains(t, calls[0], "/etc/locale.gen")
	assert.Equal(t, "locale-gen", calls[1])
	assert.Contains(t, calls[2], "update-locale")
	assert.Empty(t, out.String())
}

func TestInstallISOTool_ReturnsErrorForCallerToDegrade(t *testing.T) {
	t.Parallel()

	recorder := &runnertest.Recorder{
		RunFunc: func(runner.Command) (runner.CommandResult, error) {
			return runner.CommandResult{}, assert.AnError
		},
	}

	err := pkgmgr.InstallISOTool(
		context.Background(), recorder, runner.NewExecutionContext(), pkgmgr.Dnf,
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "xorriso")
}
