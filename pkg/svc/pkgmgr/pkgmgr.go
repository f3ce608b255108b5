// Package pkgmgr resolves the host's native package manager and installs
// the system dependencies the bootstrap needs.
package pkgmgr

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/hostup-sh/hostup/pkg/cmd/runner"
	"github.com/hostup-sh/hostup/pkg/utils/notify"
)

// Profile identifies the package manager resolved for the host. It is
// determined once per run and immutable thereafter.
type Profile int

// Supported package manager profiles, in probe priority order.
const (
	Apt Profile = iota
	Dnf
	Yum
)

// String returns the probe executable for the profile.
func (p Profile) String() string {
	switch p {
	case Apt:
		return "apt-get"
	case Dnf:
		return "dnf"
	case Yum:
		return "yum"
	default:
		return "unknown"
	}
}

// LookPathFunc resolves an executable on PATH. It matches the signature of
// exec.LookPath so tests can inject a fake.
type LookPathFunc func(file string) (string, error)

// Detect probes for the supported package managers in fixed priority order
// (apt-get, dnf, yum) and returns the first match. When lookPath is nil,
// exec.LookPath is used. Returns ErrUnsupportedHost when none match.
func Detect(lookPath LookPathFunc) (Profile, error) {
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	for _, profile := range []Profile{Apt, Dnf, Yum} {
		if _, err := lookPath(profile.String()); err == nil {
			return profile, nil
		}
	}

	return 0, ErrUnsupportedHost
}

// Packages returns the native package set the profile must install.
func (p Profile) Packages() []string {
	switch p {
	case Apt:
		return []string{"python3", "python3-pip", "python3-venv", "git", "curl", "tar", "locales"}
	case Dnf, Yum:
		return []string{"python3", "python3-pip", "git", "curl", "tar", "glibc-langpack-en"}
	default:
		return nil
	}
}

// ISOPackage returns the optional ISO-creation utility for the profile.
// Its absence is never fatal.
func (p Profile) ISOPackage() string {
	return "xorriso"
}

// installCommand builds the profile's install invocation for the given packages.
func (p Profile) installCommand(packages []string) runner.Command {
	return runner.Command{
		Name: p.String(),
		Args: append([]string{"install", "-y"}, packages...),
	}
}

// localeCommands returns the profile's UTF-8 locale configuration steps.
// Every step is best-effort: locale generation commonly fails harmlessly on
// minimal or already-configured images.
func (p Profile) localeCommands() []runner.Command {
	switch p {
	case Apt:
		return []runner.Command{
			{Name: "sed", Args: []string{"-i", "s/^# *en_US.UTF-8 UTF-8/en_US.UTF-8 UTF-8/", "/etc/locale.gen"}},
			{Name: "locale-gen"},
			{Name: "update-locale", Args: []string{"LANG=" + runner.DefaultLocale}},
		}
	case Dnf, Yum:
		return []runner.Command{
			{Name: "localedef", Args: []string{"-i", "en_US", "-f", "UTF-8", runner.DefaultLocale}},
		}
	default:
		return nil
	}
}

// InstallSystemPackages installs the profile's native package set.
// For apt the package index is refreshed first. Failure is fatal: the rest
// of the bootstrap depends on these packages.
func InstallSystemPackages(
	ctx context.Context,
	run runner.CommandRunner,
	execCtx runner.ExecutionContext,
	profile Profile,
) error {
	if profile == Apt {
		_, err := run.Run(ctx, runner.Command{
			Name: "apt-get",
			Args: []string{"update"},
			Env:  execCtx.Environ(),
		})
		if err != nil {
			return fmt.Errorf("failed to refresh package index: %w", err)
		}
	}

	cmd := profile.installCommand(profile.Packages())
	cmd.Env = execCtx.Environ()

	_, err := run.Run(ctx, cmd)
	if err != nil {
		return fmt.Errorf("failed to install system packages: %w", err)
	}

	return nil
}

// ConfigureLocale attempts to enable a UTF-8 locale for the profile.
// Each sub-step's failure is swallowed and reported as a warning; a missing
// UTF-8 locale is only a likely cause of later failures, not a certain one.
func ConfigureLocale(
	ctx context.Context,
	run runner.CommandRunner,
	execCtx runner.ExecutionContext,
	profile Profile,
	out io.Writer,
) {
	for _, cmd := range profile.localeCommands() {
		cmd.Env = execCtx.Environ()

		_, err := run.Run(ctx, cmd)
		if err != nil {
			notify.Warningf(out, "locale step %q failed, continuing: %v", cmd.String(), err)
		}
	}
}

// InstallISOTool installs the optional ISO-creation utility used later for
// building node boot media. The caller downgrades failure to a warning.
func InstallISOTool(
	ctx context.Context,
	run runner.CommandRunner,
	execCtx runner.ExecutionContext,
	profile Profile,
) error {
	cmd := profile.installCommand([]string{profile.ISOPackage()})
	cmd.Env = execCtx.Environ()

	_, err := run.Run(ctx, cmd)
	if err != nil {
		return fmt.Errorf("failed to install %s: %w", profile.ISOPackage(), err)
	}

	return nil
}
