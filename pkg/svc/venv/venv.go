// Package venv provisions the isolated Python runtime environment and
// installs the pinned dependency manifest into it.
package venv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hostup-sh/hostup/pkg/cmd/runner"
)

// Provisioner manages the isolated runtime environment at a fixed path.
type Provisioner struct {
	venvDir          string
	requirementsFile string
	run              runner.CommandRunner
	execCtx          runner.ExecutionContext
}

// NewProvisioner creates a provisioner for the environment at venvDir using
// the pinned manifest at requirementsFile.
func NewProvisioner(
	venvDir string,
	requirementsFile string,
	run runner.CommandRunner,
	execCtx runner.ExecutionContext,
) *Provisioner {
	return &Provisioner{
		venvDir:          venvDir,
		requirementsFile: requirementsFile,
		run:              run,
		execCtx:          execCtx,
	}
}

// CheckManifests verifies the given manifest files exist. It runs before
// any privileged command so a missing manifest aborts the run without
// touching host package state.
func CheckManifests(paths ...string) error {
	for _, path := range paths {
		_, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrManifestNotFound, path)
		}
	}

	return nil
}

// Ensure idempotently ensures the environment exists. An existing directory
// is trusted as a valid environment with no mutation and no integrity
// validation. Returns whether the environment was created by this call.
func (p *Provisioner) Ensure(ctx context.Context) (bool, error) {
	_, err := os.Stat(p.venvDir)
	if err == nil {
		return false, nil
	}

	_, err = p.run.Run(ctx, runner.Command{
		Name: "python3",
		Args: []string{"-m", "venv", p.venvDir},
		Env:  p.execCtx.Environ(),
	})
	if err != nil {
		return false, fmt.Errorf("failed to create virtual environment at %s: %w", p.venvDir, err)
	}

	return true, nil
}

// InstallRequirements upgrades the environment's bootstrap packaging tools
// and installs the pinned manifest. All mutation is scoped to the
// environment; host-wide package state is never touched.
func (p *Provisioner) InstallRequirements(ctx context.Context) error {
	pip := filepath.Join(p.venvDir, "bin", "pip")

	_, err := p.run.Run(ctx, runner.Command{
		Name: pip,
		Args: []string{"install", "--upgrade", "pip", "setuptools", "wheel"},
		Env:  p.execCtx.Environ(),
	})
	if err != nil {
		return fmt.Errorf("failed to upgrade packaging tools: %w", err)
	}

	_, err = p.run.Run(ctx, runner.Command{
		Name: pip,
		Args: []string{"install", "-r", p.requirementsFile},
		Env:  p.execCtx.Environ(),
	})
	if err != nil {
		return fmt.Errorf("failed to install pinned requirements: %w", err)
	}

	return nil
}
