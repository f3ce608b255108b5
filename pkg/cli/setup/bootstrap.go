// Package setup orchestrates the sequential host-bootstrap pipeline and
// reports progress to the operator.
package setup

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/hostup-sh/hostup/pkg/cmd/runner"
	"github.com/hostup-sh/hostup/pkg/io/configmanager"
	"github.com/hostup-sh/hostup/pkg/svc/galaxy"
	"github.com/hostup-sh/hostup/pkg/svc/installer"
	"github.com/hostup-sh/hostup/pkg/svc/pkgmgr"
	"github.com/hostup-sh/hostup/pkg/svc/venv"
	"github.com/hostup-sh/hostup/pkg/utils/notify"
	"github.com/hostup-sh/hostup/pkg/utils/timer"
)

// Deps carries the injectable collaborators of the bootstrap pipeline.
type Deps struct {
	// Runner executes host subprocesses.
	Runner runner.CommandRunner
	// LookPath probes PATH for executables. Nil falls back to exec.LookPath.
	LookPath installer.LookPathFunc
	// ExecCtx is the ambient execution context for subprocess steps.
	ExecCtx runner.ExecutionContext
	// Tools are the external tool specs, in installation order.
	Tools []installer.Tool
	// ToolInstaller places tool binaries into the system binary directory.
	ToolInstaller *installer.ToolInstaller
	// Timer, when non-nil, adds per-stage timing to success lines.
	Timer timer.Timer
}

// Result records what the run did, per component, for reporting and tests.
type Result struct {
	Profile      pkgmgr.Profile
	VenvCreated  bool
	ToolOutcomes map[string]installer.Outcome
}

// RunBootstrap executes the full bootstrap pipeline: manifest preflight,
// package manager detection, system dependencies, isolated runtime,
// pinned requirements, automation collections, external tools, and the
// completion report.
//
// Execution is strictly sequential and single-pass. Fatal errors abort;
// degraded steps warn and continue. Every mutating step is idempotent, so
// an aborted run is recovered by re-running the whole bootstrap.
func RunBootstrap(
	ctx context.Context,
	out io.Writer,
	cfg *configmanager.Config,
	deps Deps,
) (*Result, error) {
	result := &Result{ToolOutcomes: map[string]installer.Outcome{}}

	if deps.Timer != nil {
		deps.Timer.Start()
	}

	// Manifest preflight runs before anything privileged: a missing
	// manifest must abort the run with host package state untouched.
	err := RunStage(out, deps.Timer, StageInfo{
		Title:         "Check dependency manifests...",
		Emoji:         "🔍",
		Activity:      fmt.Sprintf("looking for manifests in %s", cfg.Dir),
		Success:       "manifests found",
		FailurePrefix: "failed to verify dependency manifests",
	}, func() error {
		return venv.CheckManifests(cfg.RequirementsFile(), cfg.CollectionsFile())
	})
	if err != nil {
		return result, err
	}

	err = RunStage(out, deps.Timer, StageInfo{
		Title:         "Install system packages...",
		Emoji:         "📦",
		FailurePrefix: "failed to prepare system packages",
	}, func() error {
		return installSystemStage(ctx, out, deps, result)
	})
	if err != nil {
		return result, err
	}

	err = RunStage(out, deps.Timer, StageInfo{
		Title:         "Provision isolated runtime...",
		Emoji:         "🐍",
		FailurePrefix: "failed to provision isolated runtime",
	}, func() error {
		return provisionRuntimeStage(ctx, out, cfg, deps, result)
	})
	if err != nil {
		return result, err
	}

	err = RunStage(out, deps.Timer, StageInfo{
		Title:         "Install automation collections...",
		Emoji:         "📚",
		FailurePrefix: "failed to install automation collections",
	}, func() error {
		return installCollectionsStage(ctx, out, cfg, deps)
	})
	if err != nil {
		return result, err
	}

	if !cfg.SkipTools {
		installToolsStage(ctx, out, deps, result)
	}

	WriteCompletionReport(out, cfg)

	return result, nil
}

// installSystemStage resolves the package manager profile and installs the
// native dependencies. Locale configuration and the optional ISO tool are
// best-effort.
func installSystemStage(ctx context.Context, out io.Writer, deps Deps, result *Result) error {
	profile, err := pkgmgr.Detect(pkgmgr.LookPathFunc(deps.LookPath))
	if err != nil {
		return err
	}

	result.Profile = profile

	notify.Infof(out, "detected package manager: %s", profile)

	err = pkgmgr.InstallSystemPackages(ctx, deps.Runner, deps.ExecCtx, profile)
	if err != nil {
		return err
	}

	pkgmgr.ConfigureLocale(ctx, deps.Runner, deps.ExecCtx, profile, out)

	err = pkgmgr.InstallISOTool(ctx, deps.Runner, deps.ExecCtx, profile)
	if err != nil {
		notify.Warningf(out, "optional ISO tooling unavailable, continuing: %v", err)
	}

	notify.Successf(out, "system packages installed")

	return nil
}

// provisionRuntimeStage ensures the isolated environment exists and carries
// the pinned dependency set.
func provisionRuntimeStage(
	ctx context.Context,
	out io.Writer,
	cfg *configmanager.Config,
	deps Deps,
	result *Result,
) error {
	provisioner := venv.NewProvisioner(cfg.VenvDir, cfg.RequirementsFile(), deps.Runner, deps.ExecCtx)

	created, err := provisioner.Ensure(ctx)
	if err != nil {
		return err
	}

	result.VenvCreated = created

	if created {
		notify.Infof(out, "created environment at %s", cfg.VenvDir)
	} else {
		notify.Infof(out, "environment already present at %s", cfg.VenvDir)
	}

	err = provisioner.InstallRequirements(ctx)
	if err != nil {
		return err
	}

	notify.Successf(out, "pinned requirements installed")

	return nil
}

// installCollectionsStage verifies the automation CLI and installs the
// collection manifest, retrying exactly once under a widened PATH.
func installCollectionsStage(
	ctx context.Context,
	out io.Writer,
	cfg *configmanager.Config,
	deps Deps,
) error {
	collectionInstaller := galaxy.NewInstaller(
		cfg.VenvBinDir(), cfg.CollectionsFile(), deps.Runner, deps.ExecCtx,
	)

	err := collectionInstaller.CheckCLI()
	if err != nil {
		return err
	}

	names, err := collectionInstaller.CollectionNames()
	if err == nil && len(names) > 0 {
		notify.Activityf(out, "installing collections: %s", strings.Join(names, ", "))
	} else {
		notify.Activityf(out, "installing collections from %s", cfg.CollectionsFile())
	}

	err = collectionInstaller.Install(ctx, out)
	if err != nil {
		return err
	}

	notify.Successf(out, "automation collections installed")

	return nil
}

// installToolsStage attempts each external tool independently. A failure in
// one tool never prevents the remaining attempts and never changes the
// process exit code.
func installToolsStage(ctx context.Context, out io.Writer, deps Deps, result *Result) {
	notify.Titlef(out, "🧰", "Install external tools...")

	for _, tool := range deps.Tools {
		result.ToolOutcomes[tool.Name] = deps.ToolInstaller.Install(ctx, tool, out)
	}
}
