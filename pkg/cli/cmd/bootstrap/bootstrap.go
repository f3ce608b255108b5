// Package bootstrap implements the `hostup bootstrap` command.
package bootstrap

import (
	"fmt"

	"github.com/hostup-sh/hostup/pkg/cli/setup"
	"github.com/hostup-sh/hostup/pkg/cmd/runner"
	runtime "github.com/hostup-sh/hostup/pkg/di"
	"github.com/hostup-sh/hostup/pkg/io/configmanager"
	"github.com/hostup-sh/hostup/pkg/svc/installer"
	"github.com/hostup-sh/hostup/pkg/utils/notify"
	"github.com/hostup-sh/hostup/pkg/utils/timer"
	"github.com/spf13/cobra"
)

// TimingFlagName is the flag enabling per-stage timing on success lines.
const TimingFlagName = "timing"

// NewBootstrapCmd creates and returns the bootstrap command.
// The command runs the full host preparation pipeline in a fixed order:
// system packages, isolated runtime, automation collections, and the
// external cluster tools. Every step is idempotent, so the command can be
// re-run after a failure without undoing previous progress.
func NewBootstrapCmd(runtimeContainer *runtime.Runtime) *cobra.Command {
	configManager := configmanager.NewConfigManager()

	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Prepare this host for running automation playbooks",
		Long: `Prepare this host for running automation playbooks.

The bootstrap installs system packages through the native package manager,
provisions an isolated Python runtime with pinned dependencies, installs
the automation collections the playbooks need, and places the cluster
tools (helm, talosctl, kubectl) into the system binary directory.

The anchor directory must contain requirements.txt and requirements.yml.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBootstrap(cmd, runtimeContainer, configManager)
		},
	}

	configManager.AddFlags(cmd)
	cmd.Flags().Bool(TimingFlagName, false, "Show per-stage timing output")

	return cmd
}

func runBootstrap(
	cmd *cobra.Command,
	runtimeContainer *runtime.Runtime,
	configManager *configmanager.ConfigManager,
) error {
	cfg, err := configManager.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	deps, err := buildDeps(cmd, runtimeContainer, cfg)
	if err != nil {
		return err
	}

	out := notify.NewStageSeparatingWriter(cmd.OutOrStdout())

	_, err = setup.RunBootstrap(cmd.Context(), out, cfg, deps)
	if err != nil {
		return fmt.Errorf("bootstrap failed: %w", err)
	}

	return nil
}

func buildDeps(
	cmd *cobra.Command,
	runtimeContainer *runtime.Runtime,
	cfg *configmanager.Config,
) (setup.Deps, error) {
	var (
		commandRunner runner.CommandRunner
		stageTimer    timer.Timer
	)

	err := runtimeContainer.Invoke(func(injector runtime.Injector) error {
		var resolveErr error

		commandRunner, resolveErr = runtime.ResolveCommandRunner(injector)
		if resolveErr != nil {
			return resolveErr
		}

		stageTimer, resolveErr = runtime.ResolveTimer(injector)

		return resolveErr
	})
	if err != nil {
		return setup.Deps{}, fmt.Errorf("failed to resolve dependencies: %w", err)
	}

	timing, _ := cmd.Flags().GetBool(TimingFlagName)
	if !timing {
		stageTimer = nil
	}

	return setup.Deps{
		Runner:        commandRunner,
		ExecCtx:       runner.NewExecutionContext(),
		Tools:         installer.DefaultTools(cfg, nil, nil),
		ToolInstaller: installer.NewToolInstaller(cfg.BinDir, installer.NewDownloader(nil), nil),
		Timer:         stageTimer,
	}, nil
}
