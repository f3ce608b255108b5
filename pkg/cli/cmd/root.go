// Package cmd assembles the hostup command tree.
package cmd

import (
	"fmt"

	"github.com/hostup-sh/hostup/pkg/cli/cmd/bootstrap"
	runtime "github.com/hostup-sh/hostup/pkg/di"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// VerboseFlagName is the persistent flag enabling debug tracing.
const VerboseFlagName = "verbose"

// NewRootCmd creates and returns the root command with version info and subcommands.
func NewRootCmd(version, commit, date string) *cobra.Command {
	runtimeContainer := runtime.NewRuntime()

	cmd := &cobra.Command{
		Use:          "hostup",
		Short:        "hostup prepares a Linux host for running automation playbooks",
		Long:         "hostup prepares a Linux host for running automation playbooks",
		RunE:         handleRootRunE,
		SilenceUsage: true,
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	cmd.PersistentFlags().Bool(
		VerboseFlagName,
		false,
		"Enable debug logging of subprocess invocations",
	)

	cmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		verbose, _ := cmd.Flags().GetBool(VerboseFlagName)
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	}

	cmd.AddCommand(bootstrap.NewBootstrapCmd(runtimeContainer))

	return cmd
}

// --- internals ---

// handleRootRunE handles the root command.
func handleRootRunE(cmd *cobra.Command, _ []string) error {
	// The err can safely be ignored, as it can never fail at runtime.
	_ = cmd.Help()

	return nil
}
