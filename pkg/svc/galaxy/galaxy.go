// Package galaxy installs the declarative Ansible collection manifest into
// the isolated environment.
package galaxy

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hostup-sh/hostup/pkg/cmd/runner"
	"github.com/hostup-sh/hostup/pkg/utils/notify"
	"gopkg.in/yaml.v3"
)

// Installer installs the collection manifest via the environment-local
// ansible-galaxy CLI.
type Installer struct {
	venvBinDir      string
	collectionsFile string
	run             runner.CommandRunner
	execCtx         runner.ExecutionContext
}

// NewInstaller creates a collection installer bound to the isolated
// environment's binary directory and the collection manifest path.
func NewInstaller(
	venvBinDir string,
	collectionsFile string,
	run runner.CommandRunner,
	execCtx runner.ExecutionContext,
) *Installer {
	return &Installer{
		venvBinDir:      venvBinDir,
		collectionsFile: collectionsFile,
		run:             run,
		execCtx:         execCtx,
	}
}

// CheckCLI verifies the automation CLI exists inside the isolated
// environment. Absence is fatal: the downstream automation engine cannot
// run without it.
func (i *Installer) CheckCLI() error {
	for _, binary := range []string{"ansible", "ansible-galaxy"} {
		path := filepath.Join(i.venvBinDir, binary)

		_, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf(
				"%w: %s (re-run after checking that the pinned requirements install ansible-core)",
				ErrAutomationCLIMissing, path,
			)
		}
	}

	return nil
}

// collectionEntry accepts both the scalar and the mapping form a collection
// may take in the manifest ("community.general" or {name: ..., version: ...}).
type collectionEntry struct {
	Name string
}

func (e *collectionEntry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		e.Name = value.Value

		return nil
	}

	var mapping struct {
		Name string `yaml:"name"`
	}

	err := value.Decode(&mapping)
	if err != nil {
		return fmt.Errorf("failed to decode collection entry: %w", err)
	}

	e.Name = mapping.Name

	return nil
}

// CollectionNames reads the manifest and returns the collection names it
// requests. Parsing is informational only; errors surface to the caller,
// which degrades them to a generic status line.
func (i *Installer) CollectionNames() ([]string, error) {
	data, err := os.ReadFile(i.collectionsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read collection manifest: %w", err)
	}

	var manifest struct {
		Collections []collectionEntry `yaml:"collections"`
	}

	err = yaml.Unmarshal(data, &manifest)
	if err != nil {
		return nil, fmt.Errorf("failed to parse collection manifest: %w", err)
	}

	names := make([]string, 0, len(manifest.Collections))
	for _, entry := range manifest.Collections {
		if entry.Name != "" {
			names = append(names, entry.Name)
		}
	}

	return names, nil
}

// Install runs the collection installation, retrying exactly once.
//
// Attempt 1 runs under the ambient execution context with explicit UTF-8
// locale variables exported; locale-dependent crashes are a known failure
// mode of the automation CLI. Attempt 2 additionally prepends the isolated
// environment's binary directory to PATH, ruling out resolution ambiguity
// between a system-wide and an environment-local copy of the CLI. A second
// failure propagates as fatal.
func (i *Installer) Install(ctx context.Context, out io.Writer) error {
	firstErr := i.runInstall(ctx, i.execCtx)
	if firstErr == nil {
		return nil
	}

	notify.Warningf(out,
		"collection install failed, retrying with %s on PATH: %v", i.venvBinDir, firstErr)

	widened := i.execCtx.WithPathPrepended(i.venvBinDir)

	retryErr := i.runInstall(ctx, widened)
	if retryErr != nil {
		return fmt.Errorf("failed to install collections after retry: %w", retryErr)
	}

	return nil
}

func (i *Installer) runInstall(ctx context.Context, execCtx runner.ExecutionContext) error {
	_, err := i.run.Run(ctx, runner.Command{
		Name: filepath.Join(i.venvBinDir, "ansible-galaxy"),
		Args: []string{"collection", "install", "-r", i.collectionsFile},
		Env:  execCtx.Environ(),
	})
	if err != nil {
		return fmt.Errorf("ansible-galaxy invocation failed: %w", err)
	}

	return nil
}
