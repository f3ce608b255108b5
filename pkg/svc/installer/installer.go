// Package installer downloads versioned external tool binaries and places
// them in the system binary directory. Tool installation is an operator
// convenience: every failure here degrades to a warning, never aborting
// the bootstrap.
package installer

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/hostup-sh/hostup/pkg/svc/resolver"
	"github.com/hostup-sh/hostup/pkg/utils/notify"
)

// Tool describes one externally fetched binary tool.
type Tool struct {
	// Name is the display name used in status lines.
	Name string
	// Binary is the executable name checked on PATH and installed.
	Binary string
	// Resolver obtains the latest version and download URL.
	Resolver resolver.VersionResolver
	// ArchivePath, when non-empty, marks the artifact as a gzipped tarball
	// with the binary at this path inside the archive.
	ArchivePath string
	// OverrideEnv names the environment variable that overrides this
	// tool's download URL, mentioned in degraded-outcome hints.
	OverrideEnv string
}

// LookPathFunc resolves an executable on PATH, matching exec.LookPath.
type LookPathFunc func(file string) (string, error)

// ToolInstaller installs external tools into a fixed binary directory.
type ToolInstaller struct {
	binDir     string
	downloader *Downloader
	lookPath   LookPathFunc
}

// NewToolInstaller creates an installer placing binaries into binDir.
// A nil lookPath falls back to exec.LookPath.
func NewToolInstaller(binDir string, downloader *Downloader, lookPath LookPathFunc) *ToolInstaller {
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	return &ToolInstaller{
		binDir:     binDir,
		downloader: downloader,
		lookPath:   lookPath,
	}
}

// Install runs the per-tool state machine: presence check, resolution,
// download and installation. The returned outcome is AlreadyPresent,
// Installed or SkippedWithWarning; tool installation never fails fatally.
//
// Re-running never re-downloads an already-installed tool. There is no
// version pinning or upgrade logic: any binary on PATH counts as present.
func (t *ToolInstaller) Install(ctx context.Context, tool Tool, out io.Writer) Outcome {
	if _, err := t.lookPath(tool.Binary); err == nil {
		notify.Infof(out, "%s already installed, skipping", tool.Name)

		return AlreadyPresent
	}

	resolution, err := tool.Resolver.Resolve(ctx)
	if err != nil {
		t.warnSkipped(out, tool, "", fmt.Errorf("failed to resolve latest version: %w", err))

		return SkippedWithWarning
	}

	if resolution.Version != "" {
		notify.Activityf(out, "installing %s %s", tool.Name, resolution.Version)
	} else {
		notify.Activityf(out, "installing %s from override URL", tool.Name)
	}

	err = t.fetchAndPlace(ctx, tool, resolution.URL)
	if err != nil {
		t.warnSkipped(out, tool, resolution.URL, err)

		return SkippedWithWarning
	}

	notify.Successf(out, "%s installed to %s", tool.Name, filepath.Join(t.binDir, tool.Binary))

	return Installed
}

// fetchAndPlace downloads the artifact, extracts it when it is an archive,
// and moves the binary into the target directory with the executable bit set.
func (t *ToolInstaller) fetchAndPlace(ctx context.Context, tool Tool, url string) error {
	workDir, err := os.MkdirTemp("", "hostup-"+tool.Binary+"-*")
	if err != nil {
		return fmt.Errorf("failed to create work directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	artifact := filepath.Join(workDir, "artifact")

	err = t.downloader.Download(ctx, url, artifact)
	if err != nil {
		return err
	}

	binaryPath := artifact
	if tool.ArchivePath != "" {
		binaryPath = filepath.Join(workDir, tool.Binary)

		err = extractFromTarGz(artifact, tool.ArchivePath, binaryPath)
		if err != nil {
			return err
		}
	}

	return t.place(binaryPath, tool.Binary)
}

// place moves the binary into the target directory. The destination is
// replaced atomically, so a re-run overwrites rather than corrupts.
func (t *ToolInstaller) place(sourcePath, binary string) error {
	destination := filepath.Join(t.binDir, binary)

	// Copy into the target directory first: the work directory may live on
	// a different filesystem, where rename is not possible.
	staging := destination + ".tmp"

	err := copyFile(sourcePath, staging, 0o755)
	if err != nil {
		return fmt.Errorf("failed to stage %s: %w", binary, err)
	}

	err = os.Rename(staging, destination)
	if err != nil {
		_ = os.Remove(staging)

		return fmt.Errorf("failed to install %s to %s: %w", binary, destination, err)
	}

	return nil
}

// warnSkipped reports a degraded tool outcome with the attempted URL and
// the manual recovery paths.
func (t *ToolInstaller) warnSkipped(out io.Writer, tool Tool, url string, err error) {
	message := fmt.Sprintf("skipping %s: %v", tool.Name, err)

	if url != "" {
		message += fmt.Sprintf("\nattempted URL: %s", url)
	}

	if IsTransient(err) {
		message += "\nthis looks transient; re-running the bootstrap is safe"
	}

	message += fmt.Sprintf("\ninstall %s manually into %s", tool.Binary, t.binDir)

	if tool.OverrideEnv != "" {
		message += fmt.Sprintf(", or set %s to a known-good download URL", tool.OverrideEnv)
	}

	notify.Warningf(out, "%s", message)
}

func copyFile(sourcePath, destinationPath string, mode os.FileMode) error {
	source, err := os.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", sourcePath, err)
	}
	defer func() { _ = source.Close() }()

	destination, err := os.OpenFile(destinationPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", destinationPath, err)
	}

	_, err = io.Copy(destination, source)
	if err != nil {
		_ = destination.Close()

		return fmt.Errorf("failed to copy to %s: %w", destinationPath, err)
	}

	err = destination.Close()
	if err != nil {
		return fmt.Errorf("failed to finalize %s: %w", destinationPath, err)
	}

	return nil
}
