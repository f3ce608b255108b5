// Package configmanager loads hostup configuration from flags and
// environment variables via Viper.
//
// Configuration priority: defaults < environment variables < flags.
// Environment variables use the HOSTUP_ prefix with dashes mapped to
// underscores (e.g. --venv-dir becomes HOSTUP_VENV_DIR).
package configmanager

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/hostup-sh/hostup/pkg/utils/fsutil"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyDir       = "dir"
	KeyVenvDir   = "venv-dir"
	KeyBinDir    = "bin-dir"
	KeyArch      = "arch"
	KeySkipTools = "skip-tools"

	// Per-tool download URL overrides. When set, the URL is used verbatim
	// and version resolution is bypassed entirely. Environment-only:
	// HOSTUP_HELM_URL, HOSTUP_TALOSCTL_URL, HOSTUP_KUBECTL_URL.
	KeyHelmURL     = "helm-url"
	KeyTalosctlURL = "talosctl-url"
	KeyKubectlURL  = "kubectl-url"
)

// Manifest file names, fixed relative to the anchor directory.
const (
	RequirementsFileName = "requirements.txt"
	CollectionsFileName  = "requirements.yml"
)

// Config is the immutable configuration consumed by the bootstrap pipeline.
type Config struct {
	// Dir is the anchor directory holding the dependency manifests.
	Dir string
	// VenvDir is the isolated runtime environment path.
	VenvDir string
	// BinDir is the system binary directory external tools install into.
	BinDir string
	// Arch is the target architecture token used in download URLs.
	Arch string
	// SkipTools disables the external tool installation stages.
	SkipTools bool
	// HelmURL, TalosctlURL and KubectlURL override the respective tool's
	// resolved download URL when non-empty.
	HelmURL     string
	TalosctlURL string
	KubectlURL  string
}

// RequirementsFile returns the pinned pip manifest path.
func (c *Config) RequirementsFile() string {
	return filepath.Join(c.Dir, RequirementsFileName)
}

// CollectionsFile returns the collection manifest path.
func (c *Config) CollectionsFile() string {
	return filepath.Join(c.Dir, CollectionsFileName)
}

// VenvBinDir returns the binary directory inside the isolated environment.
func (c *Config) VenvBinDir() string {
	return filepath.Join(c.VenvDir, "bin")
}

// ConfigManager binds flags and environment variables into a Config.
type ConfigManager struct {
	Viper *viper.Viper
}

// NewConfigManager creates a configuration manager with defaults and
// HOSTUP_-prefixed environment handling initialized.
func NewConfigManager() *ConfigManager {
	viperInstance := viper.New()
	viperInstance.SetEnvPrefix("HOSTUP")
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viperInstance.AutomaticEnv()

	viperInstance.SetDefault(KeyDir, ".")
	viperInstance.SetDefault(KeyVenvDir, defaultVenvDir())
	viperInstance.SetDefault(KeyBinDir, "/usr/local/bin")
	viperInstance.SetDefault(KeyArch, runtime.GOARCH)
	viperInstance.SetDefault(KeySkipTools, false)
	viperInstance.SetDefault(KeyHelmURL, "")
	viperInstance.SetDefault(KeyTalosctlURL, "")
	viperInstance.SetDefault(KeyKubectlURL, "")

	return &ConfigManager{Viper: viperInstance}
}

// AddFlags registers the bootstrap flags on cmd and binds them to Viper.
func (m *ConfigManager) AddFlags(cmd *cobra.Command) {
	m.bindFlagSet(cmd.Flags())
}

func (m *ConfigManager) bindFlagSet(flagSet *pflag.FlagSet) {
	flagSet.String(KeyDir, ".", "Anchor directory holding requirements.txt and requirements.yml")
	flagSet.String(KeyVenvDir, defaultVenvDir(), "Isolated runtime environment path")
	flagSet.String(KeyBinDir, "/usr/local/bin", "Directory external tool binaries are installed into")
	flagSet.Bool(KeySkipTools, false, "Skip external tool installation")

	for _, key := range []string{KeyDir, KeyVenvDir, KeyBinDir, KeySkipTools} {
		_ = m.Viper.BindPFlag(key, flagSet.Lookup(key))
	}
}

// Load materializes the configuration. Directory paths are expanded and
// resolved to absolute paths so status lines and subprocesses agree on
// locations.
func (m *ConfigManager) Load() (*Config, error) {
	dir, err := fsutil.ExpandHomePath(m.Viper.GetString(KeyDir))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve anchor directory: %w", err)
	}

	venvDir, err := fsutil.ExpandHomePath(m.Viper.GetString(KeyVenvDir))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve venv directory: %w", err)
	}

	binDir, err := fsutil.ExpandHomePath(m.Viper.GetString(KeyBinDir))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve binary directory: %w", err)
	}

	return &Config{
		Dir:         dir,
		VenvDir:     venvDir,
		BinDir:      binDir,
		Arch:        m.Viper.GetString(KeyArch),
		SkipTools:   m.Viper.GetBool(KeySkipTools),
		HelmURL:     m.Viper.GetString(KeyHelmURL),
		TalosctlURL: m.Viper.GetString(KeyTalosctlURL),
		KubectlURL:  m.Viper.GetString(KeyKubectlURL),
	}, nil
}

// defaultVenvDir resolves the fixed well-known venv location in the
// invoking user's home directory.
func defaultVenvDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "/opt/ansible-venv"
	}

	return filepath.Join(home, ".ansible-venv")
}
