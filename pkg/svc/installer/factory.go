package installer

import (
	"net/http"

	"github.com/google/go-github/v68/github"
	"github.com/hostup-sh/hostup/pkg/io/configmanager"
	"github.com/hostup-sh/hostup/pkg/svc/resolver"
)

// Stable-version endpoint and download URL templates for the external tools.
const (
	kubectlStableURL = "https://dl.k8s.io/release/stable.txt"
)

// DefaultTools builds the three external tool specs in their installation
// order. When a per-tool URL override is configured, the tool's resolver is
// replaced with the override and the network-based strategy is never built,
// let alone invoked.
func DefaultTools(
	cfg *configmanager.Config,
	githubClient *github.Client,
	httpClient *http.Client,
) []Tool {
	if githubClient == nil {
		githubClient = github.NewClient(httpClient)
	}

	return []Tool{
		helmTool(cfg, githubClient),
		talosctlTool(cfg, githubClient),
		kubectlTool(cfg, httpClient),
	}
}

func helmTool(cfg *configmanager.Config, githubClient *github.Client) Tool {
	tool := Tool{
		Name:        "helm",
		Binary:      "helm",
		ArchivePath: "linux-" + cfg.Arch + "/helm",
		OverrideEnv: "HOSTUP_HELM_URL",
	}

	if cfg.HelmURL != "" {
		tool.Resolver = resolver.EnvOverride{URL: cfg.HelmURL}

		return tool
	}

	tool.Resolver = resolver.NewAPIJSON(
		githubClient, "helm", "helm",
		"https://get.helm.sh/helm-%s-linux-"+cfg.Arch+".tar.gz",
	)

	return tool
}

func talosctlTool(cfg *configmanager.Config, githubClient *github.Client) Tool {
	tool := Tool{
		Name:        "talosctl",
		Binary:      "talosctl",
		OverrideEnv: "HOSTUP_TALOSCTL_URL",
	}

	if cfg.TalosctlURL != "" {
		tool.Resolver = resolver.EnvOverride{URL: cfg.TalosctlURL}

		return tool
	}

	tool.Resolver = resolver.NewAssetFilter(
		githubClient, "siderolabs", "talos",
		"talosctl-linux-"+cfg.Arch,
	)

	return tool
}

func kubectlTool(cfg *configmanager.Config, httpClient *http.Client) Tool {
	tool := Tool{
		Name:        "kubectl",
		Binary:      "kubectl",
		OverrideEnv: "HOSTUP_KUBECTL_URL",
	}

	if cfg.KubectlURL != "" {
		tool.Resolver = resolver.EnvOverride{URL: cfg.KubectlURL}

		return tool
	}

	tool.Resolver = resolver.NewRedirectText(
		httpClient, kubectlStableURL,
		"https://dl.k8s.io/release/%s/bin/linux/"+cfg.Arch+"/kubectl",
	)

	return tool
}
