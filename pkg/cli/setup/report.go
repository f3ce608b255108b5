package setup

import (
	"io"
	"path/filepath"

	"github.com/hostup-sh/hostup/pkg/io/configmanager"
	"github.com/hostup-sh/hostup/pkg/utils/notify"
)

// WriteCompletionReport prints the fixed next-step instructions for the
// operator. Purely informational.
func WriteCompletionReport(out io.Writer, cfg *configmanager.Config) {
	notify.Titlef(out, "🎉", "Bootstrap complete")

	notify.Infof(out, "activate the environment:  source %s",
		filepath.Join(cfg.VenvBinDir(), "activate"))
	notify.Infof(out, "run the site playbook:     ansible-playbook -i inventory.yml site.yml")
	notify.Infof(out, "generate machine configs:  talosctl gen config (see docs/cluster.md)")
	notify.Infof(out, "inspect the cluster:       kubectl get nodes")
}
