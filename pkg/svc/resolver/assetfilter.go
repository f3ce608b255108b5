package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v68/github"
	"github.com/sirupsen/logrus"
)

// AssetFilter resolves the download URL by scanning the latest release's
// asset list for the first asset whose name contains a fixed substring,
// using that asset's direct URL verbatim.
type AssetFilter struct {
	client  *github.Client
	owner   string
	repo    string
	pattern string
}

// NewAssetFilter creates an asset-filter resolver for owner/repo selecting
// the first asset whose name contains pattern.
func NewAssetFilter(client *github.Client, owner, repo, pattern string) *AssetFilter {
	return &AssetFilter{
		client:  client,
		owner:   owner,
		repo:    repo,
		pattern: pattern,
	}
}

// Resolve scans the latest release's assets. No matching asset fails
// resolution.
func (r *AssetFilter) Resolve(ctx context.Context) (Resolution, error) {
	release, _, err := r.client.Repositories.GetLatestRelease(ctx, r.owner, r.repo)
	if err != nil {
		return Resolution{}, fmt.Errorf("failed to query latest release of %s/%s: %w", r.owner, r.repo, err)
	}

	for _, asset := range release.Assets {
		if strings.Contains(asset.GetName(), r.pattern) {
			logrus.WithFields(logrus.Fields{
				"repo":  r.owner + "/" + r.repo,
				"asset": asset.GetName(),
			}).Debug("matched release asset")

			return Resolution{
				Version: release.GetTagName(),
				URL:     asset.GetBrowserDownloadURL(),
			}, nil
		}
	}

	return Resolution{}, fmt.Errorf("%w: %q in %s/%s", ErrNoMatchingAsset, r.pattern, r.owner, r.repo)
}
