package resolver

import (
	"context"
	"fmt"

	"github.com/google/go-github/v68/github"
	"github.com/sirupsen/logrus"
)

// APIJSON resolves the latest version by querying the GitHub latest-release
// API and templating the tag name into a download URL.
type APIJSON struct {
	client      *github.Client
	owner       string
	repo        string
	urlTemplate string
}

// NewAPIJSON creates an API-JSON resolver for owner/repo. urlTemplate must
// contain a single %s verb receiving the release tag.
func NewAPIJSON(client *github.Client, owner, repo, urlTemplate string) *APIJSON {
	return &APIJSON{
		client:      client,
		owner:       owner,
		repo:        repo,
		urlTemplate: urlTemplate,
	}
}

// Resolve queries the latest release and builds the download URL from its
// tag name. A missing or empty tag name fails resolution.
func (r *APIJSON) Resolve(ctx context.Context) (Resolution, error) {
	release, _, err := r.client.Repositories.GetLatestRelease(ctx, r.owner, r.repo)
	if err != nil {
		return Resolution{}, fmt.Errorf("failed to query latest release of %s/%s: %w", r.owner, r.repo, err)
	}

	tag := release.GetTagName()
	if tag == "" {
		return Resolution{}, fmt.Errorf("%w: %s/%s", ErrNoTagName, r.owner, r.repo)
	}

	logrus.WithFields(logrus.Fields{
		"repo": r.owner + "/" + r.repo,
		"tag":  tag,
	}).Debug("resolved latest release tag")

	return Resolution{
		Version: tag,
		URL:     fmt.Sprintf(r.urlTemplate, tag),
	}, nil
}
