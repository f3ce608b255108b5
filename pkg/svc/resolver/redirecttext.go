package resolver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

// versionShape is the shape a stable-version file must match. Anything else
// (e.g. an HTML error page from a proxy) is rejected rather than templated
// into a URL.
var versionShape = regexp.MustCompile(`^v\d+(\.\d+)*$`)

// maxVersionBodySize bounds how much of the version endpoint's response is
// read. Real version files are a few bytes.
const maxVersionBodySize = 1024

// RedirectText resolves the latest version by fetching a plain-text stable
// version file, following HTTP redirects, and templating the validated
// version into a download URL.
type RedirectText struct {
	httpClient  *http.Client
	versionURL  string
	urlTemplate string
}

// NewRedirectText creates a redirect-text resolver. versionURL serves the
// plain-text version; urlTemplate must contain a single %s verb receiving
// the validated version. A nil httpClient falls back to http.DefaultClient,
// which follows redirects.
func NewRedirectText(httpClient *http.Client, versionURL, urlTemplate string) *RedirectText {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &RedirectText{
		httpClient:  httpClient,
		versionURL:  versionURL,
		urlTemplate: urlTemplate,
	}
}

// Resolve fetches and validates the stable version text. Text that does not
// match the v<digits> shape fails resolution without constructing any URL.
func (r *RedirectText) Resolve(ctx context.Context) (Resolution, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.versionURL, nil)
	if err != nil {
		return Resolution{}, fmt.Errorf("failed to build version request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return Resolution{}, fmt.Errorf("failed to fetch stable version from %s: %w", r.versionURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Resolution{}, fmt.Errorf("failed to fetch stable version from %s: status %d", r.versionURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxVersionBodySize))
	if err != nil {
		return Resolution{}, fmt.Errorf("failed to read stable version response: %w", err)
	}

	version := strings.TrimSpace(string(body))
	if !versionShape.MatchString(version) {
		return Resolution{}, fmt.Errorf("%w: %q", ErrMalformedVersion, truncate(version, 64))
	}

	logrus.WithField("version", version).Debug("resolved stable version")

	return Resolution{
		Version: version,
		URL:     fmt.Sprintf(r.urlTemplate, version),
	}, nil
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}

	return text[:limit] + "..."
}
