package resolver

import "errors"

var (
	// ErrNoTagName is returned when the latest-release API response carries
	// no usable tag name.
	ErrNoTagName = errors.New("latest release has no tag name")

	// ErrNoMatchingAsset is returned when no release asset matches the
	// expected name pattern.
	ErrNoMatchingAsset = errors.New("no release asset matches pattern")

	// ErrMalformedVersion is returned when a version endpoint responds with
	// text that does not look like a version number, e.g. an HTML error
	// page injected by a proxy. The text is rejected rather than templated
	// into a download URL.
	ErrMalformedVersion = errors.New("version endpoint returned malformed version text")
)
