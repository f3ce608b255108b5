// Package resolver determines the latest released version and download URL
// of an external tool. Each tool upstream publishes "what is latest"
// through a different protocol, so resolution is modeled as a strategy
// interface with one implementation per protocol.
package resolver

import "context"

// Resolution is the result of a successful version resolution.
type Resolution struct {
	// Version is the resolved release identifier (e.g. "v1.29.0").
	// Empty when an override supplied the URL directly.
	Version string
	// URL is the artifact download URL.
	URL string
}

// VersionResolver resolves the latest version and download URL of a tool.
// Implementations must validate their own output before trusting it.
type VersionResolver interface {
	Resolve(ctx context.Context) (Resolution, error)
}

// EnvOverride is a VersionResolver that returns a preconfigured URL
// verbatim, bypassing network resolution and validation entirely.
type EnvOverride struct {
	URL string
}

// Resolve returns the override URL without touching the network.
func (o EnvOverride) Resolve(_ context.Context) (Resolution, error) {
	return Resolution{URL: o.URL}, nil
}
