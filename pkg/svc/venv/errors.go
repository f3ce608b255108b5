package venv

import "errors"

// ErrManifestNotFound is returned when a required dependency manifest is
// absent from the anchor directory. Checked before any privileged work.
var ErrManifestNotFound = errors.New("dependency manifest not found")
