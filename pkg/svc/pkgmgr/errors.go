package pkgmgr

import "errors"

// ErrUnsupportedHost is returned when none of the supported package
// managers is present on the host. No later bootstrap step has a fallback,
// so this aborts the run.
var ErrUnsupportedHost = errors.New("no supported package manager found (apt-get, dnf or yum required)")
