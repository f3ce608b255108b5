package galaxy

import "errors"

// ErrAutomationCLIMissing is returned when the automation CLI is absent
// from the isolated environment. Every later provisioning step depends on
// it, so this aborts the run.
var ErrAutomationCLIMissing = errors.New("automation CLI not found in isolated environment")
