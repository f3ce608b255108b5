package installer

// Outcome classifies the result of an installation step. Every bootstrap
// stage produces one rather than silently discarding failures, keeping the
// run's tolerance inspectable.
type Outcome int

const (
	// AlreadyPresent means the step found existing valid state and did nothing.
	AlreadyPresent Outcome = iota
	// Installed means the step performed its installation successfully.
	Installed
	// SkippedWithWarning means the step failed but the failure is degraded
	// to a warning and the run continues.
	SkippedWithWarning
	// Failed means the step failed fatally.
	Failed
)

// String returns the human-readable outcome label.
func (o Outcome) String() string {
	switch o {
	case AlreadyPresent:
		return "already present"
	case Installed:
		return "installed"
	case SkippedWithWarning:
		return "skipped with warning"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}
