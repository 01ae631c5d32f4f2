package patchop

// Status classifies one operation application.
type Status int

const (
	// Applied: the tree was mutated.
	Applied Status = iota
	// Skipped: nothing to do, counted as success.
	Skipped
	// Failed: the operation could not apply; the tree may hold
	// mutations from targets processed before the failure.
	Failed
)

func (s Status) String() string {
	switch s {
	case Applied:
		return "Applied"
	case Skipped:
		return "Skipped"
	case Failed:
		return "Failed"
	}
	return "Unknown"
}

// Outcome is the result of applying one operation. Err is set only for
// Failed outcomes and wraps one of the sentinel errors of this
// package.
type Outcome struct {
	Status Status
	Reason string
	Err    error
}

// OK reports whether the outcome counts as success.
func (o Outcome) OK() bool {
	return o.Status != Failed
}

func appliedOutcome() Outcome {
	return Outcome{Status: Applied}
}

func skippedOutcome(reason string) Outcome {
	return Outcome{Status: Skipped, Reason: reason}
}

func failedOutcome(err error) Outcome {
	return Outcome{Status: Failed, Reason: err.Error(), Err: err}
}
