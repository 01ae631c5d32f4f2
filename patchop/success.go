package patchop

import (
	"fmt"

	"github.com/defml-format/go-defml/ir"
)

// Mode reclassifies an operation's raw outcome. It predates the
// Conditional kind and survives as control flow via error
// suppression.
//
// Deprecated: author new patches with Conditional instead; Invert in
// particular exists only for old patch units.
type Mode int

const (
	// Normal leaves the raw outcome untouched.
	Normal Mode = iota
	// Always suppresses a recorded failure.
	Always
	// Invert swaps success and failure.
	Invert
	// Never forces failure. Diagnostic use only.
	Never
)

func (m Mode) String() string {
	switch m {
	case Normal:
		return "Normal"
	case Always:
		return "Always"
	case Invert:
		return "Invert"
	case Never:
		return "Never"
	}
	return "Unknown"
}

// successMode reads the optional success override field of a
// serialized operation element.
func successMode(elem *ir.Node) (Mode, error) {
	s := elem.Child("success")
	if s == nil {
		return Normal, nil
	}
	switch s.TrimmedText() {
	case "", "Normal":
		return Normal, nil
	case "Always":
		return Always, nil
	case "Invert":
		return Invert, nil
	case "Never":
		return Never, nil
	}
	return Normal, fmt.Errorf("%w: unknown success mode %q at %s",
		ErrPayload, s.TrimmedText(), s.Path())
}

// successOp applies the mode as a post-processing transform on the
// wrapped op's raw outcome. The dispatch loop never sees the mode.
type successOp struct {
	mode  Mode
	inner Op
}

func (s *successOp) String() string {
	return s.inner.String()
}

func (s *successOp) Apply(doc *ir.Node, ctx *Context) Outcome {
	out := s.inner.Apply(doc, ctx)
	switch s.mode {
	case Always:
		if out.Status == Failed {
			return skippedOutcome("failure suppressed: " + out.Reason)
		}
		return out
	case Invert:
		if out.Status == Failed {
			return skippedOutcome("failure inverted: " + out.Reason)
		}
		return failedOutcome(fmt.Errorf("%s success inverted", s.inner))
	case Never:
		if out.Status == Failed {
			return out
		}
		return failedOutcome(fmt.Errorf("%s forced to fail", s.inner))
	}
	return out
}
