package defml

import (
	"fmt"
	"strings"

	"github.com/defml-format/go-defml/patchop"
)

// Entry records the resolved outcome of one top-level operation.
type Entry struct {
	Unit    string
	Index   int
	Op      string
	Outcome patchop.Outcome
}

func (e Entry) String() string {
	s := fmt.Sprintf("%s[%d] %s: %s", e.Unit, e.Index, e.Op, e.Outcome.Status)
	if e.Outcome.Reason != "" {
		s += " (" + e.Outcome.Reason + ")"
	}
	return s
}

// Report is the ordered execution report across all units of a run.
type Report struct {
	Entries []Entry
}

// Failed reports whether any operation failed.
func (r *Report) Failed() bool {
	for i := range r.Entries {
		if !r.Entries[i].Outcome.OK() {
			return true
		}
	}
	return false
}

// FailedEntries returns the failing entries, in order.
func (r *Report) FailedEntries() []Entry {
	var res []Entry
	for _, e := range r.Entries {
		if !e.Outcome.OK() {
			res = append(res, e)
		}
	}
	return res
}

func (r *Report) String() string {
	var b strings.Builder
	for _, e := range r.Entries {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}
