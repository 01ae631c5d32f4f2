package defml

import (
	"fmt"
	"io"

	"github.com/defml-format/go-defml/ir"
	"github.com/defml-format/go-defml/parse"
	"github.com/defml-format/go-defml/patchop"
)

// PatchTag is the required root element of a patch unit document.
const PatchTag = "Patch"

// UnitState tracks one patch unit through a run.
type UnitState int

const (
	Pending UnitState = iota
	Running
	Succeeded
	UnitFailed
)

func (s UnitState) String() string {
	switch s {
	case Pending:
		return "Pending"
	case Running:
		return "Running"
	case Succeeded:
		return "Succeeded"
	case UnitFailed:
		return "Failed"
	}
	return "Unknown"
}

// Unit is one ordered batch of operations, authored as a single
// deliverable. Units are read-only after parse and consumed by exactly
// one Apply run.
type Unit struct {
	Name  string
	State UnitState

	ops []patchop.Op
}

// Len returns the number of top-level operations in the unit.
func (u *Unit) Len() int {
	return len(u.ops)
}

// ParseUnit builds a Unit from a parsed patch document: a Patch root
// whose children are serialized operation elements.
func ParseUnit(name string, doc *ir.Node) (*Unit, error) {
	if len(doc.Children) != 1 || doc.Children[0].Name != PatchTag {
		return nil, fmt.Errorf("%w: patch unit %q must have a single %s root",
			patchop.ErrPayload, name, PatchTag)
	}
	root := doc.Children[0]
	u := &Unit{Name: name, State: Pending}
	for _, c := range root.Children {
		op, err := patchop.FromNode(c)
		if err != nil {
			return nil, fmt.Errorf("patch unit %q: %w", name, err)
		}
		u.ops = append(u.ops, op)
	}
	return u, nil
}

// ReadUnit parses a serialized patch unit.
func ReadUnit(name string, r io.Reader) (*Unit, error) {
	doc, err := parse.Document(r)
	if err != nil {
		return nil, fmt.Errorf("patch unit %q: %w", name, err)
	}
	return ParseUnit(name, doc)
}
