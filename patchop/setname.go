package patchop

import (
	"fmt"

	"github.com/defml-format/go-defml/debug"
	"github.com/defml-format/go-defml/ir"
	"github.com/defml-format/go-defml/xpath"
)

var setNameSym = &setNameSymbol{setNameName}

func SetName() Symbol {
	return setNameSym
}

const setNameName opName = "SetName"

type setNameSymbol struct {
	opName
}

func (s setNameSymbol) Instance(elem *ir.Node) (Op, error) {
	path, err := opPath(elem)
	if err != nil {
		return nil, err
	}
	name, err := opText(elem, "name")
	if err != nil {
		return nil, err
	}
	return &setNameOp{opName: s.opName, path: path, name: name}, nil
}

// setNameOp renames each targeted node's tag, keeping attributes,
// children and text untouched. Renaming into a non-list sibling
// collision fails.
type setNameOp struct {
	opName
	path *xpath.Path
	name string
}

func (a *setNameOp) Apply(doc *ir.Node, ctx *Context) Outcome {
	if debug.Op() {
		debug.Logf("set-name op at %s\n", a.path)
	}
	ts := a.path.Eval(doc)
	if len(ts) == 0 {
		return failedOutcome(fmt.Errorf("%w: %s", ErrEmptyTarget, a.path))
	}
	if err := nodeTargets(ts, a.opName, a.path); err != nil {
		return failedOutcome(err)
	}
	for _, t := range ts {
		if a.name != ir.ListTag && t.Node.Parent != nil {
			for _, sib := range t.Node.Parent.Children {
				if sib != t.Node && sib.Name == a.name {
					return failedOutcome(fmt.Errorf("%w: sibling %q already exists at %s",
						ErrCollision, a.name, t.Node.Path()))
				}
			}
		}
		t.Node.Name = a.name
	}
	return appliedOutcome()
}
