package patchop

import (
	"fmt"

	"github.com/defml-format/go-defml/debug"
	"github.com/defml-format/go-defml/ir"
	"github.com/defml-format/go-defml/xpath"
)

var addSym = &addSymbol{addName}

func Add() Symbol {
	return addSym
}

const addName opName = "Add"

type addSymbol struct {
	opName
}

func (s addSymbol) Instance(elem *ir.Node) (Op, error) {
	path, err := opPath(elem)
	if err != nil {
		return nil, err
	}
	value, err := opValueNodes(elem)
	if err != nil {
		return nil, err
	}
	order, err := opOrder(elem, "Append")
	if err != nil {
		return nil, err
	}
	return &addOp{opName: s.opName, path: path, value: value, prepend: order == "Prepend"}, nil
}

// addOp appends (default) or prepends the payload subtrees as new
// children of each targeted node. A colliding non-list child fails the
// operation; re-applying a non-list Add therefore fails on the second
// run.
type addOp struct {
	opName
	path    *xpath.Path
	value   []*ir.Node
	prepend bool
}

func (a *addOp) Apply(doc *ir.Node, ctx *Context) Outcome {
	if debug.Op() {
		debug.Logf("add op at %s\n", a.path)
	}
	ts := a.path.Eval(doc)
	if len(ts) == 0 {
		return failedOutcome(fmt.Errorf("%w: %s", ErrEmptyTarget, a.path))
	}
	if err := nodeTargets(ts, a.opName, a.path); err != nil {
		return failedOutcome(err)
	}
	for _, t := range ts {
		adds := cloneAll(a.value)
		for _, pc := range adds {
			if pc.IsListItem() {
				continue
			}
			if existing := t.Node.Child(pc.Name); existing != nil && !existing.IsListItem() {
				return failedOutcome(fmt.Errorf("%w: child %q already exists at %s",
					ErrCollision, pc.Name, t.Node.Path()))
			}
		}
		if a.prepend {
			for i, pc := range adds {
				t.Node.InsertChild(i, pc)
			}
		} else {
			for _, pc := range adds {
				t.Node.AppendChild(pc)
			}
		}
	}
	return appliedOutcome()
}
