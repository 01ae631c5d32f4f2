package patchop

import (
	"fmt"

	"github.com/defml-format/go-defml/debug"
	"github.com/defml-format/go-defml/ir"
	"github.com/defml-format/go-defml/xpath"
)

var attributeRemoveSym = &attributeRemoveSymbol{attributeRemoveName}

func AttributeRemove() Symbol {
	return attributeRemoveSym
}

const attributeRemoveName opName = "AttributeRemove"

type attributeRemoveSymbol struct {
	opName
}

func (s attributeRemoveSymbol) Instance(elem *ir.Node) (Op, error) {
	path, err := opPath(elem)
	if err != nil {
		return nil, err
	}
	attr, err := opText(elem, "attribute")
	if err != nil {
		return nil, err
	}
	return &attributeRemoveOp{opName: s.opName, path: path, attr: attr}, nil
}

// attributeRemoveOp removes the attribute from each targeted node.
// Absence is a per-node no-op, not a hard failure.
type attributeRemoveOp struct {
	opName
	path *xpath.Path
	attr string
}

func (a *attributeRemoveOp) Apply(doc *ir.Node, ctx *Context) Outcome {
	if debug.Op() {
		debug.Logf("attribute-remove op at %s\n", a.path)
	}
	ts := a.path.Eval(doc)
	if len(ts) == 0 {
		return failedOutcome(fmt.Errorf("%w: %s", ErrEmptyTarget, a.path))
	}
	if err := nodeTargets(ts, a.opName, a.path); err != nil {
		return failedOutcome(err)
	}
	mutated := false
	for _, t := range ts {
		if t.Node.DelAttr(a.attr) {
			mutated = true
		}
	}
	if !mutated {
		return skippedOutcome(fmt.Sprintf("attribute %q absent", a.attr))
	}
	return appliedOutcome()
}
