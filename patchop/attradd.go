package patchop

import (
	"fmt"

	"github.com/defml-format/go-defml/debug"
	"github.com/defml-format/go-defml/ir"
	"github.com/defml-format/go-defml/xpath"
)

var attributeAddSym = &attributeAddSymbol{attributeAddName}

func AttributeAdd() Symbol {
	return attributeAddSym
}

const attributeAddName opName = "AttributeAdd"

type attributeAddSymbol struct {
	opName
}

func (s attributeAddSymbol) Instance(elem *ir.Node) (Op, error) {
	path, err := opPath(elem)
	if err != nil {
		return nil, err
	}
	attr, err := opText(elem, "attribute")
	if err != nil {
		return nil, err
	}
	value, err := opValue(elem)
	if err != nil {
		return nil, err
	}
	return &attributeAddOp{opName: s.opName, path: path, attr: attr, value: value.TrimmedText()}, nil
}

// attributeAddOp adds the attribute to each targeted node only where
// it is absent. Present attributes are skipped per node; the operation
// still reports success.
type attributeAddOp struct {
	opName
	path  *xpath.Path
	attr  string
	value string
}

func (a *attributeAddOp) Apply(doc *ir.Node, ctx *Context) Outcome {
	if debug.Op() {
		debug.Logf("attribute-add op at %s\n", a.path)
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
		if t.Node.HasAttr(a.attr) {
			continue
		}
		t.Node.SetAttr(a.attr, a.value)
		mutated = true
	}
	if !mutated {
		return skippedOutcome(fmt.Sprintf("attribute %q already present", a.attr))
	}
	return appliedOutcome()
}
