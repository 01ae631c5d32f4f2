package patchop

import (
	"fmt"

	"github.com/defml-format/go-defml/debug"
	"github.com/defml-format/go-defml/ir"
	"github.com/defml-format/go-defml/xpath"
)

var attributeSetSym = &attributeSetSymbol{attributeSetName}

func AttributeSet() Symbol {
	return attributeSetSym
}

const attributeSetName opName = "AttributeSet"

type attributeSetSymbol struct {
	opName
}

func (s attributeSetSymbol) Instance(elem *ir.Node) (Op, error) {
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
	return &attributeSetOp{opName: s.opName, path: path, attr: attr, value: value.TrimmedText()}, nil
}

// attributeSetOp adds or overwrites the attribute on each targeted
// node. It never fails on a resolved target.
type attributeSetOp struct {
	opName
	path  *xpath.Path
	attr  string
	value string
}

func (a *attributeSetOp) Apply(doc *ir.Node, ctx *Context) Outcome {
	if debug.Op() {
		debug.Logf("attribute-set op at %s\n", a.path)
	}
	ts := a.path.Eval(doc)
	if len(ts) == 0 {
		return failedOutcome(fmt.Errorf("%w: %s", ErrEmptyTarget, a.path))
	}
	if err := nodeTargets(ts, a.opName, a.path); err != nil {
		return failedOutcome(err)
	}
	for _, t := range ts {
		t.Node.SetAttr(a.attr, a.value)
	}
	return appliedOutcome()
}
