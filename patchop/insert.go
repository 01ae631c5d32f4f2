package patchop

import (
	"fmt"

	"github.com/defml-format/go-defml/debug"
	"github.com/defml-format/go-defml/ir"
	"github.com/defml-format/go-defml/xpath"
)

var insertSym = &insertSymbol{insertName}

func Insert() Symbol {
	return insertSym
}

const insertName opName = "Insert"

type insertSymbol struct {
	opName
}

func (s insertSymbol) Instance(elem *ir.Node) (Op, error) {
	path, err := opPath(elem)
	if err != nil {
		return nil, err
	}
	value, err := opValueNodes(elem)
	if err != nil {
		return nil, err
	}
	// note the asymmetric default relative to Add: Insert prepends as
	// sibling unless told otherwise
	order, err := opOrder(elem, "Prepend")
	if err != nil {
		return nil, err
	}
	return &insertOp{opName: s.opName, path: path, value: value, after: order == "Append"}, nil
}

// insertOp places the payload subtrees as siblings immediately before
// (default) or after each targeted node.
type insertOp struct {
	opName
	path  *xpath.Path
	value []*ir.Node
	after bool
}

func (a *insertOp) Apply(doc *ir.Node, ctx *Context) Outcome {
	if debug.Op() {
		debug.Logf("insert op at %s\n", a.path)
	}
	ts := a.path.Eval(doc)
	if len(ts) == 0 {
		return failedOutcome(fmt.Errorf("%w: %s", ErrEmptyTarget, a.path))
	}
	if err := nodeTargets(ts, a.opName, a.path); err != nil {
		return failedOutcome(err)
	}
	for _, t := range ts {
		parent := t.Node.Parent
		if parent == nil {
			return failedOutcome(fmt.Errorf("%w: cannot insert siblings of the document node", ErrPayload))
		}
		at := t.Node.ParentIndex
		if a.after {
			at++
		}
		for i, pc := range cloneAll(a.value) {
			parent.InsertChild(at+i, pc)
		}
	}
	return appliedOutcome()
}
