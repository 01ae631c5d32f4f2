package patchop

import (
	"fmt"

	"github.com/defml-format/go-defml/debug"
	"github.com/defml-format/go-defml/ir"
	"github.com/defml-format/go-defml/xpath"
)

var removeSym = &removeSymbol{removeName}

func Remove() Symbol {
	return removeSym
}

const removeName opName = "Remove"

type removeSymbol struct {
	opName
}

func (s removeSymbol) Instance(elem *ir.Node) (Op, error) {
	path, err := opPath(elem)
	if err != nil {
		return nil, err
	}
	return &removeOp{opName: s.opName, path: path}, nil
}

// removeOp deletes each targeted node from its parent, or the targeted
// attribute, or the targeted text content.
type removeOp struct {
	opName
	path *xpath.Path
}

func (a *removeOp) Apply(doc *ir.Node, ctx *Context) Outcome {
	if debug.Op() {
		debug.Logf("remove op at %s\n", a.path)
	}
	ts := a.path.Eval(doc)
	if len(ts) == 0 {
		if ctx.noopRemoval() {
			return skippedOutcome(fmt.Sprintf("nothing to remove at %s", a.path))
		}
		return failedOutcome(fmt.Errorf("%w: %s", ErrEmptyTarget, a.path))
	}
	for _, t := range ts {
		switch {
		case t.Text:
			t.Node.Text = ""
		case t.Attr != "":
			t.Node.DelAttr(t.Attr)
		default:
			parent := t.Node.Parent
			if parent == nil {
				return failedOutcome(fmt.Errorf("%w: cannot remove the document node", ErrPayload))
			}
			// ParentIndex tracks earlier removals in this same target set
			parent.RemoveChild(t.Node.ParentIndex)
		}
	}
	return appliedOutcome()
}
