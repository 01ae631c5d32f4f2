package patchop

import (
	"fmt"

	"github.com/defml-format/go-defml/debug"
	"github.com/defml-format/go-defml/ir"
	"github.com/defml-format/go-defml/xpath"
)

var replaceSym = &replaceSymbol{replaceName}

func Replace() Symbol {
	return replaceSym
}

const replaceName opName = "Replace"

type replaceSymbol struct {
	opName
}

func (s replaceSymbol) Instance(elem *ir.Node) (Op, error) {
	path, err := opPath(elem)
	if err != nil {
		return nil, err
	}
	value, err := opValue(elem)
	if err != nil {
		return nil, err
	}
	op := &replaceOp{opName: s.opName, path: path, text: value.TrimmedText()}
	if len(value.Children) > 0 {
		nodes, err := opValueNodes(elem)
		if err != nil {
			return nil, err
		}
		op.value = nodes
	}
	if path.Text || path.Attr != "" {
		if op.value != nil {
			return nil, fmt.Errorf("%w: %s selector takes a text value at %s",
				ErrPayload, path, elem.Path())
		}
	} else if op.value == nil {
		return nil, fmt.Errorf("%w: node replacement needs value subtrees at %s",
			ErrPayload, elem.Path())
	}
	return op, nil
}

// replaceOp substitutes the payload in place of each targeted node,
// preserving surrounding sibling order. On a text target only the
// node's text changes; tag and attributes stay. On an attribute target
// only that attribute's value changes.
type replaceOp struct {
	opName
	path  *xpath.Path
	value []*ir.Node
	text  string
}

func (a *replaceOp) Apply(doc *ir.Node, ctx *Context) Outcome {
	if debug.Op() {
		debug.Logf("replace op at %s\n", a.path)
	}
	ts := a.path.Eval(doc)
	if len(ts) == 0 {
		return failedOutcome(fmt.Errorf("%w: %s", ErrEmptyTarget, a.path))
	}
	for _, t := range ts {
		switch {
		case t.Text:
			t.Node.Text = a.text
		case t.Attr != "":
			t.Node.SetAttr(t.Attr, a.text)
		default:
			parent := t.Node.Parent
			if parent == nil {
				return failedOutcome(fmt.Errorf("%w: cannot replace the document node", ErrPayload))
			}
			parent.ReplaceChild(t.Node.ParentIndex, cloneAll(a.value)...)
		}
	}
	return appliedOutcome()
}
