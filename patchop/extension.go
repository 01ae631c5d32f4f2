package patchop

import (
	"fmt"

	"github.com/defml-format/go-defml/debug"
	"github.com/defml-format/go-defml/ir"
	"github.com/defml-format/go-defml/xpath"
)

var addExtensionSym = &addExtensionSymbol{addExtensionName}

func AddExtension() Symbol {
	return addExtensionSym
}

const addExtensionName opName = "AddExtension"

type addExtensionSymbol struct {
	opName
}

func (s addExtensionSymbol) Instance(elem *ir.Node) (Op, error) {
	path, err := opPath(elem)
	if err != nil {
		return nil, err
	}
	value, err := opValueNodes(elem)
	if err != nil {
		return nil, err
	}
	for _, v := range value {
		if !v.IsListItem() {
			return nil, fmt.Errorf("%w: %s value must hold %s entries, got %q",
				ErrPayload, s, ir.ListTag, v.Name)
		}
	}
	return &addExtensionOp{opName: s.opName, path: path, value: value}, nil
}

// addExtensionOp ensures the designated extensions list child exists
// under each targeted node, creating it when absent, then appends the
// payload as new list entries.
type addExtensionOp struct {
	opName
	path  *xpath.Path
	value []*ir.Node
}

func (a *addExtensionOp) Apply(doc *ir.Node, ctx *Context) Outcome {
	if debug.Op() {
		debug.Logf("add-extension op at %s\n", a.path)
	}
	ts := a.path.Eval(doc)
	if len(ts) == 0 {
		return failedOutcome(fmt.Errorf("%w: %s", ErrEmptyTarget, a.path))
	}
	if err := nodeTargets(ts, a.opName, a.path); err != nil {
		return failedOutcome(err)
	}
	for _, t := range ts {
		ext := t.Node.Child(ir.ExtensionsTag)
		if ext == nil {
			ext = ir.New(ir.ExtensionsTag)
			t.Node.AppendChild(ext)
		}
		for _, pc := range cloneAll(a.value) {
			ext.AppendChild(pc)
		}
	}
	return appliedOutcome()
}
