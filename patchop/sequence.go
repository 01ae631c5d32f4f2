package patchop

import (
	"fmt"

	"github.com/defml-format/go-defml/debug"
	"github.com/defml-format/go-defml/ir"
)

var sequenceSym = &sequenceSymbol{sequenceName}

func Sequence() Symbol {
	return sequenceSym
}

const sequenceName opName = "Sequence"

type sequenceSymbol struct {
	opName
}

func (s sequenceSymbol) Instance(elem *ir.Node) (Op, error) {
	opsElem := elem.Child("operations")
	if opsElem == nil || len(opsElem.Children) == 0 {
		return nil, fmt.Errorf("%w: %s at %s has no operations", ErrPayload, s, elem.Path())
	}
	ops := make([]Op, 0, len(opsElem.Children))
	for _, c := range opsElem.Children {
		op, err := FromNode(c)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return &sequenceOp{opName: s.opName, ops: ops}, nil
}

// sequenceOp runs its nested operations against the current tree
// state, each seeing the previous one's mutation. The first nested
// failure (after any success-mode override) aborts the remainder;
// mutations already applied stay applied.
type sequenceOp struct {
	opName
	ops []Op
}

func (a *sequenceOp) Apply(doc *ir.Node, ctx *Context) Outcome {
	if debug.Op() {
		debug.Logf("sequence op, %d steps\n", len(a.ops))
	}
	for i, op := range a.ops {
		out := op.Apply(doc, ctx)
		if out.OK() {
			continue
		}
		err := out.Err
		if err == nil {
			err = fmt.Errorf("%s", out.Reason)
		}
		return failedOutcome(fmt.Errorf("sequence aborted at step %d (%s): %w", i, op, err))
	}
	return appliedOutcome()
}
