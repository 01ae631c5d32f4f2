package patchop

import (
	"fmt"

	"github.com/defml-format/go-defml/debug"
	"github.com/defml-format/go-defml/ir"
	"github.com/defml-format/go-defml/xpath"
)

var conditionalSym = &conditionalSymbol{conditionalName}

func Conditional() Symbol {
	return conditionalSym
}

const conditionalName opName = "Conditional"

type conditionalSymbol struct {
	opName
}

func (s conditionalSymbol) Instance(elem *ir.Node) (Op, error) {
	path, err := opPath(elem)
	if err != nil {
		return nil, err
	}
	match, nomatch, err := branchOps(elem)
	if err != nil {
		return nil, err
	}
	if match == nil && nomatch == nil {
		return nil, fmt.Errorf("%w: %s at %s needs a match or nomatch branch",
			ErrPayload, s, elem.Path())
	}
	return &conditionalOp{opName: s.opName, path: path, match: match, nomatch: nomatch}, nil
}

// branchOps parses the optional match/nomatch children shared by the
// conditional kinds.
func branchOps(elem *ir.Node) (match, nomatch Op, err error) {
	if m := elem.Child("match"); m != nil {
		match, err = FromNode(m)
		if err != nil {
			return nil, nil, err
		}
	}
	if nm := elem.Child("nomatch"); nm != nil {
		nomatch, err = FromNode(nm)
		if err != nil {
			return nil, nil, err
		}
	}
	return match, nomatch, nil
}

// conditionalOp evaluates its path purely as an existence test, then
// runs the match branch on one or more targets and the nomatch branch
// on none. The test itself never fails the operation; only the chosen
// branch's outcome propagates.
type conditionalOp struct {
	opName
	path    *xpath.Path
	match   Op
	nomatch Op
}

func (a *conditionalOp) Apply(doc *ir.Node, ctx *Context) Outcome {
	found := a.path.Exists(doc)
	if debug.Op() {
		debug.Logf("conditional op at %s, found=%v\n", a.path, found)
	}
	if found {
		if a.match == nil {
			return skippedOutcome(fmt.Sprintf("%s matched, no match branch", a.path))
		}
		return a.match.Apply(doc, ctx)
	}
	if a.nomatch == nil {
		return skippedOutcome(fmt.Sprintf("%s did not match, no nomatch branch", a.path))
	}
	return a.nomatch.Apply(doc, ctx)
}
