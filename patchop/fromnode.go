package patchop

import (
	"fmt"

	"github.com/defml-format/go-defml/ir"
)

// ClassAttr discriminates the operation kind on serialized operation
// elements.
const ClassAttr = "Class"

// FromNode parses one serialized operation element into an Op. The
// element's tag does not matter (top-level operations use Operation,
// nested ones use li or match/nomatch); only its Class attribute and
// payload children do. A success-mode override on the element wraps
// the parsed op, so the transform applies uniformly wherever the op
// nests.
func FromNode(elem *ir.Node) (Op, error) {
	class, ok := elem.Attr(ClassAttr)
	if !ok {
		return nil, fmt.Errorf("%w: operation at %s has no %s attribute",
			ErrPayload, elem.Path(), ClassAttr)
	}
	sym := Lookup(class)
	if sym == nil {
		return nil, fmt.Errorf("%w: unknown operation kind %q at %s",
			ErrPayload, class, elem.Path())
	}
	op, err := sym.Instance(elem)
	if err != nil {
		return nil, err
	}
	mode, err := successMode(elem)
	if err != nil {
		return nil, err
	}
	if mode != Normal {
		op = &successOp{mode: mode, inner: op}
	}
	return op, nil
}
