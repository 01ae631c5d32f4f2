package patchop

import "github.com/defml-format/go-defml/ir"

// Op is one parsed mutation instruction. Ops are immutable after
// Instance; Apply resolves the op's path expression against the
// current tree state on every call and never against a cached
// snapshot.
type Op interface {
	Apply(doc *ir.Node, ctx *Context) Outcome
	String() string
}

// Symbol is one catalog entry: the operation kind's name plus a
// factory building Op instances from serialized operation elements.
// New kinds register a Symbol; the dispatch loop never changes.
type Symbol interface {
	String() string
	Instance(elem *ir.Node) (Op, error)
}

type opName string

func (o opName) String() string {
	return string(o)
}
