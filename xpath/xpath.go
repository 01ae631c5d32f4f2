package xpath

import (
	"strings"

	"github.com/defml-format/go-defml/debug"
	"github.com/defml-format/go-defml/ir"
)

// Path is an immutable, parsed path expression: a sequence of steps
// walked from the document node, optionally narrowed by a trailing
// text() or @attr selector.
//
// Syntax, the documented subset only:
//
//	Defs/ThingDef[defName="Wall"]/comps
//	Defs/ThingDef[defName="A" or defName="B"]/label/text()
//	Defs//ThingDef[@Name="BaseGun"]/@Abstract
//	Defs/ThingDef[@Abstract]
//
// A step written after // searches the whole subtree for its tag
// instead of matching direct children. Predicates are equality on a
// direct child's text, equality on an attribute, attribute presence,
// or an "or" disjunction of those. Anything beyond that subset is a
// parse error.
type Path struct {
	Steps []*Step
	Attr  string // trailing /@attr selector
	Text  bool   // trailing /text() selector

	raw string
}

// Step matches children (or, with Deep, any descendants) of the
// current context by tag name, optionally guarded by a predicate.
type Step struct {
	Name string
	Deep bool
	Pred *Pred
}

// Pred is a disjunction of clauses; the first true clause suffices.
type Pred struct {
	Clauses []Clause
}

// Clause is one predicate branch. Exactly one of Attr or Child is set.
// HasValue distinguishes [@attr="v"] from bare presence [@attr].
type Clause struct {
	Attr     string
	Child    string
	Value    string
	HasValue bool
}

func (p *Path) String() string {
	return p.raw
}

// Target is one resolved match: a node, a (node, attribute) pair, or
// the node's text content.
type Target struct {
	Node *ir.Node
	Attr string
	Text bool
}

// Eval resolves the path against the current tree state, returning
// matches in document order. Zero matches is a normal result, not an
// error.
func (p *Path) Eval(doc *ir.Node) []Target {
	ctx := []*ir.Node{doc}
	for _, step := range p.Steps {
		var next []*ir.Node
		for _, n := range ctx {
			if step.Deep {
				n.Visit(func(d *ir.Node, isPost bool) (bool, error) {
					if isPost || d == n {
						return true, nil
					}
					if d.Name == step.Name && step.matches(d) {
						next = append(next, d)
					}
					return true, nil
				})
				continue
			}
			for _, c := range n.Children {
				if c.Name == step.Name && step.matches(c) {
					next = append(next, c)
				}
			}
		}
		ctx = next
		if len(ctx) == 0 {
			if debug.XPath() {
				debug.Logf("xpath %s: no matches after step %s\n", p, step.Name)
			}
			return nil
		}
	}
	res := make([]Target, 0, len(ctx))
	for _, n := range ctx {
		switch {
		case p.Text:
			res = append(res, Target{Node: n, Text: true})
		case p.Attr != "":
			if n.HasAttr(p.Attr) {
				res = append(res, Target{Node: n, Attr: p.Attr})
			}
		default:
			res = append(res, Target{Node: n})
		}
	}
	if debug.XPath() {
		debug.Logf("xpath %s: %d target(s)\n", p, len(res))
		for _, t := range res {
			debug.Logf("  %s\n", t.Node.Path())
		}
	}
	return res
}

// Exists reports whether the path resolves to at least one target,
// the conditional operation's existence test.
func (p *Path) Exists(doc *ir.Node) bool {
	return len(p.Eval(doc)) > 0
}

func (s *Step) matches(n *ir.Node) bool {
	if s.Pred == nil {
		return true
	}
	for i := range s.Pred.Clauses {
		if s.Pred.Clauses[i].matches(n) {
			return true
		}
	}
	return false
}

func (c *Clause) matches(n *ir.Node) bool {
	if c.Attr != "" {
		v, ok := n.Attr(c.Attr)
		if !c.HasValue {
			return ok
		}
		if ok && v == c.Value {
			return true
		}
		// selecting by the template marker implies the subtype query:
		// nodes inheriting from the named template also match
		if c.Attr == ir.NameAttr {
			pv, pok := n.Attr(ir.ParentNameAttr)
			return pok && pv == c.Value
		}
		return false
	}
	child := n.Child(c.Child)
	if child == nil {
		return false
	}
	if !c.HasValue {
		return true
	}
	return strings.TrimSpace(child.Text) == c.Value
}
