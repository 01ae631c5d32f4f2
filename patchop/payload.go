package patchop

import (
	"fmt"

	"github.com/defml-format/go-defml/ir"
	"github.com/defml-format/go-defml/xpath"
)

// opPath reads and parses the required xpath field of a serialized
// operation element.
func opPath(elem *ir.Node) (*xpath.Path, error) {
	x := elem.Child("xpath")
	if x == nil {
		return nil, fmt.Errorf("%w: operation at %s has no xpath", ErrPayload, elem.Path())
	}
	p, err := xpath.Parse(x.TrimmedText())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayload, err)
	}
	return p, nil
}

// opValue returns the value element, or an error when absent.
func opValue(elem *ir.Node) (*ir.Node, error) {
	v := elem.Child("value")
	if v == nil {
		return nil, fmt.Errorf("%w: operation at %s has no value", ErrPayload, elem.Path())
	}
	return v, nil
}

// opValueNodes returns the payload subtrees: the value element's
// children, detached from the patch document.
func opValueNodes(elem *ir.Node) ([]*ir.Node, error) {
	v, err := opValue(elem)
	if err != nil {
		return nil, err
	}
	if len(v.Children) == 0 {
		return nil, fmt.Errorf("%w: empty value at %s", ErrPayload, v.Path())
	}
	res := make([]*ir.Node, len(v.Children))
	for i, c := range v.Children {
		cc := c.Clone()
		cc.Parent = nil
		cc.ParentIndex = 0
		res[i] = cc
	}
	return res, nil
}

// opText reads a required child's trimmed text.
func opText(elem *ir.Node, name string) (string, error) {
	c := elem.Child(name)
	if c == nil || c.TrimmedText() == "" {
		return "", fmt.Errorf("%w: operation at %s has no %s", ErrPayload, elem.Path(), name)
	}
	return c.TrimmedText(), nil
}

// opOrder reads the optional ordering hint, constrained to the two
// documented values.
func opOrder(elem *ir.Node, def string) (string, error) {
	o := elem.Child("order")
	if o == nil {
		return def, nil
	}
	switch o.TrimmedText() {
	case "Append", "Prepend":
		return o.TrimmedText(), nil
	}
	return "", fmt.Errorf("%w: unknown order %q at %s", ErrPayload, o.TrimmedText(), o.Path())
}

// nodeTargets rejects text() and @attr selections for operations that
// only make sense on whole nodes.
func nodeTargets(ts []xpath.Target, name opName, p *xpath.Path) error {
	for _, t := range ts {
		if t.Text || t.Attr != "" {
			return fmt.Errorf("%w: %s needs node targets, %s selects otherwise", ErrPayload, name, p)
		}
	}
	return nil
}

// cloneAll deep-copies the payload for one target so applications
// never alias each other or the op itself.
func cloneAll(nodes []*ir.Node) []*ir.Node {
	res := make([]*ir.Node, len(nodes))
	for i, n := range nodes {
		c := n.Clone()
		c.Parent = nil
		c.ParentIndex = 0
		res[i] = c
	}
	return res
}
