// Package inherit expands parent-template relationships in a patched
// document tree.
//
// Resolution is a distinct pass that runs strictly after the patch
// engine has finished: nodes carrying the Name attribute are
// templates, nodes carrying ParentName inherit the template's content,
// and Abstract templates are dropped from the output. Because patching
// happens first, a patch applied to a template is inherited uniformly
// by every not-yet-expanded inheritor.
package inherit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/defml-format/go-defml/debug"
	"github.com/defml-format/go-defml/ir"
)

var (
	ErrDuplicateTemplate = errors.New("duplicate template name")
	ErrUnknownTemplate   = errors.New("unknown parent template")
	ErrCycle             = errors.New("inheritance cycle")
)

// Resolve expands inheritance in place and prunes abstract templates.
// The tree must be frozen with respect to patching: no operations may
// run after resolution.
func Resolve(doc *ir.Node) error {
	r := &resolver{
		templates: map[string]*ir.Node{},
		expanded:  map[*ir.Node]bool{},
		visiting:  map[*ir.Node]bool{},
	}
	var dupErr error
	doc.Visit(func(n *ir.Node, isPost bool) (bool, error) {
		if isPost {
			return true, nil
		}
		name, ok := n.Attr(ir.NameAttr)
		if !ok || name == "" {
			return true, nil
		}
		if prev := r.templates[name]; prev != nil && dupErr == nil {
			dupErr = fmt.Errorf("%w: %q at %s and %s",
				ErrDuplicateTemplate, name, prev.Path(), n.Path())
		}
		r.templates[name] = n
		return true, nil
	})
	if dupErr != nil {
		return dupErr
	}

	var heirs []*ir.Node
	doc.Visit(func(n *ir.Node, isPost bool) (bool, error) {
		if !isPost && n.HasAttr(ir.ParentNameAttr) {
			heirs = append(heirs, n)
		}
		return true, nil
	})
	for _, n := range heirs {
		if err := r.expand(n); err != nil {
			return err
		}
	}
	pruneAbstract(doc)
	return nil
}

type resolver struct {
	templates map[string]*ir.Node
	expanded  map[*ir.Node]bool
	visiting  map[*ir.Node]bool
}

func (r *resolver) expand(n *ir.Node) error {
	if r.expanded[n] {
		return nil
	}
	if r.visiting[n] {
		return fmt.Errorf("%w: at %s", ErrCycle, n.Path())
	}
	r.visiting[n] = true
	defer delete(r.visiting, n)

	pname, ok := n.Attr(ir.ParentNameAttr)
	if !ok {
		r.expanded[n] = true
		return nil
	}
	tmpl := r.templates[pname]
	if tmpl == nil {
		return fmt.Errorf("%w: %q at %s", ErrUnknownTemplate, pname, n.Path())
	}
	// templates may themselves inherit; expand bottom-up
	if err := r.expand(tmpl); err != nil {
		return err
	}
	if debug.Inherit() {
		debug.Logf("expand %s from template %q\n", n.Path(), pname)
	}
	mergeNode(n, tmpl)
	n.DelAttr(ir.ParentNameAttr)
	r.expanded[n] = true
	return nil
}

// mergeNode folds src (the template) into dst (the inheritor):
// non-list children merge recursively by tag, list items concatenate
// template-first, dst's text and attributes win where both sides have
// them. Reserved marker attributes never propagate.
func mergeNode(dst, src *ir.Node) {
	for _, a := range src.Attrs {
		switch a.Name {
		case ir.NameAttr, ir.ParentNameAttr, ir.AbstractAttr:
			continue
		}
		if !dst.HasAttr(a.Name) {
			dst.SetAttr(a.Name, a.Value)
		}
	}
	if dst.TrimmedText() == "" && len(dst.Children) == 0 {
		dst.Text = src.Text
	}
	if len(src.Children) == 0 {
		return
	}
	matched := map[*ir.Node]bool{}
	var out []*ir.Node
	for _, sc := range src.Children {
		if sc.IsListItem() {
			out = append(out, detach(sc.Clone()))
			continue
		}
		if dc := dst.Child(sc.Name); dc != nil {
			mergeNode(dc, sc)
			matched[dc] = true
			out = append(out, dc)
			continue
		}
		out = append(out, detach(sc.Clone()))
	}
	for _, dc := range dst.Children {
		if !matched[dc] {
			out = append(out, dc)
		}
	}
	dst.Children = nil
	for _, c := range out {
		detach(c)
		dst.AppendChild(c)
	}
}

func detach(n *ir.Node) *ir.Node {
	n.Parent = nil
	n.ParentIndex = 0
	return n
}

// pruneAbstract removes abstract template nodes from the output tree.
func pruneAbstract(doc *ir.Node) {
	doc.Visit(func(n *ir.Node, isPost bool) (bool, error) {
		if !isPost {
			return true, nil
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			c := n.Children[i]
			if v, ok := c.Attr(ir.AbstractAttr); ok && strings.EqualFold(v, "true") {
				n.RemoveChild(i)
			}
		}
		return true, nil
	})
}
