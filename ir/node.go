package ir

import (
	"strconv"
	"strings"
)

const (
	// ListTag names list items: siblings sharing this tag under one
	// parent form an ordered list and are exempt from the sibling
	// tag-uniqueness rule.
	ListTag = "li"

	// ExtensionsTag names the designated list child ensured by the
	// AddExtension operation.
	ExtensionsTag = "extensions"
)

// Reserved attributes read by the inheritance resolver. The patch engine
// preserves them unless an operation targets them explicitly.
const (
	NameAttr       = "Name"
	ParentNameAttr = "ParentName"
	AbstractAttr   = "Abstract"
)

// Attr is one name/value attribute of a Node. Attribute order is
// preserved through parse, mutation and encode.
type Attr struct {
	Name  string
	Value string
}

// Node is one element of a document tree: a tag name, ordered
// attributes, ordered children and optional text content. Parent and
// ParentIndex are maintained across all mutations.
//
// Text and Children are mutually exclusive in well-formed documents,
// but mixed content is tolerated and round-tripped.
type Node struct {
	Parent      *Node
	ParentIndex int

	Name     string
	Attrs    []Attr
	Children []*Node
	Text     string
}

func New(name string) *Node {
	return &Node{Name: name}
}

func NewText(name, text string) *Node {
	return &Node{Name: name, Text: text}
}

func (n *Node) WithText(text string) *Node {
	n.Text = text
	return n
}

func (n *Node) WithAttr(name, value string) *Node {
	n.SetAttr(name, value)
	return n
}

func (n *Node) WithChildren(children ...*Node) *Node {
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

// IsListItem reports whether n is a list-style child.
func (n *Node) IsListItem() bool {
	return n.Name == ListTag
}

// Attr returns the value of the named attribute and whether it is
// present.
func (n *Node) Attr(name string) (string, bool) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			return n.Attrs[i].Value, true
		}
	}
	return "", false
}

func (n *Node) HasAttr(name string) bool {
	_, ok := n.Attr(name)
	return ok
}

// SetAttr sets the named attribute, overwriting in place when present
// and appending otherwise.
func (n *Node) SetAttr(name, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// DelAttr removes the named attribute, reporting whether it was
// present.
func (n *Node) DelAttr(name string) bool {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs = append(n.Attrs[:i], n.Attrs[i+1:]...)
			return true
		}
	}
	return false
}

// Child returns the first child with the given tag, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// HasChild reports whether a non-list child with the given tag exists.
func (n *Node) HasChild(name string) bool {
	return n.Child(name) != nil
}

// AppendChild adds c as the last child of n.
func (n *Node) AppendChild(c *Node) {
	c.Parent = n
	c.ParentIndex = len(n.Children)
	n.Children = append(n.Children, c)
}

// PrependChild adds c as the first child of n.
func (n *Node) PrependChild(c *Node) {
	n.InsertChild(0, c)
}

// InsertChild inserts c at index i, shifting later siblings.
func (n *Node) InsertChild(i int, c *Node) {
	c.Parent = n
	n.Children = append(n.Children, nil)
	copy(n.Children[i+1:], n.Children[i:])
	n.Children[i] = c
	n.reindex(i)
}

// RemoveChild removes and returns the child at index i.
func (n *Node) RemoveChild(i int) *Node {
	c := n.Children[i]
	n.Children = append(n.Children[:i], n.Children[i+1:]...)
	c.Parent = nil
	c.ParentIndex = 0
	n.reindex(i)
	return c
}

// ReplaceChild substitutes the child at index i with repl, preserving
// surrounding sibling order. repl may be empty, one or several nodes.
func (n *Node) ReplaceChild(i int, repl ...*Node) {
	old := n.Children[i]
	old.Parent = nil
	old.ParentIndex = 0
	rest := make([]*Node, len(n.Children[i+1:]))
	copy(rest, n.Children[i+1:])
	n.Children = append(n.Children[:i], repl...)
	n.Children = append(n.Children, rest...)
	for _, c := range repl {
		c.Parent = n
	}
	n.reindex(i)
}

func (n *Node) reindex(from int) {
	for i := from; i < len(n.Children); i++ {
		n.Children[i].ParentIndex = i
	}
}

// Clone returns a deep copy of n. The copy's Parent points at the
// original's parent so that a clone's Path is still meaningful, but the
// parent does not reference the clone.
func (n *Node) Clone() *Node {
	res := &Node{}
	return n.CloneTo(res)
}

func (n *Node) CloneTo(dst *Node) *Node {
	dst.Parent = n.Parent
	dst.ParentIndex = n.ParentIndex
	dst.Name = n.Name
	dst.Text = n.Text
	if n.Attrs != nil {
		dst.Attrs = make([]Attr, len(n.Attrs))
		copy(dst.Attrs, n.Attrs)
	}
	if n.Children != nil {
		dst.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			cc := &Node{}
			c.CloneTo(cc)
			cc.Parent = dst
			cc.ParentIndex = i
			dst.Children[i] = cc
		}
	}
	return dst
}

// Visit walks the subtree rooted at n in document order, calling f
// twice per node (pre and post). A false pre result skips the node's
// children.
func (n *Node) Visit(f func(n *Node, isPost bool) (bool, error)) error {
	dive, err := f(n, false)
	if err != nil {
		return err
	}
	if dive {
		for _, c := range n.Children {
			if err := c.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(n, true); err != nil {
		return err
	}
	return nil
}

func (n *Node) Root() *Node {
	res := n
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}

// Path returns a human-readable position of n in its tree, used in
// error messages. List items and duplicate-tagged siblings carry an
// ordinal.
func (n *Node) Path() string {
	if n.Parent == nil {
		if n.Name == "" {
			return ""
		}
		return "/" + n.Name
	}
	seg := n.Name
	count := 0
	for _, sib := range n.Parent.Children {
		if sib.Name == n.Name {
			count++
		}
	}
	if count > 1 {
		ord := 0
		for _, sib := range n.Parent.Children[:n.ParentIndex] {
			if sib.Name == n.Name {
				ord++
			}
		}
		seg += "[" + strconv.Itoa(ord) + "]"
	}
	return n.Parent.Path() + "/" + seg
}

// DuplicateChild returns the first non-list child whose tag appears
// more than once among n's children, or nil. List items are exempt.
func (n *Node) DuplicateChild() *Node {
	seen := make(map[string]bool, len(n.Children))
	for _, c := range n.Children {
		if c.IsListItem() {
			continue
		}
		if seen[c.Name] {
			return c
		}
		seen[c.Name] = true
	}
	return nil
}

// TrimmedText returns the node's text with surrounding whitespace
// removed, the form predicates compare against.
func (n *Node) TrimmedText() string {
	return strings.TrimSpace(n.Text)
}
