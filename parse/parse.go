// Package parse builds ir document trees from serialized XML.
//
// Document returns a document node: an unnamed container whose
// children are the source's root elements. Working on the container
// rather than the root element keeps path evaluation uniform (every
// step, including the first, matches children of its context) and
// gives sibling insertion at the root a parent to work with.
package parse

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/defml-format/go-defml/ir"
)

// Document parses a serialized document into a document node. It
// fails with an ErrMalformed-wrapped error on non-well-formed markup
// and on duplicate non-list sibling tags.
func Document(r io.Reader) (*ir.Node, error) {
	dec := xml.NewDecoder(r)
	doc := &ir.Node{}
	cur := doc
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := ir.New(t.Name.Local)
			for _, a := range t.Attr {
				n.SetAttr(a.Name.Local, a.Value)
			}
			cur.AppendChild(n)
			cur = n
		case xml.EndElement:
			if dup := cur.DuplicateChild(); dup != nil {
				return nil, fmt.Errorf("%w: duplicate sibling tag %q at %s",
					ErrMalformed, dup.Name, dup.Path())
			}
			cur = cur.Parent
		case xml.CharData:
			if cur == doc {
				continue
			}
			cur.Text += string(t)
		}
		// comments, directives and processing instructions are dropped
	}
	if cur != doc {
		return nil, fmt.Errorf("%w: unclosed element %s", ErrMalformed, cur.Path())
	}
	if len(doc.Children) == 0 {
		return nil, fmt.Errorf("%w: no root element", ErrMalformed)
	}
	if dup := doc.DuplicateChild(); dup != nil {
		return nil, fmt.Errorf("%w: duplicate root tag %q", ErrMalformed, dup.Name)
	}
	normalizeText(doc)
	return doc, nil
}

// String parses from a string.
func String(s string) (*ir.Node, error) {
	return Document(strings.NewReader(s))
}

// MustString parses from a string, panicking on error. Test helper.
func MustString(s string) *ir.Node {
	doc, err := String(s)
	if err != nil {
		panic(err)
	}
	return doc
}

// normalizeText drops whitespace-only text on container nodes so that
// indentation never reads as mixed content. Text on leaves keeps its
// surrounding whitespace trimmed off.
func normalizeText(doc *ir.Node) {
	doc.Visit(func(n *ir.Node, isPost bool) (bool, error) {
		if isPost {
			return true, nil
		}
		if len(n.Children) > 0 && strings.TrimSpace(n.Text) == "" {
			n.Text = ""
		} else {
			n.Text = strings.TrimSpace(n.Text)
		}
		return true, nil
	})
}
