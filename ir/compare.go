package ir

import (
	"cmp"
	"slices"
	"strings"
)

// Compare returns an integer comparing two nodes structurally.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
// Attribute order is not significant; child order is.
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	if c := strings.Compare(a.TrimmedText(), b.TrimmedText()); c != 0 {
		return c
	}
	if c := compareAttrs(a.Attrs, b.Attrs); c != 0 {
		return c
	}
	if c := cmp.Compare(len(a.Children), len(b.Children)); c != 0 {
		return c
	}
	for i := range a.Children {
		if c := Compare(a.Children[i], b.Children[i]); c != 0 {
			return c
		}
	}
	return 0
}

// Equal reports structural equality.
func Equal(a, b *Node) bool {
	return Compare(a, b) == 0
}

func compareAttrs(a, b []Attr) int {
	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c
	}
	as := slices.Clone(a)
	bs := slices.Clone(b)
	byName := func(x, y Attr) int { return strings.Compare(x.Name, y.Name) }
	slices.SortFunc(as, byName)
	slices.SortFunc(bs, byName)
	for i := range as {
		if c := strings.Compare(as[i].Name, bs[i].Name); c != 0 {
			return c
		}
		if c := strings.Compare(as[i].Value, bs[i].Value); c != 0 {
			return c
		}
	}
	return 0
}
