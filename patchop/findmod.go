package patchop

import (
	"fmt"
	"strings"

	"github.com/defml-format/go-defml/debug"
	"github.com/defml-format/go-defml/ir"
)

var findModSym = &findModSymbol{findModName}

func FindMod() Symbol {
	return findModSym
}

const findModName opName = "FindMod"

type findModSymbol struct {
	opName
}

func (s findModSymbol) Instance(elem *ir.Node) (Op, error) {
	modsElem := elem.Child("mods")
	if modsElem == nil || len(modsElem.Children) == 0 {
		return nil, fmt.Errorf("%w: %s at %s has no mods", ErrPayload, s, elem.Path())
	}
	mods := make([]string, 0, len(modsElem.Children))
	for _, c := range modsElem.Children {
		if !c.IsListItem() || c.TrimmedText() == "" {
			return nil, fmt.Errorf("%w: mods must be non-empty %s entries at %s",
				ErrPayload, ir.ListTag, c.Path())
		}
		mods = append(mods, c.TrimmedText())
	}
	match, nomatch, err := branchOps(elem)
	if err != nil {
		return nil, err
	}
	if match == nil && nomatch == nil {
		return nil, fmt.Errorf("%w: %s at %s needs a match or nomatch branch",
			ErrPayload, s, elem.Path())
	}
	return &findModOp{opName: s.opName, mods: mods, match: match, nomatch: nomatch}, nil
}

// findModOp gates on the host's capability query rather than on a
// path expression: the match branch runs only when every listed
// capability is present.
type findModOp struct {
	opName
	mods    []string
	match   Op
	nomatch Op
}

func (a *findModOp) Apply(doc *ir.Node, ctx *Context) Outcome {
	found := true
	for _, m := range a.mods {
		if !ctx.capability(m) {
			found = false
			break
		}
	}
	if debug.Op() {
		debug.Logf("find-mod op on [%s], found=%v\n", strings.Join(a.mods, ", "), found)
	}
	if found {
		if a.match == nil {
			return skippedOutcome("capabilities present, no match branch")
		}
		return a.match.Apply(doc, ctx)
	}
	if a.nomatch == nil {
		return skippedOutcome("capabilities absent, no nomatch branch")
	}
	return a.nomatch.Apply(doc, ctx)
}
