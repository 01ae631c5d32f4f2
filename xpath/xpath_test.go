package xpath

import (
	"testing"

	"github.com/defml-format/go-defml/parse"
)

const defsDoc = `
<Defs>
  <ThingDef Name="BaseWall" Abstract="True">
    <defName>X</defName>
    <label>base wall</label>
  </ThingDef>
  <ThingDef ParentName="BaseWall">
    <defName>Y</defName>
    <comps>
      <li>CompA</li>
    </comps>
  </ThingDef>
  <ThingDef>
    <defName>Z</defName>
    <comps>
      <li>CompB</li>
    </comps>
  </ThingDef>
</Defs>`

func defNames(ts []Target) []string {
	var res []string
	for _, t := range ts {
		if c := t.Node.Child("defName"); c != nil {
			res = append(res, c.TrimmedText())
		} else {
			res = append(res, t.Node.Name)
		}
	}
	return res
}

func TestEval(t *testing.T) {
	doc := parse.MustString(defsDoc)
	tests := []struct {
		path string
		want []string
	}{
		{"Defs/ThingDef", []string{"X", "Y", "Z"}},
		{`Defs/ThingDef[defName="Y"]`, []string{"Y"}},
		// disjunction matches exactly {X, Y} in document order, never Z
		{`Defs/ThingDef[defName="X" or defName="Y"]`, []string{"X", "Y"}},
		{`Defs/ThingDef[defName="Y" or defName="X"]`, []string{"X", "Y"}},
		{`Defs/ThingDef[@Abstract]`, []string{"X"}},
		// template marker query implies the subtype query
		{`Defs/ThingDef[@Name="BaseWall"]`, []string{"X", "Y"}},
		{"Defs//li", []string{"li", "li"}},
		{"Defs/ThingDef/comps/li", []string{"li", "li"}},
		{`Defs/ThingDef[defName="missing"]`, nil},
		{"Nope/ThingDef", nil},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			ts := MustParse(tc.path).Eval(doc)
			got := defNames(ts)
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("got %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestEval_Selectors(t *testing.T) {
	doc := parse.MustString(defsDoc)

	ts := MustParse(`Defs/ThingDef[defName="X"]/label/text()`).Eval(doc)
	if len(ts) != 1 || !ts[0].Text || ts[0].Node.Name != "label" {
		t.Fatalf("text targets: %+v", ts)
	}

	ts = MustParse(`Defs/ThingDef[defName="X"]/@Abstract`).Eval(doc)
	if len(ts) != 1 || ts[0].Attr != "Abstract" {
		t.Fatalf("attr targets: %+v", ts)
	}

	// attribute selector only yields nodes that carry the attribute
	ts = MustParse(`Defs/ThingDef/@Abstract`).Eval(doc)
	if len(ts) != 1 {
		t.Fatalf("attr presence filter: %+v", ts)
	}
}

func TestEval_NeverMutates(t *testing.T) {
	doc := parse.MustString(defsDoc)
	before := len(doc.Children[0].Children)
	MustParse("Defs//li").Eval(doc)
	MustParse(`Defs/ThingDef[defName="X"]`).Eval(doc)
	if len(doc.Children[0].Children) != before {
		t.Fatal("eval mutated the tree")
	}
}

func TestExists(t *testing.T) {
	doc := parse.MustString(defsDoc)
	if !MustParse(`Defs/ThingDef[defName="Z"]`).Exists(doc) {
		t.Fatal("expected match")
	}
	if MustParse(`Defs/ThingDef[defName="W"]`).Exists(doc) {
		t.Fatal("unexpected match")
	}
}
