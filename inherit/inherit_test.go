package inherit

import (
	"errors"
	"strings"
	"testing"

	"github.com/defml-format/go-defml/encode"
	"github.com/defml-format/go-defml/parse"
	"github.com/defml-format/go-defml/xpath"

	"github.com/defml-format/go-defml"
)

type resolveTest struct {
	name string
	doc  string
	res  string
	err  error
}

func runResolveTest(t *testing.T, tc resolveTest) {
	t.Helper()
	doc := parse.MustString(tc.doc)
	err := Resolve(doc)
	if tc.err != nil {
		if !errors.Is(err, tc.err) {
			t.Fatalf("err = %v, want %v", err, tc.err)
		}
		return
	}
	if err != nil {
		t.Fatal(err)
	}
	got := encode.MustString(doc)
	want := encode.MustString(parse.MustString(tc.res))
	if got != want {
		t.Fatalf("document:\n%s\nwant:\n%s", got, want)
	}
}

func TestResolve(t *testing.T) {
	tests := []resolveTest{
		{
			name: "basic expansion and abstract pruning",
			doc: `<Defs>
				<ThingDef Name="BaseWall" Abstract="true">
					<category>Building</category>
					<tags><li>Wall</li></tags>
				</ThingDef>
				<ThingDef ParentName="BaseWall">
					<defName>StoneWall</defName>
				</ThingDef>
			</Defs>`,
			res: `<Defs>
				<ThingDef>
					<category>Building</category>
					<tags><li>Wall</li></tags>
					<defName>StoneWall</defName>
				</ThingDef>
			</Defs>`,
		},
		{
			name: "heir value wins over template value",
			doc: `<Defs>
				<ThingDef Name="Base" Abstract="true">
					<category>Building</category>
					<statBases><MaxHitPoints>100</MaxHitPoints><Mass>1</Mass></statBases>
				</ThingDef>
				<ThingDef ParentName="Base">
					<defName>Heavy</defName>
					<statBases><MaxHitPoints>500</MaxHitPoints></statBases>
				</ThingDef>
			</Defs>`,
			res: `<Defs>
				<ThingDef>
					<category>Building</category>
					<statBases><MaxHitPoints>500</MaxHitPoints><Mass>1</Mass></statBases>
					<defName>Heavy</defName>
				</ThingDef>
			</Defs>`,
		},
		{
			name: "list items concatenate template first",
			doc: `<Defs>
				<ThingDef Name="Base" Abstract="true">
					<tags><li>Wall</li><li>Structure</li></tags>
				</ThingDef>
				<ThingDef ParentName="Base">
					<defName>StoneWall</defName>
					<tags><li>Stone</li></tags>
				</ThingDef>
			</Defs>`,
			res: `<Defs>
				<ThingDef>
					<tags><li>Wall</li><li>Structure</li><li>Stone</li></tags>
					<defName>StoneWall</defName>
				</ThingDef>
			</Defs>`,
		},
		{
			name: "reserved markers do not propagate, other attributes do",
			doc: `<Defs>
				<ThingDef Name="Base" Abstract="true" Mod="core">
					<category>Building</category>
				</ThingDef>
				<ThingDef ParentName="Base" Mod="local">
					<defName>A</defName>
				</ThingDef>
				<ThingDef ParentName="Base">
					<defName>B</defName>
				</ThingDef>
			</Defs>`,
			res: `<Defs>
				<ThingDef Mod="local">
					<category>Building</category>
					<defName>A</defName>
				</ThingDef>
				<ThingDef Mod="core">
					<category>Building</category>
					<defName>B</defName>
				</ThingDef>
			</Defs>`,
		},
		{
			name: "template chains expand bottom-up",
			doc: `<Defs>
				<ThingDef Name="Base" Abstract="true">
					<category>Building</category>
				</ThingDef>
				<ThingDef Name="BaseWall" ParentName="Base" Abstract="true">
					<tags><li>Wall</li></tags>
				</ThingDef>
				<ThingDef ParentName="BaseWall">
					<defName>StoneWall</defName>
				</ThingDef>
			</Defs>`,
			res: `<Defs>
				<ThingDef>
					<category>Building</category>
					<tags><li>Wall</li></tags>
					<defName>StoneWall</defName>
				</ThingDef>
			</Defs>`,
		},
		{
			name: "concrete template stays in the output",
			doc: `<Defs>
				<ThingDef Name="StoneWall">
					<defName>StoneWall</defName>
				</ThingDef>
				<ThingDef ParentName="StoneWall">
					<defName>ReinforcedWall</defName>
				</ThingDef>
			</Defs>`,
			res: `<Defs>
				<ThingDef Name="StoneWall">
					<defName>StoneWall</defName>
				</ThingDef>
				<ThingDef>
					<defName>ReinforcedWall</defName>
				</ThingDef>
			</Defs>`,
		},
		{
			name: "unknown parent",
			doc: `<Defs>
				<ThingDef ParentName="Ghost"><defName>A</defName></ThingDef>
			</Defs>`,
			err: ErrUnknownTemplate,
		},
		{
			name: "duplicate template name",
			doc: `<Defs>
				<ThingDef Name="Base"><defName>A</defName></ThingDef>
				<ThingDef Name="Base"><defName>B</defName></ThingDef>
			</Defs>`,
			err: ErrDuplicateTemplate,
		},
		{
			name: "cycle",
			doc: `<Defs>
				<ThingDef Name="A" ParentName="B" />
				<ThingDef Name="B" ParentName="A" />
			</Defs>`,
			err: ErrCycle,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) { runResolveTest(t, tc) })
	}
}

func TestResolve_AfterPatchingTemplate(t *testing.T) {
	// a patch against the template lands in every inheritor
	doc := parse.MustString(`<Defs>
		<ThingDef Name="BaseWall" Abstract="true">
			<tags><li>Wall</li></tags>
		</ThingDef>
		<ThingDef ParentName="BaseWall"><defName>StoneWall</defName></ThingDef>
		<ThingDef ParentName="BaseWall"><defName>WoodWall</defName></ThingDef>
	</Defs>`)
	u, err := defml.ReadUnit("walls", strings.NewReader(`<Patch>
		<Operation Class="Add">
			<xpath>Defs/ThingDef[@Name="BaseWall"]/tags</xpath>
			<value><li>Patched</li></value>
		</Operation>
	</Patch>`))
	if err != nil {
		t.Fatal(err)
	}
	rep, err := defml.Apply(doc, []*defml.Unit{u})
	if err != nil {
		t.Fatal(err)
	}
	if rep.Failed() {
		t.Fatalf("report has failures:\n%s", rep)
	}
	if err := Resolve(doc); err != nil {
		t.Fatal(err)
	}
	for _, tgt := range xpath.MustParse("//ThingDef/tags").Eval(doc) {
		var tags []string
		for _, li := range tgt.Node.Children {
			tags = append(tags, li.TrimmedText())
		}
		if len(tags) != 2 || tags[0] != "Wall" || tags[1] != "Patched" {
			t.Fatalf("tags at %s: %v", tgt.Node.Path(), tags)
		}
	}
}

func TestResolve_NoOperationsAfter(t *testing.T) {
	// resolution consumes the ParentName markers, so a subtype query
	// through the template no longer matches afterwards
	doc := parse.MustString(`<Defs>
		<ThingDef Name="BaseWall" Abstract="true"><category>Building</category></ThingDef>
		<ThingDef ParentName="BaseWall"><defName>StoneWall</defName></ThingDef>
	</Defs>`)
	if err := Resolve(doc); err != nil {
		t.Fatal(err)
	}
	if xpath.MustParse(`Defs/ThingDef[@Name="BaseWall"]`).Exists(doc) {
		t.Fatal("subtype query matched after resolution")
	}
}
