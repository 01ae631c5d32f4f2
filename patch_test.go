package defml

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/defml-format/go-defml/encode"
	"github.com/defml-format/go-defml/parse"
	"github.com/defml-format/go-defml/patchop"
)

const wallsDoc = `<Defs>
	<ThingDef Name="BaseWall" Abstract="true">
		<category>Building</category>
		<tags><li>Wall</li></tags>
	</ThingDef>
	<ThingDef ParentName="BaseWall">
		<defName>StoneWall</defName>
		<statBases><MaxHitPoints>300</MaxHitPoints></statBases>
	</ThingDef>
</Defs>`

func mustUnit(t *testing.T, name, body string) *Unit {
	t.Helper()
	u, err := ReadUnit(name, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func TestApply(t *testing.T) {
	doc := parse.MustString(wallsDoc)
	u := mustUnit(t, "walls", `<Patch>
		<Operation Class="Add">
			<xpath>Defs/ThingDef[defName="StoneWall"]/tags</xpath>
			<value><li>StoneBuilding</li></value>
			<order>Prepend</order>
		</Operation>
		<Operation Class="Replace">
			<xpath>Defs/ThingDef[defName="StoneWall"]/statBases/MaxHitPoints/text()</xpath>
			<value>450</value>
		</Operation>
		<Operation Class="Remove">
			<xpath>Defs/ThingDef[@Name="BaseWall"]/category</xpath>
		</Operation>
	</Patch>`)

	rep, err := Apply(doc, []*Unit{u})
	if err != nil {
		t.Fatal(err)
	}
	if rep.Failed() {
		t.Fatalf("report has failures:\n%s", rep)
	}
	if len(rep.Entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(rep.Entries))
	}
	if u.State != Succeeded {
		t.Fatalf("unit state = %s", u.State)
	}

	want := encode.MustString(parse.MustString(`<Defs>
		<ThingDef Name="BaseWall" Abstract="true">
			<tags><li>Wall</li></tags>
		</ThingDef>
		<ThingDef ParentName="BaseWall">
			<defName>StoneWall</defName>
			<statBases><MaxHitPoints>450</MaxHitPoints></statBases>
			<tags><li>StoneBuilding</li></tags>
		</ThingDef>
	</Defs>`))
	if got := encode.MustString(doc); got != want {
		t.Fatalf("document (-want +got):\n%s", cmp.Diff(want, got))
	}
}

func TestApply_SubtypeQuery(t *testing.T) {
	// @Name on a template also selects ParentName inheritors
	doc := parse.MustString(wallsDoc)
	u := mustUnit(t, "subtype", `<Patch>
		<Operation Class="AttributeSet">
			<xpath>Defs/ThingDef[@Name="BaseWall"]</xpath>
			<attribute>Mod</attribute>
			<value>walls-extended</value>
		</Operation>
	</Patch>`)
	rep, err := Apply(doc, []*Unit{u})
	if err != nil {
		t.Fatal(err)
	}
	if rep.Failed() {
		t.Fatalf("report has failures:\n%s", rep)
	}
	for _, def := range doc.Children[0].Children {
		if v, ok := def.Attr("Mod"); !ok || v != "walls-extended" {
			t.Fatalf("node %s missing Mod attribute", def.Path())
		}
	}
}

func TestApply_FailureIsolation(t *testing.T) {
	doc := parse.MustString(wallsDoc)
	failing := mustUnit(t, "first", `<Patch>
		<Operation Class="Remove">
			<xpath>Defs/SoundDef</xpath>
		</Operation>
		<Operation Class="Add">
			<xpath>Defs/ThingDef[defName="StoneWall"]/tags</xpath>
			<value><li>AfterFailure</li></value>
		</Operation>
	</Patch>`)
	second := mustUnit(t, "second", `<Patch>
		<Operation Class="Add">
			<xpath>Defs/ThingDef[defName="StoneWall"]/tags</xpath>
			<value><li>SecondUnit</li></value>
		</Operation>
	</Patch>`)

	rep, err := Apply(doc, []*Unit{failing, second})
	if err != nil {
		t.Fatal(err)
	}
	if !rep.Failed() {
		t.Fatal("expected a recorded failure")
	}
	if len(rep.Entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(rep.Entries))
	}
	fails := rep.FailedEntries()
	if len(fails) != 1 || fails[0].Unit != "first" || fails[0].Index != 0 {
		t.Fatalf("failed entries: %v", fails)
	}
	if !errors.Is(fails[0].Outcome.Err, patchop.ErrEmptyTarget) {
		t.Fatalf("failure error: %v", fails[0].Outcome.Err)
	}
	if failing.State != UnitFailed || second.State != Succeeded {
		t.Fatalf("unit states: %s, %s", failing.State, second.State)
	}

	// both later operations still ran
	tags := doc.Children[0].Children[1].Child("tags")
	var got []string
	for _, li := range tags.Children {
		got = append(got, li.TrimmedText())
	}
	want := []string{"Wall", "AfterFailure", "SecondUnit"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tags (-want +got):\n%s", diff)
	}
}

func TestApply_LaterUnitSeesEarlierMutation(t *testing.T) {
	doc := parse.MustString(wallsDoc)
	first := mustUnit(t, "adds", `<Patch>
		<Operation Class="Add">
			<xpath>Defs/ThingDef[defName="StoneWall"]</xpath>
			<value><costList /></value>
		</Operation>
	</Patch>`)
	second := mustUnit(t, "fills", `<Patch>
		<Operation Class="Add">
			<xpath>Defs/ThingDef/costList</xpath>
			<value><BlocksGranite>5</BlocksGranite></value>
		</Operation>
	</Patch>`)
	rep, err := Apply(doc, []*Unit{first, second})
	if err != nil {
		t.Fatal(err)
	}
	if rep.Failed() {
		t.Fatalf("report has failures:\n%s", rep)
	}
	cost := doc.Children[0].Children[1].Child("costList")
	if cost == nil || cost.Child("BlocksGranite") == nil {
		t.Fatal("second unit did not see the node added by the first")
	}
}

func TestApply_Options(t *testing.T) {
	doc := parse.MustString(wallsDoc)
	u := mustUnit(t, "gated", `<Patch>
		<Operation Class="Remove">
			<xpath>Defs/SoundDef</xpath>
		</Operation>
		<Operation Class="FindMod">
			<mods><li>WallsExtended</li></mods>
			<match Class="Add">
				<xpath>Defs/ThingDef[defName="StoneWall"]/tags</xpath>
				<value><li>Extended</li></value>
			</match>
		</Operation>
	</Patch>`)
	rep, err := Apply(doc, []*Unit{u},
		WithNoopRemoval(true),
		WithCapabilities(func(name string) bool { return name == "WallsExtended" }),
	)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Failed() {
		t.Fatalf("report has failures:\n%s", rep)
	}
	if rep.Entries[0].Outcome.Status != patchop.Skipped {
		t.Fatalf("tolerated removal status = %s", rep.Entries[0].Outcome.Status)
	}
	tags := doc.Children[0].Children[1].Child("tags")
	if !tags.HasChild("li") || len(tags.Children) != 2 {
		t.Fatalf("capability-gated add missed: %s", encode.MustString(tags))
	}
}

func TestApply_NilDocument(t *testing.T) {
	if _, err := Apply(nil, nil); err == nil {
		t.Fatal("expected error for nil document")
	}
}

func TestReadUnit_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
	}{
		{
			name: "malformed document",
			body: `<Patch><Operation`,
			err:  parse.ErrMalformed,
		},
		{
			name: "wrong root tag",
			body: `<Patches />`,
			err:  patchop.ErrPayload,
		},
		{
			name: "operation without class",
			body: `<Patch><Operation><xpath>Defs</xpath></Operation></Patch>`,
			err:  patchop.ErrPayload,
		},
		{
			name: "unknown operation class",
			body: `<Patch><Operation Class="Teleport"><xpath>Defs</xpath></Operation></Patch>`,
			err:  patchop.ErrPayload,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadUnit(tc.name, strings.NewReader(tc.body))
			if !errors.Is(err, tc.err) {
				t.Fatalf("err = %v, want %v", err, tc.err)
			}
		})
	}
}

func TestEntry_String(t *testing.T) {
	e := Entry{
		Unit:  "walls",
		Index: 2,
		Op:    "Remove",
		Outcome: patchop.Outcome{
			Status: patchop.Skipped,
			Reason: "no matching nodes",
		},
	}
	want := "walls[2] Remove: Skipped (no matching nodes)"
	if got := e.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
