package encode

import (
	"testing"

	"github.com/defml-format/go-defml/ir"
	"github.com/defml-format/go-defml/parse"
)

func TestEncode_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"leaf", "<Root><id>1</id></Root>"},
		{"empty element", "<Root><comps /></Root>"},
		{"attrs", `<Root><Item Name="Base" Abstract="True"><id>1</id></Item></Root>`},
		{"list", "<Root><tags><li>A</li><li>B</li></tags></Root>"},
		{"escaping", "<Root><label>a &lt; b &amp; c</label></Root>"},
		{"attr escaping", `<Root><Item label="a &quot;b&quot;" /></Root>`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := parse.String(tc.src)
			if err != nil {
				t.Fatal(err)
			}
			out := MustString(doc)
			doc2, err := parse.String(out)
			if err != nil {
				t.Fatalf("re-parse of %q: %v", out, err)
			}
			if !ir.Equal(doc, doc2) {
				t.Fatalf("round trip changed the tree:\n%s\nvs\n%s", out, MustString(doc2))
			}
		})
	}
}

func TestEncode_Shape(t *testing.T) {
	doc := parse.MustString("<Root><tags><li>A</li></tags></Root>")
	want := "<Root>\n  <tags>\n    <li>A</li>\n  </tags>\n</Root>"
	if got := MustString(doc); got != want {
		t.Fatalf("got:\n%q\nwant:\n%q", got, want)
	}
}

func TestEncode_Indent(t *testing.T) {
	doc := parse.MustString("<Root><id>1</id></Root>")
	want := "<Root>\n    <id>1</id>\n</Root>"
	if got := MustString(doc, Indent(4)); got != want {
		t.Fatalf("got %q", got)
	}
}
