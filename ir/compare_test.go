package ir

import "testing"

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b *Node
		want bool
	}{
		{
			name: "same leaf",
			a:    NewText("id", "1"),
			b:    NewText("id", "1"),
			want: true,
		},
		{
			name: "different text",
			a:    NewText("id", "1"),
			b:    NewText("id", "2"),
			want: false,
		},
		{
			name: "attr order is not significant",
			a:    New("x").WithAttr("a", "1").WithAttr("b", "2"),
			b:    New("x").WithAttr("b", "2").WithAttr("a", "1"),
			want: true,
		},
		{
			name: "child order is significant",
			a:    New("l").WithChildren(NewText(ListTag, "A"), NewText(ListTag, "B")),
			b:    New("l").WithChildren(NewText(ListTag, "B"), NewText(ListTag, "A")),
			want: false,
		},
		{
			name: "text compared trimmed",
			a:    NewText("id", " 1\n"),
			b:    NewText("id", "1"),
			want: true,
		},
		{
			name: "missing child",
			a:    New("l").WithChildren(NewText(ListTag, "A")),
			b:    New("l"),
			want: false,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Equal(tc.a, tc.b); got != tc.want {
				t.Fatalf("Equal = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCompare_Nil(t *testing.T) {
	n := New("x")
	if Compare(nil, n) != -1 || Compare(n, nil) != 1 || Compare(nil, nil) != 0 {
		t.Fatal("nil ordering")
	}
}
