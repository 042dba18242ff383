package ir_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/hnmd-format/go-hnmd/ir"
	"github.com/hnmd-format/go-hnmd/parse"

	"github.com/google/go-cmp/cmp"
)

func TestNodeAtOffset(t *testing.T) {
	d := parse.Parse([]byte("# Hello *world*"))
	tests := []struct {
		off  int
		kind ir.Kind
		ok   bool
		text string
	}{
		{off: 0, kind: ir.HeadingKind, ok: true, text: "# Hello *world*"},
		{off: 3, kind: ir.TextKind, ok: true, text: "Hello "},
		{off: 8, kind: ir.EmphasisKind, ok: true, text: "*world*"},
		{off: 10, kind: ir.TextKind, ok: true, text: "world"},
		{off: 14, kind: ir.EmphasisKind, ok: true, text: "*world*"},
		{off: 15, kind: ir.RootKind, ok: true, text: "# Hello *world*"},
		{off: -1},
		{off: 16},
	}
	for _, test := range tests {
		i, ok := d.NodeAtOffset(test.off)
		if ok != test.ok {
			t.Errorf("%d: ok=%t", test.off, ok)
			continue
		}
		if !ok {
			continue
		}
		if k := d.Node(i).Kind; k != test.kind {
			t.Errorf("%d: got %s want %s", test.off, k, test.kind)
		}
		if s := d.Text(i); s != test.text {
			t.Errorf("%d: got %q want %q", test.off, s, test.text)
		}
	}
}

func TestDocumentAccessors(t *testing.T) {
	d := parse.Parse([]byte("---\na: 1\n---\n<X a=\"1\" b />\n\n- x\n- y\n"))
	kids := d.ChildIndices(d.Root)
	if len(kids) != 3 {
		t.Fatalf("got %d root children", len(kids))
	}
	fm, ok := d.Frontmatter()
	if !ok || fm != kids[0] || d.Node(fm).Value != "a: 1" {
		t.Errorf("frontmatter %d %t", fm, ok)
	}
	want := []ir.Attribute{
		{Name: "a", Kind: ir.LiteralAttr, Value: "1", HasValue: true, Start: 16, End: 21},
		{Name: "b", Kind: ir.LiteralAttr, Start: 22, End: 23},
	}
	if diff := cmp.Diff(want, d.Attributes(kids[1])); diff != "" {
		t.Errorf("attributes (-want +got):\n%s", diff)
	}
	if n := len(d.ChildIndices(kids[2])); n != 2 {
		t.Errorf("got %d list items", n)
	}
	var sb strings.Builder
	for i := range d.Tokens {
		sb.WriteString(d.TokenSlice(i))
	}
	if sb.String() != d.Source {
		t.Errorf("tokens do not spell the source")
	}

	var order []ir.Kind
	depths := map[ir.Kind]int{}
	d.Walk(func(i, depth int) bool {
		k := d.Node(i).Kind
		order = append(order, k)
		depths[k] = depth
		return k != ir.ListUnorderedKind
	})
	wantOrder := []ir.Kind{ir.RootKind, ir.FrontmatterKind, ir.SelfClosingElementKind, ir.ListUnorderedKind}
	if diff := cmp.Diff(wantOrder, order); diff != "" {
		t.Errorf("walk (-want +got):\n%s", diff)
	}
	if depths[ir.SelfClosingElementKind] != 1 {
		t.Errorf("depths %v", depths)
	}

	start := d.Node(kids[2]).Start
	if l, c := d.PosDoc().LineCol(start); l != 5 || c != 0 {
		t.Errorf("list at %d:%d", l, c)
	}
}

func TestSerialize(t *testing.T) {
	tests := []struct {
		in   string
		opts []ir.SerializeOption
		out  string
	}{
		{
			in:  "",
			out: `{"type":"root","children":[],"source":"","errors":[]}`,
		},
		{
			in:  "# Hi",
			out: `{"type":"root","children":[{"type":"heading","level":1,"children":[{"type":"text","value":"Hi"}]}],"source":"# Hi","errors":[]}`,
		},
		{
			in:   "```\nx\n```",
			opts: []ir.SerializeOption{ir.SerializePositions(true)},
			out:  `{"type":"root","position":{"start":0,"end":9},"children":[{"type":"code_block","value":"x","position":{"start":0,"end":9}}],"source":"` + "```\\nx\\n```" + `","errors":[]}`,
		},
		{
			in:  "<X d a={b} />",
			out: `{"type":"root","children":[{"type":"self_closing_element","name":"X","attributes":[{"name":"d","type":"literal"},{"name":"a","type":"expression","value":"b"}]}],"source":"<X d a={b} />","errors":[]}`,
		},
		{
			in:  "[](u) <a>",
			out: `{"type":"root","children":[{"type":"paragraph","children":[{"type":"link","url":"u","children":[]},{"type":"text","value":" "},{"type":"element","name":"a","attributes":[],"children":[]}]}],"source":"[](u) <a>","errors":[{"offset":6,"message":"element <a> is not closed","kind":"UnterminatedTag"}]}`,
		},
		{
			in:  "---\nk: <v>\n---\n",
			out: `{"type":"root","children":[{"type":"frontmatter","format":"yaml","value":"k: <v>"}],"source":"---\nk: <v>\n---\n","errors":[]}`,
		},
	}
	for _, test := range tests {
		t.Run(test.in, func(t *testing.T) {
			d := parse.Parse([]byte(test.in))
			got, err := ir.Serialize(d, test.opts...)
			if err != nil {
				t.Fatal(err)
			}
			want := strings.ReplaceAll(test.out, "\n", `\n`)
			if diff := cmp.Diff(want, string(got)); diff != "" {
				t.Errorf("serialize (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSerializeIndent(t *testing.T) {
	d := parse.Parse([]byte("x"))
	got, err := ir.Serialize(d, ir.SerializeIndent("", "  "))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), "\n  \"children\": [") {
		t.Errorf("not indented:\n%s", got)
	}
	m, err := d.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(m), "\n") {
		t.Errorf("MarshalJSON is indented")
	}
}

func TestDiff(t *testing.T) {
	tests := []struct {
		a, b string
		diff string
	}{
		{a: "# a", b: "#   a  "},
		{a: "*a*", b: "_a_"},
		{a: "# a", b: "## a", diff: "root/0:heading: level 1 != 2"},
		{a: "a *b*", b: "a **b**", diff: "root/0:paragraph/1:emphasis: kind emphasis != strong"},
		{a: "<X a=\"1\" />", b: "<X a={1} />", diff: `root/0:self_closing_element: attribute 0 a="1" (literal) != a="1" (expression)`},
		{a: "a\n\nb", b: "a", diff: "root: 2 children != 1"},
		{a: "[x](u)", b: "[x](v)", diff: `root/0:paragraph/0:link: url "u" != "v"`},
	}
	for _, test := range tests {
		da, db := parse.Parse([]byte(test.a)), parse.Parse([]byte(test.b))
		if got := ir.Diff(da, db); got != test.diff {
			t.Errorf("%q vs %q: got %q want %q", test.a, test.b, got, test.diff)
		}
		if ir.Equal(da, db) != (test.diff == "") {
			t.Errorf("%q vs %q: Equal disagrees with Diff", test.a, test.b)
		}
	}
	if ir.Diff(&ir.Document{}, parse.Parse(nil)) == "" {
		t.Error("empty document equals parsed one")
	}
}

func TestKind(t *testing.T) {
	for _, k := range ir.Kinds() {
		b, err := k.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back ir.Kind
		if err := back.UnmarshalText(b); err != nil || back != k {
			t.Errorf("%s: %v %s", k, err, back)
		}
	}
	if _, err := ir.ParseKind("table"); !errors.Is(err, ir.ErrBadKind) {
		t.Errorf("got %v", err)
	}
	if ir.Kind(99).String() != "Kind(99)" {
		t.Errorf("got %s", ir.Kind(99))
	}
}

func TestErrorString(t *testing.T) {
	e := ir.Error{Offset: 3, Kind: ir.UnterminatedFence, Message: "code fence is not closed"}
	if got, want := e.Error(), "UnterminatedFence at offset 3: code fence is not closed"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
}
