package encode_test

import (
	"errors"
	"testing"

	"github.com/hnmd-format/go-hnmd/encode"
	"github.com/hnmd-format/go-hnmd/ir"
	"github.com/hnmd-format/go-hnmd/parse"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
)

func TestRender(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"", ""},
		{"# Hello", "# Hello\n"},
		{"###### six  ", "###### six\n"},
		{"**bold** and *em*", "**bold** and *em*\n"},
		{"__bold__", "**bold**\n"},
		{"***x***", "_**x**_\n"},
		{"a\n---\nb", "a\n\n***\n\nb\n"},
		{"a  \nb", "a\\\nb\n"},
		{"* a\n* b", "- a\n- b\n"},
		{"1) a\n7) b", "1. a\n2. b\n"},
		{"- a\n* b", "- a\n\n+ b\n"},
		{"> a\n> b", "> a\n> b\n"},
		{"- a\n    b", "- a\n  b\n"},
		{"a `x` b", "a `x` b\n"},
		{"``a`b``", "``a`b``\n"},
		{"````\n```\n````", "````\n```\n````\n"},
		{"<X a='1' b = {c} d />", "<X a=\"1\" b={c} d />\n"},
		{"<X t='say \"hi\"' />", "<X t='say \"hi\"' />\n"},
		{"<Card>\n\n\nHello\n\n</Card>", "<Card>\nHello\n</Card>\n"},
		{"<Card></Card>", "<Card>\n</Card>\n"},
		{"---\ntitle: x\n---\n# H", "---\ntitle: x\n---\n\n# H\n"},
		{"{ x }", "{ x }\n"},
		{"a\n\n\n\nb", "a\n\nb\n"},
		{"* --", "+ --\n"},
		{"- a\n\n* --", "- a\n\n+ --\n"},
		{"+ a\n\n* --", "- a\n\n+ --\n"},
		{"*0!**0*", "*0!**0*\n"},
		{"_a*b_", "_a*b_\n"},
		{"a\rb", "a\rb\n"},
		{"\r", ""},
		{"Hello {it's} there", "Hello {it's} there\n"},
		{"{a {b", "{a {b\n"},
	}
	for _, test := range tests {
		t.Run(test.in, func(t *testing.T) {
			got, err := encode.Render(parse.Parse([]byte(test.in)))
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(test.out, got); diff != "" {
				t.Errorf("render (-want +got):\n%s", diff)
			}
		})
	}
}

var roundTrips = []string{
	"# Hello *world*",
	"## a\n\nparagraph with **strong** and _em_",
	"**a *b* c**",
	"***x***",
	"**_x_**",
	"snake_case_name",
	"a `b` c",
	"[x](http://a.b) and ![alt](i.png)",
	"[*a*](u) b",
	"- a\n- b\n- c",
	"1. one\n2. two",
	"- a\n* b\n+ c",
	"1. a\n1) b",
	"- a\n  b",
	"> a\n> b",
	"> *q*",
	"a\n---\nb",
	"***",
	"```js\nconsole.log(1)\n```",
	"```\n```",
	"```\n```inner\n```",
	"a  \nb",
	"a\\\nb",
	"Hello {name}!",
	"{x}",
	"{a {b} c}",
	"<Card title=\"x\">\nHello\n</Card>",
	"<Card>\n- a\n- b\n</Card>",
	"<A>\n<B>\nx\n</B>\n</A>",
	"<TextInput name=\"a\" />",
	"<X a=\"1\" b={c} d e=f {...rest} />",
	"<X t='say \"hi\"' />",
	"<>\nx\n</>",
	"a <B>b</B> c",
	"a <br/> c",
	"---\ntitle: x\n---\n# H",
	"---\n---\n",
	"```hnmd\n{\"a\": 1}\n```\ntext",
	"1 < 2",
	"a\r\nb",
	"a\rb",
	"\r",
	"- a\r  b",
	"* --",
	"- a\n\n* --",
	"*0!**0*",
	"*0!**0*!**0*",
	"_a*b_",
	"Hello {it's} there",
	"<X a={it's} b=\"c\" />",
}

func TestRoundTrip(t *testing.T) {
	for _, src := range roundTrips {
		t.Run(src, func(t *testing.T) {
			d1 := parse.Parse([]byte(src))
			s1, err := encode.Render(d1)
			if err != nil {
				t.Fatal(err)
			}
			d2 := parse.Parse([]byte(s1))
			if diff := ir.Diff(d1, d2); diff != "" {
				t.Fatalf("%q rendered as %q: %s", src, s1, diff)
			}
			if len(d2.Errors) != 0 {
				t.Errorf("%q rendered as %q which has errors %v", src, s1, d2.Errors)
			}
			s2, err := encode.Render(d2)
			if err != nil {
				t.Fatal(err)
			}
			if s1 != s2 {
				t.Errorf("render is not stable: %q then %q", s1, s2)
			}
		})
	}
}

func TestRoundTripOpenExpression(t *testing.T) {
	for _, src := range []string{"{a {b", "x {a {b", "{0\"", "- {a {b"} {
		d1 := parse.Parse([]byte(src))
		s, err := encode.Render(d1)
		if err != nil {
			t.Fatal(err)
		}
		if diff := ir.Diff(d1, parse.Parse([]byte(s))); diff != "" {
			t.Errorf("%q rendered as %q: %s", src, s, diff)
		}
	}
}

func FuzzRoundTrip(f *testing.F) {
	for _, src := range roundTrips {
		f.Add(src)
	}
	f.Fuzz(func(t *testing.T, src string) {
		d1 := parse.Parse([]byte(src))
		if len(d1.Errors) != 0 {
			return
		}
		s, err := encode.Render(d1)
		if err != nil {
			return
		}
		if diff := ir.Diff(d1, parse.Parse([]byte(s))); diff != "" {
			t.Fatalf("%q rendered as %q: %s", src, s, diff)
		}
	})
}

func attrDoc(a ir.Attribute) *ir.Document {
	return &ir.Document{
		Nodes: []ir.Node{
			{Kind: ir.RootKind, Kids: ir.Range{Start: 0, End: 1}},
			{Kind: ir.SelfClosingElementKind, Name: "X", Attrs: ir.Range{Start: 0, End: 1}},
		},
		Children: []int{1},
		Attrs:    []ir.Attribute{a},
	}
}

func TestRenderErrors(t *testing.T) {
	docs := []*ir.Document{
		attrDoc(ir.Attribute{Name: "a", Value: `'"`, HasValue: true}),
		attrDoc(ir.Attribute{Name: "a", Value: "x\ny", HasValue: true}),
	}
	for _, d := range docs {
		if _, err := encode.Render(d); !errors.Is(err, encode.ErrEncoding) {
			t.Errorf("got %v, want ErrEncoding", err)
		}
	}
	ok := attrDoc(ir.Attribute{Name: "a", Value: "x\ny", Kind: ir.ExpressionAttr, HasValue: true})
	got, err := encode.Render(ok)
	if err != nil {
		t.Fatal(err)
	}
	if want := "<X a={x\ny} />\n"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestMustStringPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("no panic")
		}
	}()
	encode.MustString(attrDoc(ir.Attribute{Name: "a", Value: `'"`, HasValue: true}))
}

func TestRenderOptions(t *testing.T) {
	d := parse.Parse([]byte("---\na: 1\n---\n- x\n\n* y"))
	got := encode.MustString(d, encode.EncodeFrontmatter(false), encode.EncodeBullets('*', '+'))
	if want := "* x\n\n+ y\n"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestRenderColors(t *testing.T) {
	save := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = save }()

	for _, src := range roundTrips {
		d := parse.Parse([]byte(src))
		plain := encode.MustString(d)
		colored := encode.MustString(d, encode.EncodeColors(encode.NewColors()))
		if plain != colored {
			t.Errorf("%q: %q != %q", src, plain, colored)
		}
	}
}

func TestEncodeWriter(t *testing.T) {
	var buf writer
	d := parse.Parse([]byte("# H"))
	if err := encode.Encode(d, &buf); err != nil {
		t.Fatal(err)
	}
	if string(buf) != "# H\n" {
		t.Errorf("got %q", buf)
	}
}

type writer []byte

func (w *writer) Write(p []byte) (int, error) {
	*w = append(*w, p...)
	return len(p), nil
}
