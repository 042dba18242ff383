package token

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type kindTest struct {
	in    string
	kinds []Kind
}

func kindsOf(toks []Token) []Kind {
	res := make([]Kind, 0, len(toks))
	for _, t := range toks {
		res = append(res, t.Kind)
	}
	return res
}

func TestTokenizeKinds(t *testing.T) {
	tests := []kindTest{
		{in: "", kinds: []Kind{EOF}},
		{in: "# H", kinds: []Kind{Hash, Space, Text, EOF}},
		{in: "#H", kinds: []Kind{Hash, Text, EOF}},
		{in: "**a *b* c**", kinds: []Kind{Star, Text, Space, Star, Text, Star, Space, Text, Star, EOF}},
		{in: "- a\n1. b", kinds: []Kind{Dash, Space, Text, Newline, Digits, Dot, Space, Text, EOF}},
		{in: "> q", kinds: []Kind{Gt, Space, Text, EOF}},
		{in: "![a](u)", kinds: []Kind{Bang, LBracket, Text, RBracket, LParen, Text, RParen, EOF}},
		{in: "`x<y`", kinds: []Kind{Backtick, CodeText, Backtick, EOF}},
		{in: "``a`b``", kinds: []Kind{Backtick, CodeText, CodeText, CodeText, Backtick, EOF}},
		{in: "a\\\nb", kinds: []Kind{Text, Backslash, Newline, Text, EOF}},
		{in: "{a.b}", kinds: []Kind{LBrace, ExprText, RBrace, EOF}},
		{in: "{f({x: 1})}", kinds: []Kind{LBrace, ExprText, LBrace, ExprText, RBrace, ExprText, RBrace, EOF}},
		{in: "{it's} x", kinds: []Kind{LBrace, ExprText, RBrace, Space, Text, EOF}},
		{in: "{'}'}", kinds: []Kind{LBrace, ExprText, RBrace, Text, EOF}},
		{
			in:    `<Card title="x" n={1} open>`,
			kinds: []Kind{TagOpen, Ident, Space, Ident, Equals, String, Space, Ident, Equals, LBrace, ExprText, RBrace, Space, Ident, TagEnd, EOF},
		},
		{in: "<X/>", kinds: []Kind{TagOpen, Ident, SelfClose, EOF}},
		{in: "</X>", kinds: []Kind{CloseTagOpen, Ident, TagEnd, EOF}},
		{in: "<>a</>", kinds: []Kind{TagOpen, TagEnd, Text, CloseTagOpen, TagEnd, EOF}},
		{in: "<Foo.Bar x:y=4 />", kinds: []Kind{TagOpen, Ident, Space, Ident, Equals, Text, Space, SelfClose, EOF}},
		{in: "a < b", kinds: []Kind{Text, Space, Text, Space, Text, EOF}},
		{in: "<<", kinds: []Kind{Text, Text, EOF}},
		{in: "<a <b>", kinds: []Kind{TagOpen, Ident, Space, TagOpen, Ident, TagEnd, EOF}},
		{in: "```js\nx\n```", kinds: []Kind{FenceOpen, FenceInfo, Newline, CodeLine, Newline, FenceClose, EOF}},
		{in: "```\n<a>\n", kinds: []Kind{FenceOpen, Newline, CodeLine, Newline, EOF}},
		{in: "````\n```\n````", kinds: []Kind{FenceOpen, Newline, CodeLine, Newline, FenceClose, EOF}},
		{in: "---\nt: x\n---\n# H", kinds: []Kind{FrontmatterDelim, Newline, FrontmatterLine, Newline, FrontmatterDelim, Newline, Hash, Space, Text, EOF}},
		{in: "a\n---", kinds: []Kind{Text, Newline, Dash, EOF}},
		{in: "<A b=\"x\n\nc", kinds: []Kind{TagOpen, Ident, Space, Ident, Equals, String, Newline, Newline, Text, EOF}},
		{in: "{a\n\n# b", kinds: []Kind{LBrace, ExprText, Newline, Newline, Hash, Space, Text, EOF}},
		{in: "a\r\nb", kinds: []Kind{Text, Newline, Text, EOF}},
		{in: "a\rb", kinds: []Kind{Text, Newline, Text, EOF}},
		{in: "\r", kinds: []Kind{Newline, EOF}},
	}
	for _, tc := range tests {
		got := kindsOf(Tokenize([]byte(tc.in)))
		if diff := cmp.Diff(tc.kinds, got); diff != "" {
			t.Errorf("Tokenize(%q) kinds (-want +got):\n%s", tc.in, diff)
		}
	}
}

func TestTokenizeNoFrontmatter(t *testing.T) {
	got := kindsOf(Tokenize([]byte("---\nx"), NoFrontmatter()))
	want := []Kind{Dash, Newline, Text, EOF}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func checkCoverage(t *testing.T, src string) {
	t.Helper()
	toks := Tokenize([]byte(src))
	off := 0
	for i, tok := range toks {
		if tok.Start != off {
			t.Fatalf("token %d %s starts at %d, want %d", i, tok, tok.Start, off)
		}
		if tok.End < tok.Start {
			t.Fatalf("token %d %s has negative length", i, tok)
		}
		if tok.Kind != EOF && tok.Len() == 0 {
			t.Fatalf("token %d %s is empty", i, tok)
		}
		off = tok.End
	}
	if off != len(src) {
		t.Fatalf("tokens end at %d, want %d", off, len(src))
	}
	if last := toks[len(toks)-1]; last.Kind != EOF {
		t.Fatalf("last token is %s, want EOF", last)
	}
}

func TestTokenizeCoverage(t *testing.T) {
	srcs := []string{
		"",
		"plain",
		"# Title\n\nSome *text* with `code` and <B x={1}>y</B>.\n",
		"---\nunterminated frontmatter\n",
		"```\nunterminated fence",
		"<Card\n  title=\"a\"\n  other={b}\n>\n  body\n</Card>\n",
		"{unterminated\nexpr}",
		"<A b='c",
		"`unterminated code span\nnext line",
		"\r\n\r\n\r",
		"\t- [ ] item\n\t+ x\n",
		"héllo wörld <Ünïcode/>",
	}
	for _, src := range srcs {
		checkCoverage(t, src)
	}
}

func TestTokenizeAdversarial(t *testing.T) {
	for _, unit := range []string{"<", "</", "<a", "{", "}", "`", "``", "*", "[", "](", "<a b=", "\"", "```\n", "---\n", "\\", "<>", "</>", "<a/"} {
		src := strings.Repeat(unit, 20000)
		toks := Tokenize([]byte(src))
		if len(toks) > len(src)+1 {
			t.Errorf("%q: %d tokens for %d bytes", unit, len(toks), len(src))
		}
		checkCoverage(t, src)
	}
}

func TestKindString(t *testing.T) {
	if got := TagOpen.String(); got != "TagOpen" {
		t.Errorf("got %q", got)
	}
	if got := Kind(999).String(); got != "Kind(999)" {
		t.Errorf("got %q", got)
	}
}

func FuzzTokenize(f *testing.F) {
	f.Add("# a\n\n<B x=\"1\">{y}</B>")
	f.Add("```\n`\n")
	f.Add("---\n---\n")
	f.Fuzz(func(t *testing.T, src string) {
		checkCoverage(t, src)
	})
}
