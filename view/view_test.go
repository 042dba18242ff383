package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hnmd-format/go-hnmd/parse"

	"github.com/google/go-cmp/cmp"
	"github.com/muesli/reflow/ansi"
)

func TestString(t *testing.T) {
	tests := []struct {
		in   string
		out  string
		opts []ViewOption
	}{
		{in: "", out: ""},
		{in: "# Title\n\nSome *text* here", out: "# Title\n\nSome text here\n"},
		{in: "- one\n- two", out: "• one\n• two\n"},
		{in: "1. a\n2. b", out: "1. a\n2. b\n"},
		{in: "> a\n> b", out: "│ a b\n"},
		{in: "```go\nx := 1\n```", out: "[go]\n  x := 1\n"},
		{in: "```\nx\n```", out: "  x\n"},
		{in: "***", out: "──────────\n", opts: []ViewOption{ViewWidth(10)}},
		{in: "[x](u) and [u](u)", out: "x (u) and u\n"},
		{in: "![a](i.png)", out: "[image: a] (i.png)\n"},
		{in: "Hi {name}", out: "Hi {name}\n"},
		{in: "{x}", out: "{x}\n"},
		{in: "a <B>b</B> <br/>", out: "a <B>b</B> <br />\n"},
		{in: "<Card title=\"t\">\nhi\n</Card>", out: "<Card title=\"t\">\n  hi\n</Card>\n"},
		{in: "<Card>\n</Card>", out: "<Card>\n</Card>\n"},
		{in: "<X {...p} k={v} b />", out: "<X {...p} k={v} b />\n"},
		{in: "<>\nx\n</>", out: "<>\n  x\n</>\n"},
		{in: "---\ntitle: x\n---\nbody", out: "yaml frontmatter\n┆ title: x\n\nbody\n"},
		{in: "a  \nb", out: "a\nb\n"},
		{in: "a\rb\r\nc", out: "a b c\n"},
		{in: "```\nx\ry\n```", out: "  x\n  y\n"},
	}
	for _, test := range tests {
		t.Run(test.in, func(t *testing.T) {
			d := parse.Parse([]byte(test.in))
			got := String(d, append([]ViewOption{ViewColor(false)}, test.opts...)...)
			if diff := cmp.Diff(test.out, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	src := strings.Repeat("lorem ipsum dolor sit amet ", 20)
	for _, in := range []string{src, "- " + src, "> " + src, "# " + src, "<A>\n" + src + "\n</A>"} {
		d := parse.Parse([]byte(in))
		got := String(d, ViewWidth(30), ViewColor(true))
		lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
		if len(lines) < 10 {
			t.Errorf("%.10q: expected wrapping, got %d lines", in, len(lines))
		}
		for _, ln := range lines {
			if w := ansi.PrintableRuneWidth(ln); w > 30 {
				t.Errorf("%.10q: line %q is %d wide", in, ln, w)
			}
		}
	}
}

func TestErrors(t *testing.T) {
	d := parse.Parse([]byte("<Card>\ntext"))
	got := String(d, ViewColor(false), ViewErrors(true))
	want := "<Card>\n  text\n</Card>\n\n1:1: "
	if !strings.HasPrefix(got, want) || !strings.Contains(got, "not closed") {
		t.Errorf("got %q", got)
	}
	if got := String(d, ViewColor(false)); strings.Contains(got, "not closed") {
		t.Errorf("errors shown without ViewErrors: %q", got)
	}
}

func TestView(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := View(parse.Parse([]byte("**a**")), buf, ViewColor(true)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("no escapes in %q", buf.String())
	}
	if got := ansi.PrintableRuneWidth(strings.TrimSpace(buf.String())); got != 1 {
		t.Errorf("printable width %d", got)
	}
}

func TestTermWidth(t *testing.T) {
	t.Setenv("COLUMNS", "123")
	if got := TermWidth(nil); got != 123 {
		t.Errorf("got %d", got)
	}
	t.Setenv("COLUMNS", "x")
	if got := TermWidth(nil); got != DefaultWidth {
		t.Errorf("got %d", got)
	}
}
