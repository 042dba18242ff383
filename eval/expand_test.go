package eval

import (
	"errors"
	"testing"

	"github.com/hnmd-format/go-hnmd/encode"
	"github.com/hnmd-format/go-hnmd/meta"
	"github.com/hnmd-format/go-hnmd/parse"
)

func TestExpandString(t *testing.T) {
	env := Env{
		"x":    1,
		"name": "hnmd",
		"nest": map[string]any{"b": "c"},
		"list": []any{"p", "q"},
	}
	tests := []struct {
		in, out string
	}{
		{"plain", "plain"},
		{"a $[x] b", "a 1 b"},
		{"$[ x + 1 ]", "2"},
		{"$[nest.b]", "c"},
		{"$[upper(name)]!", "HNMD!"},
		{"$[list]", `["p","q"]`},
		{"$[x > 0]", "true"},
		{`$["a\]"]`, "a]"},
		{"$[x", "$[x"},
		{"cost: $5", "cost: $5"},
		{"$[x]$[x]", "11"},
	}
	for _, test := range tests {
		got, err := ExpandString(test.in, env)
		if err != nil {
			t.Errorf("%q: %v", test.in, err)
			continue
		}
		if got != test.out {
			t.Errorf("%q: got %q want %q", test.in, got, test.out)
		}
	}
	if _, err := ExpandString("$[1 +]", env); !errors.Is(err, ErrEval) {
		t.Errorf("got %v", err)
	}
}

func TestExpand(t *testing.T) {
	src := "---\ntitle: T\n---\n# $[title]\n\n<Card name=\"$[lower(title)]\" n={x}>\nHi {who}\n</Card>\n"
	doc := parse.Parse([]byte(src))
	m, err := meta.Env(doc)
	if err != nil {
		t.Fatal(err)
	}
	env := Env(m)
	env["who"] = "Bob"

	res, err := Expand(doc, env, ExpandExpressions(true))
	if err != nil {
		t.Fatal(err)
	}
	want := "---\ntitle: T\n---\n\n# T\n\n<Card name=\"t\" n={x}>\nHi Bob\n</Card>\n"
	if got := encode.MustString(res); got != want {
		t.Errorf("got %q want %q", got, want)
	}
	if got := encode.MustString(doc); got == want {
		t.Errorf("the input document was modified")
	}

	res, err = Expand(doc, env)
	if err != nil {
		t.Fatal(err)
	}
	want = "---\ntitle: T\n---\n\n# T\n\n<Card name=\"t\" n={x}>\nHi {who}\n</Card>\n"
	if got := encode.MustString(res); got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestHeadings(t *testing.T) {
	doc := parse.Parse([]byte("# A *b*\n\n## C\n\n$[join(headings(), \",\")] $[len(headingsAt(2))]"))
	res, err := Expand(doc, Env{})
	if err != nil {
		t.Fatal(err)
	}
	want := "# A *b*\n\n## C\n\nA b,C 1\n"
	if got := encode.MustString(res); got != want {
		t.Errorf("got %q want %q", got, want)
	}
}
