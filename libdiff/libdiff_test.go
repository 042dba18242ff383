package libdiff

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/hnmd-format/go-hnmd/parse"

	"github.com/google/go-cmp/cmp"
)

func TestUnified(t *testing.T) {
	got := Unified("x", "y", "a\nb\nc\n", "a\nB\nc\n", 1)
	want := "--- x\n+++ y\n@@ -1,3 +1,3 @@\n a\n-b\n+B\n c\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if got := Unified("x", "y", "same\n", "same\n", 3); got != "" {
		t.Errorf("equal inputs gave %q", got)
	}
}

func TestUnifiedHunks(t *testing.T) {
	var from, to []string
	for i := 0; i < 20; i++ {
		from = append(from, string(rune('a'+i)))
		to = append(to, string(rune('a'+i)))
	}
	to[2] = "X"
	to[17] = "Y"
	got := Unified("f", "t", strings.Join(from, "\n")+"\n", strings.Join(to, "\n")+"\n", 2)
	if n := strings.Count(got, "@@ -"); n != 2 {
		t.Errorf("got %d hunks:\n%s", n, got)
	}
	if !strings.Contains(got, "@@ -1,5 +1,5 @@\n") {
		t.Errorf("first hunk header missing:\n%s", got)
	}
}

func TestLines(t *testing.T) {
	ls := Lines("a\nb\n", "a\nc\nb\n")
	var ops []Op
	for _, l := range ls {
		ops = append(ops, l.Op)
	}
	if diff := cmp.Diff([]Op{Equal, Insert, Equal}, ops); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if ls[1].Text != "c" || ls[2].From != 2 || ls[2].To != 3 {
		t.Errorf("got %+v", ls)
	}
}

func TestTextPatch(t *testing.T) {
	from := "# Title\n\nSome text here.\n"
	to := "# Title\n\nSome other text here.\n"
	p := PatchText(from, to)
	got, err := ApplyText(from, p)
	if err != nil {
		t.Fatal(err)
	}
	if got != to {
		t.Errorf("got %q want %q", got, to)
	}
	if _, err := ApplyText(from, "@@ bogus"); !errors.Is(err, ErrPatch) {
		t.Errorf("got %v", err)
	}
}

func TestMergePatch(t *testing.T) {
	a := parse.Parse([]byte("# A\n\ntext"))
	p, err := MergePatch(a, parse.Parse([]byte("#   A\n\ntext\n")))
	if err != nil {
		t.Fatal(err)
	}
	if string(p) != "{}" {
		t.Errorf("equal trees gave %s", p)
	}

	b := parse.Parse([]byte("# B\n\ntext"))
	p, err = MergePatch(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if string(p) == "{}" {
		t.Fatal("different trees gave an empty patch")
	}
	ta, err := TreeJSON(a)
	if err != nil {
		t.Fatal(err)
	}
	tb, err := TreeJSON(b)
	if err != nil {
		t.Fatal(err)
	}
	got, err := ApplyMergePatch(ta, p)
	if err != nil {
		t.Fatal(err)
	}
	assertSameJSON(t, tb, got)
}

func TestApplyJSONPatch(t *testing.T) {
	ta, err := TreeJSON(parse.Parse([]byte("# A")))
	if err != nil {
		t.Fatal(err)
	}
	got, err := ApplyJSONPatch(ta, []byte(`[{"op":"replace","path":"/children/0/level","value":2}]`))
	if err != nil {
		t.Fatal(err)
	}
	want, err := TreeJSON(parse.Parse([]byte("## A")))
	if err != nil {
		t.Fatal(err)
	}
	assertSameJSON(t, want, got)
	if _, err := ApplyJSONPatch(ta, []byte(`{"op":`)); !errors.Is(err, ErrPatch) {
		t.Errorf("got %v", err)
	}
}

func assertSameJSON(t *testing.T, want, got []byte) {
	t.Helper()
	var w, g any
	if err := json.Unmarshal(want, &w); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(got, &g); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(w, g); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
