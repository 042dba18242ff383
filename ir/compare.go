package ir

import (
	"fmt"
	"strings"
)

// Equal reports whether a and b have the same tree shape, node kinds, values
// and attributes. Spans, tokens and errors are not compared.
func Equal(a, b *Document) bool {
	return Diff(a, b) == ""
}

// Diff describes the first semantic difference between a and b, or returns
// the empty string when there is none.
func Diff(a, b *Document) string {
	if len(a.Nodes) == 0 || len(b.Nodes) == 0 {
		if len(a.Nodes) == len(b.Nodes) {
			return ""
		}
		return "one document is empty"
	}
	return diffNode(a, b, a.Root, b.Root, []string{"root"})
}

func diffNode(a, b *Document, i, j int, path []string) string {
	na, nb := &a.Nodes[i], &b.Nodes[j]
	at := func(format string, args ...any) string {
		return strings.Join(path, "/") + ": " + fmt.Sprintf(format, args...)
	}
	if na.Kind != nb.Kind {
		return at("kind %s != %s", na.Kind, nb.Kind)
	}
	switch {
	case na.Level != nb.Level:
		return at("level %d != %d", na.Level, nb.Level)
	case na.Value != nb.Value:
		return at("value %q != %q", na.Value, nb.Value)
	case na.HasLang != nb.HasLang || na.Lang != nb.Lang:
		return at("lang %q != %q", na.Lang, nb.Lang)
	case na.URL != nb.URL:
		return at("url %q != %q", na.URL, nb.URL)
	case na.Name != nb.Name:
		return at("name %q != %q", na.Name, nb.Name)
	case na.Kind == FrontmatterKind && na.Format != nb.Format:
		return at("format %s != %s", na.Format, nb.Format)
	}
	aa, ba := a.Attributes(i), b.Attributes(j)
	if len(aa) != len(ba) {
		return at("%d attributes != %d", len(aa), len(ba))
	}
	for k := range aa {
		x, y := aa[k], ba[k]
		if x.Name != y.Name || x.Kind != y.Kind || x.HasValue != y.HasValue || x.Value != y.Value {
			return at("attribute %d %s=%q (%s) != %s=%q (%s)", k, x.Name, x.Value, x.Kind, y.Name, y.Value, y.Kind)
		}
	}
	ak, bk := a.ChildIndices(i), b.ChildIndices(j)
	if len(ak) != len(bk) {
		return at("%d children != %d", len(ak), len(bk))
	}
	for k := range ak {
		sub := append(path[:len(path):len(path)], fmt.Sprintf("%d:%s", k, a.Nodes[ak[k]].Kind))
		if d := diffNode(a, b, ak[k], bk[k], sub); d != "" {
			return d
		}
	}
	return ""
}
