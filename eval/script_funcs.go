package eval

import (
	"os"
	"strings"

	"github.com/hnmd-format/go-hnmd/ir"

	"github.com/expr-lang/expr"
)

func exprOpts(doc *ir.Document) []expr.Option {
	return []expr.Option{
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
		expr.Function("headings", func(params ...any) (any, error) {
			return headings(doc, 0), nil
		},
			new(func() []any)),
		expr.Function("headingsAt", func(params ...any) (any, error) {
			return headings(doc, params[0].(int)), nil
		},
			new(func(int) []any)),
	}
}

// headings returns the plain text of the headings of doc in order. A level
// of 0 selects every heading.
func headings(doc *ir.Document, level int) []any {
	res := []any{}
	doc.Walk(func(i, _ int) bool {
		n := doc.Node(i)
		if n.Kind != ir.HeadingKind {
			return true
		}
		if level == 0 || n.Level == level {
			res = append(res, plainText(doc, i))
		}
		return false
	})
	return res
}

func plainText(doc *ir.Document, i int) string {
	var b strings.Builder
	var walk func(j int)
	walk = func(j int) {
		n := doc.Node(j)
		switch n.Kind {
		case ir.TextKind, ir.CodeInlineKind:
			b.WriteString(n.Value)
		case ir.HardBreakKind:
			b.WriteByte(' ')
		}
		for _, c := range doc.ChildIndices(j) {
			walk(c)
		}
	}
	walk(i)
	return b.String()
}
