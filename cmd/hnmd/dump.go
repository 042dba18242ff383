package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/hnmd-format/go-hnmd/ir"
	"github.com/hnmd-format/go-hnmd/parse"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
)

func dump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		return err
	}
	return eachInput(cc, args, func(_ string, src []byte) error {
		return dumpDoc(cfg, cc.Out, src)
	})
}

func dumpDoc(cfg *DumpConfig, w io.Writer, src []byte) error {
	doc := parse.Parse(src, cfg.parseOpts()...)
	b := &strings.Builder{}
	if !cfg.NoTokens {
		b.WriteString("tokens:\n")
		for _, t := range doc.Tokens {
			fmt.Fprintf(b, "  %s [%d,%d) %q\n", t.Kind, t.Start, t.End, t.Slice(doc.Source))
		}
	}
	b.WriteString("tree:\n")
	doc.Walk(func(i, depth int) bool {
		n := doc.Node(i)
		fmt.Fprintf(b, "%s%d %s [%d,%d)%s\n", strings.Repeat("  ", depth+1), i, n.Kind, n.Start, n.End, nodeFields(doc, i))
		return true
	})
	if len(doc.Errors) > 0 {
		errColor := color.New(color.FgRed)
		if cfg.useColor(w) {
			errColor.EnableColor()
		} else {
			errColor.DisableColor()
		}
		pd := doc.PosDoc()
		b.WriteString("errors:\n")
		for _, e := range doc.Errors {
			l, c := pd.LineCol(e.Offset)
			b.WriteString("  " + errColor.Sprintf("%d:%d %s: %s", l+1, c+1, e.Kind, e.Message) + "\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// nodeFields formats the kind specific fields of node i.
func nodeFields(doc *ir.Document, i int) string {
	n := doc.Node(i)
	var fs []string
	switch n.Kind {
	case ir.HeadingKind:
		fs = append(fs, fmt.Sprintf("level=%d", n.Level))
	case ir.CodeBlockKind:
		if n.HasLang {
			fs = append(fs, fmt.Sprintf("lang=%q", n.Lang))
		}
	case ir.LinkKind, ir.ImageKind:
		fs = append(fs, fmt.Sprintf("url=%q", n.URL))
	case ir.FrontmatterKind:
		fs = append(fs, "format="+n.Format.String())
	case ir.ElementKind, ir.SelfClosingElementKind:
		fs = append(fs, "name="+n.Name)
		for _, a := range doc.Attributes(i) {
			switch {
			case a.Kind == ir.ExpressionAttr:
				fs = append(fs, fmt.Sprintf("@%s={%s}", a.Name, a.Value))
			case a.HasValue:
				fs = append(fs, fmt.Sprintf("@%s=%q", a.Name, a.Value))
			default:
				fs = append(fs, "@"+a.Name)
			}
		}
	}
	if n.Kind.HasValue() {
		fs = append(fs, fmt.Sprintf("value=%q", n.Value))
	}
	if len(fs) == 0 {
		return ""
	}
	return " " + strings.Join(fs, " ")
}
