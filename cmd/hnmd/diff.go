package main

import (
	"fmt"
	"io"

	"github.com/hnmd-format/go-hnmd/encode"
	"github.com/hnmd-format/go-hnmd/ir"
	"github.com/hnmd-format/go-hnmd/libdiff"
	"github.com/hnmd-format/go-hnmd/parse"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	var docs [2]*ir.Document
	for i, name := range args {
		src, err := readSource(cc.In, name)
		if err != nil {
			return err
		}
		docs[i] = parse.Parse(src, cfg.parseOpts()...)
		warnErrors(name, docs[i])
	}
	differs, err := diffDocs(cfg, cc.Out, args[0], args[1], docs[0], docs[1])
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// diffDocs writes the difference between the trees of a and b and reports
// whether there was one. Sources and positions do not take part.
func diffDocs(cfg *DiffConfig, w io.Writer, nameA, nameB string, a, b *ir.Document) (bool, error) {
	if ir.Equal(a, b) {
		return false, nil
	}
	if cfg.Text {
		ta, err := encode.Render(a)
		if err != nil {
			return false, err
		}
		tb, err := encode.Render(b)
		if err != nil {
			return false, err
		}
		_, err = io.WriteString(w, libdiff.Unified(nameA, nameB, ta, tb, 3))
		return true, err
	}
	p, err := libdiff.MergePatch(a, b)
	if err != nil {
		return false, err
	}
	_, err = w.Write(append(p, '\n'))
	return true, err
}
