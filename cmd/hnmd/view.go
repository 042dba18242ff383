package main

import (
	"io"
	"os"

	"github.com/hnmd-format/go-hnmd/parse"
	"github.com/hnmd-format/go-hnmd/view"

	"github.com/scott-cotton/cli"
)

func viewCmd(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	return eachInput(cc, args, func(_ string, src []byte) error {
		return viewDoc(cfg, cc.Out, src)
	})
}

func viewDoc(cfg *ViewConfig, w io.Writer, src []byte) error {
	width := cfg.Width
	if width <= 0 {
		f, _ := w.(*os.File)
		width = view.TermWidth(f)
	}
	doc := parse.Parse(src, cfg.parseOpts()...)
	return view.View(doc, w,
		view.ViewWidth(width),
		view.ViewColor(cfg.useColor(w)),
		view.ViewErrors(cfg.Errors))
}
