package main

import (
	"io"

	"github.com/hnmd-format/go-hnmd/ir"
	"github.com/hnmd-format/go-hnmd/parse"

	"github.com/scott-cotton/cli"
)

func jsonCmd(cfg *JSONConfig, cc *cli.Context, args []string) error {
	args, err := cfg.JSON.Parse(cc, args)
	if err != nil {
		return err
	}
	return eachInput(cc, args, func(_ string, src []byte) error {
		return jsonDoc(cfg, cc.Out, src)
	})
}

func jsonDoc(cfg *JSONConfig, w io.Writer, src []byte) error {
	doc := parse.Parse(src, cfg.parseOpts()...)
	opts := []ir.SerializeOption{ir.SerializePositions(cfg.Pos)}
	if cfg.Indent {
		opts = append(opts, ir.SerializeIndent("", "  "))
	}
	d, err := ir.Serialize(doc, opts...)
	if err != nil {
		return err
	}
	_, err = w.Write(append(d, '\n'))
	return err
}
