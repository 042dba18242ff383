package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/hnmd-format/go-hnmd/encode"
	"github.com/hnmd-format/go-hnmd/libdiff"
	"github.com/hnmd-format/go-hnmd/parse"

	"github.com/scott-cotton/cli"
)

func fmtCmd(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Diff && cfg.Write {
		return fmt.Errorf("%w: -d and -w are exclusive", cli.ErrUsage)
	}
	return eachInput(cc, args, func(name string, src []byte) error {
		return fmtDoc(cfg, cc.Out, name, src)
	})
}

func fmtDoc(cfg *FmtConfig, w io.Writer, name string, src []byte) error {
	doc := parse.Parse(src, cfg.parseOpts()...)
	warnErrors(name, doc)
	var opts []encode.EncodeOption
	if !cfg.Diff && !cfg.Write {
		opts = cfg.encOpts(w)
	}
	out, err := encode.Render(doc, opts...)
	if err != nil {
		return err
	}
	switch {
	case cfg.Diff:
		_, err = io.WriteString(w, libdiff.Unified(name, name+" (formatted)", string(src), out, 3))
		return err
	case cfg.Write && name != "-":
		if bytes.Equal(src, []byte(out)) {
			return nil
		}
		theLog.Info("formatted", "file", name)
		return os.WriteFile(name, []byte(out), 0644)
	}
	_, err = io.WriteString(w, out)
	return err
}
