package main

import (
	"errors"
	"io"

	"github.com/hnmd-format/go-hnmd/format"
	"github.com/hnmd-format/go-hnmd/meta"
	"github.com/hnmd-format/go-hnmd/parse"

	"github.com/scott-cotton/cli"
)

func metaCmd(cfg *MetaConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Meta.Parse(cc, args)
	if err != nil {
		return err
	}
	return eachInput(cc, args, func(name string, src []byte) error {
		return metaDoc(cfg, cc.Out, name, src)
	})
}

func metaDoc(cfg *MetaConfig, w io.Writer, name string, src []byte) error {
	v, err := meta.Decode(parse.Parse(src, cfg.parseOpts()...))
	if errors.Is(err, meta.ErrNoFrontmatter) {
		theLog.Info("no frontmatter", "file", name)
		return nil
	}
	if err != nil {
		return err
	}
	f := format.JSONFormat
	if cfg.YAML {
		f = format.YAMLFormat
	}
	d, err := meta.Marshal(v, f)
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}
