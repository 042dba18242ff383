package main

import (
	"fmt"
	"io"

	"github.com/hnmd-format/go-hnmd/libdiff"
	"github.com/hnmd-format/go-hnmd/parse"

	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("%w: patch requires a patch file and at most one document", cli.ErrUsage)
	}
	p, err := readSource(cc.In, args[0])
	if err != nil {
		return err
	}
	return eachInput(cc, args[1:], func(_ string, src []byte) error {
		return patchDoc(cfg, cc.Out, p, src)
	})
}

// patchDoc applies p to the tree of src and writes the patched tree.
func patchDoc(cfg *PatchConfig, w io.Writer, p, src []byte) error {
	tree, err := libdiff.TreeJSON(parse.Parse(src, cfg.parseOpts()...))
	if err != nil {
		return err
	}
	var res []byte
	if cfg.Merge {
		res, err = libdiff.ApplyMergePatch(tree, p)
	} else {
		res, err = libdiff.ApplyJSONPatch(tree, p)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(append(res, '\n'))
	return err
}
