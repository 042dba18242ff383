package main

import (
	"fmt"
	"strings"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "hnmd").
		WithSynopsis("hnmd [opts] command [opts]").
		WithDescription("hnmd is a tool for working with hnmd documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return hnmdMain(cfg, cc, args)
		}).
		WithSubs(
			DumpCommand(cfg),
			JSONCommand(cfg),
			FmtCommand(cfg),
			DiffCommand(cfg),
			PatchCommand(cfg),
			MetaCommand(cfg),
			ViewCommand(cfg),
			ExpandCommand(cfg))
}

func DumpCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DumpConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Dump, "dump").
		WithAliases("d").
		WithSynopsis("dump [-n] [files]").
		WithDescription("dump tokens, tree and errors").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return dump(cfg, cc, args)
		})
}

func JSONCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &JSONConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.JSON, "json").
		WithAliases("j").
		WithSynopsis("json [-pos] [-indent] [files]").
		WithDescription("print the tree as interchange JSON").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return jsonCmd(cfg, cc, args)
		})
}

func FmtCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FmtConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Fmt, "fmt").
		WithAliases("f").
		WithSynopsis("fmt [-d | -w] [files]").
		WithDescription("render documents in canonical form").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return fmtCmd(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("di").
		WithSynopsis("diff [-text] a b").
		WithDescription("diff the trees of two documents, exiting 1 when they differ").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Patch, "patch").
		WithAliases("p").
		WithSynopsis("patch [-m] <patchfile> [file]").
		WithDescription("apply a JSON patch to the tree of a document").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
}

func MetaCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MetaConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Meta, "meta").
		WithAliases("m").
		WithSynopsis("meta [-y] [files]").
		WithDescription("print decoded frontmatter").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return metaCmd(cfg, cc, args)
		})
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.View, "view").
		WithAliases("v").
		WithSynopsis("view [-w width] [-e] [files]").
		WithDescription("view documents in the terminal").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return viewCmd(cfg, cc, args)
		})
}

func ExpandCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ExpandConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "e",
		Description: "set an expansion variable, dotted keys nest",
		Type: cli.NamedFuncOpt(cli.FuncOpt(func(_ *cli.Context, a string) (any, error) {
			if _, _, ok := strings.Cut(a, "="); !ok {
				return nil, fmt.Errorf("%w: argument %q expected key=val", cli.ErrUsage, a)
			}
			cfg.Sets = append(cfg.Sets, a)
			return 0, nil
		}), "(key=val)"),
	})
	return cli.NewCommandAt(&cfg.Expand, "expand").
		WithAliases("x").
		WithSynopsis("expand [-x] [-e key=val]... [files]").
		WithDescription(expandDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return expand(cfg, cc, args)
		})
}

const expandDescription = `expand replaces $[expr] in text and literal attribute values.

Expressions see the frontmatter of the document as variables, overridden by
'-e key=val' arguments. Values are yaml, and dotted keys set nested fields:

  hnmd expand -e site.name=docs -e 'tags=[a, b]' page.hnmd

With -x, text expressions such as {name} are evaluated too and become text.
Besides the variables, expressions may call getenv(name), headings() and
headingsAt(level).`
