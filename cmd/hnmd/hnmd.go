package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hnmd-format/go-hnmd/ir"

	"github.com/scott-cotton/cli"
)

// hnmdMain applies the global options, then runs the subcommand named by the
// first remaining argument. An -o file is closed when the subcommand returns
// and a failure to close it is the command's error.
func hnmdMain(cfg *MainConfig, cc *cli.Context, args []string) (err error) {
	defer func() {
		if cerr := cfg.closeOut(); err == nil {
			err = cerr
		}
	}()
	if args, err = cfg.Main.Parse(cc, args); err != nil {
		return err
	}
	if err := cfg.applyLogLevel(); err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	theLog.Debug("run", "command", args[0], "out", cfg.Out)
	if err = sub.Run(cc, args[1:]); errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

// outOpt handles -o. "-" keeps stdout, any other path is created or truncated.
func (cfg *MainConfig) outOpt(cc *cli.Context, path string) (any, error) {
	if cfg.CloseOut != nil {
		return nil, fmt.Errorf("%w: -o given more than once", cli.ErrUsage)
	}
	cfg.Out = path
	if path == "-" {
		return nil, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("could not create %q: %w", path, err)
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

func (cfg *MainConfig) closeOut() error {
	if cfg.CloseOut == nil {
		return nil
	}
	closeOut := cfg.CloseOut
	cfg.CloseOut = nil
	if err := closeOut(); err != nil {
		return fmt.Errorf("could not close %q: %w", cfg.Out, err)
	}
	return nil
}

// eachInput calls fn with the contents of every file named in args, or of
// stdin when there are none.
func eachInput(cc *cli.Context, args []string, fn func(name string, src []byte) error) error {
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, name := range args {
		src, err := readSource(cc.In, name)
		if err != nil {
			return err
		}
		theLog.Debug("read", "file", name, "bytes", len(src))
		if err := fn(name, src); err != nil {
			return fmt.Errorf("error processing %s: %w", name, err)
		}
	}
	return nil
}

func readSource(stdin io.Reader, path string) ([]byte, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("could not open %q: %w", path, err)
		}
		defer f.Close()
		r = f
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}

// warnErrors logs the parse errors of doc. They never change the exit code.
func warnErrors(name string, doc *ir.Document) {
	if len(doc.Errors) == 0 {
		return
	}
	pd := doc.PosDoc()
	for _, e := range doc.Errors {
		l, c := pd.LineCol(e.Offset)
		theLog.Warn(e.Message, "file", name, "line", l+1, "col", c+1, "kind", e.Kind.String())
	}
}
