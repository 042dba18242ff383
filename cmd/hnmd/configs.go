package main

import (
	"io"
	"os"

	"github.com/hnmd-format/go-hnmd/encode"
	"github.com/hnmd-format/go-hnmd/parse"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='output with color'"`
	NoFM  bool `cli:"name=nofm desc='do not detect frontmatter'"`

	Verbose bool `cli:"name=v desc='log what each command reads and runs'"`
	Quiet   bool `cli:"name=q desc='only log failures, not parse warnings'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	return []parse.ParseOption{parse.ParseFrontmatter(!cfg.NoFM)}
}

// useColor reports whether output to w is colored: -color forces it, an
// explicit -color=false turns it off, otherwise terminals get color.
func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	if cfg.Main != nil {
		for _, opt := range cfg.Main.Opts {
			if opt.Name == "color" && opt.Value != nil {
				return false
			}
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	if cfg.useColor(w) {
		return []encode.EncodeOption{encode.EncodeColors(encode.NewColors())}
	}
	return nil
}

type DumpConfig struct {
	*MainConfig
	NoTokens bool `cli:"name=n desc='omit the token stream'"`

	Dump *cli.Command
}

type JSONConfig struct {
	*MainConfig
	Pos    bool `cli:"name=pos desc='include node positions'"`
	Indent bool `cli:"name=indent desc='indent the output'"`

	JSON *cli.Command
}

type FmtConfig struct {
	*MainConfig
	Diff  bool `cli:"name=d desc='print a diff instead of the formatted text'"`
	Write bool `cli:"name=w desc='write the result back to the files'"`

	Fmt *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Text bool `cli:"name=text desc='print a text patch of the canonical renderings'"`

	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Merge bool `cli:"name=m desc='the patch is a JSON merge patch'"`

	Patch *cli.Command
}

type MetaConfig struct {
	*MainConfig
	YAML bool `cli:"name=y aliases=yaml desc='output yaml'"`

	Meta *cli.Command
}

type ViewConfig struct {
	*MainConfig
	Width  int  `cli:"name=w desc='wrap width (default terminal width)'"`
	Errors bool `cli:"name=e desc='list parse errors'"`

	View *cli.Command
}

type ExpandConfig struct {
	*MainConfig
	Exprs bool `cli:"name=x desc='also evaluate {expressions}'"`
	Sets  []string

	Expand *cli.Command
}
