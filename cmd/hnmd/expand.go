package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/hnmd-format/go-hnmd/encode"
	"github.com/hnmd-format/go-hnmd/eval"
	"github.com/hnmd-format/go-hnmd/meta"
	"github.com/hnmd-format/go-hnmd/parse"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
)

func expand(cfg *ExpandConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Expand.Parse(cc, args)
	if err != nil {
		return err
	}
	return eachInput(cc, args, func(name string, src []byte) error {
		return expandDoc(cfg, cc.Out, name, src)
	})
}

func expandDoc(cfg *ExpandConfig, w io.Writer, name string, src []byte) error {
	doc := parse.Parse(src, cfg.parseOpts()...)
	warnErrors(name, doc)
	env, err := meta.Env(doc)
	if err != nil {
		return err
	}
	for _, a := range cfg.Sets {
		if err := envFunc(env, a); err != nil {
			return err
		}
	}
	res, err := eval.Expand(doc, env, eval.ExpandExpressions(cfg.Exprs))
	if err != nil {
		return err
	}
	return encode.Encode(res, w, cfg.encOpts(w)...)
}

// envFunc sets the yaml value of a `key=val` argument in env. Dotted keys
// create nested maps.
func envFunc(env map[string]any, a string) error {
	key, val, ok := strings.Cut(a, "=")
	if !ok {
		return fmt.Errorf("%w: argument %q expected key=val", cli.ErrUsage, a)
	}
	var v any
	if err := yaml.Unmarshal([]byte(val), &v); err != nil {
		return err
	}
	parts := strings.Split(key, ".")
	n := len(parts)
	tmpEnv := env
	for i, part := range parts {
		if i == n-1 {
			tmpEnv[part] = v
			break
		}
		next := tmpEnv[part]
		if next == nil {
			next = map[string]any{}
			tmpEnv[part] = next
		}
		nextEnv, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("cannot set %s: %s is not a map", key, strings.Join(parts[:i+1], "."))
		}
		tmpEnv = nextEnv
	}
	return nil
}
