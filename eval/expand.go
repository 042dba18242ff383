package eval

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/hnmd-format/go-hnmd/debug"
	"github.com/hnmd-format/go-hnmd/ir"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

var ErrEval = errors.New("evaluation error")

type Env map[string]any

type expandOpts struct {
	expressions bool
}

type ExpandOption func(*expandOpts)

// ExpandExpressions also evaluates text expressions such as `{name}` and
// replaces them with text.
func ExpandExpressions(v bool) ExpandOption {
	return func(o *expandOpts) { o.expressions = v }
}

// Expand returns a copy of doc where every `$[expr]` in text and in literal
// attribute values is replaced by the value of expr in env. Code, frontmatter
// and the source are left as they are, so spans of changed nodes still refer
// to the original text.
func Expand(doc *ir.Document, env Env, opts ...ExpandOption) (*ir.Document, error) {
	o := &expandOpts{}
	for _, opt := range opts {
		opt(o)
	}
	res := *doc
	res.Nodes = slices.Clone(doc.Nodes)
	res.Attrs = slices.Clone(doc.Attrs)
	eo := exprOpts(doc)
	for i := range res.Nodes {
		n := &res.Nodes[i]
		switch n.Kind {
		case ir.TextKind:
			v, err := ExpandString(n.Value, env, eo...)
			if err != nil {
				return nil, fmt.Errorf("text at offset %d: %w", n.Start, err)
			}
			n.Value = v
		case ir.TextExpressionKind:
			if !o.expressions {
				continue
			}
			v, err := evalString(strings.TrimSpace(n.Value), env, eo)
			if err != nil {
				return nil, fmt.Errorf("expression at offset %d: %w", n.Start, err)
			}
			n.Kind = ir.TextKind
			n.Value = v
		}
	}
	for i := range res.Attrs {
		a := &res.Attrs[i]
		if a.Kind != ir.LiteralAttr || !a.HasValue {
			continue
		}
		v, err := ExpandString(a.Value, env, eo...)
		if err != nil {
			return nil, fmt.Errorf("attribute %s at offset %d: %w", a.Name, a.Start, err)
		}
		a.Value = v
	}
	return &res, nil
}

// ExpandString replaces each `$[expr]` in v. Inside the brackets a backslash
// escapes the next byte, so `\]` does not end the expression. A `$[` without
// a closing bracket is kept as is.
func ExpandString(v string, env Env, opts ...expr.Option) (string, error) {
	if !strings.Contains(v, "$[") {
		return v, nil
	}
	var out, key []byte
	i := 0
	for i < len(v) {
		if v[i] != '$' || i+1 >= len(v) || v[i+1] != '[' {
			out = append(out, v[i])
			i++
			continue
		}
		key = key[:0]
		j := i + 2
		closed := false
		for j < len(v) {
			c := v[j]
			if c == '\\' && j+1 < len(v) {
				key = append(key, v[j+1])
				j += 2
				continue
			}
			if c == ']' {
				closed = true
				break
			}
			key = append(key, c)
			j++
		}
		if !closed {
			out = append(out, v[i:]...)
			break
		}
		s, err := evalString(strings.TrimSpace(string(key)), env, opts)
		if err != nil {
			return "", err
		}
		out = append(out, s...)
		i = j + 1
	}
	return string(out), nil
}

func evalString(src string, env Env, opts []expr.Option) (string, error) {
	program, err := expr.Compile(src, opts...)
	if err != nil {
		return "", fmt.Errorf("%w: compiling %q: %w", ErrEval, src, err)
	}
	x, err := vm.Run(program, map[string]any(env))
	if err != nil {
		return "", fmt.Errorf("%w: evaluating %q: %w", ErrEval, src, err)
	}
	if debug.Eval() {
		debug.Logf("eval %q gave %#v\n", src, x)
	}
	return anyToString(x)
}

func anyToString(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case int:
		return strconv.Itoa(x), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(x), nil
	default:
		d, err := json.Marshal(x)
		if err != nil {
			return "", fmt.Errorf("%w: cannot format %T: %w", ErrEval, v, err)
		}
		return string(d), nil
	}
}
