// Package meta decodes the frontmatter block of an hnmd document.
package meta

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hnmd-format/go-hnmd/format"
	"github.com/hnmd-format/go-hnmd/ir"

	"github.com/goccy/go-yaml"
)

var (
	ErrNoFrontmatter = errors.New("no frontmatter")
	ErrDecode        = errors.New("frontmatter decode error")
)

// Decode returns the frontmatter of doc as a map. An empty block decodes to
// an empty map; a block whose top level is not a mapping is an error.
func Decode(doc *ir.Document) (map[string]any, error) {
	i, ok := doc.Frontmatter()
	if !ok {
		return nil, ErrNoFrontmatter
	}
	n := doc.Node(i)
	res := map[string]any{}
	if len(bytes.TrimSpace([]byte(n.Value))) == 0 {
		return res, nil
	}
	var err error
	switch n.Format {
	case format.JSONFormat:
		dec := json.NewDecoder(bytes.NewReader([]byte(n.Value)))
		err = dec.Decode(&res)
	default:
		err = yaml.Unmarshal([]byte(n.Value), &res)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s frontmatter at offset %d: %w", ErrDecode, n.Format, n.Start, err)
	}
	if res == nil {
		res = map[string]any{}
	}
	return res, nil
}

// Env is like Decode but a document without frontmatter gives an empty map.
func Env(doc *ir.Document) (map[string]any, error) {
	res, err := Decode(doc)
	if errors.Is(err, ErrNoFrontmatter) {
		return map[string]any{}, nil
	}
	return res, err
}

// Marshal writes v in format f, with a trailing newline.
func Marshal(v any, f format.Format) ([]byte, error) {
	if f.IsJSON() {
		d, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(d, '\n'), nil
	}
	return yaml.Marshal(v)
}
