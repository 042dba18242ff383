package libdiff

import (
	"encoding/json"
	"fmt"

	"github.com/hnmd-format/go-hnmd/ir"

	jsonpatch "github.com/evanphx/json-patch"
)

// TreeJSON serializes d without its source and errors, so that two trees
// compare by structure alone.
func TreeJSON(d *ir.Document, opts ...ir.SerializeOption) ([]byte, error) {
	data, err := ir.Serialize(d, opts...)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	delete(m, "source")
	delete(m, "errors")
	return json.Marshal(m)
}

// MergePatch returns the JSON merge patch turning the tree of from into the
// tree of to. Equal trees give `{}`.
func MergePatch(from, to *ir.Document) ([]byte, error) {
	a, err := TreeJSON(from)
	if err != nil {
		return nil, err
	}
	b, err := TreeJSON(to)
	if err != nil {
		return nil, err
	}
	p, err := jsonpatch.CreateMergePatch(a, b)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	return p, nil
}

func ApplyMergePatch(tree, patch []byte) ([]byte, error) {
	res, err := jsonpatch.MergePatch(tree, patch)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	return res, nil
}

// ApplyJSONPatch applies an RFC 6902 operation list to a serialized tree.
func ApplyJSONPatch(tree, ops []byte) ([]byte, error) {
	p, err := jsonpatch.DecodePatch(ops)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	res, err := p.Apply(tree)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	return res, nil
}
