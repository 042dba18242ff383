package ir

import (
	"bytes"
	"encoding/json"
)

type serializeOpts struct {
	positions      bool
	prefix, indent string
}

type SerializeOption func(*serializeOpts)

// SerializePositions adds a position object with the source span to every
// node.
func SerializePositions(v bool) SerializeOption {
	return func(o *serializeOpts) {
		o.positions = v
	}
}

func SerializeIndent(prefix, indent string) SerializeOption {
	return func(o *serializeOpts) {
		o.prefix = prefix
		o.indent = indent
	}
}

// jsonNode fixes the field order of the interchange format. A nil pointer
// marks a field that does not apply to the node kind; a non nil pointer is
// always written, even to an empty value.
type jsonNode struct {
	Type       string       `json:"type"`
	Level      *int         `json:"level,omitempty"`
	Name       *string      `json:"name,omitempty"`
	Attributes *[]jsonAttr  `json:"attributes,omitempty"`
	URL        *string      `json:"url,omitempty"`
	Format     *string      `json:"format,omitempty"`
	Lang       *string      `json:"lang,omitempty"`
	Value      *string      `json:"value,omitempty"`
	Position   *jsonPos     `json:"position,omitempty"`
	Children   *[]*jsonNode `json:"children,omitempty"`
	Source     *string      `json:"source,omitempty"`
	Errors     *[]jsonError `json:"errors,omitempty"`
}

type jsonAttr struct {
	Name  string  `json:"name"`
	Type  string  `json:"type"`
	Value *string `json:"value,omitempty"`
}

type jsonPos struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type jsonError struct {
	Offset  int    `json:"offset"`
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

// Serialize encodes d in the interchange format. The output depends only on
// d and the options.
func Serialize(d *Document, opts ...SerializeOption) ([]byte, error) {
	o := &serializeOpts{}
	for _, opt := range opts {
		opt(o)
	}
	buf := bytes.NewBuffer(nil)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent(o.prefix, o.indent)
	if err := enc.Encode(d.toJSON(o)); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

func (d *Document) MarshalJSON() ([]byte, error) {
	return Serialize(d)
}

func (d *Document) toJSON(o *serializeOpts) *jsonNode {
	if len(d.Nodes) == 0 {
		return &jsonNode{Type: RootKind.String(), Children: &[]*jsonNode{}, Source: &d.Source, Errors: &[]jsonError{}}
	}
	res := d.nodeJSON(d.Root, o)
	src := d.Source
	res.Source = &src
	errs := make([]jsonError, 0, len(d.Errors))
	for _, e := range d.Errors {
		errs = append(errs, jsonError{Offset: e.Offset, Message: e.Message, Kind: e.Kind.String()})
	}
	res.Errors = &errs
	return res
}

func (d *Document) nodeJSON(i int, o *serializeOpts) *jsonNode {
	n := &d.Nodes[i]
	res := &jsonNode{Type: n.Kind.String()}
	switch n.Kind {
	case HeadingKind:
		level := n.Level
		res.Level = &level
	case CodeBlockKind:
		if n.HasLang {
			lang := n.Lang
			res.Lang = &lang
		}
	case LinkKind, ImageKind:
		url := n.URL
		res.URL = &url
	case ElementKind, SelfClosingElementKind:
		name := n.Name
		res.Name = &name
		attrs := make([]jsonAttr, 0, n.Attrs.Len())
		for _, a := range d.Attributes(i) {
			ja := jsonAttr{Name: a.Name, Type: a.Kind.String()}
			if a.HasValue {
				v := a.Value
				ja.Value = &v
			}
			attrs = append(attrs, ja)
		}
		res.Attributes = &attrs
	case FrontmatterKind:
		f := n.Format.String()
		res.Format = &f
	}
	if n.Kind.HasValue() {
		v := n.Value
		res.Value = &v
	}
	if o.positions {
		res.Position = &jsonPos{Start: n.Start, End: n.End}
	}
	if n.Kind.HasChildren() {
		kids := make([]*jsonNode, 0, n.Kids.Len())
		for _, c := range d.ChildIndices(i) {
			kids = append(kids, d.nodeJSON(c, o))
		}
		res.Children = &kids
	}
	return res
}
