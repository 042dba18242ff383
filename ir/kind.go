package ir

import (
	"fmt"
	"strconv"
)

// Kind is the closed set of node kinds.
type Kind int

const (
	RootKind Kind = iota
	HeadingKind
	ParagraphKind
	TextKind
	StrongKind
	EmphasisKind
	CodeInlineKind
	CodeBlockKind
	LinkKind
	ImageKind
	BlockquoteKind
	ListUnorderedKind
	ListOrderedKind
	ListItemKind
	HrKind
	HardBreakKind
	ElementKind
	SelfClosingElementKind
	FragmentKind
	TextExpressionKind
	FlowExpressionKind
	FrontmatterKind
)

var kindNames = [...]string{
	RootKind:               "root",
	HeadingKind:            "heading",
	ParagraphKind:          "paragraph",
	TextKind:               "text",
	StrongKind:             "strong",
	EmphasisKind:           "emphasis",
	CodeInlineKind:         "code_inline",
	CodeBlockKind:          "code_block",
	LinkKind:               "link",
	ImageKind:              "image",
	BlockquoteKind:         "blockquote",
	ListUnorderedKind:      "list_unordered",
	ListOrderedKind:        "list_ordered",
	ListItemKind:           "list_item",
	HrKind:                 "hr",
	HardBreakKind:          "hard_break",
	ElementKind:            "element",
	SelfClosingElementKind: "self_closing_element",
	FragmentKind:           "fragment",
	TextExpressionKind:     "text_expression",
	FlowExpressionKind:     "flow_expression",
	FrontmatterKind:        "frontmatter",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Kinds returns every node kind in declaration order.
func Kinds() []Kind {
	res := make([]Kind, len(kindNames))
	for i := range kindNames {
		res[i] = Kind(i)
	}
	return res
}

func ParseKind(v string) (Kind, error) {
	for k, name := range kindNames {
		if name == v {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrBadKind, v)
}

func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("%w: %d", ErrBadKind, int(k))
	}
	return []byte(kindNames[k]), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	pk, err := ParseKind(string(d))
	if err != nil {
		return err
	}
	*k = pk
	return nil
}

// HasChildren reports whether nodes of kind k carry a children list.
func (k Kind) HasChildren() bool {
	switch k {
	case TextKind, CodeInlineKind, CodeBlockKind, HrKind, HardBreakKind,
		SelfClosingElementKind, TextExpressionKind, FlowExpressionKind, FrontmatterKind:
		return false
	}
	return true
}

func (k Kind) HasValue() bool {
	switch k {
	case TextKind, CodeInlineKind, CodeBlockKind, TextExpressionKind, FlowExpressionKind, FrontmatterKind:
		return true
	}
	return false
}

func (k Kind) IsElement() bool {
	return k == ElementKind || k == SelfClosingElementKind
}

func (k Kind) IsBlock() bool {
	switch k {
	case HeadingKind, ParagraphKind, CodeBlockKind, BlockquoteKind, ListUnorderedKind,
		ListOrderedKind, HrKind, FlowExpressionKind, FrontmatterKind:
		return true
	}
	return false
}
