package ir

import (
	"github.com/hnmd-format/go-hnmd/format"
)

// Range is a half open range of indices into one of the side tables of a
// Document.
type Range struct {
	Start int
	End   int
}

func (r Range) Len() int {
	return r.End - r.Start
}

// Node is one record of the flat tree. Which of the optional fields are
// meaningful depends on Kind.
type Node struct {
	Kind Kind
	// Start and End delimit the node's source span.
	Start int
	End   int
	// Kids indexes Document.Children.
	Kids Range

	Level   int
	Value   string
	Lang    string
	HasLang bool
	URL     string
	Name    string
	// Attrs indexes Document.Attrs.
	Attrs  Range
	Format format.Format
}

func (n *Node) Span() Range {
	return Range{Start: n.Start, End: n.End}
}

func (n *Node) Contains(off int) bool {
	return n.Start <= off && off < n.End
}

type AttrKind int

const (
	LiteralAttr AttrKind = iota
	ExpressionAttr
)

func (k AttrKind) String() string {
	if k == ExpressionAttr {
		return "expression"
	}
	return "literal"
}

// Attribute is a name with an optional literal or expression value. A bare
// attribute is a literal without a value.
type Attribute struct {
	Name     string
	Kind     AttrKind
	Value    string
	HasValue bool
	Start    int
	End      int
}
