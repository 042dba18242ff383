package ir

import (
	"slices"

	"github.com/hnmd-format/go-hnmd/token"
)

// Document is the result of one parse. Nodes live in a flat slice; each node
// refers to its children through a range of Children. The root is always at
// index 0. Every other node is stored after all of its children.
//
// A Document is never modified once returned by the parser and may be shared
// between goroutines.
type Document struct {
	Source   string
	Tokens   []token.Token
	Nodes    []Node
	Children []int
	Attrs    []Attribute
	Root     int
	Errors   []Error
}

func (d *Document) Node(i int) *Node {
	return &d.Nodes[i]
}

// ChildIndices returns the children of node i in document order.
func (d *Document) ChildIndices(i int) []int {
	r := d.Nodes[i].Kids
	return slices.Clip(d.Children[r.Start:r.End])
}

func (d *Document) Attributes(i int) []Attribute {
	r := d.Nodes[i].Attrs
	return slices.Clip(d.Attrs[r.Start:r.End])
}

// TokenSlice returns the source text covered by token i.
func (d *Document) TokenSlice(i int) string {
	return d.Tokens[i].Slice(d.Source)
}

// Text returns the source text covered by node i.
func (d *Document) Text(i int) string {
	n := &d.Nodes[i]
	return d.Source[n.Start:n.End]
}

// NodeAtOffset returns the innermost node whose span contains off. When a
// node and its child share a span the child is returned, and when siblings
// both contain off the later one wins. The root is returned for an offset at
// the very end of the source.
func (d *Document) NodeAtOffset(off int) (int, bool) {
	if len(d.Nodes) == 0 || off < 0 || off > len(d.Source) {
		return 0, false
	}
	cur := d.Root
	for {
		next := -1
		for _, c := range d.ChildIndices(cur) {
			if d.Nodes[c].Contains(off) {
				next = c
			}
		}
		if next < 0 {
			return cur, true
		}
		cur = next
	}
}

// Walk calls fn for every node in pre-order starting at the root. Children of
// a node are skipped when fn returns false for it.
func (d *Document) Walk(fn func(i, depth int) bool) {
	if len(d.Nodes) == 0 {
		return
	}
	type item struct{ i, depth int }
	stack := []item{{d.Root, 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(it.i, it.depth) {
			continue
		}
		kids := d.ChildIndices(it.i)
		for j := len(kids) - 1; j >= 0; j-- {
			stack = append(stack, item{kids[j], it.depth + 1})
		}
	}
}

// Frontmatter returns the index of the frontmatter node, which can only be
// the first child of the root.
func (d *Document) Frontmatter() (int, bool) {
	kids := d.ChildIndices(d.Root)
	if len(kids) > 0 && d.Nodes[kids[0]].Kind == FrontmatterKind {
		return kids[0], true
	}
	return 0, false
}

func (d *Document) PosDoc() *token.PosDoc {
	return token.NewPosDoc([]byte(d.Source))
}
