// Package ir holds the document tree produced by the parser.
//
// # Overview
//
// A [Document] owns the source text, its tokens and a flat slice of [Node]
// records. Nodes do not point at each other: a node names its children with a
// [Range] into Document.Children and its attributes with a Range into
// Document.Attrs. The root sits at index 0; every other node is appended
// after its children, so walking the slice from index 1 visits children
// before parents.
//
// Textual fields (Node.Value, Attribute.Value, Node.URL, ...) are substrings
// of the source; nothing is unescaped or trimmed while building the tree.
//
// # Queries
//
//   - [Document.NodeAtOffset] finds the innermost node at a byte offset
//   - [Document.ChildIndices] lists children in document order
//   - [Document.TokenSlice] maps a token back to its text
//   - [Document.Walk] visits nodes in pre-order
//
// # Interchange
//
// [Serialize] writes the fixed JSON schema consumed outside this module:
//
//	{"type":"root","children":[...],"source":"...","errors":[...]}
//
// Each node carries "type", "children" when its kind has children, and the
// kind specific fields: heading level, element name and attributes, link and
// image url, code block lang, frontmatter format, and value for text, code,
// expressions and frontmatter.
//
// # Related Packages
//
//   - github.com/hnmd-format/go-hnmd/parse builds Documents
//   - github.com/hnmd-format/go-hnmd/encode renders Documents as canonical text
package ir
