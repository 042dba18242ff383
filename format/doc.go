// Package format names the notations a frontmatter block can be written in.
//
// A yaml block sits between two [YAMLDelim] lines at the very start of a
// document. A json block is the first block of a document, written as a code
// fence labelled [JSONFenceLabel]. The parser stores either one verbatim;
// github.com/hnmd-format/go-hnmd/meta decodes them on request.
package format
