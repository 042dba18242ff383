// Package libdiff computes differences between hnmd sources and trees.
//
// # Usage
//
//	// line diff of a source against its canonical rendering
//	out := libdiff.Unified("a.md", "a.md (formatted)", src, formatted, 3)
//
//	// merge patch between two parsed trees
//	patch, err := libdiff.MergePatch(docA, docB)
//
// Text patches use the diff-match-patch text format; tree patches are JSON
// merge patches (RFC 7386) over the serialized tree without its source.
//
// # Related Packages
//
//   - github.com/hnmd-format/go-hnmd/ir - Tree and serialization
//   - github.com/hnmd-format/go-hnmd/encode - Canonical rendering
package libdiff
