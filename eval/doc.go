// Package eval expands `$[expr]` references in hnmd documents.
//
// Expressions use the expr language (github.com/expr-lang/expr) and are
// evaluated against an [Env], typically the decoded frontmatter plus values
// given on the command line. Besides the expr builtins the functions
// getenv(name), headings() and headingsAt(level) are available.
//
// # Usage
//
//	env, _ := meta.Decode(doc)
//	out, err := eval.Expand(doc, eval.Env(env))
//
// # Related Packages
//
//   - github.com/hnmd-format/go-hnmd/meta - Frontmatter decoding
//   - github.com/hnmd-format/go-hnmd/encode - Render the expanded document
package eval
