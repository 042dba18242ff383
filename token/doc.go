// Package token splits hnmd source into a flat token stream.
//
// Tokens carry a [Kind] and a byte span. The spans of the tokens returned by
// [Tokenize] are ordered, never overlap and together cover the source, so any
// token can be mapped back to its text with [Token.Slice]. Whitespace and
// newlines are tokens too.
//
// The tokenizer keeps a small stack of modes (markdown, tag, expression, code
// span, code block, frontmatter) and decides every token with at most a
// couple of bytes of lookahead, plus a scan of the current line when a code
// fence may start or end. Unterminated tags and expressions are unwound at
// the next blank line.
//
// # Usage
//
//	src := "# Hello <Card title=\"x\" />"
//	toks := token.Tokenize([]byte(src))
//	for _, t := range toks {
//		fmt.Println(t.Kind, t.Slice(src))
//	}
//
// # Related Packages
//
//   - github.com/hnmd-format/go-hnmd/parse builds trees from tokens
//   - github.com/hnmd-format/go-hnmd/ir holds the resulting document
package token
