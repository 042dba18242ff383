// Package parse builds the hnmd document tree from source bytes.
//
// # Grammar
//
// Blocks are headings (`#` to `######` followed by a blank), fenced code,
// blockquotes, lists, thematic breaks, flow expressions (`{...}` alone on its
// lines), markup elements at block position and paragraphs. Blockquotes and
// list items hold inline content directly; their line prefixes are not part
// of any text node.
//
// Inline content is text, `*` and `_` emphasis resolved with the usual
// delimiter run rules, code spans, links, images, hard breaks, text
// expressions and inline elements.
//
// Markup follows JSX: `<Name attr="v" other={expr} bare>children</Name>`,
// `<Name />` and fragments `<>...</>`.
//
// # Recovery
//
// [Parse] never fails. Each problem is recorded as an [ir.Error] and parsing
// resumes right after it:
//
//   - a closing tag closes the innermost open element even when its name
//     differs; the mismatch is recorded at the closing tag
//   - an element still open when its content ends is closed there
//   - an open tag without '>' becomes a self closing element
//   - an unterminated fence runs to the end of the source
//   - an unterminated expression ends at the next blank line
//   - a `---` block with no closing line is recorded as malformed
//     frontmatter and the source is read as ordinary markdown
//
// At most [MaxErrors] errors are kept, and tags nested deeper than
// [MaxDepth] are read as text, so the work done is linear in the input.
//
// # Usage
//
//	doc := parse.Parse(src)
//	for _, e := range doc.Errors {
//		log.Println(e)
//	}
//
// # Related Packages
//
//   - github.com/hnmd-format/go-hnmd/token for the token stream
//   - github.com/hnmd-format/go-hnmd/ir for the resulting tree
//   - github.com/hnmd-format/go-hnmd/encode to render it back
package parse
