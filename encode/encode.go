package encode

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hnmd-format/go-hnmd/format"
	"github.com/hnmd-format/go-hnmd/ir"
)

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	frontmatter bool
	bullets     [2]byte

	doc   *ir.Document
	Color func(ir.Kind, ColorAttr, string) string
}

// Encode writes the canonical text of doc to w. Parsing the output gives a
// document equal to doc under ir.Equal.
func Encode(doc *ir.Document, w io.Writer, opts ...EncodeOption) error {
	s, err := Render(doc, opts...)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}

// Render returns the canonical text of doc. Blocks are separated by one
// blank line and the text ends with a newline unless it is empty.
func Render(doc *ir.Document, opts ...EncodeOption) (string, error) {
	es := &EncState{
		frontmatter: true,
		bullets:     [2]byte{'-', '+'},
		doc:         doc,
	}
	for _, opt := range opts {
		opt(es)
	}
	if len(doc.Nodes) == 0 {
		return "", nil
	}
	res, err := es.blocks(doc.ChildIndices(doc.Root))
	if err != nil || res == "" {
		return res, err
	}
	return res + "\n", nil
}

func (es *EncState) color(k ir.Kind, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(k, a, s)
}

func (es *EncState) blocks(kids []int) (string, error) {
	parts := make([]string, 0, len(kids))
	// adjacent lists need different markers to stay apart
	var prevMark byte
	for _, c := range kids {
		n := es.doc.Node(c)
		if n.Kind == ir.FrontmatterKind && !es.frontmatter {
			continue
		}
		mark := es.listMark(c, prevMark)
		prevMark = mark
		s, err := es.block(c, mark)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "\n\n"), nil
}

// listMark returns the marker for list i following a list marked prev, or 0
// when i is not a list.
func (es *EncState) listMark(i int, prev byte) byte {
	switch es.doc.Node(i).Kind {
	case ir.ListOrderedKind:
		if prev == '.' {
			return ')'
		}
		return '.'
	case ir.ListUnorderedKind:
		return es.bullet(i, prev)
	}
	return 0
}

// bullet returns the first configured bullet, then the other one, then any
// bullet, that differs from prev and does not turn an item line into a
// thematic break.
func (es *EncState) bullet(i int, prev byte) byte {
	cands := []byte{es.bullets[0], es.bullets[1], '-', '+', '*'}
	for _, b := range cands {
		if b == prev {
			continue
		}
		ok := true
		for _, c := range es.doc.ChildIndices(i) {
			if isBreakLine(b, es.firstText(c)) {
				ok = false
				break
			}
		}
		if ok {
			return b
		}
	}
	return cands[0]
}

// firstText returns the plain text at the start of list item i up to the end
// of its first line.
func (es *EncState) firstText(i int) string {
	var b strings.Builder
	for _, c := range es.doc.ChildIndices(i) {
		n := es.doc.Node(c)
		if n.Kind != ir.TextKind {
			b.WriteByte('x')
			break
		}
		if j := strings.IndexAny(n.Value, "\r\n"); j >= 0 {
			b.WriteString(n.Value[:j])
			break
		}
		b.WriteString(n.Value)
	}
	return b.String()
}

// isBreakLine reports whether the line `b text` reads as a thematic break.
func isBreakLine(b byte, text string) bool {
	if b != '-' && b != '*' && b != '_' {
		return false
	}
	n := 1
	for k := 0; k < len(text); k++ {
		switch text[k] {
		case b:
			n++
		case ' ', '\t':
		default:
			return false
		}
	}
	return n >= 3
}

func (es *EncState) block(i int, mark byte) (string, error) {
	n := es.doc.Node(i)
	switch n.Kind {
	case ir.FrontmatterKind:
		if n.Format.IsJSON() {
			return es.fenced(n.Kind, format.JSONFenceLabel, n.Value), nil
		}
		delim := es.color(n.Kind, MarkerColor, format.YAMLDelim)
		if n.Value == "" {
			return delim + "\n" + delim, nil
		}
		return delim + "\n" + es.color(n.Kind, ValueColor, n.Value) + "\n" + delim, nil
	case ir.HeadingKind:
		s, err := es.inlines(es.doc.ChildIndices(i))
		if err != nil {
			return "", err
		}
		return es.color(n.Kind, MarkerColor, strings.Repeat("#", n.Level)) + " " + s, nil
	case ir.ParagraphKind:
		return es.inlines(es.doc.ChildIndices(i))
	case ir.CodeBlockKind:
		return es.fenced(n.Kind, n.Lang, n.Value), nil
	case ir.BlockquoteKind:
		s, err := es.inlines(es.doc.ChildIndices(i))
		if err != nil {
			return "", err
		}
		p := es.color(n.Kind, MarkerColor, ">")
		return prefixLines(s, p+" ", p+" "), nil
	case ir.ListUnorderedKind, ir.ListOrderedKind:
		return es.list(i, mark)
	case ir.HrKind:
		// '---' could open frontmatter when first in the document
		return es.color(n.Kind, MarkerColor, "***"), nil
	case ir.ElementKind, ir.FragmentKind:
		open, close, err := es.tags(i)
		if err != nil {
			return "", err
		}
		body, err := es.blocks(es.doc.ChildIndices(i))
		if err != nil {
			return "", err
		}
		if body == "" {
			return open + "\n" + close, nil
		}
		return open + "\n" + body + "\n" + close, nil
	case ir.FlowExpressionKind:
		return es.openExpression(n.Kind, n.Value), nil
	}
	return es.inline(i)
}

// fenced writes a code fence longer than any backtick run starting a line of
// the value.
func (es *EncState) fenced(k ir.Kind, lang, value string) string {
	n := 3
	for _, ln := range strings.FieldsFunc(value, isLineBreak) {
		t := strings.TrimLeft(ln, " \t")
		if r := len(t) - len(strings.TrimLeft(t, "`")); r >= n {
			n = r + 1
		}
	}
	fence := es.color(k, MarkerColor, strings.Repeat("`", n))
	if value == "" {
		return fence + lang + "\n" + fence
	}
	return fence + lang + "\n" + es.color(k, ValueColor, value) + "\n" + fence
}

func isLineBreak(r rune) bool {
	return r == '\n' || r == '\r'
}

// list writes the items of list i with mark as the bullet, or after the
// number of each item of an ordered list.
func (es *EncState) list(i int, mark byte) (string, error) {
	n := es.doc.Node(i)
	items := es.doc.ChildIndices(i)
	lines := make([]string, 0, len(items))
	for k, c := range items {
		marker := string(mark)
		if n.Kind == ir.ListOrderedKind {
			marker = strconv.Itoa(k+1) + marker
		}
		s, err := es.inlines(es.doc.ChildIndices(c))
		if err != nil {
			return "", err
		}
		pad := strings.Repeat(" ", len(marker)+1)
		lines = append(lines, prefixLines(s, es.color(n.Kind, MarkerColor, marker)+" ", pad))
	}
	return strings.Join(lines, "\n"), nil
}

// prefixLines puts first before the first line of s and rest before the
// others. Trailing blanks of a prefix are dropped on empty lines. Line breaks
// are kept as they are: "\n", "\r\n" or a lone "\r".
func prefixLines(s, first, rest string) string {
	var b strings.Builder
	p := first
	for {
		ln, brk := s, ""
		j := strings.IndexAny(s, "\r\n")
		if j >= 0 {
			e := j + 1
			if s[j] == '\r' && e < len(s) && s[e] == '\n' {
				e++
			}
			ln, brk, s = s[:j], s[j:e], s[e:]
		}
		if ln == "" {
			b.WriteString(strings.TrimRight(p, " "))
		} else {
			b.WriteString(p)
		}
		b.WriteString(ln)
		b.WriteString(brk)
		if j < 0 {
			return b.String()
		}
		p = rest
	}
}

func (es *EncState) inlines(kids []int) (string, error) {
	parts := make([]string, len(kids))
	for k, c := range kids {
		if isEmphasis(es.doc.Node(c).Kind) {
			continue
		}
		s, err := es.inline(c)
		if err != nil {
			return "", err
		}
		parts[k] = s
	}
	var b strings.Builder
	var last byte
	for k, c := range kids {
		n := es.doc.Node(c)
		s := parts[k]
		if isEmphasis(n.Kind) {
			inner, err := es.inlines(es.doc.ChildIndices(c))
			if err != nil {
				return "", err
			}
			var next byte
			if k+1 < len(kids) && parts[k+1] != "" {
				next = parts[k+1][0]
			}
			mark := string(es.delimFor(kids, k, last, inner, next))
			if n.Kind == ir.StrongKind {
				mark += mark
			}
			mark = es.color(n.Kind, MarkerColor, mark)
			s = mark + inner + mark
		}
		if s != "" {
			b.WriteString(s)
			last = s[len(s)-1]
		}
	}
	return b.String(), nil
}

func isEmphasis(k ir.Kind) bool {
	return k == ir.StrongKind || k == ir.EmphasisKind
}

// delimFor picks the emphasis character for kids[k], whose content renders
// as inner, between the bytes prev and next. '*' is preferred. A character
// is usable when the parser would see the rendered runs open and close at
// the same places: the runs must not touch the same character, no literal
// copy of it may sit inside, and both must pass the flanking rules. When the
// source split one run between literal text and this node, the source
// character is written back so the run is whole again.
func (es *EncState) delimFor(kids []int, k int, prev byte, inner string, next byte) byte {
	i := kids[k]
	n := es.doc.Node(i)
	var orig byte
	if n.Start < len(es.doc.Source) {
		if c := es.doc.Source[n.Start]; c == '*' || c == '_' {
			orig = c
		}
	}
	if orig != 0 {
		if k > 0 && prev == orig {
			if p := es.doc.Node(kids[k-1]); p.Kind == ir.TextKind && p.End == n.Start {
				return orig
			}
		}
		if k+1 < len(kids) && next == orig {
			if q := es.doc.Node(kids[k+1]); q.Kind == ir.TextKind && q.Start == n.End {
				return orig
			}
		}
	}
	for _, c := range []byte{'*', '_'} {
		if es.delimFits(i, c, prev, inner, next) {
			return c
		}
	}
	if orig != 0 {
		return orig
	}
	return '*'
}

func (es *EncState) delimFits(i int, c, prev byte, inner string, next byte) bool {
	if inner == "" {
		return false
	}
	first, last := inner[0], inner[len(inner)-1]
	if prev == c || first == c || last == c || next == c || es.hasLiteral(i, c) {
		return false
	}
	open, _ := flanking(c, prev, first)
	_, close := flanking(c, last, next)
	return open && close
}

// hasLiteral reports whether a text node below i contains c.
func (es *EncState) hasLiteral(i int, c byte) bool {
	for _, k := range es.doc.ChildIndices(i) {
		n := es.doc.Node(k)
		if n.Kind == ir.TextKind && strings.IndexByte(n.Value, c) >= 0 {
			return true
		}
		if es.hasLiteral(k, c) {
			return true
		}
	}
	return false
}

// flanking applies the parser's rules to a run of c between before and
// after; 0 stands for the edge of the content and counts as a blank.
func flanking(c, before, after byte) (canOpen, canClose bool) {
	if before == 0 {
		before = ' '
	}
	if after == 0 {
		after = ' '
	}
	left := !isSpace(after) && (!isPunct(after) || isSpace(before) || isPunct(before))
	right := !isSpace(before) && (!isPunct(before) || isSpace(after) || isPunct(after))
	if c == '*' {
		return left, right
	}
	return left && (!right || isPunct(before)), right && (!left || isPunct(after))
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

func isPunct(c byte) bool {
	return strings.IndexByte("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", c) >= 0
}

func (es *EncState) inline(i int) (string, error) {
	n := es.doc.Node(i)
	switch n.Kind {
	case ir.TextKind:
		return n.Value, nil
	case ir.StrongKind, ir.EmphasisKind:
		return es.inlines([]int{i})
	case ir.CodeInlineKind:
		ticks := strings.Repeat("`", tickRun(n.Value))
		return es.color(n.Kind, MarkerColor, ticks) + es.color(n.Kind, ValueColor, n.Value) + es.color(n.Kind, MarkerColor, ticks), nil
	case ir.LinkKind, ir.ImageKind:
		s, err := es.inlines(es.doc.ChildIndices(i))
		if err != nil {
			return "", err
		}
		open := "["
		if n.Kind == ir.ImageKind {
			open = "!["
		}
		return es.color(n.Kind, MarkerColor, open) + s + es.color(n.Kind, MarkerColor, "](") +
			es.color(n.Kind, URLColor, n.URL) + es.color(n.Kind, MarkerColor, ")"), nil
	case ir.HardBreakKind:
		return es.color(n.Kind, MarkerColor, "\\") + "\n", nil
	case ir.TextExpressionKind:
		return es.openExpression(n.Kind, n.Value), nil
	case ir.SelfClosingElementKind:
		open, _, err := es.tags(i)
		return open, err
	case ir.ElementKind, ir.FragmentKind:
		open, close, err := es.tags(i)
		if err != nil {
			return "", err
		}
		s, err := es.inlines(es.doc.ChildIndices(i))
		if err != nil {
			return "", err
		}
		return open + s + close, nil
	case ir.RootKind:
		return "", fmt.Errorf("%w: root inside content", ErrEncoding)
	}
	return es.block(i, es.listMark(i, 0))
}

// tickRun returns the shortest backtick run length not found in v.
func tickRun(v string) int {
	seen := map[int]bool{}
	run := 0
	for j := 0; j <= len(v); j++ {
		if j < len(v) && v[j] == '`' {
			run++
			continue
		}
		if run > 0 {
			seen[run] = true
		}
		run = 0
	}
	n := 1
	for seen[n] {
		n++
	}
	return n
}

func (es *EncState) expression(k ir.Kind, v string) string {
	return es.color(k, MarkerColor, "{") + es.color(k, ValueColor, v) + es.color(k, MarkerColor, "}")
}

// openExpression is expression for content expressions. A value with more
// '{' than '}' comes from an expression that was never closed; no closing
// brace can give it back, so it is written open again, which reads back the
// same at the end of its block.
func (es *EncState) openExpression(k ir.Kind, v string) string {
	if strings.Count(v, "{") > strings.Count(v, "}") {
		return es.color(k, MarkerColor, "{") + es.color(k, ValueColor, v)
	}
	return es.expression(k, v)
}

// tags returns the open and close tags of element i. For a self closing
// element the open tag is the whole element.
func (es *EncState) tags(i int) (string, string, error) {
	n := es.doc.Node(i)
	mk := func(s string) string { return es.color(n.Kind, MarkerColor, s) }
	if n.Kind == ir.FragmentKind {
		return mk("<>"), mk("</>"), nil
	}
	var b strings.Builder
	b.WriteString(mk("<"))
	b.WriteString(es.color(n.Kind, NameColor, n.Name))
	for _, a := range es.doc.Attributes(i) {
		s, err := es.attr(n.Kind, a)
		if err != nil {
			return "", "", err
		}
		b.WriteString(" ")
		b.WriteString(s)
	}
	if n.Kind == ir.SelfClosingElementKind {
		b.WriteString(" " + mk("/>"))
		return b.String(), "", nil
	}
	b.WriteString(mk(">"))
	return b.String(), mk("</") + es.color(n.Kind, NameColor, n.Name) + mk(">"), nil
}

func (es *EncState) attr(k ir.Kind, a ir.Attribute) (string, error) {
	name := es.color(k, AttrNameColor, a.Name)
	if a.Kind == ir.ExpressionAttr {
		v := es.expression(k, a.Value)
		if a.Name == "" {
			return v, nil
		}
		return name + "=" + v, nil
	}
	if !a.HasValue {
		return name, nil
	}
	if strings.ContainsAny(a.Value, "\r\n") {
		return "", fmt.Errorf("%w: attribute %s has a line break in its value", ErrEncoding, a.Name)
	}
	q := `"`
	if strings.Contains(a.Value, `"`) {
		if strings.Contains(a.Value, `'`) {
			return "", fmt.Errorf("%w: attribute %s value %q has both quote characters", ErrEncoding, a.Name, a.Value)
		}
		q = `'`
	}
	return name + "=" + es.color(k, AttrValueColor, q+a.Value+q), nil
}

// MustString renders doc and panics on error.
func MustString(doc *ir.Document, opts ...EncodeOption) string {
	s, err := Render(doc, opts...)
	if err != nil {
		panic(err)
	}
	return s
}
