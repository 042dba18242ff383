package parse

import (
	"github.com/hnmd-format/go-hnmd/format"
	"github.com/hnmd-format/go-hnmd/ir"
	"github.com/hnmd-format/go-hnmd/token"
)

// blocks parses blocks until EOF or, inside an element, until a closing tag
// at block position. first allows an hnmd fence at offset 0 to become
// frontmatter.
func (p *parser) blocks(kids []int, first bool) []int {
	for {
		p.skipBlank()
		switch p.kind() {
		case token.EOF:
			return kids
		case token.CloseTagOpen:
			if len(p.open) > 0 {
				return kids
			}
		}
		before := p.i
		if n, ok := p.block(first); ok {
			kids = append(kids, n)
		}
		first = false
		if p.i == before {
			p.i++
		}
	}
}

func (p *parser) block(first bool) (int, bool) {
	switch p.kind() {
	case token.Hash:
		if p.isHeading(p.i) {
			return p.heading(), true
		}
	case token.FenceOpen:
		return p.codeBlock(first), true
	case token.Gt:
		return p.blockquote(), true
	case token.TagOpen:
		if len(p.open) < p.opts.maxDepth {
			return p.element(p.eof(), func() []int { return p.blocks(nil, false) }), true
		}
	case token.LBrace:
		if n, ok := p.flowExpression(); ok {
			return n, true
		}
	}
	if p.isHr(p.i) {
		return p.hr(), true
	}
	if _, ok := p.listMarker(p.i); ok {
		return p.list(), true
	}
	return p.paragraph(), true
}

func (p *parser) skipBlank() {
	for {
		switch p.kind() {
		case token.Space, token.Newline:
			p.i++
		default:
			return
		}
	}
}

func (p *parser) skipSpaces(j int) int {
	for p.kindAt(j) == token.Space {
		j++
	}
	return j
}

func isLineEnd(k token.Kind) bool {
	return k == token.Newline || k == token.EOF
}

// lineEnd returns the index of the Newline or EOF token ending the line
// containing token j.
func (p *parser) lineEnd(j int) int {
	return p.nextNL[j]
}

func (p *parser) markSkip(j int) {
	p.skip[j] = true
	p.skipped = append(p.skipped, j)
}

// clearSkips drops the prefix marks a container set past the point where its
// content was cut short by a closing tag.
func (p *parser) clearSkips() {
	for _, j := range p.skipped {
		if j >= p.i {
			p.skip[j] = false
		}
	}
	p.skipped = p.skipped[:0]
}

func (p *parser) isBlankLine(j int) bool {
	return isLineEnd(p.kindAt(p.skipSpaces(j)))
}

// blankAfter reports whether the Newline at j is followed by a blank line.
func (p *parser) blankAfter(j int) bool {
	return p.isBlankLine(j + 1)
}

// trimEnd moves e back over trailing blanks and container prefixes.
func (p *parser) trimEnd(from, e int) int {
	for e > from {
		k := p.toks[e-1].Kind
		if k != token.Space && k != token.Newline && !p.skip[e-1] {
			break
		}
		e--
	}
	return e
}

func (p *parser) isHeading(j int) bool {
	t := p.toks[j]
	return t.Kind == token.Hash && t.Len() <= 6 && p.kindAt(j+1) == token.Space
}

func (p *parser) isHr(j int) bool {
	k := p.kindAt(j)
	if k != token.Dash && k != token.Star && k != token.Underscore {
		return false
	}
	n := 0
	for ; ; j++ {
		switch p.kindAt(j) {
		case k:
			n += p.toks[j].Len()
		case token.Space:
		default:
			return n >= 3 && isLineEnd(p.kindAt(j))
		}
	}
}

// interrupts reports whether a line whose first non blank token is j starts
// a block that ends a running paragraph.
func (p *parser) interrupts(j int) bool {
	switch p.kindAt(j) {
	case token.FenceOpen, token.Gt:
		return true
	case token.Hash:
		return p.isHeading(j)
	}
	if p.isHr(j) {
		return true
	}
	m, ok := p.listMarker(j)
	return ok && (!m.ordered || m.digits == "1")
}

func (p *parser) heading() int {
	h := p.tok()
	p.i += 2
	from := p.i
	to := p.trimEnd(from, p.lineEnd(from))
	kids := p.inlines(to, true, true)
	return p.addNode(ir.Node{
		Kind:  ir.HeadingKind,
		Start: h.Start,
		End:   p.lastEnd(h.End),
		Level: h.Len(),
	}, kids)
}

func (p *parser) hr() int {
	start := p.tok().Start
	e := p.lineEnd(p.i)
	p.i = p.trimEnd(p.i, e)
	return p.addNode(ir.Node{Kind: ir.HrKind, Start: start, End: p.lastEnd(start)}, nil)
}

// paragraphEnd returns the line end closing a paragraph that includes token
// from. Results are kept per line, since a paragraph cut short by a closing
// tag is resumed on the same lines once the element is closed.
func (p *parser) paragraphEnd(from int) int {
	first := p.lineEnd(from)
	if e := p.paraEnd[first]; e > 0 {
		return e
	}
	lines := []int{first}
	e := first
	for p.kindAt(e) == token.Newline {
		next := e + 1
		if p.isBlankLine(next) || p.interrupts(p.skipSpaces(next)) {
			break
		}
		e = p.lineEnd(next)
		lines = append(lines, e)
	}
	for _, l := range lines {
		p.paraEnd[l] = e
	}
	return e
}

func (p *parser) paragraph() int {
	from := p.i
	to := p.trimEnd(from, p.paragraphEnd(from))
	start := p.toks[from].Start
	kids := p.inlines(to, true, true)
	return p.addNode(ir.Node{Kind: ir.ParagraphKind, Start: start, End: p.lastEnd(start)}, kids)
}

func (p *parser) blockquote() int {
	gt := p.tok()
	p.i++
	if p.kind() == token.Space {
		p.i++
	}
	from := p.i
	e := p.lineEnd(from)
	for p.kindAt(e) == token.Newline {
		j := e + 1
		if p.kindAt(j) == token.Space {
			j++
		}
		if p.kindAt(j) != token.Gt {
			break
		}
		for k := e + 1; k <= j; k++ {
			p.markSkip(k)
		}
		j++
		if p.kindAt(j) == token.Space {
			p.markSkip(j)
			j++
		}
		e = p.lineEnd(j)
	}
	to := p.trimEnd(from, e)
	kids := p.inlines(to, true, true)
	p.clearSkips()
	return p.addNode(ir.Node{Kind: ir.BlockquoteKind, Start: gt.Start, End: p.lastEnd(gt.End)}, kids)
}

type listMark struct {
	ordered bool
	// style is the bullet character or the delimiter after the number.
	style  byte
	digits string
	// next is the index of the token after the marker.
	next int
}

func (p *parser) listMarker(j int) (listMark, bool) {
	t := p.toks[j]
	m := listMark{}
	switch t.Kind {
	case token.Dash, token.Star, token.Plus:
		if t.Len() != 1 {
			return m, false
		}
		m.style = p.src[t.Start]
		m.next = j + 1
	case token.Digits:
		if t.Len() > 9 {
			return m, false
		}
		d := p.kindAt(j + 1)
		if d != token.Dot && d != token.RParen {
			return m, false
		}
		m.ordered = true
		m.digits = t.Slice(p.src)
		m.style = p.src[p.toks[j+1].Start]
		m.next = j + 2
	default:
		return m, false
	}
	switch p.kindAt(m.next) {
	case token.Space, token.Newline, token.EOF:
		return m, true
	}
	return m, false
}

// indentOf returns the width of the blanks before token j on its line.
func (p *parser) indentOf(j int) int {
	if j > 0 && p.toks[j-1].Kind == token.Space && (j == 1 || p.toks[j-2].Kind == token.Newline) {
		return p.toks[j-1].Len()
	}
	return 0
}

func (p *parser) list() int {
	m, _ := p.listMarker(p.i)
	start := p.tok().Start
	var items []int
	for {
		items = append(items, p.listItem())
		save := p.i
		j := p.skipSpaces(p.i)
		if p.kindAt(j) != token.Newline {
			break
		}
		j++
		for p.isBlankLine(j) {
			e := p.lineEnd(p.skipSpaces(j))
			if p.kindAt(e) != token.Newline {
				break
			}
			j = e + 1
		}
		j = p.skipSpaces(j)
		next, ok := p.listMarker(j)
		if !ok || next.ordered != m.ordered || next.style != m.style || p.isHr(j) {
			p.i = save
			break
		}
		p.i = j
	}
	kind := ir.ListUnorderedKind
	if m.ordered {
		kind = ir.ListOrderedKind
	}
	return p.addNode(ir.Node{Kind: kind, Start: start, End: p.lastEnd(start)}, items)
}

// listItem parses one item. Following lines indented past the marker
// continue the item; their indentation is not part of the content.
func (p *parser) listItem() int {
	m, _ := p.listMarker(p.i)
	start := p.tok().Start
	indent := p.indentOf(p.i)
	p.i = m.next
	if p.kind() == token.Space {
		p.i++
	}
	from := p.i
	e := p.lineEnd(from)
	for p.kindAt(e) == token.Newline {
		next := e + 1
		if p.kindAt(next) != token.Space || p.toks[next].Len() <= indent {
			break
		}
		if k := p.kindAt(next + 1); isLineEnd(k) || k == token.FenceOpen {
			break
		}
		p.markSkip(next)
		e = p.lineEnd(next + 1)
	}
	to := p.trimEnd(from, e)
	kids := p.inlines(to, true, true)
	p.clearSkips()
	return p.addNode(ir.Node{Kind: ir.ListItemKind, Start: start, End: p.lastEnd(start)}, kids)
}

// codeBlock parses a fenced block. The value runs from the line after the
// opening fence to the end of the line before the closing one; an
// unterminated block runs to the end of the source.
func (p *parser) codeBlock(first bool) int {
	open := p.tok()
	p.i++
	n := ir.Node{Kind: ir.CodeBlockKind, Start: open.Start}
	if p.kind() == token.Space {
		p.i++
	}
	if p.kind() == token.FenceInfo {
		n.Lang = p.text(p.i)
		n.HasLang = true
		p.i++
	}
	if p.kind() == token.Space {
		p.i++
	}
	contentStart := len(p.src)
	if p.kind() == token.Newline {
		contentStart = p.tok().End
		p.i++
	}
	valueEnd := contentStart
	closed := false
loop:
	for {
		t := p.tok()
		switch t.Kind {
		case token.FenceClose:
			closed = true
			n.End = t.End
			p.i++
			break loop
		case token.EOF:
			break loop
		case token.Newline:
			valueEnd = t.Start
		}
		p.i++
	}
	if closed {
		n.Value = p.src[contentStart:max(contentStart, valueEnd)]
	} else {
		n.Value = p.src[contentStart:]
		n.End = len(p.src)
	}

	// like the yaml form, json frontmatter starts the source
	if first && open.Start == 0 && n.HasLang && n.Lang == format.JSONFenceLabel {
		if !closed {
			p.errorf(open.Start, ir.MalformedFrontmatter, "%s frontmatter fence is not closed", format.JSONFenceLabel)
		}
		return p.addNode(ir.Node{
			Kind:   ir.FrontmatterKind,
			Start:  n.Start,
			End:    n.End,
			Format: format.JSONFormat,
			Value:  n.Value,
		}, nil)
	}
	if !closed {
		p.errorf(open.Start, ir.UnterminatedFence, "code fence is not closed")
	}
	return p.addNode(n, nil)
}

func (p *parser) flowExpression() (int, bool) {
	save, nerr := p.i, len(p.doc.Errors)
	start, end, v := p.expression(p.eof())
	if isLineEnd(p.kindAt(p.skipSpaces(p.i))) {
		return p.addNode(ir.Node{Kind: ir.FlowExpressionKind, Start: start, End: end, Value: v}, nil), true
	}
	p.i = save
	p.doc.Errors = p.doc.Errors[:nerr]
	return 0, false
}

// expression consumes a braced expression starting at the LBrace at p.i and
// returns its span and the text between the outer braces. An expression left
// open at a blank line or at `to` is recorded and ends there.
func (p *parser) expression(to int) (start, end int, value string) {
	open := p.tok()
	p.i++
	depth := 1
	last := open.End
loop:
	for p.i < to {
		t := p.tok()
		switch t.Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
			if depth == 0 {
				p.i++
				return open.Start, t.End, p.src[open.End:t.Start]
			}
		case token.ExprText:
		case token.Newline:
			if p.blankAfter(p.i) {
				break loop
			}
		default:
			break loop
		}
		last = t.End
		p.i++
	}
	p.errorf(open.Start, ir.UnterminatedExpression, "expression is not closed")
	return open.Start, last, p.src[open.End:last]
}
