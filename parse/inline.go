package parse

import (
	"strings"

	"github.com/hnmd-format/go-hnmd/ir"
	"github.com/hnmd-format/go-hnmd/token"
)

type itemKind int

const (
	itemText itemKind = iota
	itemDelim
	itemNode
	itemEmph
)

// item is one entry of the inline sequence emphasis resolution runs over.
// Items form a doubly linked list; delimiter items are additionally linked
// through prevD and nextD.
type item struct {
	kind       itemKind
	start, end int
	// ws marks text made only of blanks and line breaks.
	ws   bool
	node int

	c                 byte
	canOpen, canClose bool
	seq               int

	strong bool
	first  *item

	prev, next   *item
	prevD, nextD *item
}

type itemList struct {
	head, tail   *item
	dhead, dtail *item
	seq          int
}

func (l *itemList) push(it *item) {
	it.prev = l.tail
	if l.tail != nil {
		l.tail.next = it
	} else {
		l.head = it
	}
	l.tail = it
}

func (l *itemList) remove(it *item) {
	if it.prev != nil {
		it.prev.next = it.next
	} else {
		l.head = it.next
	}
	if it.next != nil {
		it.next.prev = it.prev
	} else {
		l.tail = it.prev
	}
}

func (l *itemList) pushDelim(it *item) {
	l.seq++
	it.seq = l.seq
	l.push(it)
	it.prevD = l.dtail
	if l.dtail != nil {
		l.dtail.nextD = it
	} else {
		l.dhead = it
	}
	l.dtail = it
}

func (l *itemList) removeDelim(it *item) {
	if it.prevD != nil {
		it.prevD.nextD = it.nextD
	} else {
		l.dhead = it.nextD
	}
	if it.nextD != nil {
		it.nextD.prevD = it.prevD
	} else {
		l.dtail = it.prevD
	}
}

func (l *itemList) text(t token.Token, ws bool) {
	l.push(&item{kind: itemText, start: t.Start, end: t.End, ws: ws})
}

func (l *itemList) node(n int) {
	l.push(&item{kind: itemNode, node: n})
}

// inlines parses inline content from p.i up to token index to. With
// stopClose it returns early at a closing tag when an element is open. trim
// drops trailing blanks and line breaks.
func (p *parser) inlines(to int, stopClose, trim bool) []int {
	l := &itemList{}
loop:
	for p.i < to {
		if p.skip[p.i] {
			p.i++
			continue
		}
		t := p.tok()
		switch t.Kind {
		case token.Star, token.Underscore:
			p.delim(l, t)
			p.i++
		case token.Space:
			if t.Len() >= 2 && p.hardBreakAt(p.i+1, to) {
				l.node(p.hardBreak(t.Start))
				continue
			}
			l.text(t, true)
			p.i++
		case token.Newline:
			l.text(t, true)
			p.i++
		case token.Backslash:
			switch {
			case p.hardBreakAt(p.i+1, to):
				l.node(p.hardBreak(t.Start))
			case p.i+1 < to && !p.skip[p.i+1] && p.escapable(p.i+1):
				l.text(t, false)
				l.text(p.toks[p.i+1], false)
				p.i += 2
			default:
				l.text(t, false)
				p.i++
			}
		case token.Backtick:
			if n, ok := p.codeSpan(to); ok {
				l.node(n)
				continue
			}
			l.text(t, false)
			p.i++
		case token.Bang, token.LBracket:
			if n, ok := p.link(to); ok {
				l.node(n)
				continue
			}
			l.text(t, false)
			p.i++
		case token.LBrace:
			start, end, v := p.expression(to)
			l.node(p.addNode(ir.Node{Kind: ir.TextExpressionKind, Start: start, End: end, Value: v}, nil))
		case token.TagOpen:
			if len(p.open) >= p.opts.maxDepth {
				l.text(t, false)
				p.i++
				continue
			}
			l.node(p.element(to, func() []int { return p.inlines(to, true, false) }))
		case token.CloseTagOpen:
			if stopClose && len(p.open) > 0 {
				break loop
			}
			name := ""
			if p.i+1 < to && p.kindAt(p.i+1) == token.Ident {
				name = p.text(p.i + 1)
			}
			p.errorf(t.Start, ir.MismatchedClosingTag, "closing tag </%s> has no matching open element", name)
			l.text(t, false)
			p.i++
		default:
			l.text(t, false)
			p.i++
		}
	}
	if trim {
		for l.tail != nil && l.tail.kind == itemText && l.tail.ws {
			l.remove(l.tail)
		}
	}
	l.resolveEmphasis()
	return p.emit(l.head)
}

// hardBreakAt reports whether the Newline at j ends a line inside the
// content and is followed by more of it.
func (p *parser) hardBreakAt(j, to int) bool {
	if j >= to || p.toks[j].Kind != token.Newline {
		return false
	}
	k := j + 1
	for k < to && (p.skip[k] || p.toks[k].Kind == token.Space) {
		k++
	}
	return k < to && p.toks[k].Kind != token.CloseTagOpen
}

// hardBreak consumes the token at p.i and the Newline after it.
func (p *parser) hardBreak(start int) int {
	nl := p.toks[p.i+1]
	p.i += 2
	return p.addNode(ir.Node{Kind: ir.HardBreakKind, Start: start, End: nl.End}, nil)
}

const asciiPunct = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

func isPunct(c byte) bool {
	return strings.IndexByte(asciiPunct, c) >= 0
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

func (p *parser) escapable(j int) bool {
	t := p.toks[j]
	return t.Len() > 0 && isPunct(p.src[t.Start])
}

// delim adds a run of '*' or '_' with the flanking rules deciding whether it
// may open or close emphasis. The start and end of the source count as
// blanks.
func (p *parser) delim(l *itemList, t token.Token) {
	before, after := byte(' '), byte(' ')
	if t.Start > 0 {
		before = p.src[t.Start-1]
	}
	if t.End < len(p.src) {
		after = p.src[t.End]
	}
	left := !isSpace(after) && (!isPunct(after) || isSpace(before) || isPunct(before))
	right := !isSpace(before) && (!isPunct(before) || isSpace(after) || isPunct(after))
	it := &item{kind: itemDelim, start: t.Start, end: t.End, c: p.src[t.Start]}
	if it.c == '*' {
		it.canOpen, it.canClose = left, right
	} else {
		it.canOpen = left && (!right || isPunct(before))
		it.canClose = right && (!left || isPunct(after))
	}
	l.pushDelim(it)
}

// resolveEmphasis pairs delimiter runs. Each closer, left to right, takes the
// nearest earlier opener of the same character; two characters are used
// when both runs have at least two left, otherwise one. Everything between
// the pair becomes the children of the new emphasis or strong item.
func (l *itemList) resolveEmphasis() {
	// bottom[c] is the seq below which no opener for c remains
	bottom := map[byte]int{}
	closer := l.dhead
	for closer != nil {
		if !closer.canClose {
			closer = closer.nextD
			continue
		}
		opener := closer.prevD
		for opener != nil && opener.seq > bottom[closer.c] {
			if opener.c == closer.c && opener.canOpen {
				break
			}
			opener = opener.prevD
		}
		if opener == nil || opener.seq <= bottom[closer.c] {
			if closer.prevD != nil {
				bottom[closer.c] = closer.prevD.seq
			}
			next := closer.nextD
			if !closer.canOpen {
				l.removeDelim(closer)
			}
			closer = next
			continue
		}

		use := 1
		if opener.end-opener.start >= 2 && closer.end-closer.start >= 2 {
			use = 2
		}
		em := &item{kind: itemEmph, strong: use == 2, start: opener.end - use, end: closer.start + use}
		opener.end -= use
		closer.start += use
		if opener.next != closer {
			em.first = opener.next
			em.first.prev = nil
			closer.prev.next = nil
		}
		opener.next, em.prev = em, opener
		em.next, closer.prev = closer, em
		opener.nextD, closer.prevD = closer, opener

		if opener.start == opener.end {
			l.remove(opener)
			l.removeDelim(opener)
		}
		if closer.start == closer.end {
			next := closer.nextD
			l.remove(closer)
			l.removeDelim(closer)
			closer = next
		}
	}
}

// emit creates the nodes for a resolved item sequence, merging adjacent text
// into single text nodes.
func (p *parser) emit(first *item) []int {
	var kids []int
	s, e := -1, -1
	flush := func() {
		if s >= 0 {
			kids = append(kids, p.addNode(ir.Node{Kind: ir.TextKind, Start: s, End: e, Value: p.src[s:e]}, nil))
			s, e = -1, -1
		}
	}
	for it := first; it != nil; it = it.next {
		switch it.kind {
		case itemText, itemDelim:
			if it.end <= it.start {
				continue
			}
			if s >= 0 && e == it.start {
				e = it.end
				continue
			}
			flush()
			s, e = it.start, it.end
		case itemNode:
			flush()
			kids = append(kids, it.node)
		case itemEmph:
			flush()
			sub := p.emit(it.first)
			kind := ir.EmphasisKind
			if it.strong {
				kind = ir.StrongKind
			}
			kids = append(kids, p.addNode(ir.Node{Kind: kind, Start: it.start, End: it.end}, sub))
		}
	}
	flush()
	return kids
}

// codeSpan parses a backtick delimited span. The tokenizer only emits a
// closing Backtick for a run of the opening length on the same line.
func (p *parser) codeSpan(to int) (int, bool) {
	open := p.tok()
	j := p.i + 1
	for j < to && p.toks[j].Kind == token.CodeText {
		j++
	}
	if j >= to || p.toks[j].Kind != token.Backtick {
		return 0, false
	}
	close := p.toks[j]
	p.i = j + 1
	return p.addNode(ir.Node{
		Kind:  ir.CodeInlineKind,
		Start: open.Start,
		End:   close.End,
		Value: p.src[open.End:close.Start],
	}, nil), true
}

// link parses `[text](url)` or, from a '!', `![alt](url)`. The url runs to
// the first ')' and may not contain blanks or line breaks.
func (p *parser) link(to int) (int, bool) {
	start := p.tok().Start
	kind := ir.LinkKind
	lb := p.i
	if p.kind() == token.Bang {
		kind = ir.ImageKind
		lb++
	}
	if lb >= to || p.toks[lb].Kind != token.LBracket {
		return 0, false
	}
	rb := p.match[lb]
	if rb <= lb || rb+1 >= to || p.toks[rb+1].Kind != token.LParen {
		return 0, false
	}
	u := rb + 2
	if u >= to {
		return 0, false
	}
	rp := p.nextRP[u]
	if rp < 0 || rp >= to || p.nextBrk[u] < rp {
		return 0, false
	}
	p.i = lb + 1
	kids := p.inlines(rb, false, false)
	p.i = rp + 1
	return p.addNode(ir.Node{
		Kind:  kind,
		Start: start,
		End:   p.toks[rp].End,
		URL:   p.src[p.toks[rb+1].End:p.toks[rp].Start],
	}, kids), true
}
