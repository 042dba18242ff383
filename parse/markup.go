package parse

import (
	"github.com/hnmd-format/go-hnmd/ir"
	"github.com/hnmd-format/go-hnmd/token"
)

type openTag struct {
	start, end int
	name       string
	fragment   bool
	attrs      ir.Range
	selfClose  bool
	closed     bool
}

type closeTag struct {
	start, end int
	name       string
}

// element parses an element or fragment starting at the TagOpen at p.i.
// children parses the content; it returns at the closing tag or when the
// content runs out. A closing tag always closes the innermost open element,
// whatever its name. An open tag that never reaches its '>' is kept as a
// self closing element with the attributes read so far.
func (p *parser) element(to int, children func() []int) int {
	h := p.openTag(to)
	if h.selfClose || !h.closed {
		return p.addNode(ir.Node{
			Kind:  ir.SelfClosingElementKind,
			Start: h.start,
			End:   h.end,
			Name:  h.name,
			Attrs: h.attrs,
		}, nil)
	}
	p.open = append(p.open, h.name)
	kids := children()
	p.open = p.open[:len(p.open)-1]

	end := p.lastEnd(h.end)
	if p.i < to && p.kind() == token.CloseTagOpen {
		c := p.closeTag(to)
		if c.name != h.name {
			p.errorf(c.start, ir.MismatchedClosingTag, "closing tag </%s> does not match <%s>", c.name, h.name)
		}
		end = c.end
	} else {
		p.errorf(h.start, ir.UnterminatedTag, "element <%s> is not closed", h.name)
	}
	n := ir.Node{Kind: ir.ElementKind, Start: h.start, End: end, Name: h.name, Attrs: h.attrs}
	if h.fragment {
		n.Kind = ir.FragmentKind
		n.Name = ""
	}
	return p.addNode(n, kids)
}

func (p *parser) openTag(to int) openTag {
	t := p.tok()
	h := openTag{start: t.Start, end: t.End}
	p.i++
	first := len(p.doc.Attrs)
	switch {
	case p.i < to && p.kind() == token.TagEnd:
		h.fragment = true
		h.closed = true
		h.end = p.tok().End
		p.i++
		h.attrs = ir.Range{Start: first, End: first}
		return h
	case p.i < to && p.kind() == token.Ident:
		h.name = p.text(p.i)
		h.end = p.tok().End
		p.i++
	}
	h.readAttrs(p, to)
	h.attrs = ir.Range{Start: first, End: len(p.doc.Attrs)}
	if !h.closed {
		p.errorf(h.start, ir.UnterminatedTag, "tag <%s> is not closed", h.name)
	}
	return h
}

func (h *openTag) readAttrs(p *parser, to int) {
	for p.i < to {
		t := p.tok()
		switch t.Kind {
		case token.Space:
			p.i++
		case token.Newline:
			if p.blankAfter(p.i) {
				return
			}
			p.i++
		case token.Ident:
			a := p.attribute(to)
			h.end = a.End
		case token.LBrace:
			// spread: {...props}
			start, end, v := p.expression(to)
			p.doc.Attrs = append(p.doc.Attrs, ir.Attribute{
				Kind:     ir.ExpressionAttr,
				Value:    v,
				HasValue: true,
				Start:    start,
				End:      end,
			})
			h.end = end
		case token.TagEnd:
			h.end = t.End
			h.closed = true
			p.i++
			return
		case token.SelfClose:
			h.end = t.End
			h.closed = true
			h.selfClose = true
			p.i++
			return
		case token.Equals, token.String, token.Text, token.RBrace, token.ExprText:
			p.errorf(t.Start, ir.UnterminatedTag, "unexpected %q in tag <%s>", t.Slice(p.src), h.name)
			h.end = t.End
			p.i++
		default:
			return
		}
	}
}

// attribute reads `name`, `name=value` or `name={expr}`. Blanks are allowed
// around '='.
func (p *parser) attribute(to int) ir.Attribute {
	t := p.tok()
	a := ir.Attribute{Name: t.Slice(p.src), Kind: ir.LiteralAttr, Start: t.Start, End: t.End}
	p.i++
	if eq := p.skipSpaces(p.i); eq < to && p.kindAt(eq) == token.Equals {
		a.End = p.toks[eq].End
		p.i = p.skipSpaces(eq + 1)
		switch v := p.tok(); {
		case p.i >= to:
			p.errorf(a.Start, ir.UnterminatedTag, "attribute %s has no value", a.Name)
		case v.Kind == token.String:
			s := v.Slice(p.src)
			if len(s) >= 2 && s[len(s)-1] == s[0] {
				a.Value = s[1 : len(s)-1]
			} else {
				a.Value = s[1:]
				p.errorf(v.Start, ir.UnterminatedTag, "value of attribute %s is not closed", a.Name)
			}
			a.HasValue = true
			a.End = v.End
			p.i++
		case v.Kind == token.LBrace:
			_, end, val := p.expression(to)
			a.Kind = ir.ExpressionAttr
			a.Value = val
			a.HasValue = true
			a.End = end
		case v.Kind == token.Text || v.Kind == token.Ident:
			a.Value = v.Slice(p.src)
			a.HasValue = true
			a.End = v.End
			p.i++
		default:
			p.errorf(a.Start, ir.UnterminatedTag, "attribute %s has no value", a.Name)
		}
	}
	p.doc.Attrs = append(p.doc.Attrs, a)
	return a
}

func (p *parser) closeTag(to int) closeTag {
	t := p.tok()
	c := closeTag{start: t.Start, end: t.End}
	p.i++
	if p.i < to && p.kind() == token.Ident {
		c.name = p.text(p.i)
		c.end = p.tok().End
		p.i++
	}
	for p.i < to {
		t := p.tok()
		switch t.Kind {
		case token.Space:
			p.i++
			continue
		case token.Newline:
			if p.blankAfter(p.i) {
				break
			}
			p.i++
			continue
		case token.TagEnd:
			c.end = t.End
			p.i++
			return c
		case token.Ident, token.Text, token.String, token.Equals:
			p.errorf(t.Start, ir.UnterminatedTag, "unexpected %q in closing tag </%s>", t.Slice(p.src), c.name)
			c.end = t.End
			p.i++
			continue
		}
		break
	}
	p.errorf(c.start, ir.UnterminatedTag, "closing tag </%s> is not closed", c.name)
	return c
}
