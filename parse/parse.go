package parse

import (
	"fmt"

	"github.com/hnmd-format/go-hnmd/debug"
	"github.com/hnmd-format/go-hnmd/format"
	"github.com/hnmd-format/go-hnmd/ir"
	"github.com/hnmd-format/go-hnmd/token"
)

type parser struct {
	opts *parseOpts
	src  string
	toks []token.Token
	i    int
	doc  *ir.Document
	// open holds the names of the elements being parsed, innermost last.
	open []string
	// skip marks line prefix tokens of blockquotes and list items, which
	// belong to the container rather than to its inline content.
	skip    []bool
	skipped []int

	// per token lookup tables, see index
	nextNL  []int
	nextRP  []int
	nextBrk []int
	match   []int
	paraEnd []int
}

// Parse builds a Document from src. It always succeeds: grammar violations
// are recovered from locally and recorded in Document.Errors.
func Parse(src []byte, opts ...ParseOption) *ir.Document {
	o := defaultOpts()
	for _, opt := range opts {
		opt(o)
	}
	p := &parser{opts: o, src: string(src)}
	if o.frontmatter {
		p.setTokens(token.Tokenize(src))
	} else {
		p.setTokens(token.Tokenize(src, token.NoFrontmatter()))
	}
	p.doc = &ir.Document{Source: p.src, Root: 0}
	// the root slot is reserved now and filled in last
	p.doc.Nodes = append(p.doc.Nodes, ir.Node{Kind: ir.RootKind})

	var kids []int
	if p.kind() == token.FrontmatterDelim {
		if n, ok := p.yamlFrontmatter(); ok {
			kids = append(kids, n)
		} else {
			p.errorf(0, ir.MalformedFrontmatter, "frontmatter block is not closed by a %q line", format.YAMLDelim)
			p.setTokens(token.Tokenize(src, token.NoFrontmatter()))
		}
	}
	kids = p.blocks(kids, o.frontmatter && len(kids) == 0)

	p.doc.Tokens = p.toks
	root := ir.Node{Kind: ir.RootKind, Start: 0, End: len(src)}
	root.Kids = p.appendKids(kids)
	p.doc.Nodes[0] = root
	if debug.Parse() {
		debug.Logf("parse: %d tokens %d nodes %d errors\n", len(p.toks), len(p.doc.Nodes), len(p.doc.Errors))
	}
	return p.doc
}

func (p *parser) setTokens(toks []token.Token) {
	p.toks = toks
	p.skip = make([]bool, len(toks))
	p.i = 0
	p.index()
}

// index fills the lookup tables that keep the parser linear: for each token
// the next line end, the next ')' and the next blank or line end, and the
// partner of each matched bracket.
func (p *parser) index() {
	n := len(p.toks)
	p.nextNL = make([]int, n)
	p.nextRP = make([]int, n)
	p.nextBrk = make([]int, n)
	p.match = make([]int, n)
	p.paraEnd = make([]int, n)
	nl, rp, brk := n-1, -1, n-1
	for j := n - 1; j >= 0; j-- {
		switch p.toks[j].Kind {
		case token.Newline, token.EOF:
			nl, brk = j, j
		case token.Space:
			brk = j
		case token.RParen:
			rp = j
		}
		p.nextNL[j], p.nextRP[j], p.nextBrk[j] = nl, rp, brk
		p.match[j] = -1
	}
	var open []int
	for j, t := range p.toks {
		switch t.Kind {
		case token.LBracket:
			open = append(open, j)
		case token.RBracket:
			if len(open) > 0 {
				l := open[len(open)-1]
				open = open[:len(open)-1]
				p.match[l], p.match[j] = j, l
			}
		}
	}
}

func (p *parser) tok() token.Token {
	return p.toks[p.i]
}

func (p *parser) kind() token.Kind {
	return p.toks[p.i].Kind
}

func (p *parser) kindAt(j int) token.Kind {
	if j >= len(p.toks) {
		return token.EOF
	}
	return p.toks[j].Kind
}

func (p *parser) text(j int) string {
	return p.toks[j].Slice(p.src)
}

func (p *parser) eof() int {
	return len(p.toks) - 1
}

// lastEnd is the end offset of the last consumed token.
func (p *parser) lastEnd(floor int) int {
	if p.i == 0 {
		return floor
	}
	return max(floor, p.toks[p.i-1].End)
}

func (p *parser) appendKids(kids []int) ir.Range {
	r := ir.Range{Start: len(p.doc.Children), End: len(p.doc.Children) + len(kids)}
	p.doc.Children = append(p.doc.Children, kids...)
	return r
}

func (p *parser) addNode(n ir.Node, kids []int) int {
	n.Kids = p.appendKids(kids)
	p.doc.Nodes = append(p.doc.Nodes, n)
	if debug.Parse() {
		debug.Logf("parse: node %d %s [%d,%d) kids=%v\n", len(p.doc.Nodes)-1, n.Kind, n.Start, n.End, kids)
	}
	return len(p.doc.Nodes) - 1
}

func (p *parser) errorf(off int, kind ir.ErrorKind, msg string, args ...any) {
	if len(p.doc.Errors) >= p.opts.maxErrors {
		return
	}
	p.doc.Errors = append(p.doc.Errors, ir.Error{
		Offset:  off,
		Message: fmt.Sprintf(msg, args...),
		Kind:    kind,
	})
}

func (p *parser) yamlFrontmatter() (int, bool) {
	open := p.tok()
	p.i++
	// the tokenizer only opens a frontmatter block when a newline follows
	contentStart := p.tok().End
	p.i++
	lastNL := contentStart
	for {
		t := p.tok()
		switch t.Kind {
		case token.FrontmatterDelim:
			p.i++
			return p.addNode(ir.Node{
				Kind:   ir.FrontmatterKind,
				Start:  open.Start,
				End:    t.End,
				Format: format.YAMLFormat,
				Value:  p.src[contentStart:lastNL],
			}, nil), true
		case token.Newline:
			lastNL = t.Start
		case token.EOF:
			return 0, false
		}
		p.i++
	}
}
