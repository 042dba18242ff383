package token

import (
	"bytes"

	"github.com/hnmd-format/go-hnmd/debug"
)

type mode int

const (
	modeMarkdown mode = iota
	modeTag
	modeExpr
	modeCodeSpan
	modeCodeBlock
	modeFrontmatter
)

type frame struct {
	m mode
	// n is the backtick run length opening a code span or fence.
	n int
}

type tokenizeOpts struct {
	frontmatter bool
}

type TokenizeOption func(*tokenizeOpts)

// NoFrontmatter disables detection of a leading `---` metadata block.
func NoFrontmatter() TokenizeOption {
	return func(o *tokenizeOpts) {
		o.frontmatter = false
	}
}

type lexer struct {
	src       []byte
	i         int
	toks      []Token
	stack     []frame
	lineStart bool
}

// Tokenize splits src into tokens whose spans cover src exactly, followed by
// a zero width EOF token. It never fails: bytes with no other meaning become
// Text. Every step either consumes input or pops a mode that was pushed by
// consuming input, so the running time is linear in len(src).
func Tokenize(src []byte, opts ...TokenizeOption) []Token {
	o := &tokenizeOpts{frontmatter: true}
	for _, opt := range opts {
		opt(o)
	}
	lx := &lexer{
		src:       src,
		toks:      make([]Token, 0, len(src)/3+2),
		stack:     []frame{{m: modeMarkdown}},
		lineStart: true,
	}
	if o.frontmatter {
		lx.frontmatterOpen()
	}
	for lx.i < len(src) {
		lx.step()
	}
	lx.toks = append(lx.toks, Token{Kind: EOF, Start: len(src), End: len(src)})
	return lx.toks
}

func (lx *lexer) step() {
	switch lx.top().m {
	case modeMarkdown:
		lx.markdown()
	case modeTag:
		lx.tag()
	case modeExpr:
		lx.expr()
	case modeCodeSpan:
		lx.codeSpan()
	case modeCodeBlock:
		lx.codeBlock()
	case modeFrontmatter:
		lx.frontmatter()
	}
}

func (lx *lexer) top() frame {
	return lx.stack[len(lx.stack)-1]
}

func (lx *lexer) push(f frame) {
	lx.stack = append(lx.stack, f)
}

func (lx *lexer) pop() {
	if len(lx.stack) > 1 {
		lx.stack = lx.stack[:len(lx.stack)-1]
	}
}

func (lx *lexer) emit(k Kind, end int) {
	t := Token{Kind: k, Start: lx.i, End: end}
	if debug.Lex() {
		debug.Logf("lex %s %q\n", t, lx.src[t.Start:t.End])
	}
	lx.toks = append(lx.toks, t)
	lx.i = end
	lx.lineStart = k == Newline
}

func (lx *lexer) at(j int) byte {
	if j < len(lx.src) {
		return lx.src[j]
	}
	return 0
}

func (lx *lexer) newlineLen(j int) int {
	switch lx.at(j) {
	case '\n':
		return 1
	case '\r':
		if lx.at(j+1) == '\n' {
			return 2
		}
		return 1
	}
	return 0
}

func (lx *lexer) lineEnd(j int) int {
	for j < len(lx.src) && lx.newlineLen(j) == 0 {
		j++
	}
	return j
}

func (lx *lexer) newline() {
	lx.emit(Newline, lx.i+lx.newlineLen(lx.i))
}

// run emits a token covering the current byte and every following byte
// satisfying in.
func (lx *lexer) run(k Kind, in func(byte) bool) {
	j := lx.i + 1
	for j < len(lx.src) && in(lx.src[j]) {
		j++
	}
	lx.emit(k, j)
}

func (lx *lexer) runLen(c byte) int {
	j := lx.i
	for j < len(lx.src) && lx.src[j] == c {
		j++
	}
	return j - lx.i
}

func (lx *lexer) runOf(k Kind, c byte) {
	lx.emit(k, lx.i+lx.runLen(c))
}

// blankLinePop unwinds tag and expression modes when the line just started is
// blank, so an unterminated tag or expression ends with its block.
func (lx *lexer) blankLinePop() {
	j := lx.i
	for j < len(lx.src) && isBlank(lx.src[j]) {
		j++
	}
	if j == len(lx.src) || lx.newlineLen(j) > 0 {
		lx.stack = lx.stack[:1]
	}
}

func (lx *lexer) frontmatterOpen() {
	e := lx.lineEnd(0)
	nl := lx.newlineLen(e)
	if nl == 0 || string(lx.src[:e]) != "---" {
		return
	}
	lx.emit(FrontmatterDelim, e)
	lx.emit(Newline, e+nl)
	lx.push(frame{m: modeFrontmatter})
}

func (lx *lexer) frontmatter() {
	e := lx.lineEnd(lx.i)
	if string(lx.src[lx.i:e]) == "---" {
		lx.emit(FrontmatterDelim, e)
		lx.pop()
		return
	}
	if e > lx.i {
		lx.emit(FrontmatterLine, e)
	}
	if nl := lx.newlineLen(e); nl > 0 {
		lx.emit(Newline, e+nl)
	}
}

func (lx *lexer) markdown() {
	if lx.lineStart && len(lx.stack) == 1 && lx.fenceOpen() {
		return
	}
	c := lx.src[lx.i]
	switch {
	case lx.newlineLen(lx.i) > 0:
		lx.newline()
	case isBlank(c):
		lx.run(Space, isBlank)
	case c == '#':
		lx.runOf(Hash, c)
	case c == '*':
		lx.runOf(Star, c)
	case c == '_':
		lx.runOf(Underscore, c)
	case c == '-':
		lx.runOf(Dash, c)
	case c == '+':
		lx.runOf(Plus, c)
	case isDigit(c):
		lx.run(Digits, isDigit)
	case c == '.':
		lx.emit(Dot, lx.i+1)
	case c == '!':
		lx.emit(Bang, lx.i+1)
	case c == '[':
		lx.emit(LBracket, lx.i+1)
	case c == ']':
		lx.emit(RBracket, lx.i+1)
	case c == '(':
		lx.emit(LParen, lx.i+1)
	case c == ')':
		lx.emit(RParen, lx.i+1)
	case c == '>':
		lx.emit(Gt, lx.i+1)
	case c == '\\':
		lx.emit(Backslash, lx.i+1)
	case c == '`':
		n := lx.runLen(c)
		lx.emit(Backtick, lx.i+n)
		lx.push(frame{m: modeCodeSpan, n: n})
	case c == '<':
		lx.angle()
	case c == '{':
		lx.emit(LBrace, lx.i+1)
		lx.push(frame{m: modeExpr})
	default:
		lx.run(Text, func(b byte) bool { return !isMarkdownSpecial(b) })
	}
}

// angle decides between a tag start, a closing tag start and a literal '<'
// looking at most two bytes ahead.
func (lx *lexer) angle() {
	n1, n2 := lx.at(lx.i+1), lx.at(lx.i+2)
	switch {
	case isIdentStart(n1) || n1 == '>':
		lx.emit(TagOpen, lx.i+1)
		lx.push(frame{m: modeTag})
	case n1 == '/' && (isIdentStart(n2) || n2 == '>'):
		lx.emit(CloseTagOpen, lx.i+2)
		lx.push(frame{m: modeTag})
	default:
		lx.emit(Text, lx.i+1)
	}
}

func (lx *lexer) fenceOpen() bool {
	j := lx.i
	for j < len(lx.src) && j-lx.i < 3 && lx.src[j] == ' ' {
		j++
	}
	k := j
	for k < len(lx.src) && lx.src[k] == '`' {
		k++
	}
	n := k - j
	if n < 3 {
		return false
	}
	e := lx.lineEnd(k)
	if bytes.IndexByte(lx.src[k:e], '`') >= 0 {
		return false
	}
	if j > lx.i {
		lx.emit(Space, j)
	}
	lx.emit(FenceOpen, k)
	s := k
	for s < e && isBlank(lx.src[s]) {
		s++
	}
	if s > k {
		lx.emit(Space, s)
	}
	t := e
	for t > s && isBlank(lx.src[t-1]) {
		t--
	}
	if t > s {
		lx.emit(FenceInfo, t)
	}
	if e > t {
		lx.emit(Space, e)
	}
	if nl := lx.newlineLen(e); nl > 0 {
		lx.emit(Newline, e+nl)
	}
	lx.push(frame{m: modeCodeBlock, n: n})
	return true
}

func (lx *lexer) codeBlock() {
	e := lx.lineEnd(lx.i)
	if lx.fenceClose(e) {
		return
	}
	if e > lx.i {
		lx.emit(CodeLine, e)
	}
	if nl := lx.newlineLen(e); nl > 0 {
		lx.emit(Newline, e+nl)
	}
}

func (lx *lexer) fenceClose(e int) bool {
	j := lx.i
	for j < e && j-lx.i < 3 && lx.src[j] == ' ' {
		j++
	}
	k := j
	for k < e && lx.src[k] == '`' {
		k++
	}
	if k-j < lx.top().n {
		return false
	}
	for t := k; t < e; t++ {
		if !isBlank(lx.src[t]) {
			return false
		}
	}
	if j > lx.i {
		lx.emit(Space, j)
	}
	lx.emit(FenceClose, k)
	if e > k {
		lx.emit(Space, e)
	}
	lx.pop()
	return true
}

func (lx *lexer) codeSpan() {
	if lx.newlineLen(lx.i) > 0 {
		lx.pop()
		return
	}
	if lx.src[lx.i] == '`' {
		n := lx.runLen('`')
		if n == lx.top().n {
			lx.emit(Backtick, lx.i+n)
			lx.pop()
			return
		}
		lx.emit(CodeText, lx.i+n)
		return
	}
	j := lx.i
	for j < len(lx.src) && lx.src[j] != '`' && lx.newlineLen(j) == 0 {
		j++
	}
	lx.emit(CodeText, j)
}

func (lx *lexer) tag() {
	c := lx.src[lx.i]
	switch {
	case lx.newlineLen(lx.i) > 0:
		lx.newline()
		lx.blankLinePop()
	case isBlank(c):
		lx.run(Space, isBlank)
	case isIdentStart(c):
		lx.run(Ident, isIdentChar)
	case c == '=':
		lx.emit(Equals, lx.i+1)
	case c == '"' || c == '\'':
		lx.quoted(String, c)
	case c == '{':
		lx.emit(LBrace, lx.i+1)
		lx.push(frame{m: modeExpr})
	case c == '>':
		lx.emit(TagEnd, lx.i+1)
		lx.pop()
	case c == '/' && lx.at(lx.i+1) == '>':
		lx.emit(SelfClose, lx.i+2)
		lx.pop()
	case c == '<':
		// a new tag starts before this one was closed
		lx.pop()
	default:
		lx.run(Text, func(b byte) bool { return !isTagStop(b) })
	}
}

// expr scans expression text. Quotes have no meaning here: only braces nest
// and close.
func (lx *lexer) expr() {
	c := lx.src[lx.i]
	switch {
	case lx.newlineLen(lx.i) > 0:
		lx.newline()
		lx.blankLinePop()
	case c == '{':
		lx.emit(LBrace, lx.i+1)
		lx.push(frame{m: modeExpr})
	case c == '}':
		lx.emit(RBrace, lx.i+1)
		lx.pop()
	default:
		lx.run(ExprText, func(b byte) bool { return !isExprStop(b) })
	}
}

// quoted emits a quoted run ending at the matching quote or, when there is
// none, at the end of the line.
func (lx *lexer) quoted(k Kind, q byte) {
	j := lx.i + 1
	for j < len(lx.src) && lx.src[j] != q && lx.newlineLen(j) == 0 {
		j++
	}
	if j < len(lx.src) && lx.src[j] == q {
		j++
	}
	lx.emit(k, j)
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentStart(c byte) bool {
	return isLetter(c) || c == '_' || c == '$'
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c) || c == '-' || c == '.' || c == ':'
}

func isMarkdownSpecial(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '#', '*', '_', '-', '+', '.', '!', '[', ']', '(', ')', '>', '<', '\\', '`', '{':
		return true
	}
	return isDigit(c)
}

func isTagStop(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '=', '"', '\'', '{', '>', '/', '<':
		return true
	}
	return false
}

func isExprStop(c byte) bool {
	switch c {
	case '{', '}', '\n', '\r':
		return true
	}
	return false
}
