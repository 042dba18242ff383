package main

import (
	"context"

	"github.com/hnmd-format/go-hnmd/token"

	"go.lsp.dev/protocol"
)

// tokenTypes is the legend sent in Initialize; semantic token data refers to
// its indices.
var tokenTypes = []protocol.SemanticTokenTypes{
	protocol.SemanticTokenComment,
	protocol.SemanticTokenKeyword,
	protocol.SemanticTokenString,
	protocol.SemanticTokenNumber,
	protocol.SemanticTokenOperator,
	protocol.SemanticTokenProperty,
	protocol.SemanticTokenClass,
	protocol.SemanticTokenVariable,
}

const (
	commentType uint32 = iota
	keywordType
	stringType
	numberType
	operatorType
	propertyType
	classType
	variableType
	noType
)

// tokenType classifies k. prev is the kind of the token before, which tells
// tag names from attribute names.
func tokenType(k, prev token.Kind) uint32 {
	switch k {
	case token.FrontmatterDelim, token.FrontmatterLine:
		return commentType
	case token.FenceInfo:
		return keywordType
	case token.CodeText, token.CodeLine, token.String:
		return stringType
	case token.Digits:
		return numberType
	case token.Ident:
		if prev == token.TagOpen || prev == token.CloseTagOpen {
			return classType
		}
		return propertyType
	case token.ExprText:
		return variableType
	case token.Hash, token.Star, token.Underscore, token.Dash, token.Plus, token.Dot,
		token.Bang, token.LBracket, token.RBracket, token.LParen, token.RParen, token.Gt,
		token.Backslash, token.Backtick, token.FenceOpen, token.FenceClose,
		token.TagOpen, token.CloseTagOpen, token.TagEnd, token.SelfClose, token.Equals,
		token.LBrace, token.RBrace:
		return operatorType
	}
	return noType
}

// semanticTokens encodes the classified tokens of d that overlap [from, to)
// as relative line, start, length, type and modifiers.
func semanticTokens(d *document, from, to int) []uint32 {
	res := []uint32{}
	var prevLine, prevChar uint32
	prev := token.EOF
	for _, t := range d.doc.Tokens {
		typ := tokenType(t.Kind, prev)
		prev = t.Kind
		if typ == noType || t.End <= from || t.Start >= to {
			continue
		}
		p := position(d.content, d.pd, t.Start)
		deltaLine := p.Line - prevLine
		deltaChar := p.Character
		if deltaLine == 0 {
			deltaChar -= prevChar
		}
		res = append(res, deltaLine, deltaChar, uint32(utf16Len(t.Slice(d.content))), typ, 0)
		prevLine, prevChar = p.Line, p.Character
	}
	return res
}

func (s *Server) SemanticTokensFull(ctx context.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	d := s.docs.get(string(params.TextDocument.URI))
	if d == nil {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}
	return &protocol.SemanticTokens{Data: semanticTokens(d, 0, len(d.content))}, nil
}

func (s *Server) SemanticTokensRange(ctx context.Context, params *protocol.SemanticTokensRangeParams) (*protocol.SemanticTokens, error) {
	d := s.docs.get(string(params.TextDocument.URI))
	if d == nil {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}
	from := offset(d.content, d.pd, params.Range.Start)
	to := offset(d.content, d.pd, params.Range.End)
	return &protocol.SemanticTokens{Data: semanticTokens(d, from, to)}, nil
}
