package token

import (
	"fmt"
	"strconv"
)

type Kind int

const (
	Text Kind = iota
	Space
	Newline
	Hash
	Star
	Underscore
	Dash
	Plus
	Digits
	Dot
	Bang
	LBracket
	RBracket
	LParen
	RParen
	Gt
	Backslash
	Backtick
	CodeText
	FenceOpen
	FenceInfo
	CodeLine
	FenceClose
	TagOpen
	CloseTagOpen
	TagEnd
	SelfClose
	Ident
	Equals
	String
	LBrace
	RBrace
	ExprText
	FrontmatterDelim
	FrontmatterLine
	EOF
)

var kindNames = map[Kind]string{
	Text:             "Text",
	Space:            "Space",
	Newline:          "Newline",
	Hash:             "Hash",
	Star:             "Star",
	Underscore:       "Underscore",
	Dash:             "Dash",
	Plus:             "Plus",
	Digits:           "Digits",
	Dot:              "Dot",
	Bang:             "Bang",
	LBracket:         "LBracket",
	RBracket:         "RBracket",
	LParen:           "LParen",
	RParen:           "RParen",
	Gt:               "Gt",
	Backslash:        "Backslash",
	Backtick:         "Backtick",
	CodeText:         "CodeText",
	FenceOpen:        "FenceOpen",
	FenceInfo:        "FenceInfo",
	CodeLine:         "CodeLine",
	FenceClose:       "FenceClose",
	TagOpen:          "TagOpen",
	CloseTagOpen:     "CloseTagOpen",
	TagEnd:           "TagEnd",
	SelfClose:        "SelfClose",
	Ident:            "Ident",
	Equals:           "Equals",
	String:           "String",
	LBrace:           "LBrace",
	RBrace:           "RBrace",
	ExprText:         "ExprText",
	FrontmatterDelim: "FrontmatterDelim",
	FrontmatterLine:  "FrontmatterLine",
	EOF:              "EOF",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// IsMarkup reports whether k only occurs inside a tag.
func (k Kind) IsMarkup() bool {
	switch k {
	case TagOpen, CloseTagOpen, TagEnd, SelfClose, Ident, Equals, String:
		return true
	}
	return false
}

// Token is a kind and a byte span [Start, End) into the tokenized source.
type Token struct {
	Kind  Kind
	Start int
	End   int
}

func (t Token) Len() int {
	return t.End - t.Start
}

// Slice returns the part of src covered by t.
func (t Token) Slice(src string) string {
	return src[t.Start:t.End]
}

func (t Token) String() string {
	return fmt.Sprintf("%s[%d,%d)", t.Kind, t.Start, t.End)
}
