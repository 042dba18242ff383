package ir

import (
	"errors"
	"fmt"
)

var (
	ErrBadKind = errors.New("bad node kind")
)

// ErrorKind classifies a recoverable parse error.
type ErrorKind int

const (
	UnterminatedTag ErrorKind = iota
	MismatchedClosingTag
	UnterminatedFence
	UnterminatedExpression
	MalformedFrontmatter
)

func (k ErrorKind) String() string {
	return map[ErrorKind]string{
		UnterminatedTag:        "UnterminatedTag",
		MismatchedClosingTag:   "MismatchedClosingTag",
		UnterminatedFence:      "UnterminatedFence",
		UnterminatedExpression: "UnterminatedExpression",
		MalformedFrontmatter:   "MalformedFrontmatter",
	}[k]
}

// Error is a grammar violation the parser recovered from. Errors are kept on
// the Document; they never abort a parse.
type Error struct {
	Offset  int
	Message string
	Kind    ErrorKind
}

func (e Error) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", e.Kind, e.Offset, e.Message)
}
