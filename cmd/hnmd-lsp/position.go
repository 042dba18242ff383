package main

import (
	"unicode/utf16"

	"github.com/hnmd-format/go-hnmd/token"

	"go.lsp.dev/protocol"
)

// position converts a byte offset of src to a protocol position. Characters
// count UTF-16 code units.
func position(src string, pd *token.PosDoc, off int) protocol.Position {
	off = min(max(off, 0), len(src))
	line, col := pd.LineCol(off)
	return protocol.Position{
		Line:      uint32(line),
		Character: uint32(utf16Len(src[off-col : off])),
	}
}

// offset is the inverse of position. Characters past the end of the line
// give the line end.
func offset(src string, pd *token.PosDoc, pos protocol.Position) int {
	start := pd.Offset(int(pos.Line), 0)
	end := pd.Offset(int(pos.Line), len(src))
	n := 0
	for i, r := range src[start:end] {
		if n >= int(pos.Character) {
			return start + i
		}
		n += utf16.RuneLen(r)
	}
	return end
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

func spanRange(src string, pd *token.PosDoc, start, end int) protocol.Range {
	return protocol.Range{
		Start: position(src, pd, start),
		End:   position(src, pd, end),
	}
}
