package main

import (
	"context"

	"github.com/hnmd-format/go-hnmd/encode"

	"go.lsp.dev/protocol"
)

func (s *Server) Formatting(ctx context.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	d := s.docs.get(string(params.TextDocument.URI))
	if d == nil {
		return nil, nil
	}
	return formatEdits(d), nil
}

// formatEdits replaces the whole text with its canonical rendering. A
// document that does not render gets no edits.
func formatEdits(d *document) []protocol.TextEdit {
	formatted, err := encode.Render(d.doc)
	if err != nil {
		theLog.Warn("format", "uri", d.uri, "error", err)
		return nil
	}
	if formatted == d.content {
		return []protocol.TextEdit{}
	}
	return []protocol.TextEdit{{
		Range:   spanRange(d.content, d.pd, 0, len(d.content)),
		NewText: formatted,
	}}
}
