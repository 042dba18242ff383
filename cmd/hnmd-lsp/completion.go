package main

import (
	"context"
	"slices"
	"strings"

	"github.com/hnmd-format/go-hnmd/ir"

	"go.lsp.dev/protocol"
)

func (s *Server) Completion(ctx context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	d := s.docs.get(string(params.TextDocument.URI))
	if d == nil {
		return nil, nil
	}
	return &protocol.CompletionList{
		Items: completions(d, offset(d.content, d.pd, params.Position)),
	}, nil
}

// completions offers the element names used in the document after a `<` or
// `</`.
func completions(d *document, off int) []protocol.CompletionItem {
	items := []protocol.CompletionItem{}
	before := d.content[:off]
	closing := strings.HasSuffix(before, "</")
	if !closing && !strings.HasSuffix(before, "<") {
		return items
	}
	for _, name := range elementNames(d.doc) {
		insert := name
		if closing {
			insert += ">"
		}
		items = append(items, protocol.CompletionItem{
			Label:      name,
			Kind:       protocol.CompletionItemKindClass,
			InsertText: insert,
		})
	}
	return items
}

func elementNames(doc *ir.Document) []string {
	var names []string
	doc.Walk(func(i, _ int) bool {
		n := doc.Node(i)
		if (n.Kind == ir.ElementKind || n.Kind == ir.SelfClosingElementKind) && n.Name != "" {
			names = append(names, n.Name)
		}
		return true
	})
	slices.Sort(names)
	return slices.Compact(names)
}
