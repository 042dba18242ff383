package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/hnmd-format/go-hnmd/ir"

	"go.lsp.dev/protocol"
)

func (s *Server) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	d := s.docs.get(string(params.TextDocument.URI))
	if d == nil {
		return nil, nil
	}
	i, ok := d.doc.NodeAtOffset(offset(d.content, d.pd, params.Position))
	if !ok {
		return nil, nil
	}
	n := d.doc.Node(i)
	rng := spanRange(d.content, d.pd, n.Start, n.End)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: hoverText(d.doc, i),
		},
		Range: &rng,
	}, nil
}

func hoverText(doc *ir.Document, i int) string {
	n := doc.Node(i)
	parts := []string{fmt.Sprintf("**Kind:** `%s`", n.Kind)}
	switch n.Kind {
	case ir.HeadingKind:
		parts = append(parts, fmt.Sprintf("**Level:** %d", n.Level))
	case ir.CodeBlockKind:
		if n.HasLang {
			parts = append(parts, fmt.Sprintf("**Lang:** `%s`", n.Lang))
		}
	case ir.LinkKind, ir.ImageKind:
		parts = append(parts, fmt.Sprintf("**URL:** `%s`", n.URL))
	case ir.FrontmatterKind:
		parts = append(parts, fmt.Sprintf("**Format:** %s", n.Format))
	case ir.ElementKind, ir.SelfClosingElementKind:
		parts = append(parts, fmt.Sprintf("**Name:** `%s`", n.Name))
		if attrs := doc.Attributes(i); len(attrs) > 0 {
			lines := make([]string, 0, len(attrs))
			for _, a := range attrs {
				switch {
				case a.Kind == ir.ExpressionAttr:
					lines = append(lines, fmt.Sprintf("- `%s` = `{%s}`", a.Name, a.Value))
				case a.HasValue:
					lines = append(lines, fmt.Sprintf("- `%s` = %q", a.Name, a.Value))
				default:
					lines = append(lines, fmt.Sprintf("- `%s`", a.Name))
				}
			}
			parts = append(parts, "**Attributes:**\n"+strings.Join(lines, "\n"))
		}
	}
	if n.Kind.HasValue() && n.Value != "" {
		val := n.Value
		if len(val) > 50 {
			val = val[:50] + "..."
		}
		parts = append(parts, fmt.Sprintf("**Value:** `%s`", val))
	}
	if n.Kind.HasChildren() {
		parts = append(parts, fmt.Sprintf("%d children", n.Kids.Len()))
	}
	return strings.Join(parts, "\n\n")
}
