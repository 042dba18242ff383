package main

import (
	"context"
	"sync"

	"github.com/hnmd-format/go-hnmd/debug"
	"github.com/hnmd-format/go-hnmd/ir"
	"github.com/hnmd-format/go-hnmd/parse"
	"github.com/hnmd-format/go-hnmd/token"

	"go.lsp.dev/protocol"
)

type documentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

type document struct {
	uri     string
	content string
	version int32
	doc     *ir.Document
	pd      *token.PosDoc
}

func newDocument(uri, content string, version int32) *document {
	return &document{
		uri:     uri,
		content: content,
		version: version,
		doc:     parse.Parse([]byte(content)),
		pd:      token.NewPosDoc([]byte(content)),
	}
}

func (ds *documentStore) get(uri string) *document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.docs[uri]
}

func (ds *documentStore) put(uri string, content string, version int32) *document {
	d := newDocument(uri, content, version)
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.docs[uri] = d
	return d
}

func (ds *documentStore) remove(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, uri)
}

func (s *Server) publishDiagnostics(ctx context.Context, uri string, diagnostics []protocol.Diagnostic) {
	if s.conn == nil {
		return
	}
	err := s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentURI(uri),
		Diagnostics: diagnostics,
	})
	if err != nil {
		theLog.Warn("publish diagnostics", "uri", uri, "error", err)
	}
}

// diagnostics turns the parse errors of d into one diagnostic each, covering
// the token the error points at.
func diagnostics(d *document) []protocol.Diagnostic {
	res := []protocol.Diagnostic{}
	for _, e := range d.doc.Errors {
		end := min(e.Offset+1, len(d.content))
		for _, t := range d.doc.Tokens {
			if t.Start == e.Offset && t.End > t.Start {
				end = t.End
				break
			}
		}
		res = append(res, protocol.Diagnostic{
			Range:    spanRange(d.content, d.pd, e.Offset, end),
			Severity: protocol.DiagnosticSeverityError,
			Message:  e.Kind.String() + ": " + e.Message,
			Source:   "hnmd",
		})
	}
	return res
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	d := s.docs.put(uri, params.TextDocument.Text, params.TextDocument.Version)
	s.publishDiagnostics(ctx, uri, diagnostics(d))
	return nil
}

func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	old := s.docs.get(uri)
	if old == nil {
		return nil
	}
	content := old.content
	for _, change := range params.ContentChanges {
		content = applyChange(content, change.Range, change.Text)
	}
	if debug.LSP() {
		debug.Logf("lsp: %s version %d, %d bytes\n", uri, params.TextDocument.Version, len(content))
	}
	d := s.docs.put(uri, content, params.TextDocument.Version)
	s.publishDiagnostics(ctx, uri, diagnostics(d))
	return nil
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	s.docs.remove(uri)
	s.publishDiagnostics(ctx, uri, []protocol.Diagnostic{})
	return nil
}

// applyChange applies one content change. A change without a range replaces
// the whole text.
func applyChange(content string, r protocol.Range, text string) string {
	if r == (protocol.Range{}) {
		return text
	}
	pd := token.NewPosDoc([]byte(content))
	start := offset(content, pd, r.Start)
	end := max(offset(content, pd, r.End), start)
	return content[:start] + text + content[end:]
}
