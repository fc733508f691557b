package lsp

import (
	"encoding/json"
	"fmt"
)

const methodPublishDiagnostics = "textDocument/publishDiagnostics"

func (s *Server) handleTextDocumentDidOpen(message *Message) ([]*Message, error) {
	var params DidOpenTextDocumentParams
	if err := json.Unmarshal(message.Params, &params); err != nil {
		return nil, err
	}
	item := params.TextDocument
	s.logger.Debug("document opened", "uri", item.URI, "version", item.Version)
	return s.updateDocument(item.URI, item.Version, item.Text)
}

// handleTextDocumentDidChange expects full-text sync, so the last content
// change holds the whole document.
func (s *Server) handleTextDocumentDidChange(message *Message) ([]*Message, error) {
	var params DidChangeTextDocumentParams
	if err := json.Unmarshal(message.Params, &params); err != nil {
		return nil, err
	}
	if len(params.ContentChanges) == 0 {
		return nil, nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if change.Range != nil {
		return nil, fmt.Errorf("incremental change for %s not supported", params.TextDocument.URI)
	}
	return s.updateDocument(params.TextDocument.URI, params.TextDocument.Version, change.Text)
}

func (s *Server) handleTextDocumentDidSave(message *Message) ([]*Message, error) {
	var params DidSaveTextDocumentParams
	if err := json.Unmarshal(message.Params, &params); err != nil {
		return nil, err
	}
	if params.Text == nil {
		return nil, nil
	}

	version := 0
	s.mu.RLock()
	if doc, ok := s.documents[params.TextDocument.URI]; ok {
		version = doc.version
	}
	s.mu.RUnlock()

	return s.updateDocument(params.TextDocument.URI, version, *params.Text)
}

// handleTextDocumentDidClose forgets the document and clears its diagnostics.
func (s *Server) handleTextDocumentDidClose(message *Message) ([]*Message, error) {
	var params DidCloseTextDocumentParams
	if err := json.Unmarshal(message.Params, &params); err != nil {
		return nil, err
	}

	s.mu.Lock()
	delete(s.documents, params.TextDocument.URI)
	s.mu.Unlock()

	s.logger.Debug("document closed", "uri", params.TextDocument.URI)
	return single(s.notification(methodPublishDiagnostics, PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []Diagnostic{},
	}))
}

// updateDocument re-evaluates the document and returns its diagnostics.
func (s *Server) updateDocument(uri string, version int, text string) ([]*Message, error) {
	doc, err := newDocument(uri, version, text)
	if err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", uri, err)
	}

	s.mu.Lock()
	s.documents[uri] = doc
	s.mu.Unlock()

	diags := doc.diagnostics()
	s.logger.Debug("document evaluated", "uri", uri, "lines", len(doc.results), "failed", len(diags))

	v := version
	return single(s.notification(methodPublishDiagnostics, PublishDiagnosticsParams{
		URI:         uri,
		Version:     &v,
		Diagnostics: diags,
	}))
}

// handleTextDocumentHover shows the value of the expression under the cursor.
func (s *Server) handleTextDocumentHover(message *Message) (*Message, error) {
	var params TextDocumentPositionParams
	if err := json.Unmarshal(message.Params, &params); err != nil {
		return s.errorResponse(message.ID, CodeInvalidParams, "Invalid params", err.Error())
	}

	doc, resp := s.lookup(message, params.TextDocument.URI)
	if doc == nil {
		return resp, nil
	}

	r, ok := doc.resultAt(params.Position.Line)
	if !ok {
		return s.successResponse(message.ID, nil)
	}

	rng := doc.exprRange(r)
	hover := &Hover{
		Contents: MarkupContent{
			Kind:  MarkupKindMarkdown,
			Value: hoverContent(r),
		},
		Range: &rng,
	}
	return s.successResponse(message.ID, hover)
}

// lookup returns the open document for uri. When it returns nil, the
// second value is the response to send instead.
func (s *Server) lookup(message *Message, uri string) (*document, *Message) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.shutdown {
		resp, _ := s.errorResponse(message.ID, CodeInvalidRequest, "Server is shutting down", nil)
		return nil, resp
	}
	if !s.initialized {
		resp, _ := s.successResponse(message.ID, nil)
		return nil, resp
	}
	doc, ok := s.documents[uri]
	if !ok {
		resp, _ := s.successResponse(message.ID, nil)
		return nil, resp
	}
	return doc, nil
}
