package lsp

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mamaar/gocalc/pkg/calc"
	"github.com/mamaar/gocalc/pkg/types"
	"github.com/mamaar/gocalc/pkg/watch"
)

// Code action kinds offered for sheet lines.
const (
	KindRewriteResult       = "refactor.rewrite.result"
	KindRewriteParenthesize = "refactor.rewrite.parenthesize"
	KindQuickFix            = "quickfix"
)

func hoverContent(r watch.LineResult) string {
	if r.Err != nil {
		kind := "error"
		if k, ok := types.KindOf(r.Err); ok {
			kind = k.String()
		}
		return fmt.Sprintf("`%s`\n\n**%s**: %v", r.Expression, kind, r.Err)
	}
	return fmt.Sprintf("`%s` = **%s** _(%s)_", r.Expression, r.Value, r.Value.Kind())
}

// handleTextDocumentCodeAction offers rewrites for every expression line in
// the requested range: evaluating lines can be replaced by their value or
// by their fully parenthesised form, failing lines can be commented out.
func (s *Server) handleTextDocumentCodeAction(message *Message) (*Message, error) {
	var params CodeActionParams
	if err := json.Unmarshal(message.Params, &params); err != nil {
		return s.errorResponse(message.ID, CodeInvalidParams, "Invalid params", err.Error())
	}

	doc, resp := s.lookup(message, params.TextDocument.URI)
	if doc == nil {
		return resp, nil
	}

	actions := []CodeAction{}
	for line := params.Range.Start.Line; line <= params.Range.End.Line; line++ {
		r, ok := doc.resultAt(line)
		if !ok {
			continue
		}
		if r.Err != nil {
			actions = append(actions, s.commentOutAction(doc, r))
			continue
		}
		actions = append(actions, s.rewriteActions(doc, r)...)
	}

	return s.successResponse(message.ID, filterKinds(actions, params.Context.Only))
}

func (s *Server) rewriteActions(doc *document, r watch.LineResult) []CodeAction {
	rng := doc.exprRange(r)
	actions := []CodeAction{{
		Title: fmt.Sprintf("Replace with result (%s)", r.Value),
		Kind:  KindRewriteResult,
		Edit:  singleEdit(doc.uri, rng, r.Value.String()),
	}}

	node, err := calc.Parse(r.Expression)
	if err != nil {
		return actions
	}
	grouped := calc.Format(node)
	if grouped != r.Expression {
		actions = append(actions, CodeAction{
			Title: "Show grouping",
			Kind:  KindRewriteParenthesize,
			Edit:  singleEdit(doc.uri, rng, grouped),
		})
	}
	return actions
}

func (s *Server) commentOutAction(doc *document, r watch.LineResult) CodeAction {
	line := r.Line - 1
	start := Position{Line: line, Character: 0}
	var diags []Diagnostic
	for _, d := range doc.diagnostics() {
		if d.Range.Start.Line == line {
			diags = append(diags, d)
		}
	}
	return CodeAction{
		Title:       "Comment out failing expression",
		Kind:        KindQuickFix,
		Diagnostics: diags,
		IsPreferred: true,
		Edit:        singleEdit(doc.uri, Range{Start: start, End: start}, "# "),
	}
}

func singleEdit(uri string, rng Range, text string) *WorkspaceEdit {
	return &WorkspaceEdit{
		Changes: map[string][]TextEdit{
			uri: {{Range: rng, NewText: text}},
		},
	}
}

// filterKinds keeps actions whose kind equals or is nested under one of only.
func filterKinds(actions []CodeAction, only []string) []CodeAction {
	if len(only) == 0 {
		return actions
	}
	kept := []CodeAction{}
	for _, a := range actions {
		for _, k := range only {
			if a.Kind == k || strings.HasPrefix(a.Kind, k+".") {
				kept = append(kept, a)
				break
			}
		}
	}
	return kept
}
