package lsp

import (
	"errors"
	"strings"
	"unicode/utf16"

	"github.com/mamaar/gocalc/pkg/types"
	"github.com/mamaar/gocalc/pkg/watch"
)

const diagnosticSource = "gocalc"

// document is an open sheet and the evaluation of each of its lines.
type document struct {
	uri     string
	version int
	lines   []string
	results map[int]watch.LineResult // keyed by 0-based line
}

func newDocument(uri string, version int, text string) (*document, error) {
	d := &document{
		uri:     uri,
		version: version,
		lines:   strings.Split(text, "\n"),
		results: make(map[int]watch.LineResult),
	}
	results, err := watch.EvaluateLines(strings.NewReader(text))
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		d.results[r.Line-1] = r
	}
	return d, nil
}

// resultAt returns the evaluation of the 0-based line, if it holds an expression.
func (d *document) resultAt(line int) (watch.LineResult, bool) {
	r, ok := d.results[line]
	return r, ok
}

// exprRange covers the expression on its line, excluding surrounding blanks.
func (d *document) exprRange(r watch.LineResult) Range {
	line := r.Line - 1
	text := d.lines[line]
	start := strings.Index(text, r.Expression)
	if start < 0 {
		start = 0
	}
	return Range{
		Start: Position{Line: line, Character: utf16Len(text[:start])},
		End:   Position{Line: line, Character: utf16Len(text[:start+len(r.Expression)])},
	}
}

// errorRange narrows exprRange to start at the reported column, when there is one.
func (d *document) errorRange(r watch.LineResult) Range {
	rng := d.exprRange(r)
	var ce *types.CalcError
	if !errors.As(r.Err, &ce) || ce.Column <= 0 || ce.Column > len(r.Expression) {
		return rng
	}
	rng.Start.Character += utf16Len(r.Expression[:ce.Column-1])
	return rng
}

func (d *document) diagnostics() []Diagnostic {
	diags := []Diagnostic{}
	for line := 0; line < len(d.lines); line++ {
		r, ok := d.results[line]
		if !ok || r.Err == nil {
			continue
		}
		code := "error"
		if k, ok := types.KindOf(r.Err); ok {
			code = k.String()
		}
		diags = append(diags, Diagnostic{
			Range:    d.errorRange(r),
			Severity: SeverityError,
			Code:     code,
			Source:   diagnosticSource,
			Message:  r.Err.Error(),
		})
	}
	return diags
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
