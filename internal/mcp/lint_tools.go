package mcp

import (
	"context"
	"errors"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mamaar/gocalc/pkg/analyzers"
	"github.com/mamaar/gocalc/pkg/analyzers/exprlit"
)

// --- lint_go_source ---

type LintInput struct {
	Paths    []string `json:"paths,omitempty" jsonschema:"Go files or directories to lint; a trailing /... is accepted"`
	Source   string   `json:"source,omitempty" jsonschema:"Go source text to lint instead of paths"`
	Filename string   `json:"filename,omitempty" jsonschema:"name reported for source (default input.go)"`
}

type LintResult struct {
	Violations []*exprlit.Result `json:"violations"`
	Count      int               `json:"count"`
}

// LintGoSource runs the expression literal analyzer over in.Source or in.Paths.
func (s *MCPServer) LintGoSource(ctx context.Context, in LintInput) (*LintResult, error) {
	var (
		src *analyzers.Source
		err error
	)
	switch {
	case in.Source != "":
		name := in.Filename
		if name == "" {
			name = "input.go"
		}
		src = analyzers.NewSource()
		err = src.AddFile(name, []byte(in.Source))
	case len(in.Paths) > 0:
		src, err = analyzers.LoadPaths(in.Paths...)
	default:
		return nil, errors.New("either source or paths is required")
	}
	if err != nil {
		s.logger.Warn("lint input unreadable", "paths", in.Paths, "err", err)
		return nil, err
	}

	rr, err := analyzers.RunFiles(src, exprlit.Analyzer)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", exprlit.Analyzer.Name, err)
	}
	results, _ := rr.Result.([]*exprlit.Result)
	if results == nil {
		results = []*exprlit.Result{}
	}
	s.logger.Debug("lint complete", "files", len(src.Files), "violations", len(results))
	return &LintResult{Violations: results, Count: len(results)}, nil
}

func registerLintTools(s *mcpsdk.Server, state *MCPServer) {
	mcpsdk.AddTool(s, &mcpsdk.Tool{
		Name:        "lint_go_source",
		Description: "Report calls to calc.Evaluate or calc.Parse whose constant string argument always fails. Pass either Go source text or file/directory paths.",
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, in LintInput) (*mcpsdk.CallToolResult, any, error) {
		out, err := state.LintGoSource(ctx, in)
		if err != nil {
			return errResult(err), nil, nil
		}
		return textResult(out), nil, nil
	})
}
