package commands

import (
	"fmt"

	"github.com/mamaar/gocalc/internal/cli"
	"github.com/mamaar/gocalc/pkg/analyzers"
	"github.com/mamaar/gocalc/pkg/analyzers/exprlit"
)

// LintCommand handles "lint <file|dir>..."
func LintCommand(args []string) error {
	if len(args) == 0 {
		return usageError("lint <file|dir>...")
	}

	results, err := Lint(args...)
	if err != nil {
		return err
	}

	if jsonOutput() {
		if err := OutputJSON(map[string]interface{}{"violations": results}); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			fmt.Fprintf(cli.Stdout, "%s:%d:%d: %s\n", r.File, r.Line, r.Column, r.Message)
		}
	}

	if len(results) > 0 {
		return fmt.Errorf("%d failing expression literal(s) found", len(results))
	}
	return nil
}

// Lint runs the expression literal analyzer over the Go files in paths
func Lint(paths ...string) ([]*exprlit.Result, error) {
	src, err := analyzers.LoadPaths(paths...)
	if err != nil {
		return nil, err
	}
	cli.Logger().Debug("linting", "files", len(src.Files))

	rr, err := analyzers.RunFiles(src, exprlit.Analyzer)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", exprlit.Analyzer.Name, err)
	}
	results, _ := rr.Result.([]*exprlit.Result)
	return results, nil
}
