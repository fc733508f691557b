package watch

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mamaar/gocalc/pkg/calc"
	"github.com/mamaar/gocalc/pkg/types"
)

// LineResult is the outcome of evaluating one sheet line.
type LineResult struct {
	Line       int          `json:"line"`
	Expression string       `json:"expression"`
	Value      types.Number `json:"value"`
	Err        error        `json:"-"`
}

// Error returns the failure text, or "" when the line evaluated.
func (r LineResult) Error() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// EvaluateSheet reads the sheet at path and evaluates every expression in it.
func EvaluateSheet(path string) ([]LineResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sheet: %w", err)
	}
	defer f.Close()

	results, err := EvaluateLines(f)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", path, err)
	}
	return results, nil
}

// EvaluateLines evaluates one expression per line of r. Blank lines and
// lines starting with '#' are skipped. A failing line does not stop the
// remaining ones.
func EvaluateLines(r io.Reader) ([]LineResult, error) {
	var results []LineResult

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		v, err := calc.Evaluate(text)
		results = append(results, LineResult{
			Line:       lineNo,
			Expression: text,
			Value:      v,
			Err:        err,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// FindSheets returns every sheet under root in lexical order, skipping
// hidden directories the same way the watcher does.
func FindSheets(root string) ([]string, error) {
	var sheets []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, SheetSuffix) {
			sheets = append(sheets, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(sheets)
	return sheets, nil
}
