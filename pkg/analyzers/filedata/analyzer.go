// Package filedata exposes the raw bytes of each analysed Go file to
// downstream analyzers through pass.ResultOf, so they can quote source
// lines in their results.
//
// analyzers.RunFiles fills the result from the files it loaded; under a
// standard driver the files are read through pass.ReadFile.
package filedata

import (
	"bytes"
	"reflect"

	"golang.org/x/tools/go/analysis"
)

// Data holds file content keyed by the filename recorded in the token.FileSet.
type Data struct {
	Content map[string][]byte
}

// Line returns the trimmed text of the 1-based line in filename, or ""
// when the content is unknown or line is out of range.
func (d *Data) Line(filename string, line int) string {
	if d == nil {
		return ""
	}
	content := d.Content[filename]
	if len(content) == 0 {
		return ""
	}
	lines := bytes.Split(content, []byte("\n"))
	if line < 1 || line > len(lines) {
		return ""
	}
	return string(bytes.TrimSpace(lines[line-1]))
}

var Analyzer = &analysis.Analyzer{
	Name:       "filedata",
	Doc:        "provides raw file content to downstream analyzers",
	Run:        run,
	ResultType: reflect.TypeOf((*Data)(nil)),
}

func run(pass *analysis.Pass) (any, error) {
	d := &Data{Content: make(map[string][]byte)}
	if pass.ReadFile == nil {
		return d, nil
	}
	for _, f := range pass.Files {
		tf := pass.Fset.File(f.Pos())
		if tf == nil {
			continue
		}
		// Unreadable files only lose their snippets.
		if content, err := pass.ReadFile(tf.Name()); err == nil {
			d.Content[tf.Name()] = content
		}
	}
	return d, nil
}
