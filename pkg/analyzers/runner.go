package analyzers

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/ast/inspector"

	"github.com/mamaar/gocalc/pkg/analyzers/filedata"
)

// Source is a set of parsed Go files that share one FileSet.
type Source struct {
	Fset    *token.FileSet
	Files   []*ast.File
	Content map[string][]byte
}

// NewSource returns an empty Source ready for AddFile.
func NewSource() *Source {
	return &Source{
		Fset:    token.NewFileSet(),
		Content: make(map[string][]byte),
	}
}

// AddFile parses src under filename and adds it to the set.
func (s *Source) AddFile(filename string, src []byte) error {
	f, err := parser.ParseFile(s.Fset, filename, src, parser.ParseComments)
	if err != nil {
		return fmt.Errorf("parse %s: %w", filename, err)
	}
	s.Files = append(s.Files, f)
	s.Content[filename] = src
	return nil
}

// LoadPaths reads every .go file named in paths. Directories are walked
// recursively, so "dir/..." means the same as "dir"; hidden directories,
// vendor and testdata are skipped.
func LoadPaths(paths ...string) (*Source, error) {
	src := NewSource()

	var files []string
	for _, p := range paths {
		if strings.HasSuffix(p, "...") {
			p = filepath.Clean(strings.TrimSuffix(p, "..."))
		}
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				name := d.Name()
				if path != p && (strings.HasPrefix(name, ".") || name == "vendor" || name == "testdata") {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(path, ".go") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", p, err)
		}
	}

	sort.Strings(files)
	for _, f := range files {
		content, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f, err)
		}
		if err := src.AddFile(f, content); err != nil {
			return nil, err
		}
	}
	return src, nil
}

// RunResult holds the output of running an analyzer over a Source.
type RunResult struct {
	Result      any
	Diagnostics []analysis.Diagnostic
}

// RunFiles executes an analyzer over all files in src as a single pass.
// No type checking is performed; analyzers must cope with an empty
// TypesInfo.
func RunFiles(src *Source, a *analysis.Analyzer) (*RunResult, error) {
	var diags []analysis.Diagnostic

	pass, err := buildPass(src, a, func(d analysis.Diagnostic) {
		diags = append(diags, d)
	})
	if err != nil {
		return nil, err
	}

	res, err := a.Run(pass)
	if err != nil {
		return nil, err
	}

	return &RunResult{Result: res, Diagnostics: diags}, nil
}

func buildPass(src *Source, a *analysis.Analyzer, report func(analysis.Diagnostic)) (*analysis.Pass, error) {
	name := "main"
	if len(src.Files) > 0 {
		name = src.Files[0].Name.Name
	}

	pass := &analysis.Pass{
		Analyzer:  a,
		Fset:      src.Fset,
		Files:     src.Files,
		Pkg:       types.NewPackage(name, name),
		TypesInfo: &types.Info{},
		Report:    report,
		ResultOf:  make(map[*analysis.Analyzer]any),
	}

	// Pre-compute results for required analyzers.
	for _, req := range a.Requires {
		switch {
		case req == filedata.Analyzer:
			pass.ResultOf[req] = &filedata.Data{Content: src.Content}
		case req.Name == "inspect":
			pass.ResultOf[req] = inspector.New(src.Files)
		default:
			reqPass, err := buildPass(src, req, func(analysis.Diagnostic) {})
			if err != nil {
				return nil, err
			}
			res, err := req.Run(reqPass)
			if err != nil {
				return nil, err
			}
			pass.ResultOf[req] = res
		}
	}

	return pass, nil
}
