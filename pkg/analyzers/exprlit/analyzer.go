// Package exprlit reports constant expression strings handed to
// calc.Evaluate or calc.Parse that are guaranteed to fail at run time.
package exprlit

import (
	"fmt"
	"go/ast"
	"go/constant"
	"go/token"
	gotypes "go/types"
	"reflect"
	"strconv"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"github.com/mamaar/gocalc/pkg/analyzers/filedata"
	"github.com/mamaar/gocalc/pkg/calc"
	"github.com/mamaar/gocalc/pkg/types"
)

// CalcPackage is the import path whose Evaluate and Parse calls are checked.
const CalcPackage = "github.com/mamaar/gocalc/pkg/calc"

// Result is the typed result returned for MCP consumption.
type Result struct {
	File       string `json:"file"`
	Line       int    `json:"line"`
	Column     int    `json:"column"`
	Function   string `json:"function"`
	Expression string `json:"expression"`
	Kind       string `json:"kind"`
	Message    string `json:"message"`
	Snippet    string `json:"snippet"`
}

var Analyzer = &analysis.Analyzer{
	Name:       "exprlit",
	Doc:        "reports constant expressions passed to calc.Evaluate or calc.Parse that can never succeed",
	Run:        run,
	Requires:   []*analysis.Analyzer{inspect.Analyzer, filedata.Analyzer},
	ResultType: reflect.TypeOf([]*Result(nil)),
}

func run(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	fd, _ := pass.ResultOf[filedata.Analyzer].(*filedata.Data)
	var results []*Result

	for fileCur := range insp.Root().Preorder((*ast.File)(nil)) {
		file := fileCur.Node().(*ast.File)
		imports := calcImportNames(file)
		inCalc := file.Name.Name == "calc"

		for cur := range fileCur.Preorder((*ast.CallExpr)(nil)) {
			call := cur.Node().(*ast.CallExpr)
			fn := calleeName(pass, call, imports, inCalc)
			if fn == "" || len(call.Args) == 0 {
				continue
			}

			expr, ok := constantString(pass, call.Args[0])
			if !ok {
				continue
			}

			err := check(fn, expr)
			if err == nil {
				continue
			}

			kind := "unknown"
			if k, ok := types.KindOf(err); ok {
				kind = k.String()
			}
			msg := fmt.Sprintf("calc.%s(%q) always fails: %v", fn, expr, err)

			pass.Report(analysis.Diagnostic{
				Pos:      call.Args[0].Pos(),
				End:      call.Args[0].End(),
				Category: kind,
				Message:  msg,
			})

			pos := pass.Fset.Position(call.Pos())
			results = append(results, &Result{
				File:       pos.Filename,
				Line:       pos.Line,
				Column:     pos.Column,
				Function:   fn,
				Expression: expr,
				Kind:       kind,
				Message:    msg,
				Snippet:    fd.Line(pos.Filename, pos.Line),
			})
		}
	}

	return results, nil
}

// check returns the error the call would produce, if any.
func check(fn, expr string) error {
	node, err := calc.Parse(expr)
	if err != nil {
		return err
	}
	if fn == "Parse" {
		return nil
	}
	_, err = calc.Eval(node)
	return err
}

// calcImportNames returns the local names under which file imports the
// calc package.
func calcImportNames(file *ast.File) map[string]bool {
	names := make(map[string]bool)
	for _, imp := range file.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil || path != CalcPackage {
			continue
		}
		name := "calc"
		if imp.Name != nil {
			name = imp.Name.Name
		}
		if name == "_" {
			continue
		}
		names[name] = true
	}
	return names
}

// calleeName returns "Evaluate" or "Parse" when call targets the calc
// package, and "" otherwise.
func calleeName(pass *analysis.Pass, call *ast.CallExpr, imports map[string]bool, inCalc bool) string {
	var ident *ast.Ident
	switch fun := ast.Unparen(call.Fun).(type) {
	case *ast.SelectorExpr:
		x, ok := fun.X.(*ast.Ident)
		if !ok {
			return ""
		}
		if !imports[x.Name] && !usesCalcPackage(pass, x) {
			return ""
		}
		ident = fun.Sel
	case *ast.Ident:
		if !inCalc && !imports["."] {
			return ""
		}
		ident = fun
	default:
		return ""
	}

	switch ident.Name {
	case "Evaluate", "Parse":
		return ident.Name
	}
	return ""
}

// usesCalcPackage consults type information when the driver provides it.
func usesCalcPackage(pass *analysis.Pass, x *ast.Ident) bool {
	if pass.TypesInfo == nil || pass.TypesInfo.Uses == nil {
		return false
	}
	pkgName, ok := pass.TypesInfo.Uses[x].(*gotypes.PkgName)
	return ok && pkgName.Imported().Path() == CalcPackage
}

func constantString(pass *analysis.Pass, arg ast.Expr) (string, bool) {
	if pass.TypesInfo != nil && pass.TypesInfo.Types != nil {
		if tv, ok := pass.TypesInfo.Types[arg]; ok && tv.Value != nil && tv.Value.Kind() == constant.String {
			return constant.StringVal(tv.Value), true
		}
	}

	lit, ok := ast.Unparen(arg).(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return "", false
	}
	s, err := strconv.Unquote(lit.Value)
	if err != nil {
		return "", false
	}
	return s, true
}
