// Command exprlitcheck runs the exprlit analyzer as a standalone vet-style
// tool, with full type information:
//
//	exprlitcheck ./...
//	go vet -vettool=$(which exprlitcheck) ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/mamaar/gocalc/pkg/analyzers/exprlit"
)

func main() {
	singlechecker.Main(exprlit.Analyzer)
}
