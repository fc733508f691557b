package commands

import (
	"fmt"

	"github.com/mamaar/gocalc/internal/cli"
	"github.com/mamaar/gocalc/pkg/calc"
)

// EvalCommand handles "eval <expression>". Multiple arguments are joined
// with spaces, so the expression need not be quoted.
func EvalCommand(args []string) error {
	if len(args) == 0 {
		return usageError("eval <expression>")
	}
	expr := joinArgs(args)

	v, err := calc.Evaluate(expr)
	if err != nil {
		return failure("evaluate", expr, err)
	}

	if jsonOutput() {
		return OutputJSON(map[string]interface{}{
			"expression": expr,
			"value":      v,
			"kind":       v.Kind().String(),
		})
	}
	fmt.Fprintln(cli.Stdout, v)
	return nil
}

// ParseCommand handles "parse <expression>"
func ParseCommand(args []string) error {
	if len(args) == 0 {
		return usageError("parse <expression>")
	}
	expr := joinArgs(args)

	node, err := calc.Parse(expr)
	if err != nil {
		return failure("parse", expr, err)
	}

	formatted := calc.Format(node)
	if jsonOutput() {
		return OutputJSON(map[string]interface{}{
			"expression": expr,
			"tree":       formatted,
		})
	}
	fmt.Fprintln(cli.Stdout, formatted)
	return nil
}
