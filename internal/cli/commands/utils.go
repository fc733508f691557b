package commands

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mamaar/gocalc/internal/cli"
	"github.com/mamaar/gocalc/pkg/types"
)

// OutputJSON writes data to the command output as indented JSON
func OutputJSON(data interface{}) error {
	encoder := json.NewEncoder(cli.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// jsonOutput reports whether -json was given
func jsonOutput() bool {
	return cli.GlobalFlags != nil && cli.GlobalFlags.Json != nil && *cli.GlobalFlags.Json
}

// parseFloats converts every argument to a float64
func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, 0, len(args))
	for _, a := range args {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", a)
		}
		out = append(out, f)
	}
	return out, nil
}

// errorKind names the failure for logs and JSON output
func errorKind(err error) string {
	if k, ok := types.KindOf(err); ok {
		return k.String()
	}
	return "error"
}

// failure logs an operation failure with its inputs and returns err unchanged
func failure(op string, input string, err error) error {
	cli.Logger().Warn("operation failed",
		"op", op,
		"input", input,
		"kind", errorKind(err),
		"err", err,
	)
	return err
}

func usageError(usage string) error {
	return fmt.Errorf("usage: gocalc %s", usage)
}

func joinArgs(args []string) string {
	return strings.Join(args, " ")
}
