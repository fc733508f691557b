package commands

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mamaar/gocalc/internal/cli"
	"github.com/mamaar/gocalc/pkg/calc"
)

// DemoOutcome is the result of running one demonstration
type DemoOutcome struct {
	Function string `json:"function"`
	Input    string `json:"input"`
	Result   string `json:"result,omitempty"`
	Error    string `json:"error,omitempty"`
	Kind     string `json:"kind,omitempty"`
}

type demonstration struct {
	name  string
	input string
	run   func() (string, error)
}

func demonstrations() []demonstration {
	return []demonstration{
		{"add", "2, 3", func() (string, error) {
			return strconv.Itoa(calc.Add(2, 3)), nil
		}},
		{"divide", "10, 0", func() (string, error) {
			q, err := calc.Divide(10, 0)
			return strconv.FormatFloat(q, 'g', -1, 64), err
		}},
		{"evaluate", `"2 + 2"`, func() (string, error) {
			v, err := calc.Evaluate("2 + 2")
			return v.String(), err
		}},
		{"average", "[]", func() (string, error) {
			avg, err := calc.Average(nil)
			return strconv.FormatFloat(avg, 'g', -1, 64), err
		}},
		{"format_money", "12.5", func() (string, error) {
			return calc.FormatMoney(12.5), nil
		}},
	}
}

// RunDemo runs every demonstration in order. A failing demonstration is
// logged with its function name and inputs and does not stop the rest.
func RunDemo() []DemoOutcome {
	var outcomes []DemoOutcome
	for _, d := range demonstrations() {
		out := DemoOutcome{Function: d.name, Input: d.input}

		result, err := d.run()
		if err != nil {
			out.Error = err.Error()
			out.Kind = errorKind(err)
			cli.Logger().Warn("demonstration failed",
				"function", d.name,
				"input", d.input,
				"kind", out.Kind,
				"err", err,
			)
		} else {
			out.Result = result
			cli.Logger().Debug("demonstration succeeded", "function", d.name, "input", d.input, "result", result)
		}
		outcomes = append(outcomes, out)
	}
	return outcomes
}

// DemoCommand handles "demo"
func DemoCommand(args []string) error {
	if len(args) > 0 {
		return usageError("demo")
	}

	outcomes := RunDemo()
	if jsonOutput() {
		return OutputJSON(outcomes)
	}

	title := cases.Title(language.English)
	for _, o := range outcomes {
		label := title.String(strings.ReplaceAll(o.Function, "_", " "))
		if o.Error != "" {
			fmt.Fprintf(cli.Stdout, "%s(%s): failed (%s)\n", label, o.Input, o.Kind)
			continue
		}
		fmt.Fprintf(cli.Stdout, "%s(%s): %s\n", label, o.Input, o.Result)
	}
	return nil
}
