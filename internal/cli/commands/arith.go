package commands

import (
	"fmt"
	"strconv"

	"github.com/mamaar/gocalc/internal/cli"
	"github.com/mamaar/gocalc/pkg/calc"
	"github.com/mamaar/gocalc/pkg/types"
)

// AddCommand handles "add <a> <b>"
func AddCommand(args []string) error {
	if len(args) != 2 {
		return usageError("add <a> <b>")
	}
	a, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid integer %q", args[0])
	}
	b, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid integer %q", args[1])
	}

	sum := calc.Add(a, b)
	if jsonOutput() {
		return OutputJSON(map[string]interface{}{"a": a, "b": b, "result": sum})
	}
	fmt.Fprintln(cli.Stdout, sum)
	return nil
}

// DivideCommand handles "divide <a> <b>"
func DivideCommand(args []string) error {
	if len(args) != 2 {
		return usageError("divide <a> <b>")
	}
	nums, err := parseFloats(args)
	if err != nil {
		return err
	}

	q, err := calc.Divide(nums[0], nums[1])
	if err != nil {
		return failure("divide", joinArgs(args), err)
	}
	if jsonOutput() {
		return OutputJSON(map[string]interface{}{"a": nums[0], "b": nums[1], "result": types.Float(q)})
	}
	fmt.Fprintln(cli.Stdout, strconv.FormatFloat(q, 'g', -1, 64))
	return nil
}

// AverageCommand handles "average <n>..."
func AverageCommand(args []string) error {
	nums, err := parseFloats(args)
	if err != nil {
		return err
	}

	avg, err := calc.Average(nums)
	if err != nil {
		return failure("average", joinArgs(args), err)
	}
	if jsonOutput() {
		return OutputJSON(map[string]interface{}{"numbers": nums, "result": types.Float(avg)})
	}
	fmt.Fprintln(cli.Stdout, strconv.FormatFloat(avg, 'g', -1, 64))
	return nil
}

// MoneyCommand handles "money <amount>"
func MoneyCommand(args []string) error {
	if len(args) != 1 {
		return usageError("money <amount>")
	}
	nums, err := parseFloats(args)
	if err != nil {
		return err
	}

	s := calc.FormatMoney(nums[0])
	if jsonOutput() {
		return OutputJSON(map[string]interface{}{"amount": nums[0], "result": s})
	}
	fmt.Fprintln(cli.Stdout, s)
	return nil
}
