package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	internalmcp "github.com/mamaar/gocalc/internal/mcp"
)

type toolFunc func(ctx context.Context, args map[string]any) (any, error)

// addTools registers the gocalc tools on s. Argument decoding happens here;
// the operations themselves live in internal/mcp.
func addTools(s *server.MCPServer, state *internalmcp.MCPServer) {
	add := func(tool mcp.Tool, fn toolFunc) {
		s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			out, err := fn(ctx, request.GetArguments())
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			b, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
			}
			return mcp.NewToolResultText(string(b)), nil
		})
	}

	add(mcp.NewTool("evaluate",
		mcp.WithDescription("Evaluate an arithmetic expression. Only numeric literals, + - * /, unary + and -, and parentheses are accepted; anything else is rejected."),
		mcp.WithString("expression", mcp.Required(), mcp.Description("Arithmetic expression")),
	), func(ctx context.Context, args map[string]any) (any, error) {
		expr, err := stringArg(args, "expression")
		if err != nil {
			return nil, err
		}
		return state.Evaluate(ctx, internalmcp.EvaluateInput{Expression: expr})
	})

	add(mcp.NewTool("parse_expression",
		mcp.WithDescription("Parse an arithmetic expression without evaluating it and return it fully parenthesised."),
		mcp.WithString("expression", mcp.Required(), mcp.Description("Arithmetic expression")),
	), func(ctx context.Context, args map[string]any) (any, error) {
		expr, err := stringArg(args, "expression")
		if err != nil {
			return nil, err
		}
		return state.ParseExpression(ctx, internalmcp.ParseInput{Expression: expr})
	})

	add(mcp.NewTool("add",
		mcp.WithDescription("Add two integers."),
		mcp.WithNumber("a", mcp.Required(), mcp.Description("First integer")),
		mcp.WithNumber("b", mcp.Required(), mcp.Description("Second integer")),
	), func(ctx context.Context, args map[string]any) (any, error) {
		a, err := intArg(args, "a")
		if err != nil {
			return nil, err
		}
		b, err := intArg(args, "b")
		if err != nil {
			return nil, err
		}
		return state.Add(ctx, internalmcp.AddInput{A: a, B: b}), nil
	})

	add(mcp.NewTool("divide",
		mcp.WithDescription("Divide a by b. Fails with a division by zero error when b is zero."),
		mcp.WithNumber("a", mcp.Required(), mcp.Description("Dividend")),
		mcp.WithNumber("b", mcp.Required(), mcp.Description("Divisor, must not be zero")),
	), func(ctx context.Context, args map[string]any) (any, error) {
		a, err := numberArg(args, "a")
		if err != nil {
			return nil, err
		}
		b, err := numberArg(args, "b")
		if err != nil {
			return nil, err
		}
		return state.Divide(ctx, internalmcp.DivideInput{A: a, B: b})
	})

	add(mcp.NewTool("average",
		mcp.WithDescription("Arithmetic mean of a list of numbers. Fails with an empty input error for an empty list."),
		mcp.WithArray("numbers", mcp.Required(), mcp.Description("Numbers to average"),
			mcp.Items(map[string]any{"type": "number"})),
	), func(ctx context.Context, args map[string]any) (any, error) {
		nums, err := numbersArg(args, "numbers")
		if err != nil {
			return nil, err
		}
		return state.Average(ctx, internalmcp.AverageInput{Numbers: nums})
	})

	add(mcp.NewTool("format_money",
		mcp.WithDescription(`Format an amount as "USD " followed by the value with two decimals.`),
		mcp.WithNumber("amount", mcp.Required(), mcp.Description("Amount in dollars")),
	), func(ctx context.Context, args map[string]any) (any, error) {
		amount, err := numberArg(args, "amount")
		if err != nil {
			return nil, err
		}
		return state.FormatMoney(ctx, internalmcp.FormatMoneyInput{Amount: amount}), nil
	})

	add(mcp.NewTool("lint_go_source",
		mcp.WithDescription("Report calls to calc.Evaluate or calc.Parse whose constant string argument always fails. Pass either Go source text or file/directory paths."),
		mcp.WithArray("paths", mcp.Description("Go files or directories to lint"),
			mcp.Items(map[string]any{"type": "string"})),
		mcp.WithString("source", mcp.Description("Go source text to lint instead of paths")),
		mcp.WithString("filename", mcp.Description("Name reported for source (default input.go)")),
	), func(ctx context.Context, args map[string]any) (any, error) {
		in := internalmcp.LintInput{}
		in.Source, _ = args["source"].(string)
		in.Filename, _ = args["filename"].(string)
		if raw, ok := args["paths"].([]any); ok {
			for _, p := range raw {
				s, ok := p.(string)
				if !ok {
					return nil, fmt.Errorf("paths must be strings")
				}
				in.Paths = append(in.Paths, s)
			}
		}
		return state.LintGoSource(ctx, in)
	})
}

func stringArg(args map[string]any, key string) (string, error) {
	s, ok := args[key].(string)
	if !ok {
		return "", fmt.Errorf("%s is required", key)
	}
	return s, nil
}

func numberArg(args map[string]any, key string) (float64, error) {
	f, ok := args[key].(float64)
	if !ok {
		return 0, fmt.Errorf("%s must be a number", key)
	}
	return f, nil
}

func intArg(args map[string]any, key string) (int, error) {
	f, err := numberArg(args, key)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return int(f), nil
}

func numbersArg(args map[string]any, key string) ([]float64, error) {
	raw, ok := args[key].([]any)
	if !ok {
		return nil, fmt.Errorf("%s must be an array of numbers", key)
	}
	nums := make([]float64, len(raw))
	for i, v := range raw {
		f, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("%s[%d] must be a number", key, i)
		}
		nums[i] = f
	}
	return nums, nil
}
