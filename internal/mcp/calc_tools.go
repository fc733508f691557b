package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mamaar/gocalc/pkg/calc"
	"github.com/mamaar/gocalc/pkg/types"
)

// --- evaluate ---

type EvaluateInput struct {
	Expression string `json:"expression" jsonschema:"arithmetic expression using numbers, + - * /, unary sign and parentheses"`
}

type EvaluateResult struct {
	Expression string       `json:"expression"`
	Value      types.Number `json:"value"`
	Kind       string       `json:"kind"`
}

// --- parse_expression ---

type ParseInput struct {
	Expression string `json:"expression" jsonschema:"arithmetic expression to parse without evaluating"`
}

type ParseResult struct {
	Expression string `json:"expression"`
	Tree       string `json:"tree"`
}

// --- add ---

type AddInput struct {
	A int `json:"a" jsonschema:"first integer"`
	B int `json:"b" jsonschema:"second integer"`
}

// --- divide ---

type DivideInput struct {
	A float64 `json:"a" jsonschema:"dividend"`
	B float64 `json:"b" jsonschema:"divisor, must not be zero"`
}

// --- average ---

type AverageInput struct {
	Numbers []float64 `json:"numbers" jsonschema:"numbers to average, at least one"`
}

// --- format_money ---

type FormatMoneyInput struct {
	Amount float64 `json:"amount" jsonschema:"amount in dollars"`
}

type FormatMoneyResult struct {
	Amount    float64 `json:"amount"`
	Formatted string  `json:"formatted"`
}

// NumberResult is returned by the numeric tools.
type NumberResult struct {
	Result any `json:"result"`
}

// Evaluate evaluates in.Expression with the restricted evaluator.
func (s *MCPServer) Evaluate(ctx context.Context, in EvaluateInput) (*EvaluateResult, error) {
	v, err := calc.Evaluate(in.Expression)
	if err != nil {
		return nil, s.fail("evaluate", in.Expression, err)
	}
	return &EvaluateResult{Expression: in.Expression, Value: v, Kind: v.Kind().String()}, nil
}

// ParseExpression parses in.Expression and renders its grouping.
func (s *MCPServer) ParseExpression(ctx context.Context, in ParseInput) (*ParseResult, error) {
	node, err := calc.Parse(in.Expression)
	if err != nil {
		return nil, s.fail("parse_expression", in.Expression, err)
	}
	return &ParseResult{Expression: in.Expression, Tree: calc.Format(node)}, nil
}

// Add returns in.A + in.B.
func (s *MCPServer) Add(ctx context.Context, in AddInput) *NumberResult {
	return &NumberResult{Result: calc.Add(in.A, in.B)}
}

// Divide returns in.A / in.B.
func (s *MCPServer) Divide(ctx context.Context, in DivideInput) (*NumberResult, error) {
	q, err := calc.Divide(in.A, in.B)
	if err != nil {
		return nil, s.fail("divide", fmt.Sprintf("%g, %g", in.A, in.B), err)
	}
	return &NumberResult{Result: types.Float(q)}, nil
}

// Average returns the mean of in.Numbers.
func (s *MCPServer) Average(ctx context.Context, in AverageInput) (*NumberResult, error) {
	avg, err := calc.Average(in.Numbers)
	if err != nil {
		return nil, s.fail("average", in.Numbers, err)
	}
	return &NumberResult{Result: types.Float(avg)}, nil
}

// FormatMoney renders in.Amount as a dollar string.
func (s *MCPServer) FormatMoney(ctx context.Context, in FormatMoneyInput) *FormatMoneyResult {
	return &FormatMoneyResult{Amount: in.Amount, Formatted: calc.FormatMoney(in.Amount)}
}

func registerCalcTools(s *mcpsdk.Server, state *MCPServer) {
	mcpsdk.AddTool(s, &mcpsdk.Tool{
		Name:        "evaluate",
		Description: "Evaluate an arithmetic expression. Only numeric literals, + - * /, unary + and -, and parentheses are accepted; anything else is rejected.",
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, in EvaluateInput) (*mcpsdk.CallToolResult, any, error) {
		out, err := state.Evaluate(ctx, in)
		if err != nil {
			return errResult(err), nil, nil
		}
		return textResult(out), nil, nil
	})

	mcpsdk.AddTool(s, &mcpsdk.Tool{
		Name:        "parse_expression",
		Description: "Parse an arithmetic expression without evaluating it and return it fully parenthesised.",
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, in ParseInput) (*mcpsdk.CallToolResult, any, error) {
		out, err := state.ParseExpression(ctx, in)
		if err != nil {
			return errResult(err), nil, nil
		}
		return textResult(out), nil, nil
	})

	mcpsdk.AddTool(s, &mcpsdk.Tool{
		Name:        "add",
		Description: "Add two integers.",
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, in AddInput) (*mcpsdk.CallToolResult, any, error) {
		return textResult(state.Add(ctx, in)), nil, nil
	})

	mcpsdk.AddTool(s, &mcpsdk.Tool{
		Name:        "divide",
		Description: "Divide a by b. Fails with a division by zero error when b is zero.",
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, in DivideInput) (*mcpsdk.CallToolResult, any, error) {
		out, err := state.Divide(ctx, in)
		if err != nil {
			return errResult(err), nil, nil
		}
		return textResult(out), nil, nil
	})

	mcpsdk.AddTool(s, &mcpsdk.Tool{
		Name:        "average",
		Description: "Arithmetic mean of a list of numbers. Fails with an empty input error for an empty list.",
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, in AverageInput) (*mcpsdk.CallToolResult, any, error) {
		out, err := state.Average(ctx, in)
		if err != nil {
			return errResult(err), nil, nil
		}
		return textResult(out), nil, nil
	})

	mcpsdk.AddTool(s, &mcpsdk.Tool{
		Name:        "format_money",
		Description: `Format an amount as "USD " followed by the value with two decimals.`,
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, in FormatMoneyInput) (*mcpsdk.CallToolResult, any, error) {
		return textResult(state.FormatMoney(ctx, in)), nil, nil
	})
}

// textResult marshals v to JSON and wraps it in a single TextContent
// block. A value that cannot be encoded becomes an error result.
func textResult(v any) *mcpsdk.CallToolResult {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errResult(fmt.Errorf("encode result: %w", err))
	}
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(b)},
		},
	}
}

func errResult(err error) *mcpsdk.CallToolResult {
	r := &mcpsdk.CallToolResult{}
	r.SetError(err)
	return r
}
