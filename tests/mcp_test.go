package tests_test

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamaar/gocalc/tests/mcptest"
)

var transportFlag = flag.String("transport", "inprocess", "MCP transport: inprocess or process")
var binFlag = flag.String("bin", "./gocalc-mcp", "path to gocalc-mcp binary (used with -transport=process)")

func mcpTransport() mcptest.Transport {
	switch *transportFlag {
	case "process":
		return mcptest.Subprocess(*binFlag)
	default:
		return mcptest.InProcess()
	}
}

func TestMCPTools(t *testing.T) {
	tests := []struct {
		name string
		tool string
		args map[string]any
		want map[string]any
	}{
		{
			name: "evaluate", tool: "evaluate",
			args: map[string]any{"expression": "2 + 2 * (3 - 1)"},
			want: map[string]any{"value": float64(6), "kind": "int"},
		},
		{
			name: "evaluate_float", tool: "evaluate",
			args: map[string]any{"expression": "7 / 2"},
			want: map[string]any{"value": 3.5, "kind": "float"},
		},
		{
			name: "parse_expression", tool: "parse_expression",
			args: map[string]any{"expression": "1 + 2 * 3"},
			want: map[string]any{"tree": "(1 + (2 * 3))"},
		},
		{
			name: "add", tool: "add",
			args: map[string]any{"a": 2, "b": 3},
			want: map[string]any{"result": float64(5)},
		},
		{
			name: "divide", tool: "divide",
			args: map[string]any{"a": 10, "b": 4},
			want: map[string]any{"result": 2.5},
		},
		{
			name: "average", tool: "average",
			args: map[string]any{"numbers": []float64{1, 2, 3}},
			want: map[string]any{"result": float64(2)},
		},
		{
			name: "evaluate_double_negation", tool: "evaluate",
			args: map[string]any{"expression": "1--2"},
			want: map[string]any{"value": float64(3), "kind": "int"},
		},
		{
			name: "evaluate_overflow", tool: "evaluate",
			args: map[string]any{"expression": "1e308 * 10"},
			want: map[string]any{"value": "+Inf", "kind": "float"},
		},
		{
			name: "divide_overflow", tool: "divide",
			args: map[string]any{"a": 1e308, "b": 1e-308},
			want: map[string]any{"result": "+Inf"},
		},
		{
			name: "format_money", tool: "format_money",
			args: map[string]any{"amount": 12.5},
			want: map[string]any{"formatted": "USD 12.50"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			sess := mcptest.Dial(ctx, t, mcpTransport())
			defer sess.Close()

			text, isErr := sess.Call(ctx, t, tt.tool, tt.args)
			require.False(t, isErr, "tool returned error: %s", text)

			var got map[string]any
			require.NoError(t, json.Unmarshal([]byte(text), &got))
			for k, v := range tt.want {
				assert.Equal(t, v, got[k], "field %s", k)
			}
		})
	}
}

func TestMCPToolErrors(t *testing.T) {
	tests := []struct {
		name string
		tool string
		args map[string]any
		kind string
	}{
		{"divide_by_zero", "divide", map[string]any{"a": 10, "b": 0}, "division by zero"},
		{"evaluate_divide_by_zero", "evaluate", map[string]any{"expression": "1/0"}, "division by zero"},
		{"average_empty", "average", map[string]any{"numbers": []float64{}}, "empty input"},
		{"evaluate_call", "evaluate", map[string]any{"expression": "abs(1)"}, "unsupported expression"},
		{"evaluate_statement", "evaluate", map[string]any{"expression": "1; 2"}, "syntax error"},
		{"evaluate_floor_division", "evaluate", map[string]any{"expression": "7 // 2"}, "syntax error"},
		{"parse_name", "parse_expression", map[string]any{"expression": "x + 1"}, "unsupported expression"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			sess := mcptest.Dial(ctx, t, mcpTransport())
			defer sess.Close()

			text, isErr := sess.Call(ctx, t, tt.tool, tt.args)
			assert.True(t, isErr, "expected an error, got %s", text)
			assert.Contains(t, text, tt.kind)
		})
	}
}

func TestMCPLintGoSource(t *testing.T) {
	const source = `package sample

import "github.com/mamaar/gocalc/pkg/calc"

func values() {
	calc.Evaluate("2 + 2")
	calc.Evaluate("1/0")
	calc.Parse("x * 2")
}
`
	ctx := context.Background()
	sess := mcptest.Dial(ctx, t, mcpTransport())
	defer sess.Close()

	t.Run("source", func(t *testing.T) {
		text, isErr := sess.Call(ctx, t, "lint_go_source", map[string]any{
			"source":   source,
			"filename": "sample.go",
		})
		require.False(t, isErr, text)

		var got struct {
			Count      int `json:"count"`
			Violations []struct {
				File string `json:"file"`
				Line int    `json:"line"`
				Kind string `json:"kind"`
			} `json:"violations"`
		}
		require.NoError(t, json.Unmarshal([]byte(text), &got))
		require.Equal(t, 2, got.Count)
		assert.Equal(t, "sample.go", got.Violations[0].File)
		assert.Equal(t, 7, got.Violations[0].Line)
		assert.Equal(t, "division by zero", got.Violations[0].Kind)
		assert.Equal(t, 8, got.Violations[1].Line)
		assert.Equal(t, "unsupported expression", got.Violations[1].Kind)
	})

	t.Run("paths", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "sample.go"), []byte(source), 0o644))

		text, isErr := sess.Call(ctx, t, "lint_go_source", map[string]any{
			"paths": []string{dir + "/..."},
		})
		require.False(t, isErr, text)
		assert.Contains(t, text, `"count": 2`)
	})

	t.Run("no input", func(t *testing.T) {
		text, isErr := sess.Call(ctx, t, "lint_go_source", map[string]any{})
		assert.True(t, isErr)
		assert.Contains(t, text, "either source or paths is required")
	})
}
