package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamaar/gocalc/internal/cli"
	"github.com/mamaar/gocalc/pkg/types"
)

// syncBuffer is a bytes.Buffer safe for the watch goroutine to write to
// while the test reads it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// setup parses global flags, redirects command output and enables debug
// logging into the returned stderr buffer.
func setup(t *testing.T, flags ...string) (*syncBuffer, *syncBuffer) {
	t.Helper()
	fs := flag.NewFlagSet("gocalc", flag.ContinueOnError)
	parsed := cli.NewFlags(fs)
	require.NoError(t, fs.Parse(flags))

	stdout, stderr := &syncBuffer{}, &syncBuffer{}
	oldOut, oldErr, oldFlags := cli.Stdout, cli.Stderr, cli.GlobalFlags
	cli.Stdout, cli.Stderr, cli.GlobalFlags = stdout, stderr, parsed
	cli.SetupLogging(true)
	t.Cleanup(func() {
		cli.Stdout, cli.Stderr, cli.GlobalFlags = oldOut, oldErr, oldFlags
		cli.SetupLogging(false)
	})
	return stdout, stderr
}

func TestAddCommand(t *testing.T) {
	stdout, _ := setup(t)
	require.NoError(t, AddCommand([]string{"2", "3"}))
	assert.Equal(t, "5\n", stdout.String())

	assert.EqualError(t, AddCommand([]string{"2"}), "usage: gocalc add <a> <b>")
	assert.EqualError(t, AddCommand([]string{"2", "x"}), `invalid integer "x"`)
}

func TestDivideCommand(t *testing.T) {
	t.Run("quotient", func(t *testing.T) {
		stdout, _ := setup(t)
		require.NoError(t, DivideCommand([]string{"7", "2"}))
		assert.Equal(t, "3.5\n", stdout.String())
	})

	t.Run("by zero is logged", func(t *testing.T) {
		stdout, stderr := setup(t)
		err := DivideCommand([]string{"10", "0"})
		assert.ErrorIs(t, err, types.ErrDivisionByZero)
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), "operation failed")
		assert.Contains(t, stderr.String(), "op=divide")
		assert.Contains(t, stderr.String(), `kind="division by zero"`)
	})

	t.Run("json", func(t *testing.T) {
		stdout, _ := setup(t, "-json")
		require.NoError(t, DivideCommand([]string{"1", "4"}))
		var got map[string]any
		require.NoError(t, json.Unmarshal([]byte(stdout.String()), &got))
		assert.Equal(t, 0.25, got["result"])
	})
}

func TestAverageCommand(t *testing.T) {
	stdout, _ := setup(t)
	require.NoError(t, AverageCommand([]string{"1", "2", "3"}))
	assert.Equal(t, "2\n", stdout.String())

	assert.ErrorIs(t, AverageCommand(nil), types.ErrEmptyInput)
	assert.EqualError(t, AverageCommand([]string{"1", "two"}), `invalid number "two"`)
}

func TestMoneyCommand(t *testing.T) {
	stdout, _ := setup(t)
	require.NoError(t, MoneyCommand([]string{"12.5"}))
	assert.Equal(t, "USD 12.50\n", stdout.String())
}

func TestEvalCommand(t *testing.T) {
	t.Run("joins arguments", func(t *testing.T) {
		stdout, _ := setup(t)
		require.NoError(t, EvalCommand([]string{"2", "+", "2", "*", "(3", "-", "1)"}))
		assert.Equal(t, "6\n", stdout.String())
	})

	t.Run("json", func(t *testing.T) {
		stdout, _ := setup(t, "-json")
		require.NoError(t, EvalCommand([]string{"7 / 2"}))
		var got map[string]any
		require.NoError(t, json.Unmarshal([]byte(stdout.String()), &got))
		assert.Equal(t, "7 / 2", got["expression"])
		assert.Equal(t, 3.5, got["value"])
		assert.Equal(t, "float", got["kind"])
	})

	t.Run("json overflow", func(t *testing.T) {
		stdout, _ := setup(t, "-json")
		require.NoError(t, EvalCommand([]string{"1e308 * 10"}))
		var got map[string]any
		require.NoError(t, json.Unmarshal([]byte(stdout.String()), &got))
		assert.Equal(t, "+Inf", got["value"])
		assert.Equal(t, "float", got["kind"])
	})

	t.Run("rejects comments", func(t *testing.T) {
		setup(t)
		err := EvalCommand([]string{"7 // 2"})
		assert.ErrorIs(t, err, types.ErrSyntax)
	})

	t.Run("rejects names", func(t *testing.T) {
		_, stderr := setup(t)
		err := EvalCommand([]string{"__import__('os')"})
		assert.ErrorIs(t, err, types.ErrSyntax)
		assert.Contains(t, stderr.String(), "op=evaluate")
	})

	t.Run("usage", func(t *testing.T) {
		setup(t)
		assert.EqualError(t, EvalCommand(nil), "usage: gocalc eval <expression>")
	})
}

func TestParseCommand(t *testing.T) {
	stdout, _ := setup(t)
	require.NoError(t, ParseCommand([]string{"1 + 2 * 3"}))
	assert.Equal(t, "(1 + (2 * 3))\n", stdout.String())

	assert.ErrorIs(t, ParseCommand([]string{"x + 1"}), types.ErrUnsupportedExpression)
}

func TestDemoCommand(t *testing.T) {
	stdout, stderr := setup(t)
	require.NoError(t, DemoCommand(nil))

	assert.Equal(t, `Add(2, 3): 5
Divide(10, 0): failed (division by zero)
Evaluate("2 + 2"): 4
Average([]): failed (empty input)
Format Money(12.5): USD 12.50
`, stdout.String())

	logs := stderr.String()
	assert.Contains(t, logs, "demonstration failed")
	assert.Contains(t, logs, "function=divide")
	assert.Contains(t, logs, "function=average")
}

func TestRunDemo(t *testing.T) {
	setup(t)
	outcomes := RunDemo()
	require.Len(t, outcomes, 5)

	names := make([]string, len(outcomes))
	for i, o := range outcomes {
		names[i] = o.Function
	}
	assert.Equal(t, []string{"add", "divide", "evaluate", "average", "format_money"}, names)
	assert.Equal(t, "division by zero", outcomes[1].Kind)
	assert.Equal(t, "4", outcomes[2].Result)
	assert.Equal(t, "empty input", outcomes[3].Kind)
	assert.Empty(t, outcomes[4].Error)
}

const lintSample = `package sample

import "github.com/mamaar/gocalc/pkg/calc"

func f() {
	calc.Evaluate("1/0")
	calc.Evaluate("1 + 1")
}
`

func TestLintCommand(t *testing.T) {
	t.Run("reports failing literal", func(t *testing.T) {
		stdout, _ := setup(t)
		dir := t.TempDir()
		path := filepath.Join(dir, "sample.go")
		require.NoError(t, os.WriteFile(path, []byte(lintSample), 0o644))

		err := LintCommand([]string{dir + "/..."})
		assert.EqualError(t, err, "1 failing expression literal(s) found")
		assert.Contains(t, stdout.String(), path+":6:")
		assert.Contains(t, stdout.String(), "always fails")
	})

	t.Run("clean", func(t *testing.T) {
		stdout, _ := setup(t)
		path := filepath.Join(t.TempDir(), "clean.go")
		require.NoError(t, os.WriteFile(path, []byte("package clean\n"), 0o644))

		require.NoError(t, LintCommand([]string{path}))
		assert.Empty(t, stdout.String())
	})

	t.Run("missing path", func(t *testing.T) {
		setup(t)
		assert.Error(t, LintCommand([]string{filepath.Join(t.TempDir(), "nope")}))
	})
}

func TestWatch(t *testing.T) {
	stdout, _ := setup(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.calc"), []byte("2 + 3\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, dir, 50*time.Millisecond)
	}()

	require.Eventually(t, func() bool {
		return bytes.Contains([]byte(stdout.String()), []byte("1: 2 + 3 = 5"))
	}, 5*time.Second, 20*time.Millisecond)

	// Give the watcher time to register the directory before writing.
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.calc"), []byte("1/0\n"), 0o644))

	require.Eventually(t, func() bool {
		return bytes.Contains([]byte(stdout.String()), []byte("1: 1/0 = error:"))
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatch_NotADirectory(t *testing.T) {
	setup(t)
	path := filepath.Join(t.TempDir(), "a.calc")
	require.NoError(t, os.WriteFile(path, []byte("1\n"), 0o644))

	assert.EqualError(t, Watch(context.Background(), path, time.Millisecond), "watch "+path+": not a directory")
}

func TestHelpCommand(t *testing.T) {
	stdout, stderr := setup(t)
	require.NoError(t, HelpCommand([]string{"eval"}))
	assert.Contains(t, stdout.String(), "Eval Command")

	require.NoError(t, HelpCommand([]string{"nope"}))
	assert.Contains(t, stderr.String(), "Unknown command: nope")
}

func TestVersionCommand(t *testing.T) {
	stdout, _ := setup(t)
	require.NoError(t, VersionCommand(nil))
	assert.Equal(t, "gocalc version "+cli.Version+"\n", stdout.String())
}

func TestRegister(t *testing.T) {
	r := cli.NewRunner()
	Register(r)
	assert.Equal(t, []string{
		"add", "average", "demo", "divide", "eval", "help",
		"lint", "money", "parse", "version", "watch",
	}, r.GetCommands())
}
