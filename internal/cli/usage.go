package cli

import (
	"flag"
	"fmt"
)

// Usage prints the usage information for the gocalc command
func Usage() {
	fmt.Fprintf(Stderr, `gocalc - Safe arithmetic utilities

Usage: gocalc [options] <command> [arguments]

Commands:
  demo
    Run every utility once and report each outcome

  eval <expression>
    Evaluate an arithmetic expression (numbers, + - * /, unary sign, parentheses)

  parse <expression>
    Show how an expression is grouped, fully parenthesised

  add <a> <b>
    Add two integers

  divide <a> <b>
    Divide a by b

  average <n>...
    Arithmetic mean of one or more numbers

  money <amount>
    Format an amount as "USD 0.00"

  lint <file|dir>...
    Report constant expressions passed to calc.Evaluate or calc.Parse that always fail

  watch <dir>
    Re-evaluate *.calc sheets under dir whenever they change

  help [command]
    Show help for a command

  version
    Show version information

Options:
`)
	flag.CommandLine.SetOutput(Stderr)
	flag.PrintDefaults()
	fmt.Fprintf(Stderr, `
Examples:
  gocalc eval "2 + 2 * (3 - 1)"
  gocalc -json divide 7 2
  gocalc average 1 2 3
  gocalc lint ./...
  gocalc -debounce 500ms watch ./sheets
`)
}
