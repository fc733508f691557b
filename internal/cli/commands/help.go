package commands

import (
	"fmt"

	"github.com/mamaar/gocalc/internal/cli"
)

var commandHelp = map[string]string{
	"demo": `Demo Command - Run every utility once

Usage: gocalc demo

Runs add(2, 3), divide(10, 0), evaluate("2 + 2"), average([]) and
format_money(12.5) in order. A failing call is logged with its function
name and inputs and the remaining calls still run. Always exits 0.`,

	"eval": `Eval Command - Evaluate an arithmetic expression

Usage: gocalc eval <expression>

Accepted syntax:
  - integer and decimal literals (1, 2.5, 1e3, 0x1F, 1_000)
  - binary + - * /
  - unary + and -
  - parentheses

Anything else (names, calls, strings, comparisons, statements) is rejected.
Integer +, - and * stay integers; / always produces a decimal.

Examples:
  gocalc eval "2 + 2 * (3 - 1)"
  gocalc -json eval 7 / 2`,

	"parse": `Parse Command - Show how an expression is grouped

Usage: gocalc parse <expression>

Prints the expression fully parenthesised, without evaluating it.

Examples:
  gocalc parse "1 + 2 * 3"     # (1 + (2 * 3))`,

	"add": `Add Command - Add two integers

Usage: gocalc add <a> <b>`,

	"divide": `Divide Command - Divide a by b

Usage: gocalc divide <a> <b>

Fails with "division by zero" when b is 0.`,

	"average": `Average Command - Arithmetic mean

Usage: gocalc average <n>...

Fails with "empty input" when no numbers are given.`,

	"money": `Money Command - Format an amount

Usage: gocalc money <amount>

Prints "USD " followed by the amount rounded to two decimals.`,

	"lint": `Lint Command - Find expression literals that always fail

Usage: gocalc lint <file|dir>...

Reports every call to calc.Evaluate or calc.Parse whose argument is a
constant string that fails to parse or evaluate. A trailing /... walks a
directory recursively. Exits 1 when anything is reported.

Examples:
  gocalc lint ./...
  gocalc -json lint main.go`,

	"watch": `Watch Command - Re-evaluate sheets on change

Usage: gocalc [-debounce D] watch <dir>

A sheet is a file ending in .calc holding one expression per line. Blank
lines and lines starting with # are skipped. Every sheet under dir is
evaluated once at startup and again whenever it changes. Runs until
interrupted.`,

	"version": `Version Command - Show application version

Usage: gocalc version`,
}

// HelpCommand handles help requests for specific commands
func HelpCommand(args []string) error {
	if len(args) == 0 {
		cli.Usage()
		return nil
	}

	text, ok := commandHelp[args[0]]
	if !ok {
		fmt.Fprintf(cli.Stderr, "Unknown command: %s\n", args[0])
		cli.Usage()
		return nil
	}
	fmt.Fprintln(cli.Stdout, text)
	return nil
}
