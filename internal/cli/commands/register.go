package commands

import "github.com/mamaar/gocalc/internal/cli"

// Register adds every gocalc command to r
func Register(r *cli.Runner) {
	r.RegisterCommand("demo", DemoCommand)
	r.RegisterCommand("eval", EvalCommand)
	r.RegisterCommand("parse", ParseCommand)
	r.RegisterCommand("add", AddCommand)
	r.RegisterCommand("divide", DivideCommand)
	r.RegisterCommand("average", AverageCommand)
	r.RegisterCommand("money", MoneyCommand)
	r.RegisterCommand("lint", LintCommand)
	r.RegisterCommand("watch", WatchCommand)
	r.RegisterCommand("help", HelpCommand)
	r.RegisterCommand("version", VersionCommand)
}
