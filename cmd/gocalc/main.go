package main

import (
	"os"

	"github.com/mamaar/gocalc/internal/cli"
	"github.com/mamaar/gocalc/internal/cli/commands"
)

func main() {
	app := cli.NewApp()
	app.Initialize()

	runner := cli.NewRunner()
	commands.Register(runner)

	os.Exit(app.Run(runner))
}
