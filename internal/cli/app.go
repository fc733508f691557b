package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Output destinations for commands. Tests swap these.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

// Logger returns the logger configured by SetupLogging.
func Logger() *slog.Logger {
	return logger
}

// SetupLogging points the command logger at Stderr, at debug level when verbose.
func SetupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(Stderr, &slog.HandlerOptions{Level: level}))
}

// App represents the gocalc application
type App struct {
	flags *Flags
	args  []string
}

// NewApp creates a new application instance
func NewApp() *App {
	return &App{}
}

// Initialize parses the process flags and sets up logging
func (app *App) Initialize() {
	ParseFlags(Usage)
	app.flags = GlobalFlags
	app.args = flag.Args()
	SetupLogging(*app.flags.Verbose)
}

// InitializeWith uses already parsed flags and arguments
func (app *App) InitializeWith(flags *Flags, args []string) {
	GlobalFlags = flags
	app.flags = flags
	app.args = args
	SetupLogging(*flags.Verbose)
}

// Run executes the requested command and returns the process exit code
func (app *App) Run(runner *Runner) int {
	if *app.flags.Version {
		ShowVersion()
		return 0
	}

	if len(app.args) < 1 {
		Usage()
		return 1
	}

	if err := runner.Execute(app.args[0], app.args[1:]); err != nil {
		if errors.Is(err, ErrUnknownCommand) {
			fmt.Fprintf(Stderr, "Unknown command: %s\n", app.args[0])
			Usage()
			return 1
		}
		fmt.Fprintf(Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
