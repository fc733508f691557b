package cli

import (
	"errors"
	"sort"
)

// ErrUnknownCommand is returned by Execute for unregistered commands
var ErrUnknownCommand = errors.New("unknown command")

// CommandFunc represents a command function signature
type CommandFunc func([]string) error

// Runner handles command routing and execution
type Runner struct {
	commands map[string]CommandFunc
}

// NewRunner creates a new command runner
func NewRunner() *Runner {
	return &Runner{
		commands: make(map[string]CommandFunc),
	}
}

// RegisterCommand registers a command handler
func (r *Runner) RegisterCommand(name string, fn CommandFunc) {
	r.commands[name] = fn
}

// Execute runs the specified command with arguments
func (r *Runner) Execute(command string, args []string) error {
	fn, ok := r.commands[command]
	if !ok {
		return ErrUnknownCommand
	}
	return fn(args)
}

// GetCommands returns the registered command names in sorted order
func (r *Runner) GetCommands() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
