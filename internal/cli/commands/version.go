package commands

import (
	"github.com/mamaar/gocalc/internal/cli"
)

// VersionCommand handles the version command
func VersionCommand(args []string) error {
	if len(args) > 0 {
		return HelpCommand([]string{"version"})
	}
	cli.ShowVersion()
	return nil
}
