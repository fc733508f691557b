package cli

import (
	"flag"
	"time"
)

// Flags holds all command line flags
type Flags struct {
	Version  *bool
	Json     *bool
	Verbose  *bool
	Debounce *time.Duration
}

// GlobalFlags holds the parsed command line flags
var GlobalFlags *Flags

// NewFlags registers all command line flags on fs
func NewFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		Version:  fs.Bool("version", false, "Show version information"),
		Json:     fs.Bool("json", false, "Output results in JSON format"),
		Verbose:  fs.Bool("verbose", false, "Enable debug logging"),
		Debounce: fs.Duration("debounce", 200*time.Millisecond, "Quiet period before a changed sheet is re-evaluated (watch)"),
	}
}

// InitFlags initializes all command line flags on the default flag set
func InitFlags() *Flags {
	return NewFlags(flag.CommandLine)
}

// ParseFlags parses command line flags with custom usage
func ParseFlags(usage func()) {
	if GlobalFlags == nil {
		GlobalFlags = InitFlags()
	}
	flag.Usage = usage
	flag.Parse()
}
