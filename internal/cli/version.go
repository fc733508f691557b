package cli

import "fmt"

// Version is the current version of gocalc
const Version = "0.1.0"

// ShowVersion displays the version information
func ShowVersion() {
	fmt.Fprintf(Stdout, "gocalc version %s\n", Version)
}
