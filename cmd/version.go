package cmd

import (
	"fmt"
	"runtime"

	"github.com/zkfield/bigfield"
)

// Version of the CLI, kept in sync with the library release.
var Version = "v" + bigfield.Version.String()

func buildString() string {
	return fmt.Sprintf("bigfield version %s (built with %s)", Version, runtime.Version())
}
