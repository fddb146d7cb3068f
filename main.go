package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spigell/resume-matcher/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		var exit *cmd.ExitError
		// failures of an analysis are already reported on stdout
		if !errors.As(err, &exit) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cmd.ExitCode(err))
	}
}
