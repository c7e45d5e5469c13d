package main

import (
	"fmt"
	"os"

	"github.com/lakshaymaurya-felt/venvsweep/cmd"
)

// Set by the linker: -ldflags "-X main.version=..."
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, commit, date)
	if err := cmd.Execute(); err != nil {
		code, show := cmd.ExitCode(err)
		if show {
			fmt.Fprintln(os.Stderr, "venvsweep:", err)
		}
		os.Exit(code)
	}
}
