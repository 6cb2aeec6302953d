package main

import (
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// imaging resizes on all available cores; respect container CPU quotas.
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		if os.Getenv(envPrefix+"DEBUG") != "" {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}
	}))

	os.Exit(runMain(os.Args, DefaultEnv()))
}
