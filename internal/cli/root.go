package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the wordsphere CLI and returns an error if any command fails.
//
// Logging goes to stderr at info level; --verbose (-v) switches to debug.
// The logger is attached to each command's context and is reachable through
// loggerFromContext.
//
//	func main() {
//	    if err := cli.Execute(ctx); err != nil {
//	        os.Exit(1)
//	    }
//	}
func Execute(ctx context.Context) error {
	var verbose bool

	c := New(os.Stderr, LogInfo)
	root := c.RootCommand()
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	preRun := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level := LogInfo
		if verbose {
			level = LogDebug
		}
		c.SetLogLevel(level)
		return preRun(cmd, args)
	}

	return root.ExecuteContext(ctx)
}
