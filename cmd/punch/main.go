package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd creates the top-level "punch" command and registers all
// subcommands.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "punch",
		Short:         "Punch in, punch out, and report on time usage",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newInitCmd(),
		newSeedCmd(),
		newReportCmd(),
		newServeCmd(),
	)

	return root
}
