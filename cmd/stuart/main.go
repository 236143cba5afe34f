// Command stuart builds and serves Stuart projects.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var root = &cobra.Command{
		Use:           "stuart",
		Short:         "A fast and flexible static site generator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(buildCommand(), devCommand())

	if err := root.Execute(); err != nil {
		renderError(err)
		os.Exit(1)
	}
}
