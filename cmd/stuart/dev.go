package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/stuartgen/stuart/serve"
)

func devCommand() *cobra.Command {
	var dir string
	var addr string

	var cmd = &cobra.Command{
		Use:   "dev",
		Short: "Serve the project, rebuilding on change",
		RunE: func(cmd *cobra.Command, args []string) error {
			var server = &serve.Server{
				Dir:  dir,
				Addr: addr,
				Log:  logrus.StandardLogger(),
			}
			return server.Run()
		},
	}

	cmd.Flags().StringVar(&dir, "manifest-dir", ".", "project directory containing stuart.yml")
	cmd.Flags().StringVar(&addr, "addr", ":6904", "listen address")
	return cmd
}
