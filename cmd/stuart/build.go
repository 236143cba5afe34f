package main

import (
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/stuartgen/stuart"
)

func buildCommand() *cobra.Command {
	var dir string
	var output string

	var cmd = &cobra.Command{
		Use:   "build",
		Short: "Build the project",
		RunE: func(cmd *cobra.Command, args []string) error {
			var start = time.Now()

			var project, err = stuart.BuildProject(dir)
			if err != nil {
				return err
			}
			var buildDuration = time.Since(start)

			logrus.WithField("name", project.Config.Name).Info("building")

			var saveStart = time.Now()
			if err := project.Save(filepath.Join(dir, output)); err != nil {
				return err
			}
			if project.Config.SaveMetadata {
				logrus.Info("exporting metadata to metadata.json")
				if err := project.SaveMetadata(filepath.Join(dir, "metadata.json")); err != nil {
					return err
				}
			}
			var saveDuration = time.Since(saveStart)

			logrus.WithFields(logrus.Fields{
				"build":      buildDuration.Round(100 * time.Microsecond),
				"filesystem": saveDuration.Round(100 * time.Microsecond),
			}).Info("finished build")
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "manifest-dir", ".", "project directory containing stuart.yml")
	cmd.Flags().StringVarP(&output, "output", "o", "dist", "output directory, relative to the project")
	return cmd
}
