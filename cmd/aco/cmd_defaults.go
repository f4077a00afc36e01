package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pthm-cable/aco/config"
	"github.com/pthm-cable/aco/layout"
)

func newDefaultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Print the built-in configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(config.DefaultsYAML())
			return err
		},
	}
}

func newLayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout [file]",
		Short: "Write the default layout to a file or stdout",
		Long: `Write the default layout to a file or stdout.

The format follows the file extension: .json for JSON, anything else YAML.
On stdout the format is YAML unless --json is set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l := layout.Default()
			if len(args) == 1 {
				if err := l.Save(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", args[0])
				return nil
			}
			jsonOut, _ := cmd.Flags().GetBool("json")
			data, err := l.Marshal(jsonOut)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	return cmd
}
