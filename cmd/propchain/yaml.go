package main

import (
	"fmt"
	"os"

	"github.com/a-peyrard/propchain/properties"
	"github.com/spf13/cobra"
)

func newYAMLCommand(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "yaml FILE",
		Short: "Print a YAML file as a nested map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("unable to read %s:\n\t%w", args[0], err)
			}
			values, err := properties.ParseYAMLMap(data)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), values)
			return err
		},
	}
}
