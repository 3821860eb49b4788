package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/a-peyrard/propchain"
	"github.com/spf13/cobra"
	"go.uber.org/dig"
)

type usersIn struct {
	dig.In

	Beans []userBean `group:"users"`
}

func newUserCommand(a *app) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "user",
		Short: "Build the configured user from the user.* properties and print it",
		Long: `Build a User from the user.id and user.name properties, in a dig container, then print
every User registered in the container.

Example:
  propchain user -f user-bean-definitions.properties --set user.name="set dync value"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			chain, err := a.chain(cmd)
			if err != nil {
				return err
			}
			if verbose {
				fmt.Fprint(cmd.OutOrStdout(), chain.Describe())
			}
			return printUsers(cmd.OutOrStdout(), chain)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print the sources of the chain first")
	return cmd
}

func printUsers(out io.Writer, chain *propchain.Chain) error {
	container := dig.New()
	if err := container.Provide(func() *propchain.Chain { return chain }); err != nil {
		return err
	}
	if err := container.Provide(newConfiguredUser); err != nil {
		return err
	}

	return container.Invoke(func(in usersIn) error {
		slices.SortFunc(in.Beans, func(a, b userBean) int {
			return strings.Compare(a.Name, b.Name)
		})
		for _, bean := range in.Beans {
			if _, err := fmt.Fprintf(out, "User Bean name : %s , content : %s \n", bean.Name, bean.User); err != nil {
				return err
			}
		}
		return nil
	})
}
