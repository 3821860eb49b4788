package main

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/a-peyrard/propchain"
	"github.com/spf13/cobra"
)

var typedResolvers = map[string]func(*propchain.Chain, string) (any, error){
	"string":   required[string],
	"int":      required[int],
	"int64":    required[int64],
	"float":    required[float64],
	"bool":     required[bool],
	"duration": required[time.Duration],
	"list":     required[[]string],
}

func required[T any](c *propchain.Chain, key string) (any, error) {
	return propchain.ResolveRequired[T](c, key)
}

func newGetCommand(a *app) *cobra.Command {
	var (
		typ    string
		expand bool
	)

	cmd := &cobra.Command{
		Use:   "get KEY",
		Short: "Print the value of a property",
		Long: `Print the value the chain resolves for KEY, failing when no source holds it.

Example:
  propchain get user.name -f user-bean-definitions.properties --set user.name="set dync value"
  propchain get user.id --type int64 -f user-bean-definitions.properties`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolve, ok := typedResolvers[typ]
			if !ok {
				return fmt.Errorf("unknown type %s, expected one of %s", typ, strings.Join(typeNames(), ", "))
			}
			chain, err := a.chain(cmd)
			if err != nil {
				return err
			}

			var value any
			if expand {
				value, err = chain.ResolveRequiredPlaceholders("${" + args[0] + "}")
			} else {
				value, err = resolve(chain, args[0])
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
			return err
		},
	}

	cmd.Flags().StringVarP(&typ, "type", "t", "string", "type of the value: "+strings.Join(typeNames(), ", "))
	cmd.Flags().BoolVar(&expand, "expand", false, "resolve the ${...} placeholders of the value")
	return cmd
}

func typeNames() []string {
	names := make([]string, 0, len(typedResolvers))
	for name := range typedResolvers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
