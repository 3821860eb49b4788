package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/a-peyrard/propchain"
	"github.com/spf13/cobra"
	"go.uber.org/dig"
)

type (
	provider struct {
		constructor any
		opts        []dig.ProvideOption
	}

	messagesOut struct {
		dig.Out

		Primary string `name:"helloWorld"`
		Hello   string `group:"messages"`
	}

	// primaryMyUserIn makes myUser2 the MyUser injected when no name is given.
	primaryMyUserIn struct {
		dig.In

		MyUser2 *MyUser `name:"myUser2"`
	}

	lookupIn struct {
		dig.In

		Primary  string   `name:"helloWorld"`
		Messages []string `group:"messages"`

		User *User `name:"configuredUser" optional:"true"`

		MyUser        *MyUser `name:"myUser"`
		PrimaryMyUser *MyUser
		MyUser2       *MyUser `name:"myUser2"`
	}
)

func newLookupCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup",
		Short: "Lookup beans from a dig container: single, optional and collection lookups",
		Long: `Register a few beans in a dig container and look them up.

The configured user is only registered when the chain holds user.id, the lookup falls back on a
default user otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			chain, err := a.chain(cmd)
			if err != nil {
				return err
			}
			container, err := newLookupContainer(chain)
			if err != nil {
				return err
			}
			return container.Invoke(func(in lookupIn) {
				printLookups(cmd.OutOrStdout(), in)
			})
		},
	}
}

func newLookupContainer(chain *propchain.Chain) (*dig.Container, error) {
	providers := []provider{
		{constructor: func() messagesOut { return messagesOut{Primary: "Hello,World", Hello: "Hello,World"} }},
		{constructor: func() string { return "Message" }, opts: []dig.ProvideOption{dig.Group("messages")}},
		{constructor: func() *MyUser { return &MyUser{Name: "name", Code: "1"} }, opts: []dig.ProvideOption{dig.Name("myUser")}},
		{constructor: func() *MyUser { return &MyUser{Name: "name2", Code: "2"} }, opts: []dig.ProvideOption{dig.Name("myUser2")}},
		{constructor: func(in primaryMyUserIn) *MyUser { return in.MyUser2 }},
	}
	if chain.Contains("user.id") {
		providers = append(
			providers,
			provider{constructor: func() *propchain.Chain { return chain }},
			provider{constructor: newConfiguredUser},
		)
	}

	container := dig.New()
	for _, p := range providers {
		if err := container.Provide(p.constructor, p.opts...); err != nil {
			return nil, fmt.Errorf("unable to register bean:\n\t%w", err)
		}
	}
	return container, nil
}

func printLookups(out io.Writer, in lookupIn) {
	fmt.Fprintln(out, in.Primary)

	user := in.User
	if user == nil {
		user = createUser()
	}
	fmt.Fprintf(out, "current User: %s\n", user)

	messages := slices.Clone(in.Messages)
	slices.Sort(messages)
	for _, message := range messages {
		fmt.Fprintln(out, message)
	}

	fmt.Fprintln(out, in.MyUser)
	fmt.Fprintln(out, in.PrimaryMyUser)
	fmt.Fprintln(out, in.MyUser2)
}
