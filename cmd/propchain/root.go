package main

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/a-peyrard/propchain"
	"github.com/a-peyrard/propchain/config"
	"github.com/a-peyrard/propchain/logging"
	"github.com/a-peyrard/propchain/option"
	"github.com/a-peyrard/propchain/properties"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const (
	envPrefix      = "PROPCHAIN"
	setSourceName  = "first"
	setFlagExample = "user.name=mercyblitz"
)

type (
	// Settings are read from PROPCHAIN_* variables, flags add to them.
	Settings struct {
		LogLevel string   `mapstructure:"log_level"`
		Files    []string `mapstructure:"files"`
		NoEnv    bool     `mapstructure:"no_env"`
	}

	app struct {
		settings *Settings
		logger   zerolog.Logger

		files []string
		sets  []string
		noEnv bool
	}
)

func newRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "propchain",
		Short: "Resolve properties through a chain of property sources",
		Long: `propchain resolves keys against an ordered chain of property sources.

Files given with --file are searched in the order of the flags, the first file holding a key wins.
Files listed in PROPCHAIN_FILES come after every --file, so the command line wins over the environment.
Values given with --set go into a "first" source searched before every file. Unless --no-env is given,
the process properties (user.name, os.name, ...) then the environment variables are searched last.

Settings can also come from the environment: PROPCHAIN_FILES, PROPCHAIN_NO_ENV, PROPCHAIN_LOG_LEVEL
(LOG_LEVEL is used when PROPCHAIN_LOG_LEVEL is not set).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringArrayVarP(&a.files, "file", "f", nil, "property file to load (.properties, .yaml, .json, .toml), repeatable")
	flags.StringArrayVar(&a.sets, "set", nil, "property added to the highest priority source, as key=value, repeatable")
	flags.BoolVar(&a.noEnv, "no-env", false, "do not fall back on process properties and environment variables")

	rootCmd.AddCommand(
		newGetCommand(a),
		newDescribeCommand(a),
		newUserCommand(a),
		newYAMLCommand(a),
		newLookupCommand(a),
	)
	return rootCmd
}

func (a *app) init(cmd *cobra.Command) error {
	settings, err := config.Load[Settings](config.WithEnvPrefix(envPrefix))
	if err != nil {
		return fmt.Errorf("unable to load settings:\n\t%w", err)
	}
	level, err := logging.LevelFromEnv()
	if settings.LogLevel != "" {
		level, err = logging.ParseLevel(settings.LogLevel)
	}
	if err != nil {
		return err
	}

	a.settings = settings
	a.logger = logging.New(level, cmd.ErrOrStderr())
	a.files = slices.Concat(a.files, settings.Files)
	a.noEnv = a.noEnv || settings.NoEnv
	return nil
}

// chain builds the chain described by the flags.
func (a *app) chain(cmd *cobra.Command) (*propchain.Chain, error) {
	opts := []option.Option[propchain.Options]{propchain.WithLogger(a.logger)}
	var chain *propchain.Chain
	if a.noEnv {
		chain = propchain.New(opts...)
	} else {
		chain = propchain.NewEnvironment(opts...)
	}

	specs := make([]properties.Spec, 0, len(a.files))
	for _, file := range a.files {
		specs = append(specs, properties.Spec{Name: filepath.Base(file), Path: file})
	}
	sources, err := properties.LoadAll(a.logger.WithContext(cmd.Context()), specs...)
	if err != nil {
		return nil, err
	}
	for _, source := range sources {
		if err := chain.AddLast(source); err != nil {
			return nil, err
		}
	}

	if len(a.sets) > 0 {
		entries, err := parseSets(a.sets)
		if err != nil {
			return nil, err
		}
		if err := chain.AddFirst(propchain.NewStringSource(setSourceName, entries)); err != nil {
			return nil, err
		}
	}
	return chain, nil
}

func parseSets(sets []string) (map[string]string, error) {
	entries := make(map[string]string, len(sets))
	for _, set := range sets {
		key, value, ok := strings.Cut(set, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid --set %q, expected key=value (e.g. %s)", set, setFlagExample)
		}
		entries[strings.TrimSpace(key)] = value
	}
	return entries, nil
}
