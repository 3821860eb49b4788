// Package config loads settings structs from the environment and an optional file, with viper.
package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/a-peyrard/propchain"
	"github.com/a-peyrard/propchain/fn"
	"github.com/a-peyrard/propchain/option"
	"github.com/a-peyrard/propchain/reflectutils"
	"github.com/a-peyrard/propchain/str"
	"github.com/spf13/viper"
)

type Options struct {
	prefix string
	file   string
}

// WithEnvPrefix sets the prefix of the environment variables, PROPCHAIN gives PROPCHAIN_LOG_LEVEL.
func WithEnvPrefix(prefix string) option.Option[Options] {
	return func(opts *Options) {
		opts.prefix = prefix
	}
}

// WithConfigFile reads settings from path, environment variables still take precedence.
// An empty path is ignored.
func WithConfigFile(path string) option.Option[Options] {
	return func(opts *Options) {
		opts.file = path
	}
}

// Load creates a T from the environment, nested structs are separated by underscores
// (field Level of a Log struct is PREFIX_LOG_LEVEL).
//
// Nil struct pointers are created, then ApplyDefault is called on every struct implementing propchain.WithDefault.
func Load[T any](opts ...option.Option[Options]) (*T, error) {
	options := option.Build(&Options{}, opts...)

	v := viper.New()
	if options.file != "" {
		v.SetConfigFile(options.file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config file %s:\n\t%w", options.file, err)
		}
	}

	settings := new(T)
	if err := bindEnvs(v, options.prefix, settings); err != nil {
		return nil, err
	}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config:\n\t%w", err)
	}

	reflectutils.WalkStruct(
		settings,
		fn.AllTriConsumer(
			reflectutils.CreateNilStructs,
			applyDefault,
		),
	)
	return settings, nil
}

func bindEnvs(v *viper.Viper, prefix string, settings any) error {
	var errs []error
	reflectutils.WalkStruct(
		reflect.New(reflect.TypeOf(settings).Elem()).Interface(),
		fn.AllTriConsumer(
			reflectutils.CreateNilStructs,
			func(_ reflect.Value, typ reflect.Type, path []string) {
				if len(path) == 0 || !reflectutils.IsLeaf(typ) {
					return
				}
				if err := v.BindEnv(strings.Join(path, "."), envName(prefix, path)); err != nil {
					errs = append(errs, err)
				}
			},
		),
	)
	if len(errs) > 0 {
		return fmt.Errorf("unable to bind environment variables:\n\t%w", errs[0])
	}
	return nil
}

func envName(prefix string, path []string) string {
	segments := make([]string, 0, len(path)+1)
	if prefix != "" {
		segments = append(segments, str.ToScreamingSnakeCase(prefix))
	}
	for _, p := range path {
		segments = append(segments, str.ToScreamingSnakeCase(p))
	}
	return strings.Join(segments, "_")
}

var withDefaultType = reflect.TypeOf((*propchain.WithDefault)(nil)).Elem()

func applyDefault(val reflect.Value, typ reflect.Type, _ []string) {
	if typ.Kind() == reflect.Pointer && typ.Implements(withDefaultType) && !val.IsNil() {
		val.Interface().(propchain.WithDefault).ApplyDefault()
	}
}
