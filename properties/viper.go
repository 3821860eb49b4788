package properties

import (
	"fmt"

	"github.com/a-peyrard/propchain"
	"github.com/spf13/viper"
)

// LoadViper reads any file format viper supports (json, toml, yaml, dotenv).
//
// Viper lower-cases keys, use LoadYAML or LoadProperties when the case of keys matters.
func LoadViper(name, path string) (*propchain.MapSource, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("unable to read config file %s:\n\t%w", path, err)
	}
	return FromViper(name, v), nil
}

// FromViper snapshots the current keys of v into a source.
func FromViper(name string, v *viper.Viper) *propchain.MapSource {
	keys := v.AllKeys()
	entries := make(map[string]any, len(keys))
	for _, k := range keys {
		entries[k] = v.Get(k)
	}
	return propchain.NewMapSource(name, entries)
}
