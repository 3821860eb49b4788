// Package properties loads property sources from files.
//
// Every loader returns a *propchain.MapSource with flat, dotted keys, ready to be added to a chain.
package properties

import (
	"fmt"

	"github.com/a-peyrard/propchain"
	"github.com/magiconair/properties"
)

// loader reads .properties files as UTF-8, leaving ${...} untouched so the chain expands them.
var loader = properties.Loader{
	Encoding:         properties.UTF8,
	DisableExpansion: true,
}

// LoadProperties reads a .properties file.
func LoadProperties(name, path string) (*propchain.MapSource, error) {
	props, err := loader.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to load properties file %s:\n\t%w", path, err)
	}
	return propchain.NewStringSource(name, props.Map()), nil
}

// ParseProperties reads properties from the content of a .properties file.
func ParseProperties(name string, data []byte) (*propchain.MapSource, error) {
	props, err := loader.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("unable to parse properties %s:\n\t%w", name, err)
	}
	return propchain.NewStringSource(name, props.Map()), nil
}
