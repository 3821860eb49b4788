package propchain

import (
	"fmt"
	"sort"

	"github.com/mohae/deepcopy"
)

type (
	// Source is a named set of properties consulted by a Chain.
	Source interface {
		Name() string
		// Lookup returns the raw value stored for key, it must not have side effects.
		Lookup(key string) (value any, found bool)
		// Keys lists the known keys, sources that cannot enumerate them return nil.
		Keys() []string
	}

	// MapSource is an in-memory Source, immutable once built.
	MapSource struct {
		name    string
		entries map[string]any
	}
)

// NewMapSource creates a source holding a deep copy of entries.
func NewMapSource(name string, entries map[string]any) *MapSource {
	copied, _ := deepcopy.Copy(entries).(map[string]any)
	if copied == nil {
		copied = make(map[string]any)
	}
	return &MapSource{
		name:    name,
		entries: copied,
	}
}

// NewStringSource creates a MapSource from string entries, the shape of properties files and flags.
func NewStringSource(name string, entries map[string]string) *MapSource {
	converted := make(map[string]any, len(entries))
	for k, v := range entries {
		converted[k] = v
	}
	return &MapSource{
		name:    name,
		entries: converted,
	}
}

func (m *MapSource) Name() string {
	return m.name
}

func (m *MapSource) Lookup(key string) (any, bool) {
	value, found := m.entries[key]
	return value, found
}

func (m *MapSource) Keys() []string {
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of entries.
func (m *MapSource) Len() int {
	return len(m.entries)
}

func (m *MapSource) String() string {
	return fmt.Sprintf("MapSource(%s, %d entries)", m.name, len(m.entries))
}
