package reflectutils

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/a-peyrard/propchain/fn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type (
	UserConfig struct {
		Id      int64          `mapstructure:"id"`
		Name    string         `mapstructure:"name"`
		Address *AddressConfig `mapstructure:"address"`
		Timeout time.Duration
		Ignored string `mapstructure:"-"`
		hidden  *AddressConfig
	}
	AddressConfig struct {
		City   string `mapstructure:"city,omitempty"`
		Street string
	}
	WithDefault interface {
		ApplyDefault()
	}
)

func (c *AddressConfig) ApplyDefault() {
	if c.City == "" {
		c.City = "Hangzhou"
	}
}

func collectLeafPaths(paths *[]string) fn.TriConsumer[reflect.Value, reflect.Type, []string] {
	return func(_ reflect.Value, typ reflect.Type, path []string) {
		if len(path) > 0 && IsLeaf(typ) {
			*paths = append(*paths, strings.Join(path, "."))
		}
	}
}

func TestWalkStruct(t *testing.T) {
	t.Run("it should initialize nil sub structs", func(t *testing.T) {
		// GIVEN
		element := &UserConfig{}

		// WHEN
		WalkStruct(element, CreateNilStructs)

		// THEN
		require.NotNil(t, element.Address)
		assert.Equal(t, "", element.Address.City)
		assert.Nil(t, element.hidden)
	})

	t.Run("it should build paths from mapstructure tags or field names", func(t *testing.T) {
		// GIVEN
		element := &UserConfig{}
		var paths []string

		// WHEN
		WalkStruct(element, fn.AllTriConsumer(CreateNilStructs, collectLeafPaths(&paths)))

		// THEN
		assert.ElementsMatch(t, []string{"id", "name", "address.city", "address.Street", "Timeout"}, paths)
	})

	t.Run("it should not descend into nil pointers when they are not initialized", func(t *testing.T) {
		// GIVEN
		element := &UserConfig{}
		var paths []string

		// WHEN
		WalkStruct(element, collectLeafPaths(&paths))

		// THEN
		assert.ElementsMatch(t, []string{"id", "name", "Timeout"}, paths)
	})

	t.Run("it should apply defaults on structs implementing WithDefault", func(t *testing.T) {
		// GIVEN
		withDefaultType := reflect.TypeOf((*WithDefault)(nil)).Elem()
		applyDefault := func(val reflect.Value, typ reflect.Type, _ []string) {
			if typ.Implements(withDefaultType) && !val.IsNil() {
				val.Interface().(WithDefault).ApplyDefault()
			}
		}
		element := &UserConfig{}

		// WHEN
		WalkStruct(element, fn.AllTriConsumer(CreateNilStructs, applyDefault))

		// THEN
		require.NotNil(t, element.Address)
		assert.Equal(t, "Hangzhou", element.Address.City)
	})

	t.Run("it should deref pointer of interfaces", func(t *testing.T) {
		// GIVEN
		element := &UserConfig{}
		var iface any = element

		// WHEN
		WalkStruct(&iface, CreateNilStructs)

		// THEN
		assert.NotNil(t, element.Address)
	})
}

func TestFieldKey(t *testing.T) {
	typ := reflect.TypeOf(UserConfig{})

	t.Run("it should use the tag name", func(t *testing.T) {
		field, _ := typ.FieldByName("Id")
		assert.Equal(t, "id", FieldKey(field))
	})

	t.Run("it should fall back on the field name", func(t *testing.T) {
		field, _ := typ.FieldByName("Timeout")
		assert.Equal(t, "Timeout", FieldKey(field))
	})

	t.Run("it should strip tag options", func(t *testing.T) {
		field, _ := reflect.TypeOf(AddressConfig{}).FieldByName("City")
		assert.Equal(t, "city", FieldKey(field))
	})
}

func TestIsLeaf(t *testing.T) {
	assert.True(t, IsLeaf(reflect.TypeOf("")))
	assert.True(t, IsLeaf(reflect.TypeOf(time.Second)))
	assert.True(t, IsLeaf(reflect.TypeOf(time.Time{})))
	assert.True(t, IsLeaf(reflect.TypeOf([]string{})))
	assert.False(t, IsLeaf(reflect.TypeOf(AddressConfig{})))
	assert.False(t, IsLeaf(reflect.TypeOf(&AddressConfig{})))
}
