package propchain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/a-peyrard/propchain/fn"
	"github.com/a-peyrard/propchain/reflectutils"
	"github.com/go-viper/mapstructure/v2"
)

// WithDefault can be implemented by bound structs to fill the fields no source provided.
type WithDefault interface {
	ApplyDefault()
}

var withDefaultType = reflect.TypeOf((*WithDefault)(nil)).Elem()

// Bind creates a T and fills its fields from the properties found under prefix.
//
//	type User struct {
//		Id   int64  `mapstructure:"id"`
//		Name string `mapstructure:"name"`
//	}
//	user, err := propchain.Bind[User](chain, "user") // reads user.id and user.name
func Bind[T any](c *Chain, prefix string) (*T, error) {
	target := new(T)
	if err := BindTo(c, prefix, target); err != nil {
		return nil, err
	}
	return target, nil
}

// BindTo fills target, a pointer to a struct, from the properties found under prefix.
//
// Fields without a matching property keep their current value. String values have their
// placeholders resolved before conversion. Structs implementing WithDefault get ApplyDefault
// called once the properties are decoded.
func BindTo(c *Chain, prefix string, target any) error {
	typ := reflect.TypeOf(target)
	if typ == nil || typ.Kind() != reflect.Pointer || typ.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("bind target must be a pointer to a struct, got %T", target)
	}

	var (
		values      = make(map[string]any)
		resolveErrs []error
	)
	collect := func(_ reflect.Value, fieldTyp reflect.Type, path []string) {
		if len(path) == 0 || !reflectutils.IsLeaf(fieldTyp) {
			return
		}
		key := joinKey(prefix, path)
		raw, found := c.Resolve(key)
		if !found {
			return
		}
		if text, ok := raw.(string); ok {
			resolved, err := c.ResolveRequiredPlaceholders(text)
			if err != nil {
				resolveErrs = append(resolveErrs, fmt.Errorf("unable to resolve %s:\n\t%w", key, err))
				return
			}
			raw = resolved
			if isIntegerKind(derefType(fieldTyp)) {
				raw = trimLeadingZeros(resolved)
			}
		}
		putNested(values, path, raw)
	}
	reflectutils.WalkStruct(target, fn.AllTriConsumer(reflectutils.CreateNilStructs, collect))
	if len(resolveErrs) > 0 {
		return errors.Join(resolveErrs...)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          reflectutils.TagName,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToTimeHookFunc(time.RFC3339),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("unable to create decoder for %T:\n\t%w", target, err)
	}
	if err := decoder.Decode(values); err != nil {
		return &ConversionError{
			Key:    prefix,
			Value:  values,
			Target: typ.Elem(),
			Err:    err,
		}
	}

	reflectutils.WalkStruct(target, callApplyDefault)
	return nil
}

func callApplyDefault(val reflect.Value, typ reflect.Type, _ []string) {
	if typ.Kind() == reflect.Pointer && typ.Implements(withDefaultType) && !val.IsNil() {
		val.Interface().(WithDefault).ApplyDefault()
	}
}

func joinKey(prefix string, path []string) string {
	key := strings.Join(path, ".")
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func putNested(values map[string]any, path []string, value any) {
	current := values
	for _, segment := range path[:len(path)-1] {
		next, ok := current[segment].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[segment] = next
		}
		current = next
	}
	current[path[len(path)-1]] = value
}

func derefType(typ reflect.Type) reflect.Type {
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	return typ
}
