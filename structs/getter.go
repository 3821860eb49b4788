package structs

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/a-peyrard/propchain/reflectutils"
)

// Get retrieves the value at a dotted path ("user.address.street") from a struct or a map.
//
// Struct fields are matched by their mapstructure tag name first, then by field name,
// then case-insensitively, so the paths produced by reflectutils.WalkStruct always resolve.
func Get(origin any, path string) (any, error) {
	if origin == nil {
		return nil, fmt.Errorf("cannot get %s from nil origin", path)
	}
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	current := origin
	for i, token := range strings.Split(path, ".") {
		if token == "" {
			return nil, fmt.Errorf("empty token at position %d in path %s", i, path)
		}

		valueOf := reflectutils.Deref(reflect.ValueOf(current))
		if !valueOf.IsValid() {
			return nil, fmt.Errorf("encountered nil value at token %s (position %d) in path %s", token, i, path)
		}

		switch valueOf.Kind() {
		case reflect.Map:
			if valueOf.Type().Key().Kind() != reflect.String {
				return nil, fmt.Errorf("cannot traverse map with %s keys at position %d in path %s", valueOf.Type().Key(), i, path)
			}
			mapValue := valueOf.MapIndex(reflect.ValueOf(token).Convert(valueOf.Type().Key()))
			if !mapValue.IsValid() {
				return nil, fmt.Errorf("key %s not found in map at position %d in path %s", token, i, path)
			}
			current = mapValue.Interface()

		case reflect.Struct:
			fieldValue, found := fieldByKey(valueOf, token)
			if !found {
				return nil, fmt.Errorf("field %s not found in struct %s at position %d in path %s", token, valueOf.Type().Name(), i, path)
			}
			current = fieldValue.Interface()

		default:
			return nil, fmt.Errorf("cannot traverse %s: expected struct or map but got %s at position %d in path %s", token, valueOf.Kind(), i, path)
		}
	}

	return current, nil
}

func fieldByKey(structValue reflect.Value, key string) (reflect.Value, bool) {
	typ := structValue.Type()
	fallback := -1
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		fieldKey := reflectutils.FieldKey(field)
		if fieldKey == "-" {
			continue
		}
		if fieldKey == key || field.Name == key {
			return structValue.Field(i), true
		}
		if fallback < 0 && (strings.EqualFold(fieldKey, key) || strings.EqualFold(field.Name, key)) {
			fallback = i
		}
	}
	if fallback >= 0 {
		return structValue.Field(fallback), true
	}
	return reflect.Value{}, false
}
