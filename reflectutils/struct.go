package reflectutils

import (
	"reflect"
	"strings"
	"time"

	"github.com/a-peyrard/propchain/fn"
)

// TagName is the struct tag used to name configuration fields.
const TagName = "mapstructure"

var timeType = reflect.TypeOf(time.Time{})

// WalkStruct applies a tri-consumer on a given object and on all its exported nested fields.
//
// The path handed to the consumer is made of field keys (see FieldKey), the root has an empty path.
func WalkStruct[T any](element T, consumer fn.TriConsumer[reflect.Value, reflect.Type, []string]) {
	walkStructInternal(reflect.ValueOf(element), []string{}, consumer)
}

func walkStructInternal(val reflect.Value, path []string, consumer fn.TriConsumer[reflect.Value, reflect.Type, []string]) {
	consumer(val, val.Type(), path)

	val = Deref(val)
	if !val.IsValid() || val.Kind() != reflect.Struct || val.Type() == timeType {
		return
	}

	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		structField := typ.Field(i)
		if !structField.IsExported() {
			continue
		}
		key := FieldKey(structField)
		if key == "-" {
			continue
		}

		nestedPath := make([]string, len(path), len(path)+1)
		copy(nestedPath, path)
		walkStructInternal(val.Field(i), append(nestedPath, key), consumer)
	}
}

// FieldKey returns the configuration key of a struct field: the name from its mapstructure tag,
// or the field name when the tag is missing.
func FieldKey(field reflect.StructField) string {
	tag, ok := field.Tag.Lookup(TagName)
	if !ok {
		return field.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return field.Name
	}
	return name
}

// IsLeaf tells if a type holds a value rather than nested fields.
func IsLeaf(typ reflect.Type) bool {
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	return typ.Kind() != reflect.Struct || typ == timeType
}

// Deref dereferences recursively a reflect.Value until it reaches a non-pointer or non-interface value
func Deref(value reflect.Value) reflect.Value {
	if value.Kind() == reflect.Ptr || value.Kind() == reflect.Interface {
		return Deref(value.Elem())
	}
	return value
}

// CreateNilStructs creates new struct instances for nil struct pointers
func CreateNilStructs(val reflect.Value, typ reflect.Type, _ []string) {
	if typ.Kind() == reflect.Pointer &&
		val.IsNil() &&
		val.CanSet() &&
		typ.Elem().Kind() == reflect.Struct &&
		typ.Elem() != timeType {

		val.Set(reflect.New(typ.Elem()))
	}
}
