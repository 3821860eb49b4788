package propchain

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Convert converts a raw property value to T.
//
// Strings are parsed for scalar targets, comma separated strings split into []string and []int.
// Any other target type is only reachable through assignment or a same-kind conversion.
func Convert[T any](raw any) (T, error) {
	return convertKey[T]("", raw)
}

func convertKey[T any](key string, raw any) (out T, err error) {
	if value, ok := raw.(T); ok {
		return value, nil
	}

	input := raw
	if str, ok := raw.(string); ok && isIntegerKind(reflect.TypeOf(out)) {
		input = trimLeadingZeros(str)
	}

	switch target := any(&out).(type) {
	case *string:
		*target, err = cast.ToStringE(raw)
	case *bool:
		*target, err = cast.ToBoolE(raw)
	case *int:
		*target, err = cast.ToIntE(input)
	case *int8:
		*target, err = cast.ToInt8E(input)
	case *int16:
		*target, err = cast.ToInt16E(input)
	case *int32:
		*target, err = cast.ToInt32E(input)
	case *int64:
		*target, err = cast.ToInt64E(input)
	case *uint:
		*target, err = cast.ToUintE(input)
	case *uint8:
		*target, err = cast.ToUint8E(input)
	case *uint16:
		*target, err = cast.ToUint16E(input)
	case *uint32:
		*target, err = cast.ToUint32E(input)
	case *uint64:
		*target, err = cast.ToUint64E(input)
	case *float32:
		*target, err = cast.ToFloat32E(raw)
	case *float64:
		*target, err = cast.ToFloat64E(raw)
	case *time.Duration:
		*target, err = cast.ToDurationE(raw)
	case *time.Time:
		*target, err = cast.ToTimeE(raw)
	case *[]string:
		if str, ok := raw.(string); ok {
			*target = splitList(str)
		} else {
			*target, err = cast.ToStringSliceE(raw)
		}
	case *[]int:
		if str, ok := raw.(string); ok {
			items := splitList(str)
			for i, item := range items {
				items[i] = trimLeadingZeros(item)
			}
			*target, err = cast.ToIntSliceE(items)
		} else {
			*target, err = cast.ToIntSliceE(raw)
		}
	case *map[string]any:
		*target, err = cast.ToStringMapE(raw)
	case *map[string]string:
		*target, err = cast.ToStringMapStringE(raw)
	default:
		err = convertSameKind(raw, reflect.ValueOf(target).Elem())
	}

	if err != nil {
		var zero T
		return zero, &ConversionError{
			Key:    key,
			Value:  raw,
			Target: reflect.TypeOf(&out).Elem(),
			Err:    err,
		}
	}
	return out, nil
}

func convertSameKind(raw any, target reflect.Value) error {
	value := reflect.ValueOf(raw)
	if !value.IsValid() {
		return fmt.Errorf("nil value")
	}
	if value.Kind() != target.Kind() || !value.Type().ConvertibleTo(target.Type()) {
		return fmt.Errorf("unsupported conversion from %s to %s", value.Type(), target.Type())
	}
	target.Set(value.Convert(target.Type()))
	return nil
}

func splitList(str string) []string {
	if strings.TrimSpace(str) == "" {
		return []string{}
	}
	parts := strings.Split(str, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func isIntegerKind(typ reflect.Type) bool {
	if typ == nil || typ == reflect.TypeOf(time.Duration(0)) {
		return false
	}
	switch typ.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

// trimLeadingZeros keeps integers decimal: cast reads "010" as octal and "0x10" as hexadecimal.
func trimLeadingZeros(str string) string {
	str = strings.TrimSpace(str)
	sign := ""
	if strings.HasPrefix(str, "-") || strings.HasPrefix(str, "+") {
		sign, str = str[:1], str[1:]
	}
	trimmed := strings.TrimLeft(str, "0")
	if trimmed == "" && str != "" {
		trimmed = "0"
	}
	return sign + trimmed
}
