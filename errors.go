package propchain

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrEmptySourceName     = errors.New("property source name must not be empty")
	ErrNilSource           = errors.New("property source must not be nil")
	ErrSourceNotFound      = errors.New("property source not found")
	ErrSelfReference       = errors.New("a chain cannot contain itself")
	ErrMissingKey          = errors.New("property not found")
	ErrCircularPlaceholder = errors.New("circular placeholder reference")
)

// ConversionError reports a resolved value that cannot be converted to the requested type.
type ConversionError struct {
	Key    string
	Value  any
	Target reflect.Type
	Err    error
}

func (e *ConversionError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("cannot convert value %v to %s:\n\t%v", e.Value, e.Target, e.Err)
	}
	return fmt.Sprintf("cannot convert property %s=%v to %s:\n\t%v", e.Key, e.Value, e.Target, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}
