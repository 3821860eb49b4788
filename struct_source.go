package propchain

import (
	"reflect"
	"strings"
	"sync"

	"github.com/a-peyrard/propchain/fn"
	"github.com/a-peyrard/propchain/reflectutils"
	"github.com/a-peyrard/propchain/structs"
)

// StructSource exposes the fields of a struct as properties.
//
// Keys are dotted paths built from mapstructure tags or field names, so the field Port of a
// nested Server struct is "Server.Port", or "server.port" with tags. Values are read live,
// a source built on a pointer sees later changes of the struct.
type StructSource struct {
	name  string
	value any

	once sync.Once
	keys []string
}

func NewStructSource(name string, value any) *StructSource {
	return &StructSource{
		name:  name,
		value: value,
	}
}

func (s *StructSource) Name() string {
	return s.name
}

func (s *StructSource) Lookup(key string) (any, bool) {
	if key == "" || s.value == nil {
		return nil, false
	}
	value, err := structs.Get(s.value, key)
	if err != nil {
		return nil, false
	}
	if v := reflect.ValueOf(value); !v.IsValid() || (v.Kind() == reflect.Pointer && v.IsNil()) {
		return nil, false
	}
	return value, true
}

// Keys lists the leaf fields currently reachable, fields behind nil pointers are skipped.
func (s *StructSource) Keys() []string {
	s.once.Do(func() {
		s.loadKeys()
	})

	keys := make([]string, 0, len(s.keys))
	for _, k := range s.keys {
		if _, found := s.Lookup(k); found {
			keys = append(keys, k)
		}
	}
	return keys
}

func (s *StructSource) loadKeys() {
	typ := reflect.TypeOf(s.value)
	if typ == nil {
		return
	}
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return
	}

	// walk an empty instance so fields behind nil pointers are listed too
	empty := reflect.New(typ).Interface()
	reflectutils.WalkStruct(
		empty,
		fn.AllTriConsumer(
			reflectutils.CreateNilStructs,
			func(_ reflect.Value, fieldTyp reflect.Type, path []string) {
				if len(path) > 0 && reflectutils.IsLeaf(fieldTyp) {
					s.keys = append(s.keys, strings.Join(path, "."))
				}
			},
		),
	)
}
