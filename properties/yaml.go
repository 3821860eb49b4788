package properties

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/a-peyrard/propchain"
	"gopkg.in/yaml.v3"
)

// LoadYAML reads a YAML file, see ParseYAML.
func LoadYAML(name, path string) (*propchain.MapSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read yaml file %s:\n\t%w", path, err)
	}
	return ParseYAML(name, data)
}

// ParseYAML reads YAML documents into a source.
//
// Nested mappings become dotted keys and sequence items are indexed:
//
//	user:
//	  name: 小马哥       -> user.name = 小马哥
//	  tags: [a, b]       -> user.tags[0] = a, user.tags[1] = b
//
// When the data holds several documents, the keys of a document override the ones of the previous documents.
func ParseYAML(name string, data []byte) (*propchain.MapSource, error) {
	docs, err := decodeDocuments(data)
	if err != nil {
		return nil, fmt.Errorf("unable to parse yaml %s:\n\t%w", name, err)
	}

	flat := make(map[string]any)
	for _, doc := range docs {
		flatten(flat, "", doc)
	}
	return propchain.NewMapSource(name, flat), nil
}

// ParseYAMLMap reads YAML documents into a nested map, later documents are merged over earlier ones.
func ParseYAMLMap(data []byte) (map[string]any, error) {
	docs, err := decodeDocuments(data)
	if err != nil {
		return nil, fmt.Errorf("unable to parse yaml:\n\t%w", err)
	}

	merged := make(map[string]any)
	for _, doc := range docs {
		merge(merged, doc)
	}
	return merged, nil
}

func decodeDocuments(data []byte) ([]map[string]any, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	docs := make([]map[string]any, 0, 1)
	for {
		var doc map[string]any
		err := decoder.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, err
		}
		if doc != nil {
			docs = append(docs, normalize(doc).(map[string]any))
		}
	}
}

// normalize turns the map[any]any produced for non string keys into map[string]any.
func normalize(value any) any {
	switch v := value.(type) {
	case map[string]any:
		for k, nested := range v {
			v[k] = normalize(nested)
		}
		return v
	case map[any]any:
		converted := make(map[string]any, len(v))
		for k, nested := range v {
			converted[fmt.Sprint(k)] = normalize(nested)
		}
		return converted
	case []any:
		for i, nested := range v {
			v[i] = normalize(nested)
		}
		return v
	default:
		return v
	}
}

func flatten(flat map[string]any, prefix string, value any) {
	switch v := value.(type) {
	case map[string]any:
		if len(v) == 0 && prefix != "" {
			flat[prefix] = ""
			return
		}
		for k, nested := range v {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			flatten(flat, key, nested)
		}
	case []any:
		if len(v) == 0 {
			flat[prefix] = ""
			return
		}
		for i, nested := range v {
			flatten(flat, prefix+"["+strconv.Itoa(i)+"]", nested)
		}
	case nil:
		flat[prefix] = ""
	default:
		flat[prefix] = v
	}
}

func merge(dst, src map[string]any) {
	for k, value := range src {
		srcMap, srcIsMap := value.(map[string]any)
		dstMap, dstIsMap := dst[k].(map[string]any)
		if srcIsMap && dstIsMap {
			merge(dstMap, srcMap)
			continue
		}
		dst[k] = value
	}
}
