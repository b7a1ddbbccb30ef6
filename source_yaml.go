// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package argbinder

import (
	"fmt"
	"reflect"

	"gopkg.in/yaml.v3"
)

var yamlNodeType = reflect.TypeOf((*yaml.Node)(nil))

// ParseYAML parses data as a YAML document and returns it as a source.
func ParseYAML(data []byte) (*yaml.Node, error) {
	var n yaml.Node
	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("YAML parse error: %w", err)
	}

	return &n, nil
}

func registerYAML(r *Registry) {
	r.RegisterSource(yamlNodeType, extractYAML)
}

// extractYAML extracts from a YAML node. A document node is unwrapped to
// its content. Anything other than a mapping has no keys.
func extractYAML(src interface{}, key string, t reflect.Type) (reflect.Value, error) {
	n := src.(*yaml.Node)
	if n != nil && n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	if n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n == nil || n.Kind != yaml.MappingNode {
		return reflect.Value{}, &ErrKeyNotFound{Key: key}
	}

	// Mapping content alternates between keys and values.
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value != key {
			continue
		}

		value := n.Content[i+1]
		if value.Kind == yaml.AliasNode && value.Alias != nil {
			value = value.Alias
		}
		if value.ShortTag() == "!!null" && !nillable(t.Kind()) {
			return reflect.Value{}, &ErrTypeMismatch{Key: key, Type: t, Err: errNull}
		}

		ptr := reflect.New(t)
		if err := value.Decode(ptr.Interface()); err != nil {
			return reflect.Value{}, &ErrTypeMismatch{Key: key, Type: t, Err: err}
		}

		return ptr.Elem(), nil
	}

	return reflect.Value{}, &ErrKeyNotFound{Key: key}
}
