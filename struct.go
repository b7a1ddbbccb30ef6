// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package argbinder

import (
	"fmt"
	"reflect"
	"strings"
)

// Struct should be embedded into a struct parameter to have every field
// of that struct extracted from the source by key. Such a parameter does
// not consume a supplied argument.
//
// The key for a field is the field name unless a tag overrides it. A tag
// of "-" skips the field. Unexported fields are ignored.
//
//	func handle(in struct {
//		argbinder.Struct
//
//		ID   int    `argbinder:"id"`
//		Name string `argbinder:"user_name"`
//	}) {}
type Struct struct{}

var structMarkerType = reflect.TypeOf(Struct{})

// structField is a single field of a struct parameter that is filled
// from the source.
type structField struct {
	// Index is the index using reflect.Value.Field that can be used to
	// set this field on the struct.
	Index int

	// Key is the key the field is extracted under.
	Key string

	// Type is the type of this field.
	Type reflect.Type
}

func (f *structField) String() string {
	return fmt.Sprintf("%s %s", f.Key, f.Type.String())
}

// isStruct returns true if the given type is a struct (or pointer to a
// struct) that embeds Struct.
func isStruct(t reflect.Type) bool {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return false
	}

	for i := 0; i < t.NumField(); i++ {
		if isStructField(t.Field(i)) {
			return true
		}
	}

	return false
}

// isStructField returns true if the given field is the Struct marker.
func isStructField(f reflect.StructField) bool {
	return f.Anonymous && f.Type == structMarkerType
}

// newStructFields returns the fields to extract for a struct that embeds
// Struct, in field order.
func newStructFields(typ reflect.Type) ([]*structField, error) {
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}

	// Verify our value is a struct
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("struct expected, got %s", typ.Kind())
	}

	var result []*structField
	seen := map[string]struct{}{}
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)

		// Ignore unexported fields and our struct marker
		if sf.PkgPath != "" || isStructField(sf) {
			continue
		}

		key := sf.Name
		if tag := sf.Tag.Get("argbinder"); tag != "" {
			parts := strings.Split(tag, ",")
			if parts[0] == "-" {
				continue
			}

			// If we have a name set, then override the key
			if parts[0] != "" {
				key = parts[0]
			}
		}

		if _, ok := seen[key]; ok {
			return nil, fmt.Errorf(
				"field %s of %s: key %q is bound more than once", sf.Name, typ, key)
		}
		seen[key] = struct{}{}

		result = append(result, &structField{
			Index: i,
			Key:   key,
			Type:  sf.Type,
		})
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("struct %s has no fields to bind", typ)
	}

	return result, nil
}
