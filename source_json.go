// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package argbinder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
)

var (
	mapType        = reflect.TypeOf(map[string]interface{}(nil))
	rawMapType     = reflect.TypeOf(map[string]json.RawMessage(nil))
	rawMessageType = reflect.TypeOf(json.RawMessage(nil))
)

var errNull = errors.New("value is null")

// ParseJSON validates data as a JSON document and returns it as a source.
func ParseJSON(data []byte) (json.RawMessage, error) {
	var doc json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON document: %w", err)
	}

	return doc, nil
}

func registerJSON(r *Registry) {
	r.RegisterSource(mapType, extractMap)
	r.RegisterSource(rawMapType, extractRawMap)
	r.RegisterSource(rawMessageType, extractRawMessage)
}

// extractMap extracts from a generic decoded document such as the result
// of decoding JSON or YAML into an interface{}. Values that are already
// of the requested type are used directly, anything else is converted by
// a JSON round trip.
func extractMap(src interface{}, key string, t reflect.Type) (reflect.Value, error) {
	m := src.(map[string]interface{})
	raw, ok := m[key]
	if !ok {
		return reflect.Value{}, &ErrKeyNotFound{Key: key}
	}

	if raw != nil {
		if v := reflect.ValueOf(raw); v.Type().AssignableTo(t) {
			return v, nil
		}
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return reflect.Value{}, &ErrTypeMismatch{Key: key, Type: t, Err: err}
	}

	return decodeJSON(key, data, t)
}

func extractRawMap(src interface{}, key string, t reflect.Type) (reflect.Value, error) {
	m := src.(map[string]json.RawMessage)
	raw, ok := m[key]
	if !ok {
		return reflect.Value{}, &ErrKeyNotFound{Key: key}
	}

	return decodeJSON(key, raw, t)
}

// extractRawMessage extracts from an undecoded JSON document. A document
// that is not an object has no keys.
func extractRawMessage(src interface{}, key string, t reflect.Type) (reflect.Value, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(src.(json.RawMessage), &m); err != nil || m == nil {
		return reflect.Value{}, &ErrKeyNotFound{Key: key}
	}

	return extractRawMap(m, key, t)
}

// decodeJSON decodes data as t. A null is only accepted for types that
// can hold nil.
func decodeJSON(key string, data []byte, t reflect.Type) (reflect.Value, error) {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) && !nillable(t.Kind()) {
		return reflect.Value{}, &ErrTypeMismatch{Key: key, Type: t, Err: errNull}
	}

	ptr := reflect.New(t)
	if err := json.Unmarshal(data, ptr.Interface()); err != nil {
		return reflect.Value{}, &ErrTypeMismatch{Key: key, Type: t, Err: err}
	}

	return ptr.Elem(), nil
}
