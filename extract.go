// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package argbinder

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// Extractor produces a value of type t from src given a key.
//
// Implementations must return either a value assignable to t or an error.
// A key that is absent, or a src that is not a keyed container, should be
// reported as *ErrKeyNotFound. A key whose value can't be converted to t
// should be reported as *ErrTypeMismatch.
type Extractor interface {
	Extract(src interface{}, key string, t reflect.Type) (reflect.Value, error)
}

// ExtractFunc is a function that extracts a value. It is used to register
// handlers on a Registry and also implements Extractor.
type ExtractFunc func(src interface{}, key string, t reflect.Type) (reflect.Value, error)

// Extract implements Extractor.
func (f ExtractFunc) Extract(src interface{}, key string, t reflect.Type) (reflect.Value, error) {
	return f(src, key, t)
}

// Registry is an Extractor that dispatches on the dynamic type of the
// source and on the requested type.
//
// For each source type, a Registry holds a decoder used for any requested
// type (see RegisterSource) and optional decoders for specific requested
// types (see Register), which take priority. Source types may be
// interfaces, in which case any source implementing the interface is
// handled. An exact source type match is always preferred.
//
// A Registry is safe for concurrent use.
type Registry struct {
	lock sync.RWMutex

	// sources is in registration order so that the first matching
	// interface wins.
	sources []*sourceEntry
}

type sourceEntry struct {
	Type     reflect.Type
	Fallback ExtractFunc
	Typed    map[reflect.Type]ExtractFunc
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// DefaultRegistry is the Registry used when no Extractor is given. It has
// all the built-in source representations registered.
var DefaultRegistry = NewDefaultRegistry()

// NewDefaultRegistry returns a new Registry with all the built-in source
// representations registered: map[string]interface{},
// map[string]json.RawMessage, json.RawMessage, *yaml.Node,
// *structpb.Struct and proto.Message.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	registerJSON(r)
	registerYAML(r)
	registerProto(r)
	return r
}

// RegisterSource registers fn to extract any type from sources of type
// srcType. A previous registration for srcType is replaced.
func (r *Registry) RegisterSource(srcType reflect.Type, fn ExtractFunc) {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.entry(srcType).Fallback = fn
}

// Register registers fn to extract values of type t from sources of type
// srcType. This takes priority over the function given to RegisterSource.
func (r *Registry) Register(srcType, t reflect.Type, fn ExtractFunc) {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.entry(srcType).Typed[t] = fn
}

// RegisterFunc registers fn to extract values of type T from sources of
// type S on r.
func RegisterFunc[S, T any](r *Registry, fn func(src S, key string) (T, error)) {
	srcType := reflect.TypeOf((*S)(nil)).Elem()
	t := reflect.TypeOf((*T)(nil)).Elem()
	r.Register(srcType, t, func(src interface{}, key string, _ reflect.Type) (reflect.Value, error) {
		v, err := fn(src.(S), key)
		if err != nil {
			return reflect.Value{}, err
		}

		result := reflect.New(t).Elem()
		result.Set(reflect.ValueOf(&v).Elem())
		return result, nil
	})
}

// entry returns the entry for exactly srcType, creating it if necessary.
// The lock must be held.
func (r *Registry) entry(srcType reflect.Type) *sourceEntry {
	for _, e := range r.sources {
		if e.Type == srcType {
			return e
		}
	}

	e := &sourceEntry{
		Type:  srcType,
		Typed: make(map[reflect.Type]ExtractFunc),
	}
	r.sources = append(r.sources, e)
	return e
}

// lookup returns the function to extract t from a source of type srcType.
func (r *Registry) lookup(srcType, t reflect.Type) ExtractFunc {
	if srcType == nil {
		return nil
	}

	r.lock.RLock()
	defer r.lock.RUnlock()

	// Exact matches first, then interfaces in registration order. Within
	// an entry, a typed handler wins over the fallback.
	for _, exact := range []bool{true, false} {
		for _, e := range r.sources {
			if exact && e.Type != srcType {
				continue
			}
			if !exact && (e.Type.Kind() != reflect.Interface || !srcType.Implements(e.Type)) {
				continue
			}

			if fn, ok := e.Typed[t]; ok {
				return fn
			}
			if e.Fallback != nil {
				return e.Fallback
			}
		}
	}

	return nil
}

// Supports returns true if r can extract values of type t from sources
// of type srcType.
func (r *Registry) Supports(srcType, t reflect.Type) bool {
	return r.lookup(srcType, t) != nil
}

// Extract implements Extractor.
//
// Errors from the registered function that are not already
// *ErrKeyNotFound or *ErrTypeMismatch are returned as *ErrTypeMismatch
// with the original error as the cause.
func (r *Registry) Extract(src interface{}, key string, t reflect.Type) (reflect.Value, error) {
	srcType := reflect.TypeOf(src)
	fn := r.lookup(srcType, t)
	if fn == nil {
		return reflect.Value{}, &ErrNoExtractor{Source: srcType, Type: t}
	}

	v, err := fn(src, key, t)
	if err != nil {
		var notFound *ErrKeyNotFound
		var mismatch *ErrTypeMismatch
		if errors.As(err, &notFound) || errors.As(err, &mismatch) {
			return reflect.Value{}, err
		}

		return reflect.Value{}, &ErrTypeMismatch{Key: key, Type: t, Err: err}
	}

	return checkExtracted(key, t, v)
}

// checkExtracted returns v if it can be used as t.
func checkExtracted(key string, t reflect.Type, v reflect.Value) (reflect.Value, error) {
	if !v.IsValid() || !v.Type().AssignableTo(t) {
		got := "nothing"
		if v.IsValid() {
			got = v.Type().String()
		}

		return reflect.Value{}, &ErrTypeMismatch{
			Key:  key,
			Type: t,
			Err:  fmt.Errorf("extractor returned %s", got),
		}
	}

	return v, nil
}

var (
	_ Extractor = (*Registry)(nil)
	_ Extractor = ExtractFunc(nil)
)
