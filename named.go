// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package argbinder

import (
	"fmt"
	"reflect"
)

// KeyName is implemented by the key types used with Named. Key types
// should be empty struct types so that their zero value can report the
// key:
//
//	type idKey struct{}
//
//	func (idKey) Key() string { return "id" }
type KeyName interface {
	Key() string
}

// Named is a parameter type whose value is always extracted from the
// source under the key reported by K. A Named parameter does not consume
// any supplied argument.
type Named[K KeyName, T any] struct {
	value T
}

// NewNamed returns a Named holding v. The binder constructs Named values
// itself; this is useful when calling a function directly.
func NewNamed[K KeyName, T any](v T) Named[K, T] {
	return Named[K, T]{value: v}
}

// Key returns the key this value is extracted under.
func (n Named[K, T]) Key() string {
	var k K
	return k.Key()
}

// Value returns the extracted value.
func (n Named[K, T]) Value() T { return n.value }

func (n Named[K, T]) String() string {
	return fmt.Sprintf("%s=%v", n.Key(), n.value)
}

func (Named[K, T]) namedType() reflect.Type {
	return reflect.TypeOf(Named[K, T]{})
}

func (Named[K, T]) namedKeyType() reflect.Type {
	return reflect.TypeOf((*K)(nil)).Elem()
}

func (Named[K, T]) namedValueType() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func (n Named[K, T]) withValue(v reflect.Value) reflect.Value {
	var val T
	reflect.ValueOf(&val).Elem().Set(v)
	n.value = val
	return reflect.ValueOf(n)
}

// namedValue is implemented only by Named instantiations. It lets the
// classifier recognize a Named parameter without knowing K or T.
type namedValue interface {
	Key() string
	namedType() reflect.Type
	namedKeyType() reflect.Type
	namedValueType() reflect.Type
	withValue(reflect.Value) reflect.Value
}

var namedValueIface = reflect.TypeOf((*namedValue)(nil)).Elem()

// isNamed returns true if t is an instantiation of Named. A struct that
// embeds Named gets its methods promoted but is not itself Named.
func isNamed(t reflect.Type) bool {
	if t.Kind() != reflect.Struct || !t.Implements(namedValueIface) {
		return false
	}

	return reflect.Zero(t).Interface().(namedValue).namedType() == t
}
