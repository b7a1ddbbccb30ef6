// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package argbinder

import "reflect"

// convertValue returns v as a value usable for a parameter of type t.
//
// A value is usable as-is if it is assignable to t. An invalid v (a nil
// interface) is usable for any nillable t as the zero value. Numeric values
// are converted only if the conversion is lossless, so 10 can be used for
// a float64 but 2.5 can't be used for an int. Nothing else is converted.
func convertValue(v reflect.Value, t reflect.Type) (reflect.Value, bool) {
	if !v.IsValid() {
		if nillable(t.Kind()) {
			return reflect.Zero(t), true
		}

		return reflect.Value{}, false
	}

	if v.Type().AssignableTo(t) {
		return v, true
	}

	if !numeric(v.Kind()) || !numeric(t.Kind()) {
		return reflect.Value{}, false
	}

	c := v.Convert(t)
	if sign(c) != sign(v) || c.Convert(v.Type()).Interface() != v.Interface() {
		return reflect.Value{}, false
	}

	return c, true
}

func nillable(k reflect.Kind) bool {
	switch k {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map,
		reflect.Ptr, reflect.Slice:
		return true
	}

	return false
}

func numeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr, reflect.Float32, reflect.Float64:
		return true
	}

	return false
}

// sign returns -1, 0 or 1 for a numeric value.
func sign(v reflect.Value) int {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch n := v.Int(); {
		case n < 0:
			return -1
		case n > 0:
			return 1
		}

	case reflect.Float32, reflect.Float64:
		switch n := v.Float(); {
		case n < 0:
			return -1
		case n > 0:
			return 1
		}

	default:
		if v.Uint() > 0 {
			return 1
		}
	}

	return 0
}
