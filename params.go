// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package argbinder

import (
	"fmt"
	"reflect"

	"github.com/hashicorp/go-multierror"
)

// ParamKind is how a parameter of a Func receives its value.
type ParamKind uint

const (
	// ParamPositional parameters consume one supplied argument, which is
	// either a Key to extract by or a value to pass through.
	ParamPositional ParamKind = iota

	// ParamNamed parameters are Named values extracted under the key in
	// their type.
	ParamNamed

	// ParamStruct parameters are structs embedding Struct. Every field is
	// extracted by key.
	ParamStruct
)

func (k ParamKind) String() string {
	switch k {
	case ParamPositional:
		return "positional"
	case ParamNamed:
		return "named"
	case ParamStruct:
		return "struct"
	default:
		return fmt.Sprintf("ParamKind(%d)", uint(k))
	}
}

// Param describes a single parameter of a Func.
type Param struct {
	// Index is the position of the parameter, not counting the receiver
	// of a method.
	Index int

	// Type is the declared type of the parameter.
	Type reflect.Type

	// Kind is how the parameter is bound.
	Kind ParamKind

	// Key is the extraction key of a ParamNamed parameter.
	Key string
}

func (p Param) String() string {
	switch p.Kind {
	case ParamNamed:
		return fmt.Sprintf("%d: %s (named %q)", p.Index, p.Type.String(), p.Key)
	case ParamStruct:
		return fmt.Sprintf("%d: %s (struct)", p.Index, p.Type.String())
	default:
		return fmt.Sprintf("%d: %s", p.Index, p.Type.String())
	}
}

// param is the classified form of a parameter that the binder works from.
type param struct {
	Param

	// named is the zero value of a Named parameter, used to read the key
	// and to wrap extracted values. inner is the type extracted for it.
	named namedValue
	inner reflect.Type

	// fields are the fields of a ParamStruct parameter in field order.
	fields []*structField
}

// newParams classifies count parameters, reading each type with get.
func newParams(count int, offset int, get func(int) reflect.Type) ([]*param, error) {
	var err error
	result := make([]*param, 0, count)
	for i := 0; i < count; i++ {
		p, perr := classifyParam(i, get(i+offset))
		if perr != nil {
			err = multierror.Append(err, perr)
			continue
		}

		result = append(result, p)
	}
	if err != nil {
		return nil, err
	}

	return result, nil
}

// classifyParam determines how the parameter at idx of type t is bound.
// The same type always classifies the same way.
func classifyParam(idx int, t reflect.Type) (*param, error) {
	p := &param{Param: Param{Index: idx, Type: t}}

	switch {
	case isNamed(t):
		nv := reflect.Zero(t).Interface().(namedValue)
		if k := nv.namedKeyType().Kind(); k == reflect.Ptr || k == reflect.Interface {
			return nil, fmt.Errorf(
				"parameter %d: key type %s of %s must not be a %s",
				idx, nv.namedKeyType(), t, k)
		}

		key := nv.Key()
		if key == "" {
			return nil, fmt.Errorf("parameter %d: %s has an empty key", idx, t)
		}

		p.Kind = ParamNamed
		p.Key = key
		p.named = nv
		p.inner = nv.namedValueType()

	case isStruct(t):
		fields, err := newStructFields(t)
		if err != nil {
			return nil, fmt.Errorf("parameter %d: %w", idx, err)
		}

		p.Kind = ParamStruct
		p.fields = fields

	default:
		p.Kind = ParamPositional
	}

	return p, nil
}
