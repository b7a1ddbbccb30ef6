// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package argbinder

import (
	"fmt"
	"reflect"
	"runtime"

	"github.com/hashicorp/go-hclog"
)

// Func is a target function whose parameters are bound from a source and
// from supplied arguments.
//
// A Func is created once per function with NewFunc or NewMethod. The
// parameter list is classified at that point, so an unusable parameter
// declaration (for example a Named with an empty key) is reported then
// and not on every call.
//
// Parameters are matched to supplied arguments by position. Named and
// Struct parameters are skipped when matching since their keys are part
// of their type. For example, a function
//
//	func(id Named[idKey, int], name string, code *int)
//
// takes exactly two supplied arguments: one for name and one for code.
//
// # Methods
//
// NewMethod takes a method expression such as (*T).Method. The receiver
// is not a parameter; it is given separately to CallMethod and passed
// to the method unchanged. A method value such as t.Method is an ordinary
// function and should be used with NewFunc.
type Func struct {
	fn         reflect.Value
	recv       reflect.Type
	params     []*param
	positional int

	logger    hclog.Logger
	extractor Extractor
	name      string
}

// NewFunc creates a new Func from the given function f.
//
// f must be a non-nil function. Variadic functions are not supported
// since their arity is not fixed.
func NewFunc(f interface{}, opts ...Arg) (*Func, error) {
	return newFunc(f, false, opts...)
}

// NewMethod creates a new Func from a method expression m, such as
// (*T).Method. The first parameter of m is the receiver.
func NewMethod(m interface{}, opts ...Arg) (*Func, error) {
	return newFunc(m, true, opts...)
}

func newFunc(f interface{}, method bool, opts ...Arg) (*Func, error) {
	args, err := newArgBuilder(opts...)
	if err != nil {
		return nil, err
	}

	fv := reflect.ValueOf(f)
	if !fv.IsValid() {
		return nil, fmt.Errorf("fn should be a function, got nil")
	}

	ft := fv.Type()
	if k := ft.Kind(); k != reflect.Func {
		return nil, fmt.Errorf("fn should be a function, got %s", k)
	}
	if fv.IsNil() {
		return nil, fmt.Errorf("fn should be a function, got nil %s", ft)
	}
	if ft.IsVariadic() {
		return nil, fmt.Errorf("variadic function %s is not supported", ft)
	}

	// For methods the receiver is the first input and is not bound.
	var recv reflect.Type
	offset := 0
	if method {
		if ft.NumIn() == 0 {
			return nil, fmt.Errorf("method %s has no receiver parameter", ft)
		}

		recv = ft.In(0)
		offset = 1
	}

	params, err := newParams(ft.NumIn()-offset, offset, ft.In)
	if err != nil {
		return nil, err
	}

	positional := 0
	for _, p := range params {
		if p.Kind == ParamPositional {
			positional++
		}
	}

	return &Func{
		fn:         fv,
		recv:       recv,
		params:     params,
		positional: positional,
		logger:     args.logger,
		extractor:  args.extractor,
		name:       args.funcName,
	}, nil
}

// Params returns the parameters of this function in declaration order.
// For a method the receiver is not included.
func (f *Func) Params() []Param {
	result := make([]Param, len(f.params))
	for i, p := range f.params {
		result[i] = p.Param
	}

	return result
}

// Positional returns the number of supplied arguments this function
// must be called with.
func (f *Func) Positional() int { return f.positional }

// Receiver returns the receiver type of a method or nil for a function
// created with NewFunc.
func (f *Func) Receiver() reflect.Type { return f.recv }

// Func returns the function pointer that this Func is built around.
func (f *Func) Func() interface{} {
	return f.fn.Interface()
}

// Name returns the name of the function.
//
// This will return the configured name if one was given on NewFunc. If not,
// this will attempt to look up the function name using the pointer. If
// no friendly name can be found, then this will default to the function
// type signature.
func (f *Func) Name() string {
	// Use our set name first, if we have one
	name := f.name

	// Fall back to inspecting the program counter
	if name == "" {
		if rfunc := runtime.FuncForPC(f.fn.Pointer()); rfunc != nil {
			name = rfunc.Name()
		}

		// Final fallback is our type signature
		if name == "" {
			name = f.fn.String()
		}
	}

	return name
}

// String returns the name for this function. See Name.
func (f *Func) String() string {
	return f.Name()
}

// errType is used to detect a final error result
var errType = reflect.TypeOf((*error)(nil)).Elem()
