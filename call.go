// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package argbinder

import (
	"fmt"
	"reflect"

	"github.com/hashicorp/go-hclog"
)

// Call binds args (see Bind), extracts the bound parameters from src and
// calls the function. The function is not called if anything fails.
func (f *Func) Call(src interface{}, args ...interface{}) Result {
	b, err := f.Bind(args...)
	if err != nil {
		return resultError(err)
	}

	return b.Call(src)
}

// CallMethod is the same as Call but calls a method created with NewMethod
// on recv.
func (f *Func) CallMethod(src, recv interface{}, args ...interface{}) Result {
	b, err := f.Bind(args...)
	if err != nil {
		return resultError(err)
	}

	return b.CallMethod(src, recv)
}

// receiver returns the value to call the method with for recv.
func (f *Func) receiver(recv interface{}) (reflect.Value, error) {
	if f.recv == nil {
		return reflect.Value{}, &ErrReceiver{
			Func:   f.Name(),
			Reason: "function is not a method, use Call",
		}
	}

	rv := reflect.ValueOf(recv)
	if !rv.IsValid() {
		return reflect.Value{}, &ErrReceiver{
			Func:   f.Name(),
			Reason: "receiver is nil",
		}
	}

	if rv.Type().AssignableTo(f.recv) {
		return rv, nil
	}

	// A pointer can call a method on the value it points to, the same as
	// a Go method call would.
	if rv.Kind() == reflect.Ptr && !rv.IsNil() && rv.Elem().Type().AssignableTo(f.recv) {
		return rv.Elem(), nil
	}

	return reflect.Value{}, &ErrReceiver{
		Func:   f.Name(),
		Reason: fmt.Sprintf("receiver of type %s can't be used as %s", rv.Type(), f.recv),
	}
}

// callDirect calls the function with the already bound argument list.
// recv is only used for methods.
func (f *Func) callDirect(log hclog.Logger, recv reflect.Value, in []reflect.Value) Result {
	if f.recv != nil {
		in = append([]reflect.Value{recv}, in...)
	}

	for i, arg := range in {
		log.Trace("argument", "idx", i, "value", arg.Interface())
	}

	out := f.fn.Call(in)
	return Result{out: out}
}

// Invoke calls fn with its parameters bound from src and args. This is a
// shortcut for NewFunc followed by Call using the default options.
//
// If fn returns an error as its final result, that error is returned.
func Invoke(src, fn interface{}, args ...interface{}) error {
	f, err := NewFunc(fn)
	if err != nil {
		return err
	}

	result := f.Call(src, args...)
	return result.Err()
}

// InvokeMethod calls the method expression method on recv with its
// parameters bound from src and args. This is a shortcut for NewMethod
// followed by CallMethod using the default options.
func InvokeMethod(src, method, recv interface{}, args ...interface{}) error {
	f, err := NewMethod(method)
	if err != nil {
		return err
	}

	result := f.CallMethod(src, recv, args...)
	return result.Err()
}

// InvokeKeys calls fn with every positional parameter extracted from src
// under the matching key.
func InvokeKeys(src, fn interface{}, keys ...string) error {
	args := make([]interface{}, len(keys))
	for i, k := range keys {
		args[i] = Key(k)
	}

	return Invoke(src, fn, args...)
}
