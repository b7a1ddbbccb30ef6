// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package argbinder

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"
)

// ErrKeyNotFound is returned when a key is absent from the source, or the
// source is not a keyed container.
type ErrKeyNotFound struct {
	Key string
}

func (e *ErrKeyNotFound) Error() string {
	return fmt.Sprintf("key %q not found", e.Key)
}

// ErrTypeMismatch is returned when a key is present in the source but its
// value can't be converted to the requested type.
type ErrTypeMismatch struct {
	// Key is the key that was extracted.
	Key string

	// Type is the requested type.
	Type reflect.Type

	// Err is the underlying conversion failure.
	Err error
}

func (e *ErrTypeMismatch) Error() string {
	return fmt.Sprintf("type mismatch for key %q: expected %s: %s",
		e.Key, typeString(e.Type), e.Err)
}

func (e *ErrTypeMismatch) Unwrap() error { return e.Err }

// ErrNoExtractor is returned when the extractor has no way to produce the
// requested type from the given kind of source. This is reported before
// any value is extracted.
type ErrNoExtractor struct {
	Source reflect.Type
	Type   reflect.Type
}

func (e *ErrNoExtractor) Error() string {
	return fmt.Sprintf("no extractor for type %s from source of type %s",
		typeString(e.Type), typeString(e.Source))
}

// ErrArgumentType is returned by Bind when a supplied value can't be used
// for the parameter in its position.
type ErrArgumentType struct {
	// Index is the index of the parameter.
	Index int

	// Expected is the parameter type.
	Expected reflect.Type

	// Value is the supplied value.
	Value interface{}
}

func (e *ErrArgumentType) Error() string {
	return fmt.Sprintf("argument for parameter %d: %s can't be used as %s",
		e.Index, valueString(e.Value), e.Expected)
}

// ErrReceiver is returned when a method is called without a usable
// receiver, or a function that is not a method is given one.
type ErrReceiver struct {
	Func   string
	Reason string
}

func (e *ErrReceiver) Error() string {
	return fmt.Sprintf("%s: %s", e.Func, e.Reason)
}

// ErrArity is the value returned when the number of supplied arguments
// doesn't match the number of positional parameters of the function.
// This is detected before any value is extracted.
type ErrArity struct {
	// Func is the target function that was bound.
	Func *Func

	// Args are the supplied arguments.
	Args []interface{}
}

func (e *ErrArity) Error() string {
	// Build our list of parameters the function expects
	params := new(bytes.Buffer)
	if len(e.Func.params) == 0 {
		fmt.Fprintf(params, "    No parameters.\n")
	}
	for _, p := range e.Func.params {
		fmt.Fprintf(params, "    - %s\n", p.Param.String())
	}

	// Build our list of supplied arguments
	args := new(bytes.Buffer)
	if len(e.Args) == 0 {
		fmt.Fprintf(args, "    No arguments!\n")
	}
	for i, arg := range e.Args {
		fmt.Fprintf(args, "    - %d: %s\n", i, valueString(arg))
	}

	return fmt.Sprintf(`
Function %q expects %d argument(s) but %d were supplied!

Every parameter that is not a named value must have exactly one supplied
argument, either a key to extract it by or a value to pass through.
Named values and struct parameters are extracted by their own keys and
must not have a supplied argument.

==> Full list of function parameters

%s

==> Full list of supplied arguments

%s
`,
		e.Func.Name(),
		e.Func.positional,
		len(e.Args),
		strings.TrimSuffix(params.String(), "\n"),
		strings.TrimSuffix(args.String(), "\n"),
	)
}

func typeString(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	return t.String()
}

func valueString(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case Key:
		return fmt.Sprintf("key %q", string(v))
	default:
		return fmt.Sprintf("%v (%T)", v, v)
	}
}

var (
	_ error = (*ErrKeyNotFound)(nil)
	_ error = (*ErrTypeMismatch)(nil)
	_ error = (*ErrNoExtractor)(nil)
	_ error = (*ErrArgumentType)(nil)
	_ error = (*ErrReceiver)(nil)
	_ error = (*ErrArity)(nil)
)
