// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package argbinder

import (
	"fmt"
	"reflect"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
)

type slotKind uint8

const (
	slotExtract slotKind = iota // positional, extracted by a supplied Key
	slotValue                   // positional, supplied value
	slotNamed                   // Named parameter
	slotStruct                  // Struct parameter
)

// slot is how a single parameter gets its value during a call.
type slot struct {
	kind  slotKind
	param *param

	// key is set for slotExtract and slotNamed.
	key string

	// value is set for slotValue.
	value reflect.Value
}

// Binding is a Func with its supplied arguments matched to its
// parameters. A Binding can be called any number of times with different
// sources.
type Binding struct {
	fn    *Func
	slots []slot
}

// Bind matches the supplied arguments to the parameters of the function.
//
// Each positional parameter consumes the next supplied argument in order.
// If that argument is a Key, the parameter is extracted from the source
// under that key when called. Otherwise the argument is passed through and
// must be usable as the parameter type (see the package docs on
// conversion). Named and Struct parameters consume no supplied argument.
//
// An *ErrArity is returned if the number of arguments is wrong.
// Arguments that can't be used for their parameter are all reported.
func (f *Func) Bind(args ...interface{}) (*Binding, error) {
	if len(args) != f.positional {
		return nil, &ErrArity{Func: f, Args: args}
	}

	var err error
	slots := make([]slot, len(f.params))

	// i walks the parameters, j walks the supplied arguments. j only
	// advances on positional parameters.
	j := 0
	for i, p := range f.params {
		switch p.Kind {
		case ParamNamed:
			slots[i] = slot{kind: slotNamed, param: p, key: p.Key}

		case ParamStruct:
			slots[i] = slot{kind: slotStruct, param: p}

		case ParamPositional:
			arg := args[j]
			j++

			if k, ok := arg.(Key); ok {
				slots[i] = slot{kind: slotExtract, param: p, key: string(k)}
				continue
			}

			v, ok := convertValue(reflect.ValueOf(arg), p.Type)
			if !ok {
				err = multierror.Append(err, &ErrArgumentType{
					Index:    p.Index,
					Expected: p.Type,
					Value:    arg,
				})
				continue
			}

			slots[i] = slot{kind: slotValue, param: p, value: v}

		default:
			panic(fmt.Sprintf("unknown param kind: %s", p.Kind))
		}
	}
	if err != nil {
		return nil, err
	}

	return &Binding{fn: f, slots: slots}, nil
}

// Func returns the function this binding calls.
func (b *Binding) Func() *Func { return b.fn }

// Call extracts the bound parameters from src and calls the function.
func (b *Binding) Call(src interface{}) Result {
	if b.fn.recv != nil {
		return resultError(&ErrReceiver{
			Func:   b.fn.Name(),
			Reason: "method must be called with a receiver",
		})
	}

	return b.call(src, reflect.Value{})
}

// CallMethod extracts the bound parameters from src and calls the method
// on recv. recv is passed to the method unchanged, so a pointer receiver
// observes any changes the method makes.
func (b *Binding) CallMethod(src, recv interface{}) Result {
	rv, err := b.fn.receiver(recv)
	if err != nil {
		return resultError(err)
	}

	return b.call(src, rv)
}

func (b *Binding) call(src interface{}, recv reflect.Value) Result {
	log := b.fn.logger.Named("bind")
	log.Trace("binding function", "func", b.fn.Name(), "source", hclog.Fmt("%T", src))

	in, err := b.values(log, src)
	if err != nil {
		log.Trace("binding failed", "func", b.fn.Name(), "err", err)
		return resultError(err)
	}

	return b.fn.callDirect(log, recv, in)
}

// values builds the argument list for a single call. Parameters are
// resolved in declaration order and the first error is returned as-is.
func (b *Binding) values(log hclog.Logger, src interface{}) ([]reflect.Value, error) {
	if err := b.checkSupport(src); err != nil {
		return nil, err
	}

	in := make([]reflect.Value, len(b.slots))
	for i, s := range b.slots {
		switch s.kind {
		case slotValue:
			log.Trace("passing value", "idx", i, "type", s.param.Type)
			in[i] = s.value

		case slotExtract:
			v, err := b.extract(log, src, s.key, s.param.Type)
			if err != nil {
				return nil, err
			}

			in[i] = v

		case slotNamed:
			v, err := b.extract(log, src, s.key, s.param.inner)
			if err != nil {
				return nil, err
			}

			in[i] = s.param.named.withValue(v)

		case slotStruct:
			v, err := b.extractStruct(log, src, s.param)
			if err != nil {
				return nil, err
			}

			in[i] = v

		default:
			panic(fmt.Sprintf("unknown slot kind: %d", s.kind))
		}
	}

	return in, nil
}

// extract extracts a single value. The error from the extractor is not
// translated. A value that can't be used as t is a type mismatch.
func (b *Binding) extract(log hclog.Logger, src interface{}, key string, t reflect.Type) (reflect.Value, error) {
	log.Trace("extracting value", "key", key, "type", t)

	v, err := b.fn.extractor.Extract(src, key, t)
	if err != nil {
		return reflect.Value{}, err
	}

	return checkExtracted(key, t, v)
}

// extractStruct fills a Struct parameter field by field.
func (b *Binding) extractStruct(log hclog.Logger, src interface{}, p *param) (reflect.Value, error) {
	typ := p.Type
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}

	ptr := reflect.New(typ)
	for _, f := range p.fields {
		v, err := b.extract(log, src, f.Key, f.Type)
		if err != nil {
			return reflect.Value{}, err
		}

		ptr.Elem().Field(f.Index).Set(v)
	}

	if p.Type.Kind() == reflect.Ptr {
		return ptr, nil
	}

	return ptr.Elem(), nil
}

// supporter is implemented by extractors that can tell ahead of time
// whether they can produce a type. Registry implements it.
type supporter interface {
	Supports(srcType, t reflect.Type) bool
}

// checkSupport verifies the extractor can produce every extracted type
// from src so that nothing is extracted if any of them can't be.
func (b *Binding) checkSupport(src interface{}) error {
	sup, ok := b.fn.extractor.(supporter)
	if !ok {
		return nil
	}

	srcType := reflect.TypeOf(src)
	check := func(t reflect.Type) error {
		if !sup.Supports(srcType, t) {
			return &ErrNoExtractor{Source: srcType, Type: t}
		}

		return nil
	}

	for _, s := range b.slots {
		var err error
		switch s.kind {
		case slotExtract:
			err = check(s.param.Type)

		case slotNamed:
			err = check(s.param.inner)

		case slotStruct:
			for _, f := range s.param.fields {
				if err = check(f.Type); err != nil {
					break
				}
			}
		}
		if err != nil {
			return err
		}
	}

	return nil
}
