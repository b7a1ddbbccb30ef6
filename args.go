// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package argbinder

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
)

// Key is a supplied argument that requests the parameter in its position
// be extracted from the source under this key. Any supplied argument that
// is not a Key is passed to the function as-is.
type Key string

// Arg is an option to NewFunc and NewMethod that configures how the
// function is bound and called.
type Arg func(*argBuilder) error

type argBuilder struct {
	logger    hclog.Logger
	extractor Extractor
	funcName  string
}

func newArgBuilder(opts ...Arg) (*argBuilder, error) {
	builder := &argBuilder{
		logger:    hclog.L(),
		extractor: DefaultRegistry,
	}

	var buildErr error
	for _, opt := range opts {
		if err := opt(builder); err != nil {
			buildErr = multierror.Append(buildErr, err)
		}
	}

	return builder, buildErr
}

// Logger specifies a logger to be used during operations with these
// arguments. If this isn't specified, the default hclog.L() logger is used.
func Logger(l hclog.Logger) Arg {
	return func(a *argBuilder) error {
		if l == nil {
			return fmt.Errorf("logger must not be nil")
		}

		a.logger = l
		return nil
	}
}

// WithExtractor sets the Extractor used to pull values out of the source.
// The default is DefaultRegistry.
func WithExtractor(e Extractor) Arg {
	return func(a *argBuilder) error {
		if e == nil {
			return fmt.Errorf("extractor must not be nil")
		}

		a.extractor = e
		return nil
	}
}

// FuncName sets the name of the function. This is used in logs and in
// errors. If this isn't set, the name is looked up from the function
// pointer.
func FuncName(n string) Arg {
	return func(a *argBuilder) error {
		a.funcName = n
		return nil
	}
}
