// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-argbinder"
)

// handler is a function that can be run from the command line.
type handler struct {
	Short string

	// Keys are the default keys if none are given on the command line.
	Keys []string

	// New builds the function. Recv is the receiver if it is a method.
	New  func(opts ...argbinder.Arg) (*argbinder.Func, error)
	Recv func() interface{}

	// Extra are arguments passed through after the keys.
	Extra []interface{}
}

type idKey struct{}

func (idKey) Key() string { return "id" }

type userProfile struct {
	ID       int      `json:"id" yaml:"id"`
	Username string   `json:"username" yaml:"username"`
	Roles    []string `json:"roles" yaml:"roles"`
}

type calculator struct {
	total float64
}

func (c *calculator) CalculateSum(a, b int, factor float64) float64 {
	c.total = float64(a+b) * factor
	return c.total
}

type processor struct{}

func (processor) ProcessMessage(msg string, repeat int) string {
	return strings.Repeat(msg, repeat)
}

func greet(id argbinder.Named[idKey, int], name string) string {
	return fmt.Sprintf("ID: %d, Name: %s", id.Value(), name)
}

func displayProfile(p userProfile, active bool, status string) string {
	return fmt.Sprintf("ID: %d, Username: %s, Roles: %s, Active: %t, Status: %s",
		p.ID, p.Username, strings.Join(p.Roles, " "), active, status)
}

var handlers = map[string]*handler{
	"greet": {
		Short: "greet a user by id and name",
		Keys:  []string{"name"},
		New: func(opts ...argbinder.Arg) (*argbinder.Func, error) {
			return argbinder.NewFunc(greet, opts...)
		},
	},

	"sum": {
		Short: "add two numbers and scale the result",
		Keys:  []string{"val_a", "val_b", "multiplier"},
		New: func(opts ...argbinder.Arg) (*argbinder.Func, error) {
			return argbinder.NewMethod((*calculator).CalculateSum, opts...)
		},
		Recv: func() interface{} { return &calculator{} },
	},

	"message": {
		Short: "repeat a message",
		Keys:  []string{"message_text", "repeat"},
		New: func(opts ...argbinder.Arg) (*argbinder.Func, error) {
			return argbinder.NewMethod(processor.ProcessMessage, opts...)
		},
		Recv: func() interface{} { return processor{} },
	},

	"profile": {
		Short: "display a user profile",
		Keys:  []string{"user_profile_data", "is_active"},
		New: func(opts ...argbinder.Arg) (*argbinder.Func, error) {
			return argbinder.NewFunc(displayProfile, opts...)
		},
		Extra: []interface{}{"ONLINE"},
	},
}

// handlerNames returns the sorted handler names.
func handlerNames() []string {
	result := make([]string, 0, len(handlers))
	for name := range handlers {
		result = append(result, name)
	}
	sort.Strings(result)

	return result
}

// args returns the arguments to bind for the given keys.
func (h *handler) args(keys []string) []interface{} {
	if len(keys) == 0 {
		keys = h.Keys
	}

	result := make([]interface{}, 0, len(keys)+len(h.Extra))
	for _, k := range keys {
		result = append(result, argbinder.Key(k))
	}

	return append(result, h.Extra...)
}
