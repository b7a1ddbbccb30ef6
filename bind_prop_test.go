// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package argbinder

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"gopkg.in/yaml.v3"
)

type record struct {
	ID    int     `json:"id" yaml:"id"`
	Name  string  `json:"name" yaml:"name"`
	Score float64 `json:"score" yaml:"-"`
}

func TestCall_roundTrip(t *testing.T) {
	properties := gopter.NewProperties(nil)

	f, err := NewFunc(func(id Named[idKey, int], name string, score float64) record {
		return record{ID: id.Value(), Name: name, Score: score}
	})
	if err != nil {
		t.Fatal(err)
	}

	properties.Property("JSON values are passed unchanged", prop.ForAll(
		func(id int, name string, score float64) bool {
			want := record{ID: id, Name: name, Score: score}
			data, err := json.Marshal(want)
			if err != nil {
				return false
			}

			src, err := ParseJSON(data)
			if err != nil {
				return false
			}

			result := f.Call(src, Key("name"), Key("score"))
			return result.Err() == nil && result.Out(0) == want
		},
		gen.Int(),
		gen.AlphaString(),
		gen.Float64Range(-1e6, 1e6),
	))

	properties.Property("YAML values are passed unchanged", prop.ForAll(
		func(id int, name string) bool {
			data, err := yaml.Marshal(record{ID: id, Name: name})
			if err != nil {
				return false
			}

			src, err := ParseYAML(data)
			if err != nil {
				return false
			}

			result := f.Call(src, Key("name"), 1.5)
			return result.Err() == nil && result.Out(0) == record{ID: id, Name: name, Score: 1.5}
		},
		gen.Int(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

func TestBinding_idempotent(t *testing.T) {
	properties := gopter.NewProperties(nil)

	f, err := NewFunc(func(a, b int) int { return a - b })
	if err != nil {
		t.Fatal(err)
	}

	b, err := f.Bind(Key("a"), Key("b"))
	if err != nil {
		t.Fatal(err)
	}

	properties.Property("a binding gives the same result for the same source", prop.ForAll(
		func(a, c int) bool {
			src := map[string]interface{}{"a": a, "b": c}
			first := b.Call(src)
			second := b.Call(src)
			return first.Err() == nil && second.Err() == nil &&
				first.Out(0) == a-c && second.Out(0) == a-c
		},
		gen.Int(),
		gen.Int(),
	))

	properties.TestingRun(t)
}

func TestCall_missingKey(t *testing.T) {
	properties := gopter.NewProperties(nil)
	src := map[string]interface{}{"id": 1.0, "name": "Ivan"}

	properties.Property("a missing key is reported by name", prop.ForAll(
		func(key string) bool {
			called := false
			err := Invoke(src, func(id Named[idKey, int], v string) { called = true }, Key(key))

			var notFound *ErrKeyNotFound
			return !called && errors.As(err, &notFound) && notFound.Key == key
		},
		gen.Identifier().SuchThat(func(s string) bool { return s != "id" && s != "name" }),
	))

	properties.TestingRun(t)
}

func TestBind_arity(t *testing.T) {
	properties := gopter.NewProperties(nil)

	f, err := NewFunc(func(a int, id Named[idKey, int], b, c string) {})
	if err != nil {
		t.Fatal(err)
	}

	properties.Property("only the positional count binds", prop.ForAll(
		func(n int) bool {
			args := make([]interface{}, n)
			for i := range args {
				args[i] = Key("k")
			}

			_, err := f.Bind(args...)
			var arity *ErrArity
			return (n == 3) == (err == nil) && (n == 3 || errors.As(err, &arity))
		},
		gen.IntRange(0, 8),
	))

	properties.TestingRun(t)
}
