// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package argbinder

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsStruct(t *testing.T) {
	cases := []struct {
		Name     string
		Test     interface{}
		Expected bool
	}{
		{
			"primitive",
			7,
			false,
		},

		{
			"plain struct",
			struct{ A int }{},
			false,
		},

		{
			"struct embeds",
			struct {
				Struct
			}{},
			true,
		},

		{
			"pointer to struct embeds",
			&struct {
				Struct
			}{},
			true,
		},

		{
			"named value",
			Named[idKey, int]{},
			false,
		},
	}

	for _, tt := range cases {
		t.Run(tt.Name, func(t *testing.T) {
			require := require.New(t)

			actual := isStruct(reflect.TypeOf(tt.Test))
			require.Equal(tt.Expected, actual)
		})
	}
}

func TestNewStructFields(t *testing.T) {
	cases := []struct {
		Name     string
		Test     interface{}
		Expected []string
		Err      string
	}{
		{
			"field names",
			struct {
				Struct

				A, B int
			}{},
			[]string{"A int", "B int"},
			"",
		},

		{
			"tags",
			struct {
				Struct

				A int    `argbinder:"a"`
				B string `argbinder:"-"`
				C string `argbinder:",opt"`
				d int
			}{},
			[]string{"a int", "C string"},
			"",
		},

		{
			"duplicate key",
			struct {
				Struct

				A int `argbinder:"x"`
				B int `argbinder:"x"`
			}{},
			nil,
			`key "x" is bound more than once`,
		},

		{
			"not a struct",
			12,
			nil,
			"struct expected",
		},
	}

	for _, tt := range cases {
		t.Run(tt.Name, func(t *testing.T) {
			require := require.New(t)

			fields, err := newStructFields(reflect.TypeOf(tt.Test))
			if tt.Err != "" {
				require.Error(err)
				require.Contains(err.Error(), tt.Err)
				return
			}
			require.NoError(err)

			var actual []string
			for _, f := range fields {
				actual = append(actual, f.String())
			}
			require.Equal(tt.Expected, actual)
		})
	}
}
