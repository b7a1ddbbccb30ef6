// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package argbinder

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConvertValue(t *testing.T) {
	type myInt int

	cases := []struct {
		Name     string
		Value    interface{}
		Target   interface{}
		Expected interface{}
		OK       bool
	}{
		{"assignable", "a", (*string)(nil), "a", true},
		{"interface", errors.New("x"), (*error)(nil), nil, true},
		{"nil pointer", nil, (**int)(nil), (*int)(nil), true},
		{"nil slice", nil, (*[]int)(nil), []int(nil), true},
		{"nil int", nil, (*int)(nil), nil, false},
		{"int to float", 10, (*float64)(nil), float64(10), true},
		{"float to int", 10.0, (*int)(nil), 10, true},
		{"fractional float to int", 2.5, (*int)(nil), nil, false},
		{"overflow", 300, (*uint8)(nil), nil, false},
		{"negative to unsigned", -1, (*uint)(nil), nil, false},
		{"large unsigned to signed", uint64(1 << 63), (*int64)(nil), nil, false},
		{"named numeric", 3, (*myInt)(nil), myInt(3), true},
		{"string to int", "1", (*int)(nil), nil, false},
		{"int to string", 65, (*string)(nil), nil, false},
	}

	for _, tt := range cases {
		t.Run(tt.Name, func(t *testing.T) {
			require := require.New(t)

			target := reflect.TypeOf(tt.Target).Elem()
			v, ok := convertValue(reflect.ValueOf(tt.Value), target)
			require.Equal(tt.OK, ok)
			if !ok {
				return
			}

			if tt.Expected != nil {
				require.Equal(tt.Expected, v.Interface())
			}
		})
	}
}
