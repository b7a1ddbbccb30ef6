// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package argbinder

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParseJSON(t *testing.T) {
	require := require.New(t)

	_, err := ParseJSON([]byte(`{"a":`))
	require.Error(err)
	require.Contains(err.Error(), "invalid JSON document: ")
	var syntaxErr *json.SyntaxError
	require.True(errors.As(err, &syntaxErr))

	doc, err := ParseJSON([]byte(`{"a": 1}`))
	require.NoError(err)
	require.Equal(json.RawMessage(`{"a": 1}`), doc)
}

func TestExtractJSON(t *testing.T) {
	raw := `{
		"id": 1,
		"name": "Ivan",
		"score": 99.5,
		"active": true,
		"tags": ["a", "b"],
		"nothing": null,
		"profile": {"id": 101, "username": "developer", "roles": ["admin"]}
	}`

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))

	var rawMap map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(raw), &rawMap))

	sources := map[string]interface{}{
		"map":      decoded,
		"raw map":  rawMap,
		"raw json": json.RawMessage(raw),
	}

	cases := []struct {
		Name     string
		Key      string
		Target   interface{}
		Expected interface{}
		Err      string
	}{
		{"int", "id", (*int)(nil), 1, ""},
		{"int as float", "id", (*float64)(nil), 1.0, ""},
		{"string", "name", (*string)(nil), "Ivan", ""},
		{"float", "score", (*float64)(nil), 99.5, ""},
		{"bool", "active", (*bool)(nil), true, ""},
		{"slice", "tags", (*[]string)(nil), []string{"a", "b"}, ""},
		{"pointer", "id", (**int)(nil), nil, ""},
		{"null pointer", "nothing", (**int)(nil), (*int)(nil), ""},
		{
			"struct",
			"profile",
			(*userProfile)(nil),
			userProfile{ID: 101, Username: "developer", Roles: []string{"admin"}},
			"",
		},
		{"null interface", "nothing", (*interface{})(nil), nil, ""},
		{"null slice", "nothing", (*[]string)(nil), []string(nil), ""},
		{"null as int", "nothing", (*int)(nil), nil, `type mismatch for key "nothing": expected int: value is null`},
		{"null as string", "nothing", (*string)(nil), nil, `type mismatch for key "nothing": expected string`},
		{"null as struct", "nothing", (*userProfile)(nil), nil, `type mismatch for key "nothing"`},
		{"missing", "nope", (*int)(nil), nil, `key "nope" not found`},
		{"string as int", "name", (*int)(nil), nil, `type mismatch for key "name": expected int`},
		{"float as int", "score", (*int)(nil), nil, `type mismatch for key "score"`},
		{"object as string", "profile", (*string)(nil), nil, `type mismatch for key "profile"`},
	}

	for srcName, src := range sources {
		for _, tt := range cases {
			t.Run(srcName+"/"+tt.Name, func(t *testing.T) {
				require := require.New(t)

				target := reflect.TypeOf(tt.Target).Elem()
				v, err := DefaultRegistry.Extract(src, tt.Key, target)
				if tt.Err != "" {
					require.Error(err)
					require.Contains(err.Error(), tt.Err)
					return
				}
				require.NoError(err)
				require.Equal(target, v.Type())

				if tt.Expected != nil {
					if diff := cmp.Diff(tt.Expected, v.Interface()); diff != "" {
						t.Fatalf("unexpected value (-want +got):\n%s", diff)
					}
				}
			})
		}
	}
}

func TestExtractJSON_notObject(t *testing.T) {
	cases := []string{`[1, 2]`, `"str"`, `null`, `12`}

	for _, raw := range cases {
		t.Run(raw, func(t *testing.T) {
			require := require.New(t)

			_, err := DefaultRegistry.Extract(json.RawMessage(raw), "a", reflect.TypeOf(0))
			var notFound *ErrKeyNotFound
			require.True(errors.As(err, &notFound))
			require.Equal("a", notFound.Key)
		})
	}
}

func TestExtractJSON_causePreserved(t *testing.T) {
	require := require.New(t)

	_, err := DefaultRegistry.Extract(json.RawMessage(`{"a": "x"}`), "a", reflect.TypeOf(0))
	var typeErr *json.UnmarshalTypeError
	require.True(errors.As(err, &typeErr))
}

func TestInvoke_jsonNull(t *testing.T) {
	raw := `{"id": null, "name": null}`

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))

	sources := map[string]interface{}{
		"map":      decoded,
		"raw json": json.RawMessage(raw),
	}

	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			called := false
			err := Invoke(src, func(id int, name string) { called = true }, Key("id"), Key("name"))
			var mismatch *ErrTypeMismatch
			require.True(errors.As(err, &mismatch))
			require.Equal("id", mismatch.Key)
			require.False(called)
		})
	}
}
