package query

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegacyLiteral(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		want string
	}{
		{"enum object", Object{{Key: "status", Value: "PUBLISHED"}}, "{status:PUBLISHED}"},
		{"keeps key order", Object{{Key: "z", Value: 1}, {Key: "a", Value: true}}, "{z:1,a:true}"},
		{"nested", Object{{Key: "where", Value: Object{{Key: "id", Value: []interface{}{1, 2}}}}}, "{where:{id:[1,2]}}"},
		{"string", "PUBLISHED", "PUBLISHED"},
		{"single quotes", Object{{Key: "q", Value: "it's"}}, "{q:its}"},
		{"no html escaping", Object{{Key: "q", Value: "a<b"}}, "{q:a<b}"},
		{"null", nil, "null"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, LegacyLiteral(tc.in))
		})
	}
}

func TestLiteral(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		want string
	}{
		{"enum", "PUBLISHED", "PUBLISHED"},
		{"string", "Published", `"Published"`},
		{"int", 3, "3"},
		{"integral float", float64(10), "10"},
		{"float", 1.5, "1.5"},
		{"json number", json.Number("42"), "42"},
		{"bool", false, "false"},
		{"null", nil, "null"},
		{"list", []interface{}{"A", "b", 1}, `[A,"b",1]`},
		{"object", Object{{Key: "b", Value: 1}, {Key: "a", Value: "x y"}}, `{b:1,a:"x y"}`},
		{"map sorted", map[string]interface{}{"b": 1, "a": 2}, "{a:2,b:1}"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Literal(tc.in).String())
		})
	}
}

func TestValue(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		want string
	}{
		{"upper case string", "PUBLISHED", `"PUBLISHED"`},
		{"string", "Go tips", `"Go tips"`},
		{"int", 2, "2"},
		{"large json number", json.Number("9007199254740993"), "9007199254740993"},
		{"list", []interface{}{"A", 1}, `["A",1]`},
		{"object", Object{{Key: "status", Value: "DRAFT"}}, `{status:"DRAFT"}`},
		{"map", map[string]interface{}{"b": "X", "a": true}, `{a:true,b:"X"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Value(tc.in).String())
		})
	}
}

func TestParseEncoding(t *testing.T) {
	e, err := ParseEncoding("")
	require.NoError(t, err)
	assert.Equal(t, EncodingLegacy, e)

	e, err = ParseEncoding("Strict")
	require.NoError(t, err)
	assert.Equal(t, EncodingStrict, e)
	assert.Equal(t, "strict", e.String())

	_, err = ParseEncoding("json")
	assert.Error(t, err)
}

func TestObjectMarshalJSON(t *testing.T) {
	b, err := json.Marshal(Object{{Key: "b", Value: Object{{Key: "y", Value: 1}}}, {Key: "a", Value: nil}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"b":{"y":1},"a":null}`, string(b))
	assert.Equal(t, `{"b":{"y":1},"a":null}`, string(b))
}
