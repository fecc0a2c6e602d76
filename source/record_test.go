package source

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	a := map[string]interface{}{"title": "A"}
	b := map[string]interface{}{"title": "B"}

	cases := []struct {
		name    string
		payload map[string]interface{}
		dataKey string
		want    []interface{}
	}{
		{
			name:    "falls back to the root field",
			payload: map[string]interface{}{"articles": []interface{}{a}},
			dataKey: "data",
			want:    []interface{}{a},
		},
		{
			name:    "uses the data key",
			payload: map[string]interface{}{"articles": map[string]interface{}{"items": []interface{}{a, b}}},
			dataKey: "items",
			want:    []interface{}{a, b},
		},
		{
			name:    "object without the data key is one record",
			payload: map[string]interface{}{"articles": map[string]interface{}{"items": []interface{}{a}}},
			dataKey: "data",
			want:    []interface{}{map[string]interface{}{"items": []interface{}{a}}},
		},
		{
			name:    "empty collection",
			payload: map[string]interface{}{"articles": []interface{}{}},
			dataKey: "data",
			want:    []interface{}{},
		},
		{
			name:    "null data key",
			payload: map[string]interface{}{"articles": map[string]interface{}{"items": nil}},
			dataKey: "items",
		},
		{
			name:    "absent root field",
			payload: map[string]interface{}{"posts": []interface{}{a}},
			dataKey: "data",
		},
		{
			name:    "null root field",
			payload: map[string]interface{}{"articles": nil},
			dataKey: "data",
		},
		{
			name:    "scalar root field",
			payload: map[string]interface{}{"articles": "nope"},
			dataKey: "data",
		},
		{
			name:    "nil payload",
			dataKey: "data",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Extract(c.payload, "articles", c.dataKey))
		})
	}
}

type article struct {
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
	Views int      `json:"views"`
}

func TestNormalize(t *testing.T) {
	rec, err := Normalize(article{Title: "A", Tags: []string{"x"}, Views: 3})
	require.NoError(t, err)

	assert.Equal(t, Record{
		"title": "A",
		"tags":  []interface{}{"x"},
		"views": json.Number("3"),
	}, rec)

	again, err := Normalize(rec)
	require.NoError(t, err)
	assert.Equal(t, rec, again)
}

func TestNormalizeNested(t *testing.T) {
	in := map[string]interface{}{
		"author": map[string]interface{}{"name": "Ada"},
		"tags":   []interface{}{"a", "b"},
		"draft":  false,
		"score":  nil,
	}

	rec, err := Normalize(in)
	require.NoError(t, err)
	assert.Equal(t, Record(in), rec)
}

func TestNormalizeRejectsNonObjects(t *testing.T) {
	for _, v := range []interface{}{nil, "title", 3.5, []interface{}{1}} {
		_, err := Normalize(v)
		assert.Error(t, err, "%#v", v)
	}
}

func TestNormalizeKeepsLargeIntegers(t *testing.T) {
	rec, err := Normalize(map[string]interface{}{"id": json.Number("9007199254740993")})
	require.NoError(t, err)
	assert.Equal(t, json.Number("9007199254740993"), rec["id"])
}
