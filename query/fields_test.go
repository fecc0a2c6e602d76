package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclaredFields(t *testing.T) {
	spec := Spec{Name: "articles", Fields: articleFields()}

	assert.Equal(t, map[string]string{
		"title": "title",
		"tags":  "tags",
	}, DeclaredFields(spec))
}

func TestDeclaredFieldsLeafFirst(t *testing.T) {
	spec := Spec{Name: "articles", Fields: []Field{{Name: "id"}, {Name: "title"}}}

	assert.Equal(t, map[string]string{"id": "id"}, DeclaredFields(spec))
}

func TestDeclaredFieldsEmpty(t *testing.T) {
	assert.Empty(t, DeclaredFields(Spec{Name: "articles"}))
}

func TestParseFields(t *testing.T) {
	fields, err := ParseFields([]interface{}{
		Object{{Key: "items", Value: []interface{}{
			"title",
			map[string]interface{}{"author": []interface{}{"name"}},
		}}},
		"total",
	})
	require.NoError(t, err)

	assert.Equal(t, []Field{
		{Name: "items", Children: []Field{
			{Name: "title"},
			{Name: "author", Children: []Field{{Name: "name"}}},
		}},
		{Name: "total"},
	}, fields)
}

func TestParseFieldsErrors(t *testing.T) {
	_, err := ParseFields([]interface{}{42})
	assert.EqualError(t, err, "fields[0]: unexpected int, want a field name or a mapping")

	_, err = ParseFields([]interface{}{Object{{Key: "items", Value: "title"}}})
	assert.EqualError(t, err, "fields[0].items: sub-selection must be a list, got string")

	_, err = ParseFields([]interface{}{Object{{Key: "items", Value: []interface{}{true}}}})
	assert.EqualError(t, err, "items.fields[0]: unexpected bool, want a field name or a mapping")
}
