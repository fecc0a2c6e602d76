package query

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Field is one node of a selection tree. A field without children is a leaf.
type Field struct {
	Name     string
	Children []Field
}

func (f Field) IsLeaf() bool {
	return len(f.Children) == 0
}

// Member is a single key/value pair of an Object.
type Member struct {
	Key   string
	Value interface{}
}

// Object is a mapping that keeps the order its keys were declared in.
type Object []Member

func (o Object) Get(key string) (interface{}, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}

	return nil, false
}

func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}

		k, err := marshalCompact(m.Key)
		if err != nil {
			return nil, err
		}
		v, err := marshalCompact(m.Value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m.Key, err)
		}

		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// Spec is the declarative description of one root query.
type Spec struct {
	Name      string
	Fields    []Field
	Arguments Object
	Filters   interface{}
}

// ParseFields converts a generic selection tree into Fields. Entries are
// either field names or mappings of a field name to a list of child entries.
// Only the first key of a mapping is used.
func ParseFields(entries []interface{}) ([]Field, error) {
	fields := make([]Field, 0, len(entries))
	for i, entry := range entries {
		var (
			name     string
			children interface{}
		)

		switch e := entry.(type) {
		case string:
			fields = append(fields, Field{Name: e})
			continue
		case Object:
			if len(e) == 0 {
				return nil, fmt.Errorf("fields[%d]: empty mapping", i)
			}
			name, children = e[0].Key, e[0].Value
		case map[string]interface{}:
			if len(e) == 0 {
				return nil, fmt.Errorf("fields[%d]: empty mapping", i)
			}
			keys := make([]string, 0, len(e))
			for k := range e {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			name, children = keys[0], e[keys[0]]
		default:
			return nil, fmt.Errorf("fields[%d]: unexpected %T, want a field name or a mapping", i, entry)
		}

		list, ok := children.([]interface{})
		if !ok && children != nil {
			return nil, fmt.Errorf("fields[%d].%s: sub-selection must be a list, got %T", i, name, children)
		}

		sub, err := ParseFields(list)
		if err != nil {
			return nil, fmt.Errorf("%s.%w", name, err)
		}

		fields = append(fields, Field{Name: name, Children: sub})
	}

	return fields, nil
}

func marshalCompact(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
