package query

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
)

// Encoding selects how the primary argument value is written into the query.
type Encoding int

const (
	// EncodingLegacy writes the value as compact JSON with every quote
	// character removed. String leaves containing quotes or spaces are
	// corrupted by this; it is kept for configurations written against it.
	EncodingLegacy Encoding = iota
	// EncodingStrict writes a GraphQL input literal: bare object keys,
	// UPPER_CASE strings as enum values, all other strings quoted.
	EncodingStrict
)

func (e Encoding) String() string {
	switch e {
	case EncodingLegacy:
		return "legacy"
	case EncodingStrict:
		return "strict"
	}

	return fmt.Sprintf("Encoding(%d)", int(e))
}

func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(s) {
	case "", "legacy":
		return EncodingLegacy, nil
	case "strict":
		return EncodingStrict, nil
	}

	return EncodingLegacy, fmt.Errorf("unknown argument encoding %q", s)
}

var enumValue = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

var quoteStripper = strings.NewReplacer(`"`, "", `'`, "")

func (e Encoding) encode(v interface{}) *ast.Value {
	if e == EncodingStrict {
		return Literal(v)
	}

	return &ast.Value{Kind: ast.EnumValue, Raw: LegacyLiteral(v)}
}

// LegacyLiteral renders v as JSON and strips all quote characters.
func LegacyLiteral(v interface{}) string {
	b, err := marshalCompact(v)
	if err != nil {
		return quoteStripper.Replace(fmt.Sprint(v))
	}

	return quoteStripper.Replace(string(b))
}

// Literal converts a configuration value into a GraphQL input value.
// Strings shaped like enum values become enums.
func Literal(v interface{}) *ast.Value {
	return literal(v, true)
}

// Value converts a configuration value into a GraphQL input value without
// guessing enums: every string is quoted.
func Value(v interface{}) *ast.Value {
	return literal(v, false)
}

func literal(v interface{}, enums bool) *ast.Value {
	switch v := v.(type) {
	case nil:
		return &ast.Value{Kind: ast.NullValue, Raw: "null"}
	case *ast.Value:
		return v
	case bool:
		return &ast.Value{Kind: ast.BooleanValue, Raw: strconv.FormatBool(v)}
	case string:
		if enums && enumValue.MatchString(v) {
			return &ast.Value{Kind: ast.EnumValue, Raw: v}
		}
		return &ast.Value{Kind: ast.StringValue, Raw: v}
	case int:
		return &ast.Value{Kind: ast.IntValue, Raw: strconv.Itoa(v)}
	case int64:
		return &ast.Value{Kind: ast.IntValue, Raw: strconv.FormatInt(v, 10)}
	case uint64:
		return &ast.Value{Kind: ast.IntValue, Raw: strconv.FormatUint(v, 10)}
	case float64:
		return floatLiteral(v)
	case json.Number:
		if _, err := v.Int64(); err == nil {
			return &ast.Value{Kind: ast.IntValue, Raw: v.String()}
		}
		return &ast.Value{Kind: ast.FloatValue, Raw: v.String()}
	case Object:
		val := &ast.Value{Kind: ast.ObjectValue}
		for _, m := range v {
			val.Children = append(val.Children, &ast.ChildValue{Name: m.Key, Value: literal(m.Value, enums)})
		}
		return val
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		val := &ast.Value{Kind: ast.ObjectValue}
		for _, k := range keys {
			val.Children = append(val.Children, &ast.ChildValue{Name: k, Value: literal(v[k], enums)})
		}
		return val
	case []interface{}:
		val := &ast.Value{Kind: ast.ListValue}
		for _, elem := range v {
			val.Children = append(val.Children, &ast.ChildValue{Value: literal(elem, enums)})
		}
		return val
	case []string:
		val := &ast.Value{Kind: ast.ListValue}
		for _, elem := range v {
			val.Children = append(val.Children, &ast.ChildValue{Value: literal(elem, enums)})
		}
		return val
	}

	return &ast.Value{Kind: ast.StringValue, Raw: fmt.Sprint(v)}
}

func floatLiteral(f float64) *ast.Value {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return &ast.Value{Kind: ast.IntValue, Raw: strconv.FormatInt(int64(f), 10)}
	}

	return &ast.Value{Kind: ast.FloatValue, Raw: strconv.FormatFloat(f, 'g', -1, 64)}
}
