package source

import (
	"fmt"

	"github.com/itchyny/gojq"
)

// Path is a compiled jq expression that selects records from a payload.
type Path struct {
	expr string
	code *gojq.Code
}

func CompilePath(expr string) (*Path, error) {
	q, err := gojq.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}

	code, err := gojq.Compile(q)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}

	return &Path{expr: expr, code: code}, nil
}

func (p *Path) String() string {
	return p.expr
}

// Collect runs the expression against payload. Every array it yields
// contributes its elements, nulls are dropped, other values are kept as is.
func (p *Path) Collect(payload map[string]interface{}) ([]interface{}, error) {
	var out []interface{}

	iter := p.code.Run(payload)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}

		switch v := v.(type) {
		case error:
			return nil, fmt.Errorf("record_path %s: %w", p.expr, v)
		case nil:
		case []interface{}:
			out = append(out, v...)
		default:
			out = append(out, v)
		}
	}

	return out, nil
}
