package query

import (
	"bytes"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
	"github.com/vektah/gqlparser/v2/parser"
)

// Document is a built query: one root field with its arguments and
// resolved selection set.
type Document struct {
	Name      string
	Arguments ast.ArgumentList
	Selection ast.SelectionSet
}

func (d *Document) root() *ast.Field {
	return &ast.Field{
		Name:         d.Name,
		Alias:        d.Name,
		Arguments:    d.Arguments,
		SelectionSet: d.Selection,
	}
}

// QueryDocument wraps the root field in an anonymous query operation.
func (d *Document) QueryDocument() *ast.QueryDocument {
	return &ast.QueryDocument{
		Operations: ast.OperationList{
			&ast.OperationDefinition{
				Operation:    ast.Query,
				SelectionSet: ast.SelectionSet{d.root()},
			},
		},
	}
}

func (d *Document) String() string {
	var buf bytes.Buffer
	f := formatter.NewFormatter(&buf, formatter.WithIndent("  "))
	f.FormatQueryDocument(d.QueryDocument())

	return buf.String()
}

// Validate reparses the rendered document and reports syntax errors. No
// schema is involved.
func (d *Document) Validate() error {
	_, err := parser.ParseQuery(&ast.Source{Name: d.Name, Input: d.String()})
	return err
}

// Leaves returns the dotted path of every leaf field, in selection order.
func (d *Document) Leaves() []string {
	return leafPaths(d.Selection, "")
}

func leafPaths(set ast.SelectionSet, prefix string) []string {
	var paths []string
	for _, sel := range set {
		field, ok := sel.(*ast.Field)
		if !ok {
			continue
		}

		path := field.Name
		if prefix != "" {
			path = prefix + "." + field.Name
		}

		if len(field.SelectionSet) == 0 {
			paths = append(paths, path)
			continue
		}
		paths = append(paths, leafPaths(field.SelectionSet, path)...)
	}

	return paths
}
