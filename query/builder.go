package query

import (
	"github.com/vektah/gqlparser/v2/ast"
)

type options struct {
	encoding Encoding
}

type Option func(o *options)

func WithEncoding(e Encoding) Option {
	return func(o *options) {
		o.encoding = e
	}
}

// Build turns a declarative selection into a Document. Only the first key
// of arguments is used. filters is sent as is, as a second argument named
// "filters", and only together with arguments.
func Build(name string, fields []Field, arguments Object, filters interface{}, opts ...Option) *Document {
	o := options{encoding: EncodingLegacy}
	for _, opt := range opts {
		opt(&o)
	}

	doc := &Document{
		Name:      name,
		Selection: selectionSet(fields),
	}

	if len(arguments) == 0 {
		return doc
	}

	primary := arguments[0]
	doc.Arguments = ast.ArgumentList{
		{Name: primary.Key, Value: o.encoding.encode(primary.Value)},
	}

	if filters != nil {
		doc.Arguments = append(doc.Arguments, &ast.Argument{Name: "filters", Value: Value(filters)})
	}

	return doc
}

func BuildSpec(spec Spec, opts ...Option) *Document {
	return Build(spec.Name, spec.Fields, spec.Arguments, spec.Filters, opts...)
}

// selectionSet resolves children before their parent.
func selectionSet(fields []Field) ast.SelectionSet {
	set := make(ast.SelectionSet, 0, len(fields))
	for _, f := range fields {
		var children ast.SelectionSet
		if !f.IsLeaf() {
			children = selectionSet(f.Children)
		}

		set = append(set, &ast.Field{
			Name:         f.Name,
			Alias:        f.Name,
			SelectionSet: children,
		})
	}

	return set
}
