// Package gqltest serves a small in-process GraphQL API for tests.
package gqltest

import (
	"errors"
	"strings"

	"github.com/graphql-go/graphql"
)

// Articles is the fixture data every server answers from.
func Articles() []map[string]interface{} {
	return []map[string]interface{}{
		{
			"id":     "1",
			"title":  "Hello GraphQL",
			"status": "PUBLISHED",
			"author": map[string]interface{}{"name": "Ada", "email": "ada@example.com"},
			"tags":   []string{"graphql", "intro"},
		},
		{
			"id":     "2",
			"title":  "Draft notes",
			"status": "DRAFT",
			"author": map[string]interface{}{"name": "Grace", "email": "grace@example.com"},
			"tags":   []string{},
		},
		{
			"id":     "3",
			"title":  "Migrations at scale",
			"status": "PUBLISHED",
			"author": map[string]interface{}{"name": "Ada", "email": "ada@example.com"},
			"tags":   []string{"etl"},
		},
	}
}

var ErrBackend = errors.New("backend unavailable")

// NewSchema builds:
//
//	enum ArticleStatus { PUBLISHED DRAFT }
//	input ArticleFilter { status: ArticleStatus, title: String }
//	input PageInput { limit: Int, offset: Int }
//	type Query {
//	  articles(filter: ArticleFilter, filters: PageInput): ArticleConnection
//	  posts(filter: ArticleFilter): [Article]
//	  article(id: ID!): Article
//	  broken: String
//	}
func NewSchema() (graphql.Schema, error) {
	status := graphql.NewEnum(graphql.EnumConfig{
		Name: "ArticleStatus",
		Values: graphql.EnumValueConfigMap{
			"PUBLISHED": &graphql.EnumValueConfig{Value: "PUBLISHED"},
			"DRAFT":     &graphql.EnumValueConfig{Value: "DRAFT"},
		},
	})

	filter := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ArticleFilter",
		Fields: graphql.InputObjectConfigFieldMap{
			"status": &graphql.InputObjectFieldConfig{Type: status},
			"title":  &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	page := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "PageInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"limit":  &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"offset": &graphql.InputObjectFieldConfig{Type: graphql.Int},
		},
	})

	author := graphql.NewObject(graphql.ObjectConfig{
		Name: "Author",
		Fields: graphql.Fields{
			"name":  &graphql.Field{Type: graphql.String},
			"email": &graphql.Field{Type: graphql.String},
		},
	})

	article := graphql.NewObject(graphql.ObjectConfig{
		Name: "Article",
		Fields: graphql.Fields{
			"id":     &graphql.Field{Type: graphql.ID},
			"title":  &graphql.Field{Type: graphql.String},
			"status": &graphql.Field{Type: status},
			"author": &graphql.Field{Type: author},
			"tags":   &graphql.Field{Type: graphql.NewList(graphql.String)},
		},
	})

	connection := graphql.NewObject(graphql.ObjectConfig{
		Name: "ArticleConnection",
		Fields: graphql.Fields{
			"items": &graphql.Field{Type: graphql.NewList(article)},
			"total": &graphql.Field{Type: graphql.Int},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"articles": &graphql.Field{
				Type: connection,
				Args: graphql.FieldConfigArgument{
					"filter":  &graphql.ArgumentConfig{Type: filter},
					"filters": &graphql.ArgumentConfig{Type: page},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					items := paginate(filterArticles(p.Args["filter"]), p.Args["filters"])
					return map[string]interface{}{
						"items": items,
						"total": len(items),
					}, nil
				},
			},
			"posts": &graphql.Field{
				Type: graphql.NewList(article),
				Args: graphql.FieldConfigArgument{
					"filter": &graphql.ArgumentConfig{Type: filter},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return filterArticles(p.Args["filter"]), nil
				},
			},
			"article": &graphql.Field{
				Type: article,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					for _, a := range Articles() {
						if a["id"] == id {
							return a, nil
						}
					}
					return nil, nil
				},
			},
			"broken": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return nil, ErrBackend
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: queryType})
}

func filterArticles(arg interface{}) []map[string]interface{} {
	f, _ := arg.(map[string]interface{})

	out := make([]map[string]interface{}, 0)
	for _, a := range Articles() {
		if status, ok := f["status"].(string); ok && a["status"] != status {
			continue
		}
		if title, ok := f["title"].(string); ok && !strings.Contains(a["title"].(string), title) {
			continue
		}
		out = append(out, a)
	}

	return out
}

func paginate(items []map[string]interface{}, arg interface{}) []map[string]interface{} {
	page, _ := arg.(map[string]interface{})

	if offset, ok := page["offset"].(int); ok {
		if offset >= len(items) {
			return items[:0]
		}
		items = items[offset:]
	}
	if limit, ok := page["limit"].(int); ok && limit < len(items) {
		items = items[:limit]
	}

	return items
}
