package client

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/infiotinc/gqlsource/client/transport"
	"github.com/infiotinc/gqlsource/query"
)

// RequestIDHeader carries the id of one execution to the endpoint.
const RequestIDHeader = "X-Request-Id"

type Client struct {
	Transport transport.Transport
	Logger    *slog.Logger
}

// NewHttp returns a client posting to url through httpClient.
func NewHttp(url string, httpClient *http.Client, opts ...transport.HttpRequestOption) *Client {
	return &Client{
		Transport: &transport.Http{
			URL:            url,
			Client:         httpClient,
			RequestOptions: opts,
		},
	}
}

func (c *Client) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}

	return slog.Default()
}

func (c *Client) do(ctx context.Context, operation transport.Operation, query string, header http.Header, t interface{}) error {
	res := c.Transport.Request(transport.Request{
		Context:   ctx,
		Operation: operation,
		Query:     query,
		Header:    header,
	})
	defer res.Close()

	go func() {
		select {
		case <-ctx.Done():
			res.Close()
		case <-res.Done():
		}
	}()

	ok := res.Next()
	if !ok {
		if err := res.Err(); err != nil {
			return err
		}

		return fmt.Errorf("no response")
	}

	opres := res.Get()
	err := opres.UnmarshalData(t)

	if len(opres.Errors) > 0 {
		return opres.Errors
	}

	return err
}

// Execute runs a built document and returns the decoded data envelope.
// GraphQL errors are returned as a gqlerror.List.
func (c *Client) Execute(ctx context.Context, doc *query.Document) (map[string]interface{}, error) {
	id := uuid.NewString()
	log := c.logger().With("query", doc.Name, "request_id", id)

	q := doc.String()
	log.Debug("executing query", "document", q)

	var data map[string]interface{}
	err := c.do(ctx, transport.Query, q, http.Header{RequestIDHeader: []string{id}}, &data)
	if err != nil {
		log.Debug("query failed", "error", err)
		return nil, err
	}

	log.Debug("query succeeded", "root_fields", len(data))

	return data, nil
}
