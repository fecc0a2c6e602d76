package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/vektah/gqlparser/v2/gqlerror"
)

type Operation string

const (
	Query Operation = "query"
)

type OperationRequest struct {
	Query         string                 `json:"query,omitempty"`
	OperationName string                 `json:"operationName,omitempty"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
}

func NewOperationRequestFromRequest(req Request) OperationRequest {
	return OperationRequest{
		Query:         req.Query,
		OperationName: req.OperationName,
		Variables:     req.Variables,
	}
}

type OperationResponse struct {
	Data       json.RawMessage            `json:"data,omitempty"`
	Errors     gqlerror.List              `json:"errors,omitempty"`
	Extensions map[string]json.RawMessage `json:"extensions,omitempty"`
}

// UnmarshalData decodes the data envelope into t. Numbers decoded into an
// interface{} are json.Number.
func (r OperationResponse) UnmarshalData(t interface{}) error {
	if r.Data == nil {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(r.Data))
	dec.UseNumber()

	return dec.Decode(t)
}

type Request struct {
	Context   context.Context
	Operation Operation

	OperationName string
	Query         string
	Variables     map[string]interface{}

	// Header is added to the outgoing request by transports that have one
	Header http.Header
}

// Response yields the operation responses of a single request.
type Response interface {
	Next() bool
	Get() OperationResponse
	Close()
	Done() <-chan struct{}
	Err() error
}

type Transport interface {
	Request(req Request) Response
}
