package transport

import (
	"encoding/json"
	"sync"

	"github.com/vektah/gqlparser/v2/gqlerror"
)

// SingleResponse holds the one operation response of a request/response
// round trip.
type SingleResponse struct {
	or OperationResponse

	calledNext bool
	dm         sync.Mutex
	dc         chan struct{}
}

func NewSingleResponse(or OperationResponse) *SingleResponse {
	return &SingleResponse{or: or}
}

func (r *SingleResponse) Next() bool {
	defer func() {
		r.calledNext = true
	}()

	return !r.calledNext
}

func (r *SingleResponse) Get() OperationResponse {
	return r.or
}

func (r *SingleResponse) Close() {}

func (r *SingleResponse) Done() <-chan struct{} {
	r.dm.Lock()
	if r.dc == nil {
		r.dc = make(chan struct{})
		close(r.dc)
	}
	r.dm.Unlock()

	return r.dc
}

func (r *SingleResponse) Err() error {
	return nil
}

// NewMockOperationResponse builds a response whose data is v encoded as JSON.
func NewMockOperationResponse(v interface{}, errs gqlerror.List) OperationResponse {
	var data []byte
	if v != nil {
		var err error
		data, err = json.Marshal(v)
		if err != nil {
			panic(err)
		}
	}

	return OperationResponse{
		Data:   data,
		Errors: errs,
	}
}
