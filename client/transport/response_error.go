package transport

// ErrorResponse is a response that failed before producing any data.
type ErrorResponse struct {
	err error
	dc  chan struct{}
}

func NewErrorResponse(err error) *ErrorResponse {
	dc := make(chan struct{})
	close(dc)

	return &ErrorResponse{
		err: err,
		dc:  dc,
	}
}

func (r *ErrorResponse) Next() bool {
	return false
}

func (r *ErrorResponse) Get() OperationResponse {
	return OperationResponse{}
}

func (r *ErrorResponse) Close() {}

func (r *ErrorResponse) Done() <-chan struct{} {
	return r.dc
}

func (r *ErrorResponse) Err() error {
	return r.err
}
