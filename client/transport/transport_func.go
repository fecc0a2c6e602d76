package transport

import "fmt"

type Func func(Request) (Response, error)

func (f Func) Request(req Request) Response {
	res, err := f(req)
	if err != nil {
		return NewErrorResponse(err)
	}

	return res
}

// Mock answers requests by exact query text.
type Mock map[string]Func

func (m Mock) Request(req Request) Response {
	f, ok := m[req.Query]
	if !ok {
		return NewErrorResponse(fmt.Errorf("query not mocked: %q", req.Query))
	}

	return f.Request(req)
}
