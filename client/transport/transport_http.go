package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type HttpRequestOption func(req *http.Request)

// Header sets a fixed header on every request.
func Header(key, value string) HttpRequestOption {
	return func(req *http.Request) {
		req.Header.Set(key, value)
	}
}

// Authorization sets "Authorization: <scheme> <parameters>".
func Authorization(scheme, parameters string) HttpRequestOption {
	return Header("Authorization", strings.TrimSpace(scheme+" "+parameters))
}

type Http struct {
	URL string
	// Client defaults to http.DefaultClient
	Client         *http.Client
	RequestOptions []HttpRequestOption
}

func (h *Http) request(gqlreq Request) (*OperationResponse, error) {
	if h.Client == nil {
		h.Client = http.DefaultClient
	}

	bodyb, err := json.Marshal(NewOperationRequestFromRequest(gqlreq))
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(gqlreq.Context, "POST", h.URL, bytes.NewReader(bodyb))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	for _, ro := range h.RequestOptions {
		ro(req)
	}

	for k, vs := range gqlreq.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	res, err := h.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	var opres OperationResponse
	err = json.Unmarshal(data, &opres)
	if res.StatusCode >= 400 && (err != nil || len(opres.Errors) == 0) {
		return nil, fmt.Errorf("http %d: %s", res.StatusCode, truncate(data, 512))
	}
	if err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &opres, nil
}

func (h *Http) Request(req Request) Response {
	opres, err := h.request(req)
	if err != nil {
		return NewErrorResponse(err)
	}

	return NewSingleResponse(*opres)
}

func truncate(b []byte, n int) string {
	s := strings.TrimSpace(string(b))
	if len(s) > n {
		return s[:n] + "..."
	}

	return s
}
