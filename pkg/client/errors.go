package client

import (
	"fmt"
	"net/http"
	"strings"
)

// RequestError is returned when the node is unreachable or answers with a status other than 200 OK.
type RequestError struct {
	Err        error
	StatusCode int // zero when no reply was received
	Body       string
}

func transportError(err error) *RequestError {
	return &RequestError{Err: err}
}

func statusError(code int, body []byte) *RequestError {
	return &RequestError{
		Err:        fmt.Errorf("unexpected status %d %s", code, http.StatusText(code)),
		StatusCode: code,
		Body:       strings.TrimSpace(string(body)),
	}
}

// NotFound reports whether the node answered 404, the reply to a lookup of something it does not know yet.
func (e *RequestError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

func (e *RequestError) Error() string {
	if e.Body == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + ": " + e.Body
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// ParseError is returned when a 200 reply does not decode into the expected value.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "malformed node reply: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
