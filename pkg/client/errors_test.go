package client

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      *RequestError
		msg      string
		notFound bool
	}{
		{"transport", transportError(errors.New("connection refused")), "connection refused", false},
		{"status without body", statusError(http.StatusBadGateway, nil), "unexpected status 502 Bad Gateway", false},
		{"status with body", statusError(http.StatusNotFound, []byte(" {\"error\":311}\n")),
			"unexpected status 404 Not Found: {\"error\":311}", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.EqualError(t, tc.err, tc.msg)
			assert.Equal(t, tc.notFound, tc.err.NotFound())
		})
	}
}

func TestParseErrorMessage(t *testing.T) {
	inner := errors.New("unexpected EOF")
	err := error(&ParseError{Err: inner})
	assert.EqualError(t, err, "malformed node reply: unexpected EOF")
	assert.ErrorIs(t, err, inner)
}
