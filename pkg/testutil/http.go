// Package testutil provides common test utilities for handler and integration tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insurance/pkg/platform/httputil"
)

// NewRequest creates a simple HTTP request without a body.
func NewRequest(t *testing.T, method, path string) *http.Request {
	t.Helper()
	return httptest.NewRequest(method, path, nil)
}

// DoRequest executes a request against a handler and returns the recorder.
func DoRequest(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// UnmarshalResponse unmarshals the response body into the target type.
func UnmarshalResponse[T any](t *testing.T, rr *httptest.ResponseRecorder) *T {
	t.Helper()
	var result T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result), "failed to unmarshal response")
	return &result
}

// ErrorBody decodes both error envelopes. Status and Error are zero on a 500.
type ErrorBody struct {
	Timestamp string `json:"timestamp"`
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
}

// UnmarshalErrorBody decodes an error envelope.
func UnmarshalErrorBody(t *testing.T, rr *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var body ErrorBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), "failed to unmarshal error response")
	return body
}

// AssertStatus asserts the response status code matches expected.
func AssertStatus(t *testing.T, rr *httptest.ResponseRecorder, expected int) {
	t.Helper()
	assert.Equal(t, expected, rr.Code, "unexpected status code")
}

// AssertStatusOK asserts the response status is 200 OK.
func AssertStatusOK(t *testing.T, rr *httptest.ResponseRecorder) {
	t.Helper()
	AssertStatus(t, rr, http.StatusOK)
}

// AssertNotFound asserts a 404 envelope carrying message and returns it for
// further checks.
func AssertNotFound(t *testing.T, rr *httptest.ResponseRecorder, message string) ErrorBody {
	t.Helper()
	AssertStatus(t, rr, http.StatusNotFound)
	body := UnmarshalErrorBody(t, rr)
	assert.Equal(t, http.StatusNotFound, body.Status)
	assert.Equal(t, http.StatusText(http.StatusNotFound), body.Error)
	assert.Equal(t, message, body.Message)
	assert.NotEmpty(t, body.Timestamp)
	return body
}

// AssertInternalError asserts a generic 500 envelope with no status or error fields.
func AssertInternalError(t *testing.T, rr *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	AssertStatus(t, rr, http.StatusInternalServerError)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &raw), "failed to unmarshal error response")
	assert.NotContains(t, raw, "status")
	assert.NotContains(t, raw, "error")
	body := UnmarshalErrorBody(t, rr)
	assert.Equal(t, httputil.InternalErrorMessage, body.Message)
	assert.NotEmpty(t, body.Timestamp)
	return body
}
