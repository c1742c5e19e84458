// response/error_test.go
package response

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/deploymenttheory/go-graph-explorer/mocklogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func errorResponse(status int, contentType string) *http.Response {
	u, _ := url.Parse("https://graph.microsoft.com/v1.0/users/unknown")
	resp := &http.Response{
		StatusCode: status,
		Header:     http.Header{},
		Request:    &http.Request{Method: http.MethodGet, URL: u},
	}
	resp.Header.Set("Content-Type", contentType)
	return resp
}

func TestHandleAPIErrorResponseGraphJSON(t *testing.T) {
	mockLog := mocklogger.NewMockLogger()
	mockLog.On("Warn", "Graph returned an error response", mock.Anything).Once()

	body := []byte(`{"error":{"code":"Request_ResourceNotFound","message":"Resource 'unknown' does not exist.",` +
		`"innerError":{"date":"2024-05-01T10:00:00","request-id":"req-1","client-request-id":"client-1"}}}`)

	apiErr := HandleAPIErrorResponse(errorResponse(http.StatusNotFound, "application/json"), body, mockLog)

	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, http.MethodGet, apiErr.Method)
	assert.Equal(t, "https://graph.microsoft.com/v1.0/users/unknown", apiErr.URL)
	assert.Equal(t, "Request_ResourceNotFound", apiErr.Code)
	assert.Equal(t, "Resource 'unknown' does not exist.", apiErr.Message)
	assert.Equal(t, "req-1", apiErr.RequestID)
	assert.Equal(t, "client-1", apiErr.ClientRequestID)
	assert.Contains(t, apiErr.Error(), "Code=Request_ResourceNotFound")
	mockLog.AssertExpectations(t)
}

func TestHandleAPIErrorResponseBodies(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		wantMessage string
		wantCode    string
	}{
		{
			name:        "xml",
			contentType: "application/xml",
			body:        `<?xml version="1.0"?><error><code>BadRequest</code><message>Invalid filter</message></error>`,
			wantMessage: "BadRequest; Invalid filter",
			wantCode:    "BadRequest",
		},
		{
			name:        "html",
			contentType: "text/html; charset=utf-8",
			body:        `<html><body><p>Service unavailable, see <a href="https://status.example">status</a></p></body></html>`,
			wantMessage: "Service unavailable, see [Link: https://status.example] status",
		},
		{
			name:        "text",
			contentType: "text/plain",
			body:        "gateway timeout",
			wantMessage: "gateway timeout",
		},
		{
			name:        "unknown content type",
			contentType: "application/pdf",
			body:        "%PDF",
			wantMessage: "Unknown content type error",
		},
		{
			name:        "json without graph envelope",
			contentType: "application/json",
			body:        `{"unexpected":true}`,
			wantMessage: "An unknown error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := HandleAPIErrorResponse(errorResponse(http.StatusBadRequest, tt.contentType), []byte(tt.body), nil)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.Equal(t, tt.wantCode, apiErr.Code)
			assert.Equal(t, tt.body, apiErr.RawResponse)
		})
	}
}

func TestAPIErrorFallsBackToStatusText(t *testing.T) {
	apiErr := &APIError{StatusCode: http.StatusForbidden}
	assert.Equal(t, "API Error: StatusCode=403, Message=Forbidden", apiErr.Error())
}
