// headers/headers_test.go
package headers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/deploymenttheory/go-graph-explorer/logger"
	"github.com/deploymenttheory/go-graph-explorer/mocklogger"
	"github.com/deploymenttheory/go-graph-explorer/msgraph"
	"github.com/deploymenttheory/go-graph-explorer/version"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const usersEndpoint = "https://graph.microsoft.com/v1.0/users"

func TestSetAuthorization(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, usersEndpoint, nil)
	headerHandler := NewHeaderHandler(req, mocklogger.NewMockLogger(), nil, "")

	headerHandler.SetAuthorization("test-token")
	assert.Equal(t, "Bearer test-token", req.Header.Get("Authorization"))

	headerHandler.SetAuthorization("Bearer already-prefixed")
	assert.Equal(t, "Bearer already-prefixed", req.Header.Get("Authorization"), "prefix should not be doubled")
}

func TestSetContentType(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, usersEndpoint, nil)
	headerHandler := NewHeaderHandler(req, mocklogger.NewMockLogger(), nil, "")
	headerHandler.SetContentType("application/json")

	assert.Equal(t, "application/json", req.Header.Get("Content-Type"), "Content-Type header should be correctly set")
}

func TestSetRequestHeaders(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		wantAuth string
	}{
		{"with token", "abc", "Bearer abc"},
		{"anonymous", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, usersEndpoint, nil)
			headerHandler := NewHeaderHandler(req, mocklogger.NewMockLogger(), &msgraph.GraphAPIHandler{}, tt.token)
			headerHandler.SetRequestHeaders(usersEndpoint)

			assert.Equal(t, tt.wantAuth, req.Header.Get("Authorization"))
			assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
			assert.Equal(t, version.UserAgent(), req.Header.Get("User-Agent"))
			assert.NotEmpty(t, req.Header.Get("Accept"))
		})
	}
}

func TestSetCustomHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, usersEndpoint, nil)
	headerHandler := NewHeaderHandler(req, mocklogger.NewMockLogger(), &msgraph.GraphAPIHandler{}, "abc")
	headerHandler.SetRequestHeaders(usersEndpoint)

	headerHandler.SetCustomHeaders(map[string]string{
		"ConsistencyLevel": "eventual",
		"Content-Type":     "text/plain",
		"authorization":    "Bearer stolen",
	})

	assert.Equal(t, "eventual", req.Header.Get("ConsistencyLevel"))
	assert.Equal(t, "text/plain", req.Header.Get("Content-Type"))
	assert.Equal(t, "Bearer abc", req.Header.Get("Authorization"))
}

func TestSetClientRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, usersEndpoint, nil)
	headerHandler := NewHeaderHandler(req, mocklogger.NewMockLogger(), nil, "")

	id := headerHandler.SetClientRequestID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, req.Header.Get(ClientRequestIDHeader))
}

func TestLogHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, usersEndpoint, nil)
	req.Header.Set("Authorization", "Bearer secret")
	mockLog := mocklogger.NewMockLogger()
	mockLog.SetLevel(logger.LogLevelDebug)
	mockLog.On("Debug", "HTTP Request Headers", mock.MatchedBy(func(fields []zap.Field) bool {
		return len(fields) == 1 && fields[0].String == "Authorization: REDACTED"
	})).Once()

	headerHandler := NewHeaderHandler(req, mockLog, nil, "")
	headerHandler.LogHeaders(true)

	mockLog.AssertExpectations(t)
}

func TestLogHeadersAboveDebug(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, usersEndpoint, nil)
	mockLog := mocklogger.NewMockLogger()
	mockLog.SetLevel(logger.LogLevelInfo)

	NewHeaderHandler(req, mockLog, nil, "").LogHeaders(true)

	mockLog.AssertNotCalled(t, "Debug", mock.Anything, mock.Anything)
}

func TestHeadersToString(t *testing.T) {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Add("Accept", "application/json")
	h.Add("Accept", "text/plain")

	assert.Equal(t, "Accept: application/json, text/plain\nContent-Type: application/json", HeadersToString(h))
}

func TestCheckDeprecationHeader(t *testing.T) {
	u, _ := url.Parse("https://graph.microsoft.com/beta/reports")
	resp := &http.Response{Header: http.Header{}, Request: &http.Request{URL: u}}
	resp.Header.Set("Deprecation", "Wed, 01 May 2024 00:00:00 GMT")

	mockLog := mocklogger.NewMockLogger()
	mockLog.On("Warn", "API endpoint is deprecated", mock.Anything).Once()

	CheckDeprecationHeader(resp, mockLog)
	mockLog.AssertExpectations(t)

	quiet := mocklogger.NewMockLogger()
	CheckDeprecationHeader(&http.Response{Header: http.Header{}}, quiet)
	quiet.AssertNotCalled(t, "Warn", mock.Anything, mock.Anything)
}
