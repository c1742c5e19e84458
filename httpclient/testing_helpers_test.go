// httpclient/testing_helpers_test.go
package httpclient

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/deploymenttheory/go-graph-explorer/logger"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// newTestClient builds a client pointed at a local server with a silent logger.
func newTestClient(t *testing.T, handler http.Handler, token string) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := BuildClient(testConfig(srv.URL, token, logger.NewLogger(zap.NewNop(), logger.LogLevelDebug)), true)
	require.NoError(t, err)
	return client, srv
}

// newObservedTestClient is newTestClient with log entries captured for assertions.
func newObservedTestClient(t *testing.T, handler http.Handler, followRedirects bool) (*Client, *httptest.Server, *observer.ObservedLogs) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	core, logs := observer.New(zap.DebugLevel)
	config := testConfig(srv.URL, "secret", logger.NewLogger(zap.New(core), logger.LogLevelDebug))
	config.FollowRedirects = followRedirects
	client, err := BuildClient(config, true)
	require.NoError(t, err)
	return client, srv, logs
}

func testConfig(baseDomain, token string, log logger.Logger) ClientConfig {
	return ClientConfig{
		BaseDomain:         baseDomain,
		AuthToken:          token,
		Logger:             log,
		MaxRetryAttempts:   2,
		TotalRetryDuration: 10 * time.Second,
		FollowRedirects:    true,
	}
}
