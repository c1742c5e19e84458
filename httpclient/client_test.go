// httpclient/client_test.go
package httpclient

import (
	"testing"
	"time"

	"github.com/deploymenttheory/go-graph-explorer/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildClientDefaults(t *testing.T) {
	client, err := BuildClient(ClientConfig{Logger: logger.NewLogger(zap.NewNop(), logger.LogLevelInfo)}, true)
	require.NoError(t, err)

	assert.Equal(t, DefaultMaxRetryAttempts, client.config.MaxRetryAttempts)
	assert.Equal(t, DefaultCustomTimeout, client.http.Timeout)
	assert.Equal(t, "https://graph.microsoft.com", client.APIHandler.BaseURL())
	assert.Nil(t, client.redirects, "redirects are not followed unless asked for")
	assert.False(t, client.IsAuthenticated())
}

func TestBuildClientInvalid(t *testing.T) {
	tests := []struct {
		name   string
		config ClientConfig
	}{
		{"bad log level", ClientConfig{LogLevel: "LogLevelLoud", LogOutputFormat: "json", MaxRedirects: 1}},
		{"bad log format", ClientConfig{LogLevel: "LogLevelInfo", LogOutputFormat: "xml", MaxRedirects: 1}},
		{"negative timeout", ClientConfig{LogLevel: "LogLevelInfo", LogOutputFormat: "json", CustomTimeout: -time.Second}},
		{"follow without max", ClientConfig{LogLevel: "LogLevelInfo", LogOutputFormat: "json", FollowRedirects: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildClient(tt.config, false)
			assert.Error(t, err)
		})
	}
}

func TestSetAuthToken(t *testing.T) {
	client, err := BuildClient(ClientConfig{Logger: logger.NewLogger(zap.NewNop(), logger.LogLevelInfo)}, true)
	require.NoError(t, err)

	client.SetAuthToken("abc")
	assert.True(t, client.IsAuthenticated())
	assert.Equal(t, "abc", client.token())
}

func TestBuildClientProxy(t *testing.T) {
	nop := logger.NewLogger(zap.NewNop(), logger.LogLevelInfo)

	client, err := BuildClient(ClientConfig{Logger: nop, ProxyURL: "http://proxy.contoso.com:3128"}, true)
	require.NoError(t, err)
	assert.NotNil(t, client.http.Transport)

	_, err = BuildClient(ClientConfig{Logger: nop, ProxyURL: "proxy.contoso.com"}, true)
	assert.Error(t, err)
}
