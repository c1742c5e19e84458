// proxy/proxy.go

// Package proxy routes Graph traffic through an outbound HTTP proxy.
package proxy

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/deploymenttheory/go-graph-explorer/logger"
	"go.uber.org/zap"
)

// InitializeProxy points httpClient at proxyURL, with basic proxy authentication when both a
// username and password are given. An empty proxyURL leaves the client untouched.
func InitializeProxy(httpClient *http.Client, proxyURL, proxyUsername, proxyPassword string, log logger.Logger) error {
	if proxyURL == "" {
		return nil
	}

	parsedProxyURL, err := url.Parse(proxyURL)
	if err != nil {
		return log.Error("Failed to parse proxy URL", zap.Error(err))
	}
	if parsedProxyURL.Scheme == "" || parsedProxyURL.Host == "" {
		return log.Error("Proxy URL must include a scheme and host", zap.String("ProxyURL", proxyURL))
	}

	transport, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		return fmt.Errorf("unexpected default transport type %T", http.DefaultTransport)
	}
	transport = transport.Clone()

	if proxyUsername != "" && proxyPassword != "" {
		parsedProxyURL.User = url.UserPassword(proxyUsername, proxyPassword)
	}
	transport.Proxy = http.ProxyURL(parsedProxyURL)
	httpClient.Transport = transport

	log.Info("Proxy configured",
		zap.String("ProxyURL", parsedProxyURL.Redacted()),
		zap.Bool("Authenticated", parsedProxyURL.User != nil),
	)
	return nil
}
