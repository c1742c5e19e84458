// msgraph/msgraph_api_headers.go
package msgraph

import (
	"github.com/deploymenttheory/go-graph-explorer/version"
	"go.uber.org/zap"
)

// acceptHeader is weighted so that Graph picks JSON for entities while still serving photos,
// file content and the XML metadata document.
const acceptHeader = "application/json;q=0.9,application/xml;q=0.8,text/xml;q=0.79,image/png;q=0.75,image/jpeg;q=0.74,image/*;q=0.7,application/octet-stream;q=0.6,text/html;q=0.5,text/plain;q=0.4,*/*;q=0.05"

// GetAcceptHeader returns the default Accept header for Graph requests.
func (g *GraphAPIHandler) GetAcceptHeader() string {
	return acceptHeader
}

// GetContentTypeHeader returns the Content-Type for a request body sent to endpoint. Graph accepts
// JSON everywhere except where the exceptions configuration says otherwise.
func (g *GraphAPIHandler) GetContentTypeHeader(endpoint string) string {
	if config, ok := endpointException(endpoint); ok && config.ContentType != nil {
		if g.Logger != nil {
			g.Logger.Debug("Content-Type for endpoint found in configMap", zap.String("endpoint", endpoint), zap.String("content_type", *config.ContentType))
		}
		return *config.ContentType
	}
	return "application/json"
}

// GetAPIRequestHeaders returns the standard headers for a request to endpoint. Authorization is left
// empty for the caller to fill with its token.
func (g *GraphAPIHandler) GetAPIRequestHeaders(endpoint string) map[string]string {
	accept := g.GetAcceptHeader()
	if config, ok := endpointException(endpoint); ok && config.Accept != "" {
		if g.Logger != nil {
			g.Logger.Debug("Accept header for endpoint found in configMap", zap.String("endpoint", endpoint), zap.String("accept", config.Accept))
		}
		accept = config.Accept
	}

	return map[string]string{
		"Accept":        accept,
		"Content-Type":  g.GetContentTypeHeader(endpoint),
		"Authorization": "",
		"User-Agent":    version.UserAgent(),
	}
}
