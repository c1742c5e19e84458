// msgraph/msgraph_api_handler.go
package msgraph

import "github.com/deploymenttheory/go-graph-explorer/logger"

// GraphAPIHandler carries the Microsoft Graph specific knowledge the http client needs: where the
// API lives, which versions exist and which headers each endpoint expects.
type GraphAPIHandler struct {
	OverrideBaseDomain string        // OverrideBaseDomain is used to override the base domain for URL construction.
	Logger             logger.Logger // Logger is the structured logger used for logging.
}

// NewGraphAPIHandler returns a handler for the public Graph cloud. An empty baseDomain keeps the default.
func NewGraphAPIHandler(baseDomain string, log logger.Logger) *GraphAPIHandler {
	return &GraphAPIHandler{
		OverrideBaseDomain: baseDomain,
		Logger:             log,
	}
}
