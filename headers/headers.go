// headers/headers.go
package headers

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/deploymenttheory/go-graph-explorer/headers/redact"
	"github.com/deploymenttheory/go-graph-explorer/logger"
	"github.com/deploymenttheory/go-graph-explorer/msgraph"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClientRequestIDHeader is echoed back by Graph in error bodies and support tickets.
const ClientRequestIDHeader = "client-request-id"

// HeaderHandler is responsible for managing and setting headers on HTTP requests.
type HeaderHandler struct {
	req        *http.Request            // The http.Request for which headers are being managed
	log        logger.Logger            // The logger to use for logging headers
	apiHandler *msgraph.GraphAPIHandler // Supplies the Graph standard headers
	token      string                   // The token to use for setting the Authorization header
}

// NewHeaderHandler creates a new instance of HeaderHandler for a given http.Request, logger, and Graph handler.
func NewHeaderHandler(req *http.Request, log logger.Logger, apiHandler *msgraph.GraphAPIHandler, token string) *HeaderHandler {
	return &HeaderHandler{
		req:        req,
		log:        log,
		apiHandler: apiHandler,
		token:      token,
	}
}

// SetAuthorization sets the Authorization header for the request.
func (h *HeaderHandler) SetAuthorization(token string) {
	// Ensure the token is prefixed with "Bearer " only once
	if !strings.HasPrefix(token, "Bearer ") {
		token = "Bearer " + token
	}
	h.req.Header.Set("Authorization", token)
}

// SetContentType sets the Content-Type header for the request.
func (h *HeaderHandler) SetContentType(contentType string) {
	h.req.Header.Set("Content-Type", contentType)
}

// SetAccept sets the Accept header for the request.
func (h *HeaderHandler) SetAccept(acceptHeader string) {
	h.req.Header.Set("Accept", acceptHeader)
}

// SetUserAgent sets the User-Agent header for the request.
func (h *HeaderHandler) SetUserAgent(userAgent string) {
	h.req.Header.Set("User-Agent", userAgent)
}

// SetClientRequestID tags the request with a fresh client-request-id and returns it.
func (h *HeaderHandler) SetClientRequestID() string {
	id := uuid.NewString()
	h.req.Header.Set(ClientRequestIDHeader, id)
	return id
}

// SetRequestHeaders sets the Graph standard headers for the request. Authorization is only set when
// a token is configured, so anonymous calls against a test server stay anonymous.
func (h *HeaderHandler) SetRequestHeaders(endpoint string) {
	standardHeaders := h.apiHandler.GetAPIRequestHeaders(endpoint)

	for header, value := range standardHeaders {
		if header == "Authorization" {
			if h.token != "" {
				h.SetAuthorization(h.token)
			}
		} else if value != "" {
			h.req.Header.Set(header, value)
		}
	}
}

// SetCustomHeaders applies headers typed into the request header editor. They override the
// standard ones, except Authorization which always comes from the configured token.
func (h *HeaderHandler) SetCustomHeaders(custom map[string]string) {
	for name, value := range custom {
		if http.CanonicalHeaderKey(name) == "Authorization" {
			continue
		}
		h.req.Header.Set(name, value)
	}
}

// LogHeaders prints all the current headers in the http.Request using the zap logger.
// Sensitive values are redacted when hideSensitiveData is set.
func (h *HeaderHandler) LogHeaders(hideSensitiveData bool) {
	if h.log.GetLogLevel() <= logger.LogLevelDebug {
		redactedHeaders := redact.Header(hideSensitiveData, h.req.Header)
		h.log.Debug("HTTP Request Headers", zap.String("Headers", HeadersToString(redactedHeaders)))
	}
}

// HeadersToString converts a http.Header to a string for logging,
// with each header on a new line for readability.
func HeadersToString(headers http.Header) string {
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)

	headerStrings := make([]string, 0, len(names))
	for _, name := range names {
		headerStrings = append(headerStrings, fmt.Sprintf("%s: %s", name, strings.Join(headers[name], ", ")))
	}
	return strings.Join(headerStrings, "\n")
}

// CheckDeprecationHeader checks the response headers for the Deprecation header and logs a warning if present.
// Graph also sends a Sunset date for beta APIs that are about to go away.
func CheckDeprecationHeader(resp *http.Response, log logger.Logger) {
	deprecationHeader := resp.Header.Get("Deprecation")
	if deprecationHeader == "" {
		return
	}

	endpoint := ""
	if resp.Request != nil && resp.Request.URL != nil {
		endpoint = resp.Request.URL.String()
	}
	log.Warn("API endpoint is deprecated",
		zap.String("Date", deprecationHeader),
		zap.String("Sunset", resp.Header.Get("Sunset")),
		zap.String("Endpoint", endpoint),
	)
}
