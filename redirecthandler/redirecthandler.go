// redirecthandler/redirecthandler.go
package redirecthandler

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/deploymenttheory/go-graph-explorer/logger"
	"github.com/deploymenttheory/go-graph-explorer/status"
	"go.uber.org/zap"
)

// RedirectHandler contains configurations for handling HTTP redirects. Graph answers photo and
// drive content requests with a redirect to a pre-authenticated download host, so the bearer token
// must not follow a redirect to another host.
type RedirectHandler struct {
	Logger             logger.Logger     // Logger instance for logging.
	MaxRedirects       int               // Maximum allowed redirects to prevent infinite loops.
	SensitiveHeaders   []string          // Headers to be removed on cross-domain redirects.
	PermanentRedirects map[string]string // Cache for permanent redirects
	PermRedirectsMutex sync.RWMutex      // Mutex for safe concurrent access to PermanentRedirects
}

// NewRedirectHandler creates a new instance of RedirectHandler.
func NewRedirectHandler(log logger.Logger, maxRedirects int) *RedirectHandler {
	return &RedirectHandler{
		Logger:             log,
		MaxRedirects:       maxRedirects,
		SensitiveHeaders:   []string{"Authorization", "Cookie"},
		PermanentRedirects: make(map[string]string),
	}
}

// WithRedirectHandling applies the redirect handling policy to an http.Client.
func (r *RedirectHandler) WithRedirectHandling(client *http.Client) {
	client.CheckRedirect = r.checkRedirect
}

// checkRedirect is called by net/http with the next request, whose URL is already the resolved
// Location, and the requests made so far, oldest first.
func (r *RedirectHandler) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) == 0 {
		return nil
	}
	previous := via[len(via)-1]

	if via[0].Method == http.MethodPost || via[0].Method == http.MethodPatch {
		r.Logger.Warn("Redirect attempted on non-idempotent method, not following", zap.String("method", via[0].Method))
		return http.ErrUseLastResponse
	}

	if len(via) >= r.MaxRedirects {
		r.Logger.Warn("Maximum redirects reached", zap.Int("maxRedirects", r.MaxRedirects))
		return &MaxRedirectsError{MaxRedirects: r.MaxRedirects}
	}

	target := req.URL.String()
	for _, visited := range via {
		if visited.URL.String() == target {
			r.Logger.Warn("Redirect loop detected", zap.String("url", target))
			return &RedirectLoopError{URL: target}
		}
	}

	if req.URL.Host != previous.URL.Host {
		r.secureRequest(req)
	}

	if req.Response != nil && status.IsPermanentRedirect(req.Response.StatusCode) {
		r.cachePermanentRedirect(previous.URL.String(), target)
	}

	r.Logger.Info("Redirecting request", zap.String("originalURL", previous.URL.String()), zap.String("newURL", target), zap.Int("redirectCount", len(via)))
	return nil
}

// secureRequest removes sensitive headers from the request if the new destination is a different domain.
func (r *RedirectHandler) secureRequest(req *http.Request) {
	for _, header := range r.SensitiveHeaders {
		req.Header.Del(header)
	}
}

// RedirectLoopError represents an error when a redirect loop is detected.
type RedirectLoopError struct {
	URL string
}

// Error implements the error interface.
func (e *RedirectLoopError) Error() string {
	return fmt.Sprintf("redirect loop detected at %s", e.URL)
}

// MaxRedirectsError represents an error when the maximum number of redirects is reached.
type MaxRedirectsError struct {
	MaxRedirects int
}

// Error implements the error interface.
func (e *MaxRedirectsError) Error() string {
	return fmt.Sprintf("maximum redirects reached: %d", e.MaxRedirects)
}

// cachePermanentRedirect caches the permanent redirect location.
func (r *RedirectHandler) cachePermanentRedirect(originalURL, redirectURL string) {
	r.PermRedirectsMutex.Lock()
	defer r.PermRedirectsMutex.Unlock()

	r.PermanentRedirects[originalURL] = redirectURL
}

// ResolvePermanentRedirect returns the cached target of a 301/308 seen earlier for url, or url itself.
func (r *RedirectHandler) ResolvePermanentRedirect(url string) string {
	r.PermRedirectsMutex.RLock()
	defer r.PermRedirectsMutex.RUnlock()

	if target, ok := r.PermanentRedirects[url]; ok {
		return target
	}
	return url
}

// SetupRedirectHandler configures the HTTP client for redirect handling based on the client configuration.
// When redirects are not followed the 3xx response itself is returned to the caller.
func SetupRedirectHandler(client *http.Client, followRedirects bool, maxRedirects int, log logger.Logger) (*RedirectHandler, error) {
	if !followRedirects {
		client.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }
		return nil, nil
	}

	if maxRedirects < 1 {
		return nil, log.Error("Invalid maxRedirects value", zap.Int("maxRedirects", maxRedirects))
	}

	redirectHandler := NewRedirectHandler(log, maxRedirects)
	redirectHandler.WithRedirectHandling(client)
	log.Info("Redirect handling enabled", zap.Int("MaxRedirects", maxRedirects))
	return redirectHandler, nil
}
