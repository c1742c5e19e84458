// httpclient/client.go
/* Package httpclient issues the explorer's calls against Microsoft Graph. A Client wraps a standard
http.Client with the Graph headers, bearer token, redirect policy, retries for idempotent verbs and
structured logging. The explorer talks to it through Query, which returns a function per verb. */
package httpclient

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/deploymenttheory/go-graph-explorer/logger"
	"github.com/deploymenttheory/go-graph-explorer/msgraph"
	"github.com/deploymenttheory/go-graph-explorer/proxy"
	"github.com/deploymenttheory/go-graph-explorer/redirecthandler"
	"go.uber.org/zap"
)

// Master struct/object
type Client struct {
	// Private
	config    ClientConfig
	http      *http.Client
	redirects *redirecthandler.RedirectHandler
	lock      sync.RWMutex
	authToken string

	// Exported
	Logger     logger.Logger
	APIHandler *msgraph.GraphAPIHandler
}

// Options/Variables for Client
type ClientConfig struct {
	// Graph
	BaseDomain string `json:"base_domain"` // Override for national clouds or a local test server.
	AuthToken  string `json:"auth_token"`  // Bearer token; empty sends anonymous requests.

	// Log
	LogLevel            string        `json:"log_level"`
	LogOutputFormat     string        `json:"log_output_format"` // Use "json" for JSON format, "pretty" for human-readable format
	LogConsoleSeparator string        `json:"log_console_separator"`
	HideSensitiveData   bool          `json:"hide_sensitive_data"`
	Logger              logger.Logger `json:"-"` // Used as-is when set instead of building one from the fields above.

	// Misc
	MaxRetryAttempts   int           `json:"max_retry_attempts"`
	CustomTimeout      time.Duration `json:"custom_timeout"`
	TotalRetryDuration time.Duration `json:"total_retry_duration"`
	FollowRedirects    bool          `json:"follow_redirects"`
	MaxRedirects       int           `json:"max_redirects"`

	// Proxy
	ProxyURL      string `json:"proxy_url"` // Empty connects directly.
	ProxyUsername string `json:"proxy_username"`
	ProxyPassword string `json:"proxy_password"`
}

// BuildClient creates a new HTTP client with the provided configuration.
func BuildClient(config ClientConfig, populateDefaultValues bool) (*Client, error) {
	if populateDefaultValues {
		SetDefaultValuesClientConfig(&config)
	}

	if err := validateClientConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log := config.Logger
	if log == nil {
		parsedLogLevel := logger.ParseLogLevelFromString(config.LogLevel)
		log = logger.BuildLogger(parsedLogLevel, config.LogOutputFormat, config.LogConsoleSeparator)
	}

	apiHandler := msgraph.NewGraphAPIHandler(config.BaseDomain, log)
	log.Info("initializing new http client", zap.String("api", msgraph.APIName), zap.String("base_url", apiHandler.BaseURL()))

	httpClient := &http.Client{
		Timeout: config.CustomTimeout,
	}

	if err := proxy.InitializeProxy(httpClient, config.ProxyURL, config.ProxyUsername, config.ProxyPassword, log); err != nil {
		return nil, fmt.Errorf("failed to configure proxy: %w", err)
	}

	redirects, err := redirecthandler.SetupRedirectHandler(httpClient, config.FollowRedirects, config.MaxRedirects, log)
	if err != nil {
		return nil, fmt.Errorf("failed to set up redirect handler: %w", err)
	}

	client := &Client{
		config:     config,
		http:       httpClient,
		redirects:  redirects,
		authToken:  config.AuthToken,
		Logger:     log,
		APIHandler: apiHandler,
	}

	log.Debug("New API client initialized",
		zap.Bool("Authenticated", config.AuthToken != ""),
		zap.String("Logging Level", config.LogLevel),
		zap.String("Log Encoding Format", config.LogOutputFormat),
		zap.Bool("Hide Sensitive Data In Logs", config.HideSensitiveData),
		zap.Int("Max Retry Attempts", config.MaxRetryAttempts),
		zap.Bool("Follow Redirects", config.FollowRedirects),
		zap.Int("Max Redirects", config.MaxRedirects),
		zap.Bool("Proxy", config.ProxyURL != ""),
		zap.Duration("Total Retry Duration", config.TotalRetryDuration),
		zap.Duration("Custom Timeout", config.CustomTimeout),
	)

	return client, nil
}

// SetAuthToken replaces the bearer token used for subsequent requests.
func (c *Client) SetAuthToken(token string) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.authToken = token
}

// IsAuthenticated reports whether requests carry a bearer token.
func (c *Client) IsAuthenticated() bool {
	return c.token() != ""
}

func (c *Client) token() string {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.authToken
}
