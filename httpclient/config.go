// httpclient/config.go
// Description: This file contains functions to load and validate configuration values from a JSON file or environment variables.
package httpclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/deploymenttheory/go-graph-explorer/logger"
	"github.com/joho/godotenv"
)

const (
	DefaultLogLevelString        = "LogLevelInfo"
	DefaultLogOutputFormatString = logger.LogOutputPretty
	DefaultLogConsoleSeparator   = "	"
	DefaultHideSensitiveData     = true
	DefaultMaxRetryAttempts      = 3
	DefaultCustomTimeout         = 30 * time.Second
	DefaultTotalRetryDuration    = 2 * time.Minute
	DefaultFollowRedirects       = true
	DefaultMaxRedirects          = 5
)

// EnvPrefix is prepended to every environment variable read by LoadConfigFromEnv.
const EnvPrefix = "GRAPH_EXPLORER_"

// UnmarshalJSON accepts durations written as Go duration strings ("30s", "2m").
func (c *ClientConfig) UnmarshalJSON(data []byte) error {
	type alias ClientConfig
	aux := struct {
		*alias
		CustomTimeout      string `json:"custom_timeout"`
		TotalRetryDuration string `json:"total_retry_duration"`
	}{alias: (*alias)(c)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var err error
	if aux.CustomTimeout != "" {
		if c.CustomTimeout, err = time.ParseDuration(aux.CustomTimeout); err != nil {
			return fmt.Errorf("invalid custom_timeout: %w", err)
		}
	}
	if aux.TotalRetryDuration != "" {
		if c.TotalRetryDuration, err = time.ParseDuration(aux.TotalRetryDuration); err != nil {
			return fmt.Errorf("invalid total_retry_duration: %w", err)
		}
	}
	return nil
}

// LoadConfigFromFile loads http client configuration settings from a JSON file.
func LoadConfigFromFile(filepath string) (*ClientConfig, error) {
	absPath, err := validateFilePath(filepath)
	if err != nil {
		return nil, fmt.Errorf("invalid file path: %w", err)
	}

	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("could not open file: %w", err)
	}
	defer file.Close()

	byteValue, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("could not read file: %w", err)
	}

	var config ClientConfig
	if err := json.Unmarshal(byteValue, &config); err != nil {
		return nil, fmt.Errorf("could not unmarshal JSON: %w", err)
	}

	// Set default values for missing fields.
	SetDefaultValuesClientConfig(&config)

	return &config, nil
}

// LoadConfigFromEnv loads HTTP client configuration settings from GRAPH_EXPLORER_* environment variables.
// The named env files are loaded first; with none given a .env in the working directory is used if present.
// Variables already set in the environment win over the files. Unset variables fall back to the defaults.
func LoadConfigFromEnv(envFiles ...string) (*ClientConfig, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return nil, fmt.Errorf("could not load env files: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	config := &ClientConfig{
		BaseDomain:          getEnvAsString("BASE_DOMAIN", ""),
		AuthToken:           getEnvAsString("AUTH_TOKEN", ""),
		LogLevel:            getEnvAsString("LOG_LEVEL", DefaultLogLevelString),
		LogOutputFormat:     getEnvAsString("LOG_OUTPUT_FORMAT", DefaultLogOutputFormatString),
		LogConsoleSeparator: getEnvAsString("LOG_CONSOLE_SEPARATOR", DefaultLogConsoleSeparator),
		HideSensitiveData:   getEnvAsBool("HIDE_SENSITIVE_DATA", DefaultHideSensitiveData),
		MaxRetryAttempts:    getEnvAsInt("MAX_RETRY_ATTEMPTS", DefaultMaxRetryAttempts),
		CustomTimeout:       getEnvAsDuration("CUSTOM_TIMEOUT", DefaultCustomTimeout),
		TotalRetryDuration:  getEnvAsDuration("TOTAL_RETRY_DURATION", DefaultTotalRetryDuration),
		FollowRedirects:     getEnvAsBool("FOLLOW_REDIRECTS", DefaultFollowRedirects),
		MaxRedirects:        getEnvAsInt("MAX_REDIRECTS", DefaultMaxRedirects),
		ProxyURL:            getEnvAsString("PROXY_URL", ""),
		ProxyUsername:       getEnvAsString("PROXY_USERNAME", ""),
		ProxyPassword:       getEnvAsString("PROXY_PASSWORD", ""),
	}

	return config, nil
}

var validLogLevels = []string{
	"LogLevelDebug",
	"LogLevelInfo",
	"LogLevelWarn",
	"LogLevelError",
	"LogLevelNone",
}

var validLogFormats = []string{
	logger.LogOutputJSON,
	logger.LogOutputPretty,
}

// validateClientConfig checks a fully populated configuration.
func validateClientConfig(config ClientConfig) error {
	if config.Logger == nil {
		if !slices.Contains(validLogLevels, config.LogLevel) {
			return fmt.Errorf("invalid log level: %s", config.LogLevel)
		}

		if !slices.Contains(validLogFormats, config.LogOutputFormat) {
			return fmt.Errorf("invalid log output format: %s", config.LogOutputFormat)
		}
	}

	if config.MaxRetryAttempts < 0 {
		return errors.New("max retry cannot be less than 0")
	}

	if config.CustomTimeout < 0 {
		return errors.New("timeout cannot be less than 0 seconds")
	}

	if config.TotalRetryDuration < 0 {
		return errors.New("total retry duration cannot be less than 0 seconds")
	}

	if config.FollowRedirects && config.MaxRedirects < 1 {
		return errors.New("max redirects cannot be less than 1")
	}

	return nil
}

// SetDefaultValuesClientConfig sets default values for the client configuration. Ensuring that all fields have a valid or minimum value.
func SetDefaultValuesClientConfig(config *ClientConfig) {
	setDefaultString(&config.LogLevel, DefaultLogLevelString)
	setDefaultString(&config.LogOutputFormat, DefaultLogOutputFormatString)
	setDefaultString(&config.LogConsoleSeparator, DefaultLogConsoleSeparator)
	setDefaultInt(&config.MaxRetryAttempts, DefaultMaxRetryAttempts, 1)
	setDefaultDuration(&config.CustomTimeout, DefaultCustomTimeout)
	setDefaultDuration(&config.TotalRetryDuration, DefaultTotalRetryDuration)
	setDefaultInt(&config.MaxRedirects, DefaultMaxRedirects, 1)
}
