// msgraph/msgraph_api_exceptions.go
package msgraph

import (
	_ "embed"

	"encoding/json"
	"log"
	"strings"
)

// EndpointConfig is a struct that holds configuration details for a specific API endpoint.
// It includes what type of content it can accept and what content type it should send.
type EndpointConfig struct {
	Accept      string  `json:"accept"`       // Accept specifies the MIME type the endpoint can handle in responses.
	ContentType *string `json:"content_type"` // ContentType, if not nil, specifies the MIME type to set for requests sent to the endpoint. A pointer is used to distinguish between a missing field and an empty string.
}

// ConfigMap is a map that associates endpoint path suffixes with their corresponding configurations.
type ConfigMap map[string]EndpointConfig

// Variables
var configMap ConfigMap

// Embedded Resources
//
//go:embed msgraph_api_exceptions_configuration.json
var graphAPIExceptionsConfiguration []byte

// init is invoked automatically on package initialization and is responsible for
// setting up the default state of the package by loading the api exceptions configuration.
func init() {
	if err := loadAPIExceptionsConfiguration(); err != nil {
		log.Fatalf("Error loading Microsoft Graph API exceptions configuration: %s", err)
	}
}

// loadAPIExceptionsConfiguration reads and unmarshals the embedded exceptions configuration
// into configMap, which holds the endpoint-specific headers.
func loadAPIExceptionsConfiguration() error {
	return json.Unmarshal(graphAPIExceptionsConfiguration, &configMap)
}

// endpointException returns the configuration whose key is a suffix of the endpoint path, ignoring
// any query string. The longest matching suffix wins.
func endpointException(endpoint string) (EndpointConfig, bool) {
	if i := strings.IndexAny(endpoint, "?#"); i >= 0 {
		endpoint = endpoint[:i]
	}
	endpoint = strings.TrimRight(endpoint, "/")

	var (
		best    EndpointConfig
		bestLen int
		found   bool
	)
	for suffix, config := range configMap {
		if strings.HasSuffix(endpoint, suffix) && len(suffix) > bestLen {
			best, bestLen, found = config, len(suffix), true
		}
	}
	return best, found
}
