// msgraph/msgraph_api_url.go
package msgraph

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// SetBaseDomain returns the appropriate base domain for URL construction.
// It uses g.OverrideBaseDomain if set, otherwise falls back to the public cloud.
func (g *GraphAPIHandler) SetBaseDomain() string {
	if g.OverrideBaseDomain != "" {
		return g.OverrideBaseDomain
	}
	return g.GetDefaultBaseDomain()
}

// BaseURL returns the service root without a version, e.g. https://graph.microsoft.com. An override
// that already carries a scheme (a test server) is used as-is.
func (g *GraphAPIHandler) BaseURL() string {
	domain := strings.TrimRight(g.SetBaseDomain(), "/")
	if strings.Contains(domain, "://") {
		return domain
	}
	return fmt.Sprintf("%s://%s", DefaultScheme, domain)
}

// ConstructAPIResourceEndpoint builds <base>/<version>/<request> and logs the URL. Leading slashes
// on the request path are dropped so both "me" and "/me" work.
func (g *GraphAPIHandler) ConstructAPIResourceEndpoint(version string, endpointPath string) string {
	url := fmt.Sprintf("%s/%s/%s", g.BaseURL(), version, strings.TrimLeft(endpointPath, "/"))
	if g.Logger != nil {
		g.Logger.Debug(fmt.Sprintf("Constructed %s API resource endpoint URL", APIName), zap.String("URL", url))
	}
	return url
}

// ConstructMetadataEndpoint returns the $metadata URL for version.
func (g *GraphAPIHandler) ConstructMetadataEndpoint(version string) string {
	return g.ConstructAPIResourceEndpoint(version, MetadataSegment)
}

// ServiceRoot returns <base>/<version>, the URL the explorer shows before any path is typed.
func (g *GraphAPIHandler) ServiceRoot(version string) string {
	return fmt.Sprintf("%s/%s", g.BaseURL(), version)
}
