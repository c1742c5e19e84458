// msgraph/msgraph_api_handler_constants.go
package msgraph

const (
	APIName           = "microsoft graph"     // APIName: represents the name of the API.
	DefaultBaseDomain = "graph.microsoft.com" // DefaultBaseDomain: represents the base domain for the public Graph cloud.
	DefaultScheme     = "https"

	VersionV1   = "v1.0"
	VersionBeta = "beta"

	// DefaultVersion is the version the explorer starts on.
	DefaultVersion = VersionV1

	// MetadataSegment is the OData service document describing every entity set and type.
	MetadataSegment = "$metadata"
)

// SupportedVersions lists the Graph versions the explorer offers, in display order.
var SupportedVersions = []string{VersionV1, VersionBeta}

// IsSupportedVersion reports whether version is one of SupportedVersions.
func IsSupportedVersion(version string) bool {
	for _, v := range SupportedVersions {
		if v == version {
			return true
		}
	}
	return false
}

// GetDefaultBaseDomain returns the default base domain used for constructing API URLs to the http client.
func (g *GraphAPIHandler) GetDefaultBaseDomain() string {
	return DefaultBaseDomain
}
