// httpclient/metadata.go
package httpclient

import (
	"context"
	"fmt"

	"github.com/deploymenttheory/go-graph-explorer/msgraph"
	"go.uber.org/zap"
)

// GetMetadata downloads the $metadata document for version in a single attempt. The bytes are
// returned untouched; decoding is left to the metadata package.
func (c *Client) GetMetadata(ctx context.Context, version string) ([]byte, error) {
	if !msgraph.IsSupportedVersion(version) {
		c.Logger.Warn("Requesting metadata for an unknown Graph version", zap.String("version", version))
	}

	endpoint := c.APIHandler.ConstructMetadataEndpoint(version)
	resp, err := c.executeRequest(ctx, VerbGet, endpoint, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s metadata: %w", version, err)
	}
	return resp.Data, nil
}
