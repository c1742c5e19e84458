// explorer/loader.go
package explorer

import (
	"context"
	"fmt"

	"github.com/deploymenttheory/go-graph-explorer/cache"
	"github.com/deploymenttheory/go-graph-explorer/metadata"
	"go.uber.org/zap"
)

// MetadataFetcher downloads the raw $metadata document for a version.
type MetadataFetcher interface {
	GetMetadata(ctx context.Context, version string) ([]byte, error)
}

// LoadMetadata makes sure the selected version's metadata is cached, fetching and parsing it only
// when the raw document is not there yet. A failed fetch or parse leaves the cache untouched so a
// later call tries again. OnURLOptionsChanged fires in every case.
func (s *Session) LoadMetadata(ctx context.Context, fetcher MetadataFetcher) error {
	defer s.notifyURLOptionsChanged()

	version := s.SelectedVersion
	if _, ok := cache.RawMetadata(s.Store, version); ok {
		return nil
	}

	s.Logger.Info("parsing metadata", zap.String("version", version))

	doc, err := fetchDocument(ctx, fetcher, version)
	if err != nil {
		s.Logger.Error("metadata could not be parsed", zap.String("version", version), zap.Error(err))
		return err
	}

	cache.PutDocument(s.Store, version, doc.raw, doc.parsed)
	s.memo.Purge()
	s.Logger.LogMetadataParsed("metadata_parsed", version, len(doc.parsed.EntitySets), len(doc.parsed.EntityTypes))

	if !s.entityAssigned {
		s.assignEntity(doc.parsed.EntityTypes[defaultTypeKey])
	} else {
		s.assignEntity(doc.parsed.EntityTypes[lastSegment(s.Text)])
	}
	return nil
}

type fetchedDocument struct {
	raw    string
	parsed *metadata.Document
}

func fetchDocument(ctx context.Context, fetcher MetadataFetcher, version string) (*fetchedDocument, error) {
	body, err := fetcher.GetMetadata(ctx, version)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch metadata: %w", err)
	}

	raw, err := metadata.DecodeDocument(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}

	parsed, err := metadata.ParseDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}
	return &fetchedDocument{raw: raw, parsed: parsed}, nil
}
