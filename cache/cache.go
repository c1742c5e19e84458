// cache/cache.go
// Package cache is the process wide metadata store shared by the explorer session. Entries are
// keyed "<version><Kind>", e.g. "v1.0EntitySetData", populated once per API version and never
// evicted or refreshed.
package cache

import (
	"sync"

	"github.com/deploymenttheory/go-graph-explorer/metadata"
)

// Kind names one of the per-version entries.
type Kind string

const (
	KindMetadata       Kind = "Metadata"
	KindEntitySetData  Kind = "EntitySetData"
	KindEntityTypeData Kind = "EntityTypeData"
	KindEntity         Kind = "Entity"
)

// Key builds the store key for version and kind.
func Key(version string, kind Kind) string {
	return version + string(kind)
}

// Store is a key-value store with get/put semantics and no eviction.
type Store interface {
	Get(key string) (any, bool)
	Put(key string, value any)
}

// MemoryStore is the in-process Store.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]any
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]any)}
}

// Get returns the value stored under key.
func (s *MemoryStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok
}

// Put stores value under key, replacing any previous value.
func (s *MemoryStore) Put(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
}

// Len reports the number of entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// RawMetadata returns the decoded $metadata document cached for version.
func RawMetadata(s Store, version string) (string, bool) {
	v, ok := s.Get(Key(version, KindMetadata))
	if !ok {
		return "", false
	}
	doc, ok := v.(string)
	return doc, ok
}

// EntitySets returns the entity-set mapping cached for version.
func EntitySets(s Store, version string) (metadata.Mapping, bool) {
	return mapping(s, Key(version, KindEntitySetData))
}

// EntityTypes returns the entity-type mapping cached for version.
func EntityTypes(s Store, version string) (metadata.Mapping, bool) {
	return mapping(s, Key(version, KindEntityTypeData))
}

// CurrentEntity returns the entity last resolved for version. A nil descriptor with ok set means
// the last resolution found nothing.
func CurrentEntity(s Store, version string) (*metadata.EntityDescriptor, bool) {
	v, ok := s.Get(Key(version, KindEntity))
	if !ok {
		return nil, false
	}
	entity, ok := v.(*metadata.EntityDescriptor)
	return entity, ok
}

// PutDocument stores the raw document and both parsed mappings for version.
func PutDocument(s Store, version string, raw string, doc *metadata.Document) {
	s.Put(Key(version, KindMetadata), raw)
	s.Put(Key(version, KindEntitySetData), doc.EntitySets)
	s.Put(Key(version, KindEntityTypeData), doc.EntityTypes)
}

// IsPopulated reports whether both mappings are available for version.
func IsPopulated(s Store, version string) bool {
	_, setsOK := EntitySets(s, version)
	_, typesOK := EntityTypes(s, version)
	return setsOK && typesOK
}

func mapping(s Store, key string) (metadata.Mapping, bool) {
	v, ok := s.Get(key)
	if !ok {
		return nil, false
	}
	m, ok := v.(metadata.Mapping)
	return m, ok
}
