// cache/cache_test.go
package cache

import (
	"testing"

	"github.com/deploymenttheory/go-graph-explorer/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "v1.0EntitySetData", Key("v1.0", KindEntitySetData))
	assert.Equal(t, "betaMetadata", Key("beta", KindMetadata))
}

func TestMemoryStore_GetPut(t *testing.T) {
	s := NewMemoryStore()

	_, ok := s.Get("missing")
	assert.False(t, ok)

	s.Put("k", 1)
	s.Put("k", 2)
	v, ok := s.Get("k")
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, s.Len())
}

func TestTypedAccessors(t *testing.T) {
	s := NewMemoryStore()
	assert.False(t, IsPopulated(s, "v1.0"))

	doc := &metadata.Document{
		EntitySets:  metadata.Mapping{"users": {Name: "users", IsEntitySet: true, EntityType: "user"}},
		EntityTypes: metadata.Mapping{"user": {Name: "user"}},
	}
	PutDocument(s, "v1.0", "<xml/>", doc)

	assert.True(t, IsPopulated(s, "v1.0"))
	assert.False(t, IsPopulated(s, "beta"))

	raw, ok := RawMetadata(s, "v1.0")
	require.True(t, ok)
	assert.Equal(t, "<xml/>", raw)

	sets, ok := EntitySets(s, "v1.0")
	require.True(t, ok)
	assert.Equal(t, "user", sets["users"].EntityType)

	types, ok := EntityTypes(s, "v1.0")
	require.True(t, ok)
	assert.Contains(t, types, "user")
}

func TestTypedAccessors_WrongType(t *testing.T) {
	s := NewMemoryStore()
	s.Put(Key("v1.0", KindEntitySetData), "not a mapping")
	s.Put(Key("v1.0", KindMetadata), 42)

	_, ok := EntitySets(s, "v1.0")
	assert.False(t, ok)
	_, ok = RawMetadata(s, "v1.0")
	assert.False(t, ok)
}

func TestCurrentEntity(t *testing.T) {
	s := NewMemoryStore()
	_, ok := CurrentEntity(s, "v1.0")
	assert.False(t, ok)

	user := &metadata.EntityDescriptor{Name: "user"}
	s.Put(Key("v1.0", KindEntity), user)
	got, ok := CurrentEntity(s, "v1.0")
	require.True(t, ok)
	assert.Same(t, user, got)

	s.Put(Key("v1.0", KindEntity), (*metadata.EntityDescriptor)(nil))
	got, ok = CurrentEntity(s, "v1.0")
	assert.True(t, ok)
	assert.Nil(t, got)
}
