// explorer/loader_test.go
package explorer

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/deploymenttheory/go-graph-explorer/cache"
	"github.com/deploymenttheory/go-graph-explorer/mocklogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLoadMetadata(t *testing.T) {
	store := cache.NewMemoryStore()
	s := newTestSession(t, store)
	fetcher := &fakeFetcher{body: readFixture(t)}

	notified := 0
	s.OnURLOptionsChanged = func() { notified++ }

	require.NoError(t, s.LoadMetadata(context.Background(), fetcher))

	assert.True(t, cache.IsPopulated(store, testVersion))
	raw, ok := cache.RawMetadata(store, testVersion)
	require.True(t, ok)
	assert.Equal(t, strings.TrimSpace(string(readFixture(t))), raw, "the cached document is the trimmed payload")

	require.NotNil(t, s.Entity)
	assert.Equal(t, "user", s.Entity.Name)
	assert.Equal(t, 1, notified)
}

func TestLoadMetadata_OnlyOnce(t *testing.T) {
	s := newTestSession(t, cache.NewMemoryStore())
	fetcher := &fakeFetcher{body: readFixture(t)}

	notified := 0
	s.OnURLOptionsChanged = func() { notified++ }

	require.NoError(t, s.LoadMetadata(context.Background(), fetcher))
	require.NoError(t, s.LoadMetadata(context.Background(), fetcher))

	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, 2, notified, "listeners hear about the cached document too")
}

func TestLoadMetadata_EntityFromCurrentURL(t *testing.T) {
	s := newTestSession(t, cache.NewMemoryStore())

	// Resolving before any metadata is cached assigns an empty entity.
	s.Text = root + "/drives"
	s.SetEntity(true)
	require.Nil(t, s.Entity)

	require.NoError(t, s.LoadMetadata(context.Background(), &fakeFetcher{body: readFixture(t)}))

	require.NotNil(t, s.Entity)
	assert.Equal(t, "drives", s.Entity.Name)
	assert.False(t, s.Entity.IsEntitySet)
}

func TestLoadMetadata_JSONStringBody(t *testing.T) {
	store := cache.NewMemoryStore()
	s := newTestSession(t, store)

	body, err := json.Marshal(string(readFixture(t)))
	require.NoError(t, err)

	require.NoError(t, s.LoadMetadata(context.Background(), &fakeFetcher{body: body}))

	sets, ok := cache.EntitySets(store, testVersion)
	require.True(t, ok)
	assert.Contains(t, sets, "users")
}

func TestLoadMetadata_FetchFailure(t *testing.T) {
	store := cache.NewMemoryStore()
	s := newTestSession(t, store)
	fetcher := &fakeFetcher{err: errors.New("connection refused")}

	notified := 0
	s.OnURLOptionsChanged = func() { notified++ }

	err := s.LoadMetadata(context.Background(), fetcher)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")

	assert.False(t, cache.IsPopulated(store, testVersion))
	_, ok := cache.RawMetadata(store, testVersion)
	assert.False(t, ok)
	assert.Equal(t, 1, notified)

	// Nothing was cached, so the next call fetches again.
	fetcher.err = nil
	fetcher.body = readFixture(t)
	require.NoError(t, s.LoadMetadata(context.Background(), fetcher))
	assert.Equal(t, 2, fetcher.calls)
	assert.True(t, cache.IsPopulated(store, testVersion))
}

func TestLoadMetadata_MalformedDocument(t *testing.T) {
	store := cache.NewMemoryStore()
	s := newTestSession(t, store)

	err := s.LoadMetadata(context.Background(), &fakeFetcher{body: []byte("<Edmx><Schema></Edmx>")})
	require.Error(t, err)
	assert.False(t, cache.IsPopulated(store, testVersion))
}

func TestLoadMetadata_LogsFailure(t *testing.T) {
	mockLog := mocklogger.NewMockLogger()
	mockLog.On("Info", "parsing metadata", mock.Anything).Return()
	mockLog.On("Error", "metadata could not be parsed", mock.Anything).Return(errors.New("metadata could not be parsed"))

	s, err := NewSession(cache.NewMemoryStore(), mockLog, nil)
	require.NoError(t, err)

	require.Error(t, s.LoadMetadata(context.Background(), &fakeFetcher{err: errors.New("timeout")}))
	mockLog.AssertExpectations(t)
}
