// explorer/helpers_test.go
package explorer

import (
	"context"
	"os"
	"testing"

	"github.com/deploymenttheory/go-graph-explorer/cache"
	"github.com/deploymenttheory/go-graph-explorer/httpclient"
	"github.com/deploymenttheory/go-graph-explorer/logger"
	"github.com/deploymenttheory/go-graph-explorer/metadata"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testVersion = "v1.0"
	root        = "https://graph.microsoft.com/v1.0"
)

func readFixture(t *testing.T) []byte {
	t.Helper()
	raw, err := os.ReadFile("testdata/metadata_v1.0.xml")
	require.NoError(t, err)
	return raw
}

// fixtureStore returns a store with the v1.0 fixture already parsed and cached.
func fixtureStore(t *testing.T) *cache.MemoryStore {
	t.Helper()
	raw := string(readFixture(t))
	doc, err := metadata.ParseDocument(raw)
	require.NoError(t, err)

	store := cache.NewMemoryStore()
	cache.PutDocument(store, testVersion, raw, doc)
	return store
}

func nopLogger() logger.Logger {
	return logger.NewLogger(zap.NewNop(), logger.LogLevelDebug)
}

func newTestSession(t *testing.T, store cache.Store) *Session {
	t.Helper()
	s, err := NewSession(store, nopLogger(), nil)
	require.NoError(t, err)
	return s
}

type fakeFetcher struct {
	body  []byte
	err   error
	calls int
}

func (f *fakeFetcher) GetMetadata(_ context.Context, _ string) ([]byte, error) {
	f.calls++
	return f.body, f.err
}

type dispatchResult struct {
	resp *httpclient.Response
	err  error
}

type call struct {
	verb    httpclient.Verb
	url     string
	body    []byte
	headers map[string]string
}

// fakeDispatcher answers each verb with a canned result and records the calls made.
type fakeDispatcher struct {
	results map[httpclient.Verb]dispatchResult
	calls   []call
}

func (f *fakeDispatcher) QueryWithHeaders(verb httpclient.Verb, customHeaders map[string]string) httpclient.QueryFunc {
	return func(_ context.Context, url string, body []byte) (*httpclient.Response, error) {
		f.calls = append(f.calls, call{verb: verb, url: url, body: body, headers: customHeaders})
		result := f.results[verb]
		return result.resp, result.err
	}
}
