// explorer/session.go
package explorer

import (
	"sort"

	"github.com/deploymenttheory/go-graph-explorer/cache"
	"github.com/deploymenttheory/go-graph-explorer/httpclient"
	"github.com/deploymenttheory/go-graph-explorer/logger"
	"github.com/deploymenttheory/go-graph-explorer/metadata"
	"github.com/deploymenttheory/go-graph-explorer/msgraph"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// resolutionMemoSize bounds the number of remembered URL resolutions.
const resolutionMemoSize = 256

type resolutionKey struct {
	version   string
	url       string
	succeeded bool
}

// Session is the state of one explorer window: the selected version and verb, the URL being
// edited and the entity it resolves to. It is not safe for concurrent use.
type Session struct {
	SelectedVersion string
	SelectedOption  httpclient.Verb
	Text            string

	Entity           *metadata.EntityDescriptor
	EntityNameIsAnID bool

	// LastCallSucceeded is the outcome of the most recent Run and feeds the next resolution.
	LastCallSucceeded bool

	RequestBody    string
	RequestHeaders string
	Tabs           TabConfig

	Store      cache.Store
	Logger     logger.Logger
	APIHandler *msgraph.GraphAPIHandler

	// OnURLOptionsChanged is called after a metadata load attempt, successful or not.
	OnURLOptionsChanged func()

	entityAssigned bool
	memo           *lru.Cache[resolutionKey, Resolution]
}

// NewSession returns a session on the default version, pointing at the service root. A nil
// apiHandler targets the public Graph cloud.
func NewSession(store cache.Store, log logger.Logger, apiHandler *msgraph.GraphAPIHandler) (*Session, error) {
	memo, err := lru.New[resolutionKey, Resolution](resolutionMemoSize)
	if err != nil {
		return nil, err
	}
	if apiHandler == nil {
		apiHandler = msgraph.NewGraphAPIHandler("", log)
	}

	return &Session{
		SelectedVersion: msgraph.DefaultVersion,
		SelectedOption:  httpclient.VerbGet,
		Text:            apiHandler.ServiceRoot(msgraph.DefaultVersion),
		Tabs:            TabConfig{DisableRequestBodyEditor: true},
		Store:           store,
		Logger:          log,
		APIHandler:      apiHandler,
		memo:            memo,
	}, nil
}

// SetEntity resolves the current URL and stores the result on the session and in the cache under
// the version's Entity key. Resolutions are remembered once the version's metadata is loaded.
func (s *Session) SetEntity(lastCallSucceeded bool) Resolution {
	key := resolutionKey{version: s.SelectedVersion, url: s.Text, succeeded: lastCallSucceeded}

	res, ok := s.memo.Get(key)
	if !ok {
		res = ResolveEntity(s.Text, s.SelectedVersion, s.Store, lastCallSucceeded)
		if cache.IsPopulated(s.Store, s.SelectedVersion) {
			s.memo.Add(key, res)
		}
	}

	s.assignEntity(res.Entity)
	s.EntityNameIsAnID = res.IsID

	s.Logger.Debug("Resolved explorer URL",
		zap.String("url", s.Text),
		zap.String("version", s.SelectedVersion),
		zap.Bool("resolved", res.Resolved()),
		zap.Bool("is_id", res.IsID),
	)
	return res
}

func (s *Session) assignEntity(entity *metadata.EntityDescriptor) {
	s.Entity = entity
	s.entityAssigned = true
	s.Store.Put(cache.Key(s.SelectedVersion, cache.KindEntity), entity)
}

// URLOptions lists the path segments that can follow the current URL: every entity set at the
// service root, or the navigation properties of the resolved type.
func (s *Session) URLOptions() []string {
	if s.Entity == nil || s.Entity.IsEntitySet {
		return nil
	}

	if s.Entity.Name == s.SelectedVersion && len(s.Entity.Navigations) == 0 {
		sets, _ := cache.EntitySets(s.Store, s.SelectedVersion)
		names := make([]string, 0, len(sets))
		for name := range sets {
			names = append(names, name)
		}
		sort.Strings(names)
		return names
	}

	names := make([]string, 0, len(s.Entity.Navigations))
	for _, nav := range s.Entity.Navigations {
		names = append(names, nav.Name)
	}
	return names
}

func (s *Session) notifyURLOptionsChanged() {
	if s.OnURLOptionsChanged != nil {
		s.OnURLOptionsChanged()
	}
}
