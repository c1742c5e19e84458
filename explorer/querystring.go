// explorer/querystring.go
package explorer

import (
	"github.com/deploymenttheory/go-graph-explorer/headers"
	"github.com/deploymenttheory/go-graph-explorer/httpclient"
	"go.uber.org/zap"
)

// HandleQueryString applies the action, version and request values from a shared explorer link.
// Empty values leave the session unchanged. POST and PATCH open the request body editor, but only
// for an authenticated user since anonymous sessions cannot send them.
func (s *Session) HandleQueryString(action, version, request string, authenticated bool) {
	if action != "" {
		verb, err := httpclient.ParseVerb(action)
		if err != nil {
			s.Logger.Warn("Ignoring unsupported action in query string", zap.String("action", action))
		} else {
			s.SelectedOption = verb
			if (verb == httpclient.VerbPost || verb == httpclient.VerbPatch) && authenticated {
				s.showRequestBodyEditor()
			}
		}
	}

	if version != "" {
		s.SelectedVersion = version
	}

	if request != "" {
		s.Text = s.APIHandler.ConstructAPIResourceEndpoint(s.SelectedVersion, request)
	}
}

func (s *Session) showRequestBodyEditor() {
	s.Tabs.DisableRequestBodyEditor = false
	s.Tabs.HideContent = false
	s.RequestHeaders = headers.DefaultRequestHeaders
	s.SelectTab(TabRequestBody)
}
