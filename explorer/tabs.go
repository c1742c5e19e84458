// explorer/tabs.go
package explorer

// Tab indices in the request area.
const (
	TabRequestHeaders = 0
	TabRequestBody    = 1
	tabCount          = 2
)

// TabConfig is the state of the request editor tabs.
type TabConfig struct {
	Selected                 int
	PreviousSelected         int
	DisableRequestBodyEditor bool
	HideContent              bool
}

// SelectTab switches to tab n. Out of range values are ignored.
func (s *Session) SelectTab(n int) {
	if n < 0 || n >= tabCount {
		return
	}
	s.Tabs.Selected = n
	s.Tabs.PreviousSelected = n
}
