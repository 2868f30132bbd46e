package state

// ScreenState contains the UI state that is not owned by a service
type ScreenState struct {
	// Status line
	StatusMessage string
	StatusIsError bool
	StatusSeq     int // bumped on every new message

	// Popups
	ShowHelp      bool
	DetailID      string
	DetailContent string

	// Live push connection
	Live      bool
	Connected bool

	InPagerMode bool
}

// NewScreenState creates a new screen state
func NewScreenState() *ScreenState {
	return &ScreenState{}
}

// SetStatus replaces the status message and returns its sequence number
func (s *ScreenState) SetStatus(message string, isError bool) int {
	s.StatusSeq++
	s.StatusMessage = message
	s.StatusIsError = isError
	return s.StatusSeq
}

// ClearStatus clears the status message if it is still the one numbered seq
func (s *ScreenState) ClearStatus(seq int) bool {
	if seq != s.StatusSeq {
		return false
	}
	s.StatusMessage = ""
	s.StatusIsError = false
	return true
}

// ShowDetail opens the detail popup for a notification
func (s *ScreenState) ShowDetail(id, content string) {
	s.DetailID = id
	s.DetailContent = content
}

// CloseDetail closes the detail popup
func (s *ScreenState) CloseDetail() {
	s.DetailID = ""
	s.DetailContent = ""
}

// HasPopup reports whether an informational popup covers the list
func (s *ScreenState) HasPopup() bool {
	return s.ShowHelp || s.DetailContent != ""
}
