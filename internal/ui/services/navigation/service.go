package navigation

// chromeLines is the space taken by header, status line and help line
const chromeLines = 6

// Service handles cursor movement and the list viewport
type Service struct {
	state *State
}

// NewService creates a new navigation service
func NewService() *Service {
	return &Service{
		state: &State{
			ViewportHeight: 20, // Default, will be updated
		},
	}
}

// GetCursor returns current cursor position
func (s *Service) GetCursor() int {
	return s.state.Cursor
}

// GetViewportOffset returns current viewport offset
func (s *Service) GetViewportOffset() int {
	return s.state.ViewportOffset
}

// GetViewportHeight returns current viewport height
func (s *Service) GetViewportHeight() int {
	return s.state.ViewportHeight
}

// SetViewportHeight updates viewport height from the terminal height
func (s *Service) SetViewportHeight(height int) {
	effectiveHeight := height - chromeLines
	if effectiveHeight < 1 {
		effectiveHeight = 1
	}
	s.state.ViewportHeight = effectiveHeight
	s.ensureVisible()
}

// SetItemCount updates the list length, keeping the cursor on a valid row
func (s *Service) SetItemCount(count int) {
	if count < 0 {
		count = 0
	}
	s.state.ItemCount = count
	s.state.Cursor = s.clampIndex(s.state.Cursor)
	if maxOffset := count - s.state.ViewportHeight; s.state.ViewportOffset > maxOffset {
		s.state.ViewportOffset = max(maxOffset, 0)
	}
	s.ensureVisible()
}

// Navigate handles navigation in a direction
func (s *Service) Navigate(direction Direction) {
	switch direction {
	case DirectionUp:
		s.MoveToIndex(s.state.Cursor - 1)
	case DirectionDown:
		s.MoveToIndex(s.state.Cursor + 1)
	case DirectionPageUp:
		s.pageUp()
	case DirectionPageDown:
		s.MoveToIndex(s.state.Cursor + s.pageSize())
	case DirectionHome:
		s.state.Cursor = 0
		s.state.ViewportOffset = 0
	case DirectionEnd:
		s.MoveToIndex(s.maxIndex())
	}
}

// MoveToIndex moves cursor to specific index
func (s *Service) MoveToIndex(index int) {
	s.state.Cursor = s.clampIndex(index)
	s.ensureVisible()
}

func (s *Service) pageUp() {
	pageSize := s.pageSize()
	s.state.Cursor = s.clampIndex(s.state.Cursor - pageSize)

	// Also scroll viewport up
	s.state.ViewportOffset -= pageSize
	if s.state.ViewportOffset < 0 {
		s.state.ViewportOffset = 0
	}
	s.ensureVisible()
}

func (s *Service) pageSize() int {
	if s.state.ViewportHeight > 1 {
		return s.state.ViewportHeight - 1
	}
	return 1
}

func (s *Service) maxIndex() int {
	if s.state.ItemCount == 0 {
		return 0
	}
	return s.state.ItemCount - 1
}

func (s *Service) clampIndex(index int) int {
	if index < 0 {
		return 0
	}
	if index > s.maxIndex() {
		return s.maxIndex()
	}
	return index
}

func (s *Service) ensureVisible() {
	if s.state.Cursor < s.state.ViewportOffset {
		s.state.ViewportOffset = s.state.Cursor
	} else if s.state.Cursor >= s.state.ViewportOffset+s.state.ViewportHeight {
		s.state.ViewportOffset = s.state.Cursor - s.state.ViewportHeight + 1
	}
}
